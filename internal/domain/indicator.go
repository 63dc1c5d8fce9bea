package domain

import "fmt"

// Indicator is the per-user usage statistics aggregate, created exactly once
// in lockstep with its User during signup.
type Indicator struct {
	IndicatorID           string  `json:"id" dynamodbav:"indicator_id"`
	UserID                string  `json:"user_id" dynamodbav:"user_id"`
	GeneratedResources    int     `json:"generated_resources" dynamodbav:"generated_resources"`
	UsedTokens            int     `json:"used_tokens" dynamodbav:"used_tokens"`
	LastGeneratedResource *string `json:"last_generated_resource" dynamodbav:"last_generated_resource"`
	DownloadedResources   int     `json:"downloaded_resources" dynamodbav:"downloaded_resources"`
	SavedResources        int     `json:"saved_resources" dynamodbav:"saved_resources"`
}

// NewIndicator builds a zeroed Indicator for a freshly created user.
func NewIndicator(indicatorID, userID string) *Indicator {
	return &Indicator{IndicatorID: indicatorID, UserID: userID}
}

// Validate rejects negative counters.
func (i *Indicator) Validate() error {
	if i.GeneratedResources < 0 || i.UsedTokens < 0 || i.DownloadedResources < 0 || i.SavedResources < 0 {
		return fmt.Errorf("indicator counters must not be negative: %w", ErrBadRequest)
	}
	return nil
}
