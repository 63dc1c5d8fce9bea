package dynamo

// DynamoDB attribute names used in update expressions across the repos.
// These must match the dynamodbav tags on the domain structs.
const (
	fieldActive           = "active"
	fieldSessionToken     = "session_token"
	fieldRefreshTokenHash = "refresh_token_hash"
	fieldExpiresAt        = "expires_at"
)
