package http

import (
	"github.com/eduprompt/api/internal/infrastructure/dynamo"
	jwtinfra "github.com/eduprompt/api/internal/infrastructure/jwt"
	"github.com/eduprompt/api/internal/infrastructure/smtp"
	"github.com/eduprompt/api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo      *dynamo.UserRepo
	SessionRepo   *dynamo.SessionRepo
	CodeRepo      *dynamo.VerificationCodeRepo
	IndicatorRepo *dynamo.IndicatorRepo
	TxWriter      *dynamo.TxWriter
	Mailer        smtp.Mailer
	Events        sns.Publisher // optional; nil disables event publishing
	JWTProvider   *jwtinfra.Provider
}
