package http

import (
	"net/http"

	"github.com/eduprompt/api/internal/application/auth"
	"github.com/eduprompt/api/internal/application/indicator"
	"github.com/eduprompt/api/internal/application/session"
	"github.com/eduprompt/api/internal/application/user"
	"github.com/eduprompt/api/internal/config"
	"github.com/eduprompt/api/internal/transport/http/handler"
	appmiddleware "github.com/eduprompt/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to endpoints that either hit
	// bcrypt or send email.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	sessionSvc := session.NewService(session.ServiceDeps{
		SessionRepo: deps.SessionRepo,
		UserRepo:    deps.UserRepo,
		Tokens:      deps.JWTProvider,
		Events:      deps.Events,
		SessionTTL:  cfg.JWTExpiry(),
	})
	authSvc := auth.NewService(auth.ServiceDeps{
		Codes:   deps.CodeRepo,
		Users:   deps.UserRepo,
		Mail:    deps.Mailer,
		CodeTTL: cfg.CodeExpiry(),
	})
	userSvc := user.NewService(user.ServiceDeps{
		Users:      deps.UserRepo,
		Indicators: deps.IndicatorRepo,
		Tx:         deps.TxWriter,
		Activation: authSvc,
		Events:     deps.Events,
	})
	indicatorSvc := indicator.NewService(deps.IndicatorRepo, deps.TxWriter)

	healthH := handler.NewHealthHandler()
	sessionH := handler.NewSessionHandler(sessionSvc)
	userH := handler.NewUserHandler(userSvc)
	pwH := handler.NewPasswordRecoveryHandler(authSvc)
	emailH := handler.NewEmailConfirmHandler(authSvc)
	emailChangeH := handler.NewEmailChangeHandler(authSvc)
	indicatorH := handler.NewIndicatorHandler(indicatorSvc)

	authMw := appmiddleware.Auth(sessionSvc)
	softAuthMw := appmiddleware.SoftAuth(deps.JWTProvider)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/login", sessionH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/signup", userH.SignUp)
		r.Post("/auth/refresh-token", sessionH.Refresh)
		r.With(sensitiveRL.Limit).Post("/verify-email/{action}", emailH.Action)
		r.With(sensitiveRL.Limit).Post("/password-recovery/{action}", pwH.Action)

		// Logout accepts tokens that are already expired.
		r.With(softAuthMw).Post("/auth/logout", sessionH.Logout)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/auth/session", sessionH.Validate)
			r.Get("/users/me", userH.Me)
			r.Post("/password-recovery/change-password", pwH.ChangePassword)
			r.Post("/email-change/{action}", emailChangeH.Action)
			r.Get("/indicators", indicatorH.Get)
			r.Post("/indicators", indicatorH.Create)
		})
	})

	return r
}
