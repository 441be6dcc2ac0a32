package app

import (
	"fmt"
	"formcaptcha/internal/app/deps"
	"formcaptcha/internal/app/services"
	issuecaptcha "formcaptcha/internal/http/handlers/forms/issue_captcha"
	submitmail "formcaptcha/internal/http/handlers/forms/submit_mail"
	"formcaptcha/internal/http/handlers/session"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	sessionMiddleware := session.NewMiddleware(
		deps.Config.SessionCookieName,
		deps.Config.SessionTTL,
		!deps.Config.IsTestMode,
		deps.SessionIDGenerator,
	)

	formsRouter := chi.NewRouter()
	formsRouter.Use(sessionMiddleware.SetSessionIDToContext)
	formsRouter.Method(
		http.MethodGet,
		"/{formID:[0-9]+}/fields/{fieldID:[0-9]+}/captcha",
		issuecaptcha.New(s.IssueCaptcha),
	)
	formsRouter.Method(http.MethodPost, "/{formID:[0-9]+}/mails", submitmail.New(s.SubmitMail))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", session.SESSION_ID_HEADER},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/forms", formsRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
