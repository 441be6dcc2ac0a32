package issuecaptcha

import (
	"errors"
	"formcaptcha/internal/core/domain/captcha"
	"formcaptcha/internal/core/domain/form"
	ratelimiter "formcaptcha/internal/core/domain/rate_limiter"
	"formcaptcha/internal/core/services"
	service "formcaptcha/internal/core/services/issue_captcha"
	"formcaptcha/internal/http/handlers/ip"
	"formcaptcha/internal/http/handlers/response"
	"formcaptcha/internal/http/handlers/session"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	formID, err := strconv.ParseInt(chi.URLParam(r, "formID"), 10, 64)
	if err != nil {
		response.RenderBadRequest(rw, "invalid form ID")
		return
	}
	fieldID, err := strconv.ParseInt(chi.URLParam(r, "fieldID"), 10, 64)
	if err != nil {
		response.RenderBadRequest(rw, "invalid field ID")
		return
	}

	clientIP, err := ip.FromRequest(r)
	if err != nil {
		response.RenderBadRequest(rw, err.Error())
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			FormID:    form.ID(formID),
			FieldID:   form.FieldID(fieldID),
			SessionID: session.FromContext(r.Context()),
			IP:        clientIP,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, form.ErrFormDoesNotExist), errors.Is(err, form.ErrFieldDoesNotExist):
			response.RenderNotFound(rw, err.Error())
		case errors.Is(err, captcha.ErrFieldIsNotCaptcha), errors.Is(err, captcha.ErrSessionIsNotPassed):
			response.RenderBadRequest(rw, err.Error())
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	challenge := response.Challenge{}
	challenge.FromDomainChallenge(result.Challenge)
	response.Render(rw, challenge, http.StatusOK)
}
