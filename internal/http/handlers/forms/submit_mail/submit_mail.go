package submitmail

import (
	"encoding/json"
	"errors"
	"formcaptcha/internal/core/domain/form"
	ratelimiter "formcaptcha/internal/core/domain/rate_limiter"
	"formcaptcha/internal/core/services"
	service "formcaptcha/internal/core/services/submit_mail"
	"formcaptcha/internal/http/handlers/ip"
	"formcaptcha/internal/http/handlers/response"
	"formcaptcha/internal/http/handlers/session"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MAX_ANSWERS      = 200
	MAX_VALUE_LENGTH = 10_000
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	return &Handler{service: service}
}

type Answer struct {
	FieldID int64  `json:"field_id"`
	Value   string `json:"value"`
}

func (a Answer) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.FieldID, validation.Required, validation.Min(1)),
		validation.Field(&a.Value, validation.Length(0, MAX_VALUE_LENGTH)),
	)
}

type Input struct {
	Answers []Answer `json:"answers"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Answers, validation.Length(0, MAX_ANSWERS)),
	)
}

type Result struct {
	IsValid     bool                    `json:"is_valid"`
	IsPublished bool                    `json:"is_published"`
	Errors      []response.CaptchaError `json:"errors"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	formID, err := strconv.ParseInt(chi.URLParam(r, "formID"), 10, 64)
	if err != nil {
		response.RenderBadRequest(rw, "invalid form ID")
		return
	}
	clientIP, err := ip.FromRequest(r)
	if err != nil {
		response.RenderBadRequest(rw, err.Error())
		return
	}
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderBadRequest(rw, "invalid request data")
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	answers := make([]service.AnswerInput, len(input.Answers))
	for i, answer := range input.Answers {
		answers[i] = service.AnswerInput{FieldID: form.FieldID(answer.FieldID), Value: answer.Value}
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			FormID:    form.ID(formID),
			Answers:   answers,
			SessionID: session.FromContext(r.Context()),
			IP:        clientIP,
			Action:    form.Action(r.URL.Query().Get("action")),
		},
	)
	if err != nil {
		var invalidCaptchaErr *service.InvalidCaptchaError
		switch {
		case errors.As(err, &invalidCaptchaErr):
			response.Render(
				rw,
				Result{IsValid: false, Errors: response.CaptchaErrors(invalidCaptchaErr.Errors)},
				http.StatusUnprocessableEntity,
			)
		case errors.Is(err, form.ErrFormDoesNotExist):
			response.RenderNotFound(rw, err.Error())
		case errors.Is(err, form.ErrFieldDoesNotExist):
			response.RenderBadRequest(rw, err.Error())
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(
		rw,
		Result{IsValid: true, IsPublished: result.IsPublished, Errors: []response.CaptchaError{}},
		http.StatusCreated,
	)
}
