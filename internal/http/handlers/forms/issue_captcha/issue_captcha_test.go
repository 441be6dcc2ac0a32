package issuecaptcha

import (
	"context"
	"errors"
	"formcaptcha/internal/core/domain/captcha"
	"formcaptcha/internal/core/domain/form"
	ratelimiter "formcaptcha/internal/core/domain/rate_limiter"
	ds "formcaptcha/internal/core/domain/session"
	service "formcaptcha/internal/core/services/issue_captcha"
	"formcaptcha/internal/http/handlers/session"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return service.Result{Challenge: captcha.Challenge{Mode: captcha.Calculating, Image: "data:image/png;base64,iVBORw0KGgo="}}, nil
}

func TestIssueCaptchaHandler(t *testing.T) {
	cases := []struct {
		url            string
		serviceErr     error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			url:            "/forms/1/fields/2/captcha",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				FormID:    1,
				FieldID:   2,
				SessionID: ds.ID("test-session"),
				IP:        netip.MustParseAddr("192.0.2.1"),
			},
		},
		{url: "/forms/1/fields/2/captcha", serviceErr: form.ErrFormDoesNotExist, expectedStatus: http.StatusNotFound},
		{url: "/forms/1/fields/2/captcha", serviceErr: form.ErrFieldDoesNotExist, expectedStatus: http.StatusNotFound},
		{
			url:            "/forms/1/fields/2/captcha",
			serviceErr:     captcha.ErrFieldIsNotCaptcha,
			expectedStatus: http.StatusBadRequest,
		},
		{
			url:            "/forms/1/fields/2/captcha",
			serviceErr:     ratelimiter.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			url:            "/forms/1/fields/2/captcha",
			serviceErr:     errors.New("unexpected"),
			expectedStatus: http.StatusInternalServerError,
		},
		{url: "/forms/a/fields/2/captcha", expectedStatus: http.StatusBadRequest},
		{url: "/forms/1/fields/b/captcha", expectedStatus: http.StatusBadRequest},
	}

	for _, testcase := range cases {
		t.Run(testcase.url, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			router := chi.NewRouter()
			router.Method(http.MethodGet, "/forms/{formID}/fields/{fieldID}/captcha", New(stub))

			req := httptest.NewRequest(http.MethodGet, testcase.url, nil)
			req = req.WithContext(context.WithValue(req.Context(), session.CONTEXT_SESSION_ID_KEY, ds.ID("test-session")))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			if testcase.expectedInput != nil {
				assert.Equal(t, testcase.expectedInput, stub.input)
				assert.JSONEq(t, `{"mode":"calculating","image":"data:image/png;base64,iVBORw0KGgo="}`, rr.Body.String())
				assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
			}
		})
	}
}
