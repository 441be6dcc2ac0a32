package sessioncaptcha

import (
	"context"
	"errors"
	"formcaptcha/internal/core/domain/captcha"
	"formcaptcha/internal/core/domain/form"
	"formcaptcha/internal/core/domain/session"
	"io"
	"strings"
	"testing"

	"github.com/mojocn/base64Captcha"
	"github.com/stretchr/testify/require"
)

const SESSION_ID = session.ID("test-session")

var CaptchaField = form.Field{ID: 1, Type: form.FieldTypeCaptcha}

type stubItem struct {
	content string
}

func (i stubItem) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, i.content)
	return int64(n), err
}

func (i stubItem) EncodeB64string() string {
	return "data:image/png;base64,drawn"
}

type stubDriver struct {
	answer  string
	drawErr error
	drawn   []string
}

func (d *stubDriver) GenerateIdQuestionAnswer() (string, string, string) {
	return "id", d.answer, d.answer
}

func (d *stubDriver) DrawCaptcha(content string) (base64Captcha.Item, error) {
	if d.drawErr != nil {
		return nil, d.drawErr
	}
	d.drawn = append(d.drawn, content)
	return stubItem{content: content}, nil
}

func TestIssue(t *testing.T) {
	assert := require.New(t)
	store := session.NewFakeStore()
	driver := &stubDriver{answer: "AB12cd"}
	issuer := New(store, driver)

	challenge, err := issuer.Issue(context.Background(), SESSION_ID, CaptchaField)

	assert.Nil(err)
	assert.Equal(captcha.Challenge{Mode: captcha.SimpleSession, Image: "data:image/png;base64,drawn"}, challenge)
	assert.Equal([]string{"AB12cd"}, driver.drawn)
	value, ok := store.Value(SESSION_ID, captcha.SessionChallengeKey)
	assert.True(ok)
	assert.Equal("AB12cd", value)
}

func TestIssueStoreError(t *testing.T) {
	store := session.NewFakeStore()
	store.SetError = errors.New("could not write session")
	issuer := New(store, &stubDriver{answer: "AB12cd"})

	_, err := issuer.Issue(context.Background(), SESSION_ID, CaptchaField)

	require.ErrorIs(t, err, store.SetError)
}

func TestIssueDrawErrorKeepsSession(t *testing.T) {
	store := session.NewFakeStore()
	driver := &stubDriver{answer: "AB12cd", drawErr: errors.New("font is missing")}
	issuer := New(store, driver)

	_, err := issuer.Issue(context.Background(), SESSION_ID, CaptchaField)

	assert := require.New(t)
	assert.ErrorIs(err, driver.drawErr)
	assert.Empty(store.SetCalls)
}

func TestIssueWithImageDriver(t *testing.T) {
	assert := require.New(t)
	store := session.NewFakeStore()
	issuer := New(store, NewDriver())

	challenge, err := issuer.Issue(context.Background(), SESSION_ID, CaptchaField)

	assert.Nil(err)
	assert.True(strings.HasPrefix(challenge.Image, "data:image/png;base64,"))
	answer, ok := store.Value(SESSION_ID, captcha.SessionChallengeKey)
	assert.True(ok)
	assert.Len(answer, CHALLENGE_LENGTH)
	for _, r := range answer {
		assert.Contains(CHALLENGE_SOURCE, string(r))
	}
	assert.NotEqual(answer, challenge.Image)
}
