package schema

import (
	"formcaptcha/internal/core/domain/form"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMailSubmittedSkipsCaptcha(t *testing.T) {
	mail := form.Mail{
		Form: form.Form{ID: 4},
		Answers: []form.Answer{
			{Field: form.Field{ID: 1, Type: form.FieldTypeInput, Marker: "name"}, Value: "John"},
			{Field: form.Field{ID: 2, Type: form.FieldTypeCaptcha, Marker: "captcha"}, Value: "AB12"},
		},
	}

	m := NewMailSubmitted(mail)

	require.Equal(t, MailSubmitted{
		FormID:  4,
		Answers: []Answer{{FieldID: 1, Marker: "name", Value: "John"}},
	}, m)
}

func TestMailSubmittedJSON(t *testing.T) {
	assert := require.New(t)
	m := MailSubmitted{FormID: 4, Answers: []Answer{{FieldID: 1, Marker: "name", Value: "John"}}}

	data, err := m.Marshal()
	assert.Nil(err)
	assert.JSONEq(`{"form_id":4,"answers":[{"field_id":1,"marker":"name","value":"John"}]}`, string(data))
}
