package schema

import (
	"encoding/json"
	"formcaptcha/internal/core/domain/form"
)

type Answer struct {
	FieldID int64  `json:"field_id"`
	Marker  string `json:"marker"`
	Value   string `json:"value"`
}

// MailSubmitted is published for every accepted mail. Captcha answers are not included.
type MailSubmitted struct {
	FormID  int64    `json:"form_id"`
	Answers []Answer `json:"answers"`
}

func NewMailSubmitted(mail form.Mail) MailSubmitted {
	m := MailSubmitted{FormID: int64(mail.Form.ID), Answers: []Answer{}}
	for _, answer := range mail.Answers {
		if answer.Field.IsCaptcha() {
			continue
		}
		m.Answers = append(m.Answers, Answer{
			FieldID: int64(answer.Field.ID),
			Marker:  answer.Field.Marker,
			Value:   answer.Value,
		})
	}
	return m
}

func (m *MailSubmitted) Marshal() ([]byte, error) {
	return json.Marshal(m)
}
