package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionClearsChallenge(t *testing.T) {
	cases := []struct {
		action   Action
		expected bool
	}{
		{action: ActionCreate, expected: true},
		{action: Action("confirmation"), expected: false},
		{action: Action("form"), expected: false},
		{action: Action("Create"), expected: false},
		{action: Action(""), expected: false},
	}

	for _, testcase := range cases {
		t.Run(string(testcase.action), func(t *testing.T) {
			assert.Equal(t, testcase.expected, testcase.action.ClearsChallenge())
		})
	}
}

func TestFieldIsCaptcha(t *testing.T) {
	assert.True(t, Field{Type: FieldTypeCaptcha}.IsCaptcha())
	assert.False(t, Field{Type: FieldTypeInput}.IsCaptcha())
	assert.False(t, Field{Type: FieldType("Captcha")}.IsCaptcha())
}
