package form

type ID int64

type FieldID int64

type FieldType string

const (
	FieldTypeInput    = FieldType("input")
	FieldTypeTextarea = FieldType("textarea")
	FieldTypeCaptcha  = FieldType("captcha")
)

type Form struct {
	ID    ID
	Title string
}

type Field struct {
	ID     FieldID
	FormID ID
	Type   FieldType
	Title  string
	Marker string
}

func (f Field) IsCaptcha() bool {
	return f.Type == FieldTypeCaptcha
}

type Answer struct {
	Field Field
	Value string
}

// Mail is a submitted response to a form.
type Mail struct {
	Form    Form
	Answers []Answer
}

type Action string

const ActionCreate = Action("create")

// ClearsChallenge reports whether captcha challenges are consumed by this action.
// Only a brand-new submission consumes them, re-validation keeps them alive.
func (a Action) ClearsChallenge() bool {
	return a == ActionCreate
}
