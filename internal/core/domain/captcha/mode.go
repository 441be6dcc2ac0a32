package captcha

type Mode struct {
	v string
}

var (
	SimpleSession = Mode{v: "captcha"}
	Calculating   = Mode{v: "calculating"}
)

// ParseMode maps the captcha setting to a mode.
// Only "captcha" selects the simple session mode, anything else falls back to calculating.
func ParseMode(setting string) Mode {
	if setting == SimpleSession.v {
		return SimpleSession
	}
	return Calculating
}

func (m Mode) String() string {
	if m.v == "" {
		return Calculating.v
	}
	return m.v
}

func (m *Mode) UnmarshalText(text []byte) error {
	*m = ParseMode(string(text))
	return nil
}
