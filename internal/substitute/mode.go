package substitute

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for names that are not a register.
var ErrUnknownMode = errors.New("substitute: unknown mode")

// Mode is the register the text is rewritten towards.
type Mode int

const (
	// ModeNone disables both passes. It is what an unrecognised mode maps to.
	ModeNone Mode = iota
	VeryInformal
	Informal
	Formal
	VeryFormal
)

var modeNames = map[Mode]string{
	ModeNone:     "none",
	VeryInformal: "very_informal",
	Informal:     "informal",
	Formal:       "formal",
	VeryFormal:   "very_formal",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "none"
}

// IsFormal reports whether the fixed-dictionary pass runs in m.
func (m Mode) IsFormal() bool { return m == Formal || m == VeryFormal }

// Modes lists the four registers, most informal first.
func Modes() []Mode { return []Mode{VeryInformal, Informal, Formal, VeryFormal} }

// ParseMode accepts any case, with '-', '_' or spaces between words, and the
// Spanish names ("muy formal", "muy informal").
// An empty string is ModeNone.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch key {
	case "", "none":
		return ModeNone, nil
	case "very_informal", "muy_informal":
		return VeryInformal, nil
	case "informal":
		return Informal, nil
	case "formal":
		return Formal, nil
	case "very_formal", "muy_formal":
		return VeryFormal, nil
	}
	return ModeNone, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
