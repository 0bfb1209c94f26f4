package contention

import (
	"fmt"
	"strings"
)

// Side is the team a member picked to win a game. The zero value is not a
// side, so a pick decoded without one is ignored.
type Side uint8

const (
	Home Side = iota + 1
	Away
)

func ParseSide(raw string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "home":
		return Home, nil
	case "away":
		return Away, nil
	default:
		return 0, fmt.Errorf("invalid side %q", raw)
	}
}

func (s Side) String() string {
	switch s {
	case Home:
		return "home"
	case Away:
		return "away"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

func (s Side) valid() bool {
	return s == Home || s == Away
}

func (s Side) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid side %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
