package walker

import (
	"fmt"
	"strings"
)

// TravelMode selects what happens when a walker reaches either end of its
// curve.
type TravelMode int

const (
	// Once stops at the end that was reached.
	Once TravelMode = iota
	// Loop jumps to the opposite end and keeps going in the same direction.
	Loop
	// PingPong reverses direction at each end.
	PingPong
)

func (m TravelMode) String() string {
	switch m {
	case Once:
		return "once"
	case Loop:
		return "loop"
	case PingPong:
		return "pingpong"
	default:
		return fmt.Sprintf("TravelMode(%d)", int(m))
	}
}

// ParseTravelMode parses the names returned by [TravelMode.String]. Matching
// is case-insensitive, and "ping-pong" and "ping_pong" are accepted as well.
func ParseTravelMode(s string) (TravelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "once":
		return Once, nil
	case "loop":
		return Loop, nil
	case "pingpong", "ping-pong", "ping_pong":
		return PingPong, nil
	default:
		return 0, fmt.Errorf("unknown travel mode %q", s)
	}
}

// MarshalText implements [encoding.TextMarshaler]. Unknown modes are an
// error.
func (m TravelMode) MarshalText() ([]byte, error) {
	if m < Once || m > PingPong {
		return nil, fmt.Errorf("invalid travel mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] using
// [ParseTravelMode].
func (m *TravelMode) UnmarshalText(text []byte) error {
	v, err := ParseTravelMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
