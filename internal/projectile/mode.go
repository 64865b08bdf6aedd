package projectile

import (
	"fmt"
	"strings"
)

type Mode int

const (
	// ModeLinear flies straight with the heading fixed at spawn.
	ModeLinear Mode = iota
	// ModeBallistic falls under gravity and turns to follow its velocity.
	ModeBallistic
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "":
		return ModeLinear, nil
	case "ballistic":
		return ModeBallistic, nil
	default:
		return ModeLinear, fmt.Errorf("unknown projectile mode %q", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeBallistic:
		return "ballistic"
	default:
		return "unknown"
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeBallistic {
		return ModeLinear
	}
	return ModeBallistic
}
