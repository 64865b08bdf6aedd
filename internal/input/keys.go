package input

import "strings"

type Key int

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeySprint
	KeyJump
	KeyLockToggle

	keyCount
)

var keyNames = map[string]Key{
	"w":       KeyForward,
	"forward": KeyForward,
	"s":       KeyBack,
	"back":    KeyBack,
	"a":       KeyLeft,
	"left":    KeyLeft,
	"d":       KeyRight,
	"right":   KeyRight,
	"shift":   KeySprint,
	"sprint":  KeySprint,
	" ":       KeyJump,
	"space":   KeyJump,
	"jump":    KeyJump,
	"enter":   KeyLockToggle,
	"lock":    KeyLockToggle,
}

// ParseKey maps a raw or logical key name to a Key. Unknown names report
// ok=false and are meant to be ignored by callers.
func ParseKey(name string) (Key, bool) {
	if name != " " {
		name = strings.ToLower(strings.TrimSpace(name))
	}
	k, ok := keyNames[name]
	return k, ok
}

func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyBack:
		return "back"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeySprint:
		return "sprint"
	case KeyJump:
		return "jump"
	case KeyLockToggle:
		return "lock"
	default:
		return "unknown"
	}
}

func (k Key) valid() bool {
	return k >= 0 && k < keyCount
}
