package body

import (
	"github.com/Versifine/quiver/internal/input"
	"github.com/Versifine/quiver/internal/physics"
)

// moveInput converts held keys into the locomotion tick's input. Movement
// only follows yaw; pitch never tilts the walking plane.
func moveInput(in *input.State) physics.MoveInput {
	if in == nil {
		return physics.MoveInput{}
	}
	return physics.MoveInput{
		Forward:  in.Held(input.KeyForward),
		Backward: in.Held(input.KeyBack),
		Left:     in.Held(input.KeyLeft),
		Right:    in.Held(input.KeyRight),
		Sprint:   in.Held(input.KeySprint),
		Yaw:      in.Yaw(),
	}
}
