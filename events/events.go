// Package events defines the small set of named events the movement
// engine publishes and consumes: tick pulses it's driven by, and
// motion-lifecycle notifications it emits for other subsystems (combat
// stance, move-marker cleanup, telemetry) to react to.
package events

// Name identifies an event kind on the bus.
type Name string

const (
	// Tick20Hz drives the movement tick driver itself.
	Tick20Hz Name = "20HZ_TICK"
	// Tick60Hz drives the task microkernel's timeserver clock.
	Tick60Hz Name = "60HZ_TICK"

	// MotionStart fires when a still agent starts moving again (a new
	// destination command, or a WAITING countdown expiring).
	MotionStart Name = "MOTION_START"
	// MotionEnd fires when a moving agent becomes still (ARRIVED or
	// WAITING).
	MotionEnd Name = "MOTION_END"

	// AnimFinished fires once a move marker's arrival animation
	// completes, the external entity system's cue to delete it.
	AnimFinished Name = "ANIM_FINISHED"
)

// MotionEvent is the payload for MotionStart/MotionEnd.
type MotionEvent struct {
	Agent uint32
}

// Bus is the minimal publish/subscribe surface the movement engine needs;
// satisfied by *kernel.EventBus as well as any simpler test double.
type Bus interface {
	Publish(name string, payload interface{})
}
