package ecs

import (
	"github.com/peltigera/starboard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// NodeEventType is the Donburi event type for starboard node events.
// Subscribe to this in your ECS systems to react to node placements,
// removals, and credit-gated activations.
var NodeEventType = events.NewEventType[starboard.NodeEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Node events
// are published to NodeEventType and can be consumed with events.Subscribe
// and ProcessEvents.
func NewDonburiSink(world donburi.World) starboard.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event starboard.NodeEvent) {
	NodeEventType.Publish(s.world, event)
}
