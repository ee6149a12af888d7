// Package ecs provides ECS adapters for starboard's node event system.
//
// The primary adapter is [NewDonburiSink], which bridges node mutation
// events (created, removed, activated, deactivated, denied, reset) into a
// [Donburi] world as typed events. Subscribe to [NodeEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	panel.Controller().SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
