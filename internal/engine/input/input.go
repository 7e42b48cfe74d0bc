// Package input turns SDL2 events into a per-frame event list.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType tells which fields of an Event are set.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event is one input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Mod    uint16
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Ctrl reports whether either control key was held.
func (e Event) Ctrl() bool {
	return e.Mod&uint16(sdl.KMOD_CTRL) != 0
}

// Input collects the events of the current frame.
type Input struct {
	events []Event
}

func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update drains the SDL queue. It returns true once a quit was requested.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			ev := Event{
				Key:    e.Keysym.Scancode,
				Mod:    e.Keysym.Mod,
				Repeat: e.Repeat != 0,
			}
			switch e.Type {
			case sdl.KEYDOWN:
				ev.Type = EventKeyDown
			case sdl.KEYUP:
				ev.Type = EventKeyUp
			default:
				continue
			}
			i.events = append(i.events, ev)

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})

		case *sdl.MouseButtonEvent:
			ev := Event{MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
			switch e.Type {
			case sdl.MOUSEBUTTONDOWN:
				ev.Type = EventMouseDown
			case sdl.MOUSEBUTTONUP:
				ev.Type = EventMouseUp
			default:
				continue
			}
			i.events = append(i.events, ev)
		}
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
