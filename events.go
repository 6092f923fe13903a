package citymesh

import "github.com/akmonengine/citymesh/tessellate"

const (
	POLYGON_INVALID EventType = iota
	TRIANGULATION_FAILED
	POLYGON_REJECTED
	FEATURE_DONE
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// PolygonEvent locates a polygon that produced no faces and tells why.
type PolygonEvent struct {
	Feature string
	Class   string
	// Surface is the position of the surface in the feature.
	Surface int
	Err     error
}

// PolygonInvalidEvent is sent for a polygon skipped by validation.
type PolygonInvalidEvent struct{ PolygonEvent }

func (e PolygonInvalidEvent) Type() EventType { return POLYGON_INVALID }

// TriangulationFailedEvent is sent for a polygon that produced no faces.
type TriangulationFailedEvent struct{ PolygonEvent }

func (e TriangulationFailedEvent) Type() EventType { return TRIANGULATION_FAILED }

// PolygonRejectedEvent is sent for a polygon the mode cannot represent, such
// as a polygon with holes in preserve mode.
type PolygonRejectedEvent struct{ PolygonEvent }

func (e PolygonRejectedEvent) Type() EventType { return POLYGON_REJECTED }

// FeatureDoneEvent is sent once the faces of a feature are merged.
type FeatureDoneEvent struct {
	Feature string
	Faces   int
}

func (e FeatureDoneEvent) Type() EventType { return FEATURE_DONE }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 16),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// emitPolygon turns a polygon outcome other than StatusOK into its event.
func (e *Events) emitPolygon(status tessellate.Status, p PolygonEvent) {
	switch status {
	case tessellate.StatusInvalid:
		e.emit(PolygonInvalidEvent{p})
	case tessellate.StatusFailed:
		e.emit(TriangulationFailedEvent{p})
	case tessellate.StatusRejected:
		e.emit(PolygonRejectedEvent{p})
	}
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
