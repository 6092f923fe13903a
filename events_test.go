package citymesh

import (
	"testing"

	"github.com/akmonengine/citymesh/tessellate"
	"github.com/pkg/errors"
)

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
}

func (ec *eventCapture) count() int {
	return len(ec.events)
}

func (ec *eventCapture) hasEventType(eventType EventType) bool {
	for _, e := range ec.events {
		if e.Type() == eventType {
			return true
		}
	}
	return false
}

// =============================================================================
// Subscribe and Listeners Tests
// =============================================================================

func TestEvents_Subscribe(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}

	events.Subscribe(POLYGON_INVALID, capture.capture)

	if len(events.listeners[POLYGON_INVALID]) != 1 {
		t.Errorf("Expected 1 listener for POLYGON_INVALID, got %d", len(events.listeners[POLYGON_INVALID]))
	}
}

func TestEvents_SubscribeOnZeroValue(t *testing.T) {
	var events Events
	capture := &eventCapture{}

	events.Subscribe(FEATURE_DONE, capture.capture)
	events.emit(FeatureDoneEvent{Feature: "a"})
	events.flush()

	if capture.count() != 1 {
		t.Errorf("Expected 1 event, got %d", capture.count())
	}
}

func TestEvents_MultipleListeners(t *testing.T) {
	events := NewEvents()
	first := &eventCapture{}
	second := &eventCapture{}

	events.Subscribe(FEATURE_DONE, first.capture)
	events.Subscribe(FEATURE_DONE, second.capture)
	events.emit(FeatureDoneEvent{Feature: "a", Faces: 3})
	events.flush()

	if first.count() != 1 || second.count() != 1 {
		t.Errorf("Expected both listeners to receive 1 event, got %d and %d", first.count(), second.count())
	}
}

func TestEvents_DifferentEventTypes(t *testing.T) {
	events := NewEvents()
	invalid := &eventCapture{}
	done := &eventCapture{}

	events.Subscribe(POLYGON_INVALID, invalid.capture)
	events.Subscribe(FEATURE_DONE, done.capture)

	events.emit(PolygonInvalidEvent{PolygonEvent{Feature: "a"}})
	events.emit(TriangulationFailedEvent{PolygonEvent{Feature: "a"}})
	events.emit(FeatureDoneEvent{Feature: "a"})
	events.flush()

	if invalid.count() != 1 || !invalid.hasEventType(POLYGON_INVALID) {
		t.Errorf("POLYGON_INVALID listener got %v", invalid.events)
	}
	if done.count() != 1 || !done.hasEventType(FEATURE_DONE) {
		t.Errorf("FEATURE_DONE listener got %v", done.events)
	}
}

func TestEvents_EmitPolygon(t *testing.T) {
	tests := []struct {
		status   tessellate.Status
		expected EventType
	}{
		{tessellate.StatusInvalid, POLYGON_INVALID},
		{tessellate.StatusFailed, TRIANGULATION_FAILED},
		{tessellate.StatusRejected, POLYGON_REJECTED},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			events := NewEvents()
			capture := &eventCapture{}
			events.Subscribe(tt.expected, capture.capture)

			reason := errors.New("reason")
			events.emitPolygon(tt.status, PolygonEvent{Feature: "f", Class: "RoofSurface", Surface: 2, Err: reason})
			events.flush()

			if capture.count() != 1 {
				t.Fatalf("Expected 1 event, got %d", capture.count())
			}
			if capture.events[0].Type() != tt.expected {
				t.Errorf("Expected type %d, got %d", tt.expected, capture.events[0].Type())
			}
		})
	}

	events := NewEvents()
	capture := &eventCapture{}
	for _, et := range []EventType{POLYGON_INVALID, TRIANGULATION_FAILED, POLYGON_REJECTED, FEATURE_DONE} {
		events.Subscribe(et, capture.capture)
	}
	events.emitPolygon(tessellate.StatusOK, PolygonEvent{})
	events.flush()
	if capture.count() != 0 {
		t.Errorf("StatusOK must not emit, got %d events", capture.count())
	}
}

func TestEvents_Flush_ClearsBuffer(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(FEATURE_DONE, capture.capture)

	events.emit(FeatureDoneEvent{Feature: "a"})
	events.flush()
	capture.reset()

	events.flush()
	if capture.count() != 0 {
		t.Errorf("Expected no event after a second flush, got %d", capture.count())
	}
	if len(events.buffer) != 0 {
		t.Errorf("Expected empty buffer, got %d", len(events.buffer))
	}
}

func TestEvents_NoListeners(t *testing.T) {
	events := NewEvents()
	events.emit(FeatureDoneEvent{Feature: "a"})
	events.flush()

	if len(events.buffer) != 0 {
		t.Errorf("Expected empty buffer, got %d", len(events.buffer))
	}
}
