package tumble

import (
	"errors"
	"testing"

	"github.com/akmonengine/tumble/actor"
	"github.com/akmonengine/tumble/collider"
	"github.com/akmonengine/tumble/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

// createTestBody creates a unit cube at rest at position
func createTestBody(t testing.TB, position mgl64.Vec3) *actor.RigidBody {
	t.Helper()
	rb, err := actor.NewRigidBody(position, mgl64.Vec3{}, 1.0, 1.0)
	if err != nil {
		t.Fatalf("NewRigidBody: %v", err)
	}
	return rb
}

func createTestCollider(t testing.TB) collider.Collider {
	t.Helper()
	c, err := collider.New(collider.Descriptor{
		Kind:     collider.KindBox,
		Position: [3]float64{0, 1, 0},
		Size:     [3]float64{2, 2, 2},
	}, actor.AxisY, collider.DefaultTuning())
	if err != nil {
		t.Fatalf("collider.New: %v", err)
	}
	return c
}

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

func (ec *eventCapture) countType(eventType EventType) int {
	n := 0
	for _, e := range ec.events {
		if e.Type() == eventType {
			n++
		}
	}
	return n
}

// step merges the recorders and flushes, the way World.Step does
func step(events *Events, bodies []*actor.RigidBody, recorders ...*recorder) {
	for _, r := range recorders {
		events.merge(r)
	}
	events.processRestEvents(bodies)
	events.flush()
}

// =============================================================================
// Subscribe and Listeners Tests
// =============================================================================

func TestEvents_Subscribe(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}

	events.Subscribe(CONTACT_ENTER, capture.capture)

	if len(events.listeners[CONTACT_ENTER]) != 1 {
		t.Errorf("Expected 1 listener for CONTACT_ENTER, got %d", len(events.listeners[CONTACT_ENTER]))
	}
}

func TestEvents_MultipleListeners(t *testing.T) {
	events := NewEvents()
	capture1 := &eventCapture{}
	capture2 := &eventCapture{}

	events.Subscribe(CONTACT_ENTER, capture1.capture)
	events.Subscribe(CONTACT_ENTER, capture2.capture)

	body := createTestBody(t, mgl64.Vec3{0, 2, 0})
	var rec recorder
	rec.contact(body, 0, createTestCollider(t), mgl64.Vec3{0, 1, 0})
	step(&events, nil, &rec)

	if capture1.count() != 1 {
		t.Errorf("Capture1 expected 1 event, got %d", capture1.count())
	}
	if capture2.count() != 1 {
		t.Errorf("Capture2 expected 1 event, got %d", capture2.count())
	}
}

func TestEvents_DifferentEventTypes(t *testing.T) {
	events := NewEvents()
	captureContact := &eventCapture{}
	captureBoundary := &eventCapture{}

	events.Subscribe(CONTACT_ENTER, captureContact.capture)
	events.Subscribe(BOUNDARY_CONTACT, captureBoundary.capture)

	body := createTestBody(t, mgl64.Vec3{0, 0.5, 0})
	var rec recorder
	rec.emit(BoundaryEvent{Body: body, Contact: constraint.BoundaryContact{Axis: actor.AxisY}})
	step(&events, nil, &rec)

	if captureContact.count() != 0 {
		t.Errorf("Expected no contact event, got %d", captureContact.count())
	}
	if captureBoundary.count() != 1 {
		t.Errorf("Expected 1 boundary event, got %d", captureBoundary.count())
	}
}

// =============================================================================
// Contact Enter/Stay/Exit Tests
// =============================================================================

func TestEvents_ContactLifecycle(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(CONTACT_ENTER, capture.capture)
	events.Subscribe(CONTACT_STAY, capture.capture)
	events.Subscribe(CONTACT_EXIT, capture.capture)

	body := createTestBody(t, mgl64.Vec3{0, 2, 0})
	c := createTestCollider(t)
	var rec recorder

	// Frame 1: enter
	rec.contact(body, 3, c, mgl64.Vec3{0, 1, 0})
	step(&events, nil, &rec)
	if capture.count() != 1 || capture.events[0].Type() != CONTACT_ENTER {
		t.Fatalf("Frame 1: expected a single CONTACT_ENTER, got %v", capture.events)
	}
	enter := capture.events[0].(ContactEnterEvent)
	if enter.Body != body || enter.Index != 3 || enter.Collider != c {
		t.Errorf("Frame 1: wrong enter event %+v", enter)
	}
	if enter.Normal != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("Frame 1: normal = %v", enter.Normal)
	}

	// Frame 2: stay
	capture.reset()
	rec.reset()
	rec.contact(body, 3, c, mgl64.Vec3{0, 1, 0})
	step(&events, nil, &rec)
	if capture.count() != 1 || capture.events[0].Type() != CONTACT_STAY {
		t.Fatalf("Frame 2: expected a single CONTACT_STAY, got %v", capture.events)
	}

	// Frame 3: exit
	capture.reset()
	rec.reset()
	step(&events, nil, &rec)
	if capture.count() != 1 || capture.events[0].Type() != CONTACT_EXIT {
		t.Fatalf("Frame 3: expected a single CONTACT_EXIT, got %v", capture.events)
	}
	if exit := capture.events[0].(ContactExitEvent); exit.Index != 3 {
		t.Errorf("Frame 3: exit index = %d, want 3", exit.Index)
	}

	// Frame 4: nothing left
	capture.reset()
	step(&events, nil, &rec)
	if capture.count() != 0 {
		t.Errorf("Frame 4: expected no event, got %d", capture.count())
	}
}

func TestEvents_ContactStay_RestingBodies(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(CONTACT_STAY, capture.capture)

	body := createTestBody(t, mgl64.Vec3{0, 2, 0})
	c := createTestCollider(t)
	var rec recorder

	rec.contact(body, 0, c, mgl64.Vec3{0, 1, 0})
	step(&events, nil, &rec)

	body.IsResting = true
	rec.reset()
	rec.contact(body, 0, c, mgl64.Vec3{0, 1, 0})
	step(&events, nil, &rec)

	if capture.hasEventType(CONTACT_STAY) {
		t.Error("Expected no CONTACT_STAY for a resting body")
	}
}

// A body pushed twice by the same collider in a step has one contact
func TestEvents_DuplicateHits(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(CONTACT_ENTER, capture.capture)

	body := createTestBody(t, mgl64.Vec3{0, 2, 0})
	c := createTestCollider(t)
	var rec recorder
	rec.contact(body, 0, c, mgl64.Vec3{0, 1, 0})
	rec.contact(body, 0, c, mgl64.Vec3{1, 0, 0})
	rec.contact(body, 1, c, mgl64.Vec3{1, 0, 0})
	step(&events, nil, &rec)

	if capture.count() != 2 {
		t.Fatalf("Expected 2 CONTACT_ENTER, got %d", capture.count())
	}
	if first := capture.events[0].(ContactEnterEvent); first.Normal != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("Expected the first hit to be kept, normal = %v", first.Normal)
	}
}

// Recorders are merged in the given order, whatever order they were filled in
func TestEvents_MergeOrder(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(CONTACT_ENTER, capture.capture)
	events.Subscribe(ON_FAULT, capture.capture)

	a := createTestBody(t, mgl64.Vec3{0, 2, 0})
	b := createTestBody(t, mgl64.Vec3{0, 2, 0})
	c := createTestCollider(t)

	recorders := make([]recorder, 2)
	recorders[1].contact(b, 0, c, mgl64.Vec3{0, 1, 0})
	recorders[1].emit(FaultEvent{Body: b, Err: ErrNumericInstability})
	recorders[0].contact(a, 0, c, mgl64.Vec3{0, 1, 0})
	recorders[0].emit(FaultEvent{Body: a, Err: ErrNumericInstability})
	step(&events, nil, &recorders[0], &recorders[1])

	// Buffered events are sent first, then the contact events
	want := []struct {
		eventType EventType
		body      *actor.RigidBody
	}{
		{ON_FAULT, a},
		{ON_FAULT, b},
		{CONTACT_ENTER, a},
		{CONTACT_ENTER, b},
	}
	if capture.count() != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), capture.count())
	}
	for i, w := range want {
		e := capture.events[i]
		if e.Type() != w.eventType {
			t.Errorf("event %d: type %d, want %d", i, e.Type(), w.eventType)
			continue
		}
		var body *actor.RigidBody
		switch ev := e.(type) {
		case FaultEvent:
			body = ev.Body
			if !errors.Is(ev.Err, ErrNumericInstability) {
				t.Errorf("event %d: err = %v", i, ev.Err)
			}
		case ContactEnterEvent:
			body = ev.Body
		}
		if body != w.body {
			t.Errorf("event %d: wrong body", i)
		}
	}
}

// =============================================================================
// Rest/Wake Tests
// =============================================================================

func TestEvents_OnRest(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(ON_REST, capture.capture)

	body := createTestBody(t, mgl64.Vec3{0, 0.5, 0})
	bodies := []*actor.RigidBody{body}

	// Frame 1: the body is only tracked
	step(&events, bodies)
	if capture.count() != 0 {
		t.Errorf("Frame 1: expected no event, got %d", capture.count())
	}

	body.IsResting = true
	step(&events, bodies)
	if capture.countType(ON_REST) != 1 {
		t.Errorf("Frame 2: expected 1 ON_REST, got %d", capture.countType(ON_REST))
	}

	// Already resting
	step(&events, bodies)
	if capture.countType(ON_REST) != 1 {
		t.Errorf("Frame 3: expected no new ON_REST, got %d", capture.countType(ON_REST))
	}
}

func TestEvents_OnWake(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(ON_WAKE, capture.capture)

	body := createTestBody(t, mgl64.Vec3{0, 0.5, 0})
	body.IsResting = true
	bodies := []*actor.RigidBody{body}

	step(&events, bodies)
	body.Awake()
	step(&events, bodies)

	if capture.count() != 1 {
		t.Fatalf("Expected 1 ON_WAKE, got %d", capture.count())
	}
	if wake := capture.events[0].(WakeEvent); wake.Body != body {
		t.Error("ON_WAKE sent for the wrong body")
	}
}

// =============================================================================
// Forget and Flush Tests
// =============================================================================

func TestEvents_Forget(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(CONTACT_EXIT, capture.capture)
	events.Subscribe(CONTACT_ENTER, capture.capture)
	events.Subscribe(ON_REST, capture.capture)

	body := createTestBody(t, mgl64.Vec3{0, 2, 0})
	other := createTestBody(t, mgl64.Vec3{0, 2, 0})
	c := createTestCollider(t)
	var rec recorder
	rec.contact(body, 0, c, mgl64.Vec3{0, 1, 0})
	rec.contact(other, 0, c, mgl64.Vec3{0, 1, 0})
	step(&events, []*actor.RigidBody{body, other}, &rec)

	events.forget(body)
	if _, ok := events.restStates[body]; ok {
		t.Error("Expected the rest state to be dropped")
	}

	capture.reset()
	rec.reset()
	step(&events, nil, &rec)

	// only the other body exits
	if capture.count() != 1 {
		t.Fatalf("Expected 1 event, got %d", capture.count())
	}
	if exit := capture.events[0].(ContactExitEvent); exit.Body != other {
		t.Error("Expected the exit of the other body")
	}
}

func TestEvents_Flush_ClearsBuffer(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(ON_FAULT, capture.capture)

	body := createTestBody(t, mgl64.Vec3{0, 2, 0})
	var rec recorder
	rec.emit(FaultEvent{Body: body})
	step(&events, nil, &rec)

	if len(events.buffer) != 0 {
		t.Errorf("Expected empty buffer after flush, got %d", len(events.buffer))
	}

	events.flush()
	if capture.count() != 1 {
		t.Errorf("Expected the event to be sent once, got %d", capture.count())
	}
}

func TestEvents_NoListeners(t *testing.T) {
	events := NewEvents()
	body := createTestBody(t, mgl64.Vec3{0, 2, 0})

	var rec recorder
	rec.contact(body, 0, createTestCollider(t), mgl64.Vec3{0, 1, 0})
	rec.emit(RestEvent{Body: body})

	// Should not panic
	step(&events, []*actor.RigidBody{body}, &rec)
}

func TestEvents_MultipleFrames_EnterExitEnter(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(CONTACT_ENTER, capture.capture)
	events.Subscribe(CONTACT_EXIT, capture.capture)

	body := createTestBody(t, mgl64.Vec3{0, 2, 0})
	c := createTestCollider(t)
	var rec recorder

	for _, touching := range []bool{true, false, true} {
		rec.reset()
		if touching {
			rec.contact(body, 0, c, mgl64.Vec3{0, 1, 0})
		}
		step(&events, nil, &rec)
	}

	if capture.countType(CONTACT_ENTER) != 2 {
		t.Errorf("Expected 2 CONTACT_ENTER, got %d", capture.countType(CONTACT_ENTER))
	}
	if capture.countType(CONTACT_EXIT) != 1 {
		t.Errorf("Expected 1 CONTACT_EXIT, got %d", capture.countType(CONTACT_EXIT))
	}
}
