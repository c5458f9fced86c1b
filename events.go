package tumble

import (
	"github.com/akmonengine/tumble/actor"
	"github.com/akmonengine/tumble/collider"
	"github.com/akmonengine/tumble/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	CONTACT_ENTER EventType = iota
	CONTACT_STAY
	CONTACT_EXIT
	BOUNDARY_CONTACT
	ON_REST
	ON_WAKE
	ON_FAULT
)

// contactKey identifies a body touching the i-th collider of the set
type contactKey struct {
	body     *actor.RigidBody
	collider int
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Collider contact events. Index is the position of the collider in the set.
type ContactEnterEvent struct {
	Body     *actor.RigidBody
	Collider collider.Collider
	Index    int
	Normal   mgl64.Vec3
}

func (e ContactEnterEvent) Type() EventType { return CONTACT_ENTER }

type ContactStayEvent struct {
	Body     *actor.RigidBody
	Collider collider.Collider
	Index    int
	Normal   mgl64.Vec3
}

func (e ContactStayEvent) Type() EventType { return CONTACT_STAY }

type ContactExitEvent struct {
	Body     *actor.RigidBody
	Collider collider.Collider
	Index    int
}

func (e ContactExitEvent) Type() EventType { return CONTACT_EXIT }

// BoundaryEvent is sent for every wall correction
type BoundaryEvent struct {
	Body    *actor.RigidBody
	Contact constraint.BoundaryContact
}

func (e BoundaryEvent) Type() EventType { return BOUNDARY_CONTACT }

// Rest/Wake events
type RestEvent struct {
	Body *actor.RigidBody
}

func (e RestEvent) Type() EventType { return ON_REST }

type WakeEvent struct {
	Body *actor.RigidBody
}

func (e WakeEvent) Type() EventType { return ON_WAKE }

// FaultEvent is sent once, when a body is excluded from the simulation
type FaultEvent struct {
	Body *actor.RigidBody
	Err  error
}

func (e FaultEvent) Type() EventType { return ON_FAULT }

// EventListener - callback for events
type EventListener func(event Event)

type contactHit struct {
	key      contactKey
	collider collider.Collider
	normal   mgl64.Vec3
}

// recorder collects what happened during one step of a list of bodies.
// Each batch owns one, so bodies can be stepped concurrently.
type recorder struct {
	hits   []contactHit
	buffer []Event

	// scratch for the collider lookups
	candidates []int
}

func (r *recorder) contact(body *actor.RigidBody, index int, c collider.Collider, normal mgl64.Vec3) {
	r.hits = append(r.hits, contactHit{key: contactKey{body: body, collider: index}, collider: c, normal: normal})
}

func (r *recorder) emit(event Event) {
	r.buffer = append(r.buffer, event)
}

func (r *recorder) reset() {
	r.hits = r.hits[:0]
	r.buffer = r.buffer[:0]
}

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Contact tracking for Enter/Stay/Exit detection, in hit order
	previousContacts []contactHit
	currentContacts  []contactHit
	previousActive   map[contactKey]bool
	currentActive    map[contactKey]bool

	restStates map[*actor.RigidBody]bool
}

func NewEvents() Events {
	return Events{
		listeners:      make(map[EventType][]EventListener),
		buffer:         make([]Event, 0, 256),
		previousActive: make(map[contactKey]bool),
		currentActive:  make(map[contactKey]bool),
		restStates:     make(map[*actor.RigidBody]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// merge appends what a recorder saw during the step. A body hitting the
// same collider twice in a step is a single contact.
func (e *Events) merge(r *recorder) {
	for _, hit := range r.hits {
		if e.currentActive[hit.key] {
			continue
		}
		e.currentActive[hit.key] = true
		e.currentContacts = append(e.currentContacts, hit)
	}
	e.buffer = append(e.buffer, r.buffer...)
}

// processContactEvents compares current and previous contacts to detect Enter/Stay/Exit
// Should be called once per step
func (e *Events) processContactEvents() {
	for _, hit := range e.currentContacts {
		if e.previousActive[hit.key] {
			// Skip resting bodies, to avoid spamming events
			if hit.key.body.IsResting {
				continue
			}
			e.buffer = append(e.buffer, ContactStayEvent{
				Body:     hit.key.body,
				Collider: hit.collider,
				Index:    hit.key.collider,
				Normal:   hit.normal,
			})
		} else {
			e.buffer = append(e.buffer, ContactEnterEvent{
				Body:     hit.key.body,
				Collider: hit.collider,
				Index:    hit.key.collider,
				Normal:   hit.normal,
			})
		}
	}

	for _, hit := range e.previousContacts {
		if !e.currentActive[hit.key] {
			e.buffer = append(e.buffer, ContactExitEvent{
				Body:     hit.key.body,
				Collider: hit.collider,
				Index:    hit.key.collider,
			})
		}
	}

	// Swap for next step and clear current
	e.previousContacts, e.currentContacts = e.currentContacts, e.previousContacts[:0]
	e.previousActive, e.currentActive = e.currentActive, e.previousActive
	clear(e.currentActive)
}

func (e *Events) processRestEvents(bodies []*actor.RigidBody) {
	for _, body := range bodies {
		trackedState, exists := e.restStates[body]
		if !exists {
			e.restStates[body] = body.IsResting
			continue
		}

		if !trackedState && body.IsResting {
			e.buffer = append(e.buffer, RestEvent{Body: body})
			e.restStates[body] = true
		} else if trackedState && !body.IsResting {
			e.buffer = append(e.buffer, WakeEvent{Body: body})
			e.restStates[body] = false
		}
	}
}

// forget drops every tracked state of body, without sending Exit events
func (e *Events) forget(body *actor.RigidBody) {
	delete(e.restStates, body)

	n := 0
	for _, hit := range e.previousContacts {
		if hit.key.body == body {
			delete(e.previousActive, hit.key)
			continue
		}
		e.previousContacts[n] = hit
		n++
	}
	e.previousContacts = e.previousContacts[:n]
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processContactEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
