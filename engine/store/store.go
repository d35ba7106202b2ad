// Package store holds the process-wide reactive state shared by every
// animation controller in the scene. The store is the only channel through
// which independent controllers coordinate: no controller holds a reference
// to another's internals. Subscribers are notified synchronously on every
// mutation with both the next and previous snapshots; per-frame consumers
// should mirror the fields they care about into plain variables inside the
// subscription callback rather than reading the store every frame.
package store

import (
	"sync"
)

// CameraMode identifies which camera behavior owns the camera this frame.
// Exactly one mode is active at a time.
type CameraMode int

const (
	// ModeDefault eases the camera toward its authored home pose with
	// pointer parallax and scroll zoom.
	ModeDefault CameraMode = iota

	// ModeFreeLook hands the camera to the orbit controller.
	ModeFreeLook

	// ModePillarFocus eases the camera toward a fixed pillar focus pose.
	ModePillarFocus
)

// PillarSide names one of the three pillar slots in the scene.
type PillarSide int

const (
	PillarNone PillarSide = iota
	PillarLeft
	PillarCenter
	PillarRight
)

// State is the authoritative shared state snapshot. It is a plain value:
// mutators replace the whole snapshot, so a State handed to a subscriber
// never changes underneath it.
type State struct {
	Mode          CameraMode
	FocusedPillar PillarSide
	HoveredPillar PillarSide

	Night   bool
	Raining bool

	// ActivationProgress is the shared 0..1 charge scalar. Ring speed, dust
	// density, screen shake, and glow are all pure functions of this value.
	ActivationProgress float32

	// Transitioned latches permanently once the terminal flash has fired.
	Transitioned bool

	AudioMuted bool

	// PanelSlug names the open content panel ("" when closed).
	PanelSlug string
}

// Subscriber receives the new and previous snapshots after every mutation.
type Subscriber func(next, prev State)

// Store is the single shared state container.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]Subscriber
	nextID int
}

// New creates a Store with the given initial state.
func New(initial State) *Store {
	return &Store{
		state: initial,
		subs:  make(map[int]Subscriber),
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a callback fired synchronously on every mutation.
// The returned function removes the subscription; it is safe to call more
// than once.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// mutate applies fn to a copy of the snapshot and notifies subscribers if
// anything changed. Notification happens outside the lock so a subscriber
// may itself call a mutator; writes remain serialized by the mutex, and each
// notification carries consistent next/prev pairs.
func (s *Store) mutate(fn func(*State)) {
	s.mu.Lock()
	prev := s.state
	next := prev
	fn(&next)
	if next == prev {
		s.mu.Unlock()
		return
	}
	s.state = next
	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(next, prev)
	}
}

// SetMode sets the active camera mode.
func (s *Store) SetMode(mode CameraMode) {
	s.mutate(func(st *State) { st.Mode = mode })
}

// SetFocusedPillar records which pillar the camera is focused on and flips
// the mode accordingly (PillarNone returns to Default).
func (s *Store) SetFocusedPillar(side PillarSide) {
	s.mutate(func(st *State) {
		st.FocusedPillar = side
		if side == PillarNone {
			if st.Mode == ModePillarFocus {
				st.Mode = ModeDefault
			}
		} else {
			st.Mode = ModePillarFocus
		}
	})
}

// SetHoveredPillar records which pillar the pointer is currently over.
func (s *Store) SetHoveredPillar(side PillarSide) {
	s.mutate(func(st *State) { st.HoveredPillar = side })
}

// SetNight toggles the day/night target.
func (s *Store) SetNight(night bool) {
	s.mutate(func(st *State) { st.Night = night })
}

// SetRaining toggles the rain target.
func (s *Store) SetRaining(raining bool) {
	s.mutate(func(st *State) { st.Raining = raining })
}

// SetActivationProgress publishes the shared activation scalar, clamped to
// [0, 1].
func (s *Store) SetActivationProgress(progress float32) {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	s.mutate(func(st *State) { st.ActivationProgress = progress })
}

// SetTransitioned latches the terminal transitioned flag. It can only be
// set, never cleared; the post-activation scene never reverts.
func (s *Store) SetTransitioned() {
	s.mutate(func(st *State) { st.Transitioned = true })
}

// SetAudioMuted sets the persisted audio mute flag.
func (s *Store) SetAudioMuted(muted bool) {
	s.mutate(func(st *State) { st.AudioMuted = muted })
}

// SetPanelSlug opens the content panel for the named record, or closes it
// when slug is empty.
func (s *Store) SetPanelSlug(slug string) {
	s.mutate(func(st *State) { st.PanelSlug = slug })
}
