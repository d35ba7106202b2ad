package gate

import (
	"math/rand"
	"sync"

	"github.com/hollis-dev/stargate/content"
	"github.com/hollis-dev/stargate/engine/store"
)

// scrambleCharset is the glyph pool unrevealed characters cycle through.
const scrambleCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789#&@%"

// scramblerImpl is the implementation of the Scrambler interface.
type scramblerImpl struct {
	mu *sync.Mutex

	rng            *rand.Rand
	revealInterval float32

	target  []rune
	scratch []rune
	elapsed float32
	active  bool
}

// Scrambler reveals a text string one character at a time: characters before
// the lock-in front show their final glyph, characters after it cycle through
// random glyphs. Each character locks in at a fixed interval, so reveal
// duration scales with text length. Retriggering cancels the running reveal.
type Scrambler interface {
	// Start begins revealing text, cancelling any reveal in progress.
	//
	// Parameters:
	//   - text: the text to reveal
	Start(text string)

	// Cancel stops the reveal and clears the text.
	Cancel()

	// Update advances the lock-in front.
	//
	// Parameters:
	//   - dt: seconds elapsed since the previous frame
	//
	// Returns:
	//   - bool: true when the full text is revealed or no reveal is active
	Update(dt float32) (settled bool)

	// Text returns the current partially-scrambled text.
	//
	// Returns:
	//   - string: the display text
	Text() string
}

var _ Scrambler = &scramblerImpl{}

// NewScrambler creates a Scrambler with the given glyph randomization seed.
//
// Parameters:
//   - seed: the randomization seed for the unrevealed glyphs
//   - revealInterval: seconds between character lock-ins
//
// Returns:
//   - Scrambler: the newly created scrambler
func NewScrambler(seed int64, revealInterval float32) Scrambler {
	if revealInterval <= 0 {
		revealInterval = 0.04
	}
	return &scramblerImpl{
		mu:             &sync.Mutex{},
		rng:            rand.New(rand.NewSource(seed)),
		revealInterval: revealInterval,
	}
}

func (s *scramblerImpl) Start(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = []rune(text)
	s.scratch = make([]rune, len(s.target))
	s.elapsed = 0
	s.active = len(s.target) > 0
}

func (s *scramblerImpl) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = nil
	s.scratch = nil
	s.elapsed = 0
	s.active = false
}

func (s *scramblerImpl) Update(dt float32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return true
	}
	s.elapsed += dt
	if s.lockedCount() >= len(s.target) {
		s.active = false
		return true
	}
	return false
}

func (s *scramblerImpl) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.target) == 0 {
		return ""
	}
	locked := s.lockedCount()
	glyphs := []rune(scrambleCharset)
	for i, r := range s.target {
		if i < locked || r == ' ' {
			s.scratch[i] = r
		} else {
			s.scratch[i] = glyphs[s.rng.Intn(len(glyphs))]
		}
	}
	return string(s.scratch)
}

// lockedCount returns how many leading characters have locked in.
// Caller must hold the mutex.
func (s *scramblerImpl) lockedCount() int {
	if !s.active {
		return len(s.target)
	}
	return int(s.elapsed / s.revealInterval)
}

// overlayControllerImpl is the implementation of the OverlayController
// interface.
type overlayControllerImpl struct {
	mu *sync.Mutex

	library content.Library
	title   Scrambler

	record content.Record
	open   bool

	unsubscribe func()
}

// OverlayController drives the content panel presentation: it watches the
// store's panel slug, resolves the matching published record, and runs the
// scramble-text reveal on its title. It never writes to the store; opening
// and closing the panel is the pillar controller's job.
type OverlayController interface {
	Controller

	// Title returns the current, possibly partially-scrambled panel title.
	//
	// Returns:
	//   - string: the display title, empty while the panel is closed
	Title() string

	// Panel returns the open panel's record.
	//
	// Returns:
	//   - content.Record: the record backing the panel
	//   - bool: false while the panel is closed
	Panel() (content.Record, bool)

	// Close removes the controller's store subscription.
	Close()
}

var _ OverlayController = &overlayControllerImpl{}

// NewOverlayController creates the overlay layer over the given content
// library. A nil library leaves every panel lookup empty: the panel simply
// never opens.
//
// Parameters:
//   - st: the shared state store
//   - library: the published content source, may be nil
//   - seed: the randomization seed for the scramble reveal
//
// Returns:
//   - OverlayController: the newly created controller
func NewOverlayController(st *store.Store, library content.Library, seed int64) OverlayController {
	c := &overlayControllerImpl{
		mu:      &sync.Mutex{},
		library: library,
		title:   NewScrambler(seed, 0.04),
	}

	if st != nil {
		c.applySlug(st.State().PanelSlug)
		c.unsubscribe = st.Subscribe(func(next, prev store.State) {
			if next.PanelSlug == prev.PanelSlug {
				return
			}
			c.applySlug(next.PanelSlug)
		})
	}

	return c
}

// applySlug resolves a panel slug change: opening starts a fresh title
// reveal, closing cancels the one in progress so no stale timer fires later.
func (c *overlayControllerImpl) applySlug(slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if slug == "" || c.library == nil {
		c.open = false
		c.record = content.Record{}
		c.title.Cancel()
		return
	}

	record, ok := c.library.BySlug(slug)
	if !ok {
		c.open = false
		c.record = content.Record{}
		c.title.Cancel()
		return
	}

	c.open = true
	c.record = record
	c.title.Start(record.Title)
}

func (c *overlayControllerImpl) Update(dt float32) bool {
	return c.title.Update(dt)
}

func (c *overlayControllerImpl) Title() string {
	c.mu.Lock()
	open := c.open
	c.mu.Unlock()
	if !open {
		return ""
	}
	return c.title.Text()
}

func (c *overlayControllerImpl) Panel() (content.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record, c.open
}

func (c *overlayControllerImpl) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}
