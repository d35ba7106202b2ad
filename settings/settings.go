// Package settings persists the scene's one durable preference, the audio
// mute flag, through gdata's cross-platform storage. A nil storage manager
// degrades to in-memory defaults so the scene runs identically without a
// writable data directory.
package settings

import (
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// Settings is the persisted preference set, YAML-encoded in storage.
type Settings struct {
	Muted bool `yaml:"muted"`
}

// DefaultSettings returns the defaults used when nothing is persisted yet.
//
// Returns:
//   - Settings: the default preference set
func DefaultSettings() Settings {
	return Settings{Muted: false}
}

// managerImpl is the implementation of the Manager interface.
type managerImpl struct {
	mu *sync.Mutex

	storage  *gdata.Manager
	settings Settings
}

// Manager loads, holds, and saves the persisted settings.
type Manager interface {
	// Muted returns the persisted audio mute flag.
	//
	// Returns:
	//   - bool: true when audio is muted
	Muted() bool

	// SetMuted updates and persists the audio mute flag. Persistence
	// failures are logged, not returned; the in-memory value always
	// applies.
	//
	// Parameters:
	//   - muted: the new mute state
	SetMuted(muted bool)
}

var _ Manager = &managerImpl{}

// NewManager creates a Manager over the given storage. A nil storage keeps
// settings in memory only. Unreadable or malformed persisted data falls back
// to the defaults with a warning.
//
// Parameters:
//   - storage: the gdata storage manager, may be nil
//
// Returns:
//   - Manager: the newly created manager
func NewManager(storage *gdata.Manager) Manager {
	m := &managerImpl{
		mu:       &sync.Mutex{},
		storage:  storage,
		settings: DefaultSettings(),
	}
	if err := m.load(); err != nil {
		log.Printf("settings: failed to load, using defaults: %v", err)
	}
	return m
}

func (m *managerImpl) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings.Muted
}

func (m *managerImpl) SetMuted(muted bool) {
	m.mu.Lock()
	m.settings.Muted = muted
	m.mu.Unlock()

	if err := m.save(); err != nil {
		log.Printf("settings: failed to save: %v", err)
	}
}

func (m *managerImpl) load() error {
	if m.storage == nil {
		return nil
	}
	if !m.storage.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.storage.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	m.mu.Lock()
	m.settings = loaded
	m.mu.Unlock()
	return nil
}

func (m *managerImpl) save() error {
	if m.storage == nil {
		return nil
	}

	m.mu.Lock()
	data, err := yaml.Marshal(m.settings)
	m.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := m.storage.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
