// Package prefs persists player preferences between runs.
package prefs

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	objectKey = "preferences"
	propKey   = "player"
)

var ErrInvalidSkin = errors.New("cat id out of range")

// Preferences are the values a player keeps across sessions.
type Preferences struct {
	// CatID selects the skin, 1-based.
	CatID       int     `yaml:"catId"`
	IsFirstTime bool    `yaml:"isFirstTime"`
	BestSteps   float64 `yaml:"bestSteps"`
}

func Defaults() Preferences {
	return Preferences{CatID: 1, IsFirstTime: true}
}

// Validate checks CatID against the number of available skins.
func (p Preferences) Validate(skins int) error {
	if p.CatID < 1 || p.CatID > skins {
		return fmt.Errorf("prefs: cat id %d not in 1..%d: %w", p.CatID, skins, ErrInvalidSkin)
	}
	return nil
}

// Backend is the object/property storage used by Store. *gdata.Manager
// satisfies it.
type Backend interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// Store loads and saves Preferences as YAML.
type Store struct {
	backend Backend
	skins   int
}

// Open opens the gdata store for app. When the platform has no usable data
// directory it falls back to memory so the game still runs.
func Open(app string, skins int) *Store {
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		log.Printf("prefs: gdata unavailable, preferences will not persist: %v", err)
		return NewStore(NewMemory(), skins)
	}
	return NewStore(m, skins)
}

func NewStore(backend Backend, skins int) *Store {
	if backend == nil {
		backend = NewMemory()
	}
	return &Store{backend: backend, skins: skins}
}

// LoadPreferences returns the stored preferences, or the defaults when none
// were saved yet. A stored cat id outside the skin range is clamped into it.
func (s *Store) LoadPreferences() (Preferences, error) {
	if !s.backend.ObjectPropExists(objectKey, propKey) {
		return Defaults(), nil
	}

	data, err := s.backend.LoadObjectProp(objectKey, propKey)
	if err != nil {
		return Defaults(), fmt.Errorf("prefs: load: %w", err)
	}

	p := Defaults()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Defaults(), fmt.Errorf("prefs: unmarshal: %w", err)
	}
	if err := p.Validate(s.skins); err != nil {
		p.CatID = clampCat(p.CatID, s.skins)
		log.Printf("prefs: %v, using cat %d", err, p.CatID)
	}
	return p, nil
}

func clampCat(id, skins int) int {
	return max(1, min(id, skins))
}

func (s *Store) SavePreferences(p Preferences) error {
	if err := p.Validate(s.skins); err != nil {
		return err
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("prefs: marshal: %w", err)
	}
	if err := s.backend.SaveObjectProp(objectKey, propKey, data); err != nil {
		return fmt.Errorf("prefs: save: %w", err)
	}
	return nil
}

// Memory is an in-process Backend.
type Memory struct {
	mu    sync.Mutex
	props map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{props: make(map[string][]byte)}
}

func (m *Memory) ObjectPropExists(objectKey, propKey string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.props[objectKey+"/"+propKey]
	return ok
}

func (m *Memory) LoadObjectProp(objectKey, propKey string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.props[objectKey+"/"+propKey]
	if !ok {
		return nil, fmt.Errorf("prefs: %s/%s not found", objectKey, propKey)
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) SaveObjectProp(objectKey, propKey string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props[objectKey+"/"+propKey] = append([]byte(nil), data...)
	return nil
}
