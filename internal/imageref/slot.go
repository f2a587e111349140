package imageref

import (
	"fmt"
	"sync"
)

// SlotName identifies one of the two chart markers.
type SlotName string

const (
	// SlotClient is the picture on the target marker.
	SlotClient SlotName = "client"
	// SlotOurs is the picture on the progress marker.
	SlotOurs SlotName = "ours"
)

// ParseSlot accepts "client" or "ours".
func ParseSlot(s string) (SlotName, error) {
	switch SlotName(s) {
	case SlotClient, SlotOurs:
		return SlotName(s), nil
	}
	return "", fmt.Errorf("unknown photo slot %q (want client or ours)", s)
}

// Slot holds at most one handle. Replacing it releases the previous one.
type Slot struct {
	mu      sync.Mutex
	name    SlotName
	reg     *Registry
	current Handle
}

func NewSlot(name SlotName, reg *Registry) *Slot {
	return &Slot{name: name, reg: reg}
}

func (s *Slot) Name() SlotName { return s.name }

// Replace releases the handle in the slot, if any, then installs h. h is
// installed even when the release fails.
func (s *Slot) Replace(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current
	var err error
	if prev != "" && prev != h {
		if rerr := s.reg.Release(prev); rerr != nil {
			err = fmt.Errorf("releasing previous %s image: %w", s.name, rerr)
		}
	}
	s.current = h
	return err
}

// Clear releases the current handle.
func (s *Slot) Clear() error {
	return s.Replace("")
}

// Image returns the current picture, or nil when the slot is empty.
func (s *Slot) Image() *Image {
	s.mu.Lock()
	h := s.current
	s.mu.Unlock()
	if h == "" {
		return nil
	}
	img, err := s.reg.Get(h)
	if err != nil {
		return nil
	}
	return img
}

// Slots pairs the two marker slots over one registry.
type Slots struct {
	Registry *Registry
	Client   *Slot
	Ours     *Slot
}

func NewSlots() *Slots {
	reg := NewRegistry()
	return &Slots{
		Registry: reg,
		Client:   NewSlot(SlotClient, reg),
		Ours:     NewSlot(SlotOurs, reg),
	}
}

// Get returns the slot by name.
func (s *Slots) Get(name SlotName) *Slot {
	if name == SlotClient {
		return s.Client
	}
	return s.Ours
}
