package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/animtodo/internal/storage"
)

type Name string

const (
	Light  Name = "light"
	Dark   Name = "dark"
	System Name = "system"
)

const DefaultSlotKey = "theme"

func (n Name) IsValid() bool {
	switch n {
	case Light, Dark, System:
		return true
	default:
		return false
	}
}

func Parse(raw string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(raw)))
	if !n.IsValid() {
		return "", fmt.Errorf("theme: unknown theme %q", raw)
	}
	return n, nil
}

// Toggle switches light to dark and anything else, system included, to light.
func Toggle(current Name) Name {
	if current == Light {
		return Dark
	}
	return Light
}

// Resolve maps system onto the terminal's background.
func Resolve(n Name, systemDark bool) Name {
	switch n {
	case Light, Dark:
		return n
	default:
		if systemDark {
			return Dark
		}
		return Light
	}
}

// Preference remembers the chosen theme in a storage slot.
type Preference struct {
	slots    storage.Store
	key      string
	fallback Name
	current  Name
}

func NewPreference(slots storage.Store, key string, fallback Name) *Preference {
	if key == "" {
		key = DefaultSlotKey
	}
	if !fallback.IsValid() {
		fallback = System
	}
	return &Preference{slots: slots, key: key, fallback: fallback, current: fallback}
}

// Load reads the stored theme, keeping the fallback when nothing usable is stored.
func (p *Preference) Load(ctx context.Context) (Name, error) {
	p.current = p.fallback
	if p.slots == nil {
		return p.current, nil
	}
	raw, err := p.slots.Get(ctx, p.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return p.current, nil
		}
		return p.current, err
	}
	var stored string
	if err := json.Unmarshal(raw, &stored); err != nil {
		return p.current, fmt.Errorf("theme: decode preference: %w", err)
	}
	name, err := Parse(stored)
	if err != nil {
		return p.current, err
	}
	p.current = name
	return p.current, nil
}

func (p *Preference) Current() Name { return p.current }

func (p *Preference) Set(ctx context.Context, n Name) error {
	if !n.IsValid() {
		return fmt.Errorf("theme: unknown theme %q", n)
	}
	p.current = n
	if p.slots == nil {
		return nil
	}
	payload, err := json.Marshal(string(n))
	if err != nil {
		return err
	}
	return p.slots.Put(ctx, p.key, payload)
}

func (p *Preference) Toggle(ctx context.Context) (Name, error) {
	next := Toggle(p.current)
	return next, p.Set(ctx, next)
}
