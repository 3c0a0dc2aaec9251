// Package prefs stores user display preferences in the KV store.
package prefs

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/runnerr0/unitconv/internal/storage"
)

// ThemeKey is the KV slot holding the theme preference.
const ThemeKey = "theme"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

var validate = validator.New()

// ParseTheme accepts exactly "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	if err := validate.Var(s, "required,oneof=light dark"); err != nil {
		return "", fmt.Errorf("invalid theme %q: want light or dark", s)
	}
	return Theme(s), nil
}

// Store reads and writes the theme preference.
type Store struct {
	kv       storage.KV
	fallback Theme
}

// New returns a Store that reports fallback while no theme is saved.
func New(kv storage.KV, fallback Theme) *Store {
	if fallback != Dark {
		fallback = Light
	}
	return &Store{kv: kv, fallback: fallback}
}

// Theme returns the saved theme. A saved "dark" is dark and any other saved
// value is light.
func (s *Store) Theme(ctx context.Context) (Theme, error) {
	raw, ok, err := s.kv.Get(ctx, ThemeKey)
	if err != nil {
		return "", fmt.Errorf("read theme: %w", err)
	}
	if !ok {
		return s.fallback, nil
	}
	if Theme(raw) == Dark {
		return Dark, nil
	}
	return Light, nil
}

func (s *Store) SetTheme(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, ThemeKey, string(t)); err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	return nil
}

// Toggle flips the theme and returns the new value.
func (s *Store) Toggle(ctx context.Context) (Theme, error) {
	current, err := s.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := Dark
	if current == Dark {
		next = Light
	}
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// Reset drops the saved theme so the fallback applies again.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, ThemeKey); err != nil {
		return fmt.Errorf("reset theme: %w", err)
	}
	return nil
}
