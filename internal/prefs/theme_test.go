package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/unitconv/internal/storage"
)

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, Dark, th)

	th, err = ParseTheme("light")
	require.NoError(t, err)
	assert.Equal(t, Light, th)

	for _, bad := range []string{"", "Dark", "blue"} {
		_, err := ParseTheme(bad)
		assert.Error(t, err, bad)
	}
}

func TestThemeFallbackWhenUnset(t *testing.T) {
	ctx := context.Background()

	th, err := New(storage.NewMemoryStore(), Dark).Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, th)

	th, err = New(storage.NewMemoryStore(), "").Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, th)
}

func TestThemeStoredValue(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := New(kv, Dark)

	require.NoError(t, s.SetTheme(ctx, Light))
	th, err := s.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, th)

	// Anything other than "dark" reads as light.
	require.NoError(t, kv.Set(ctx, ThemeKey, "sepia"))
	th, err = s.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, th)
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	s := New(storage.NewMemoryStore(), Light)
	assert.Error(t, s.SetTheme(context.Background(), Theme("neon")))
}

func TestToggleAndReset(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := New(kv, Light)

	th, err := s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, th)

	raw, ok, err := kv.Get(ctx, ThemeKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dark", raw)

	th, err = s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, th)

	require.NoError(t, s.SetTheme(ctx, Dark))
	require.NoError(t, s.Reset(ctx))
	_, ok, err = kv.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.False(t, ok)

	th, err = s.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, th)
}
