package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/config"
)

func headlessSettings(t *testing.T) config.Settings {
	t.Helper()
	return config.Settings{
		AssetRoot:     t.TempDir(),
		Width:         320,
		Height:        240,
		Workers:       2,
		MaxFrameDelta: 250 * time.Millisecond,
		Backend:       "null",
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	s := headlessSettings(t)
	s.Backend = "vulkan"
	_, err := New(s)
	assert.ErrorContains(t, err, "vulkan")
}

func TestNew_MissingStoryFile(t *testing.T) {
	s := headlessSettings(t)
	s.StoryPath = "does-not-exist.yaml"
	_, err := New(s)
	assert.Error(t, err)
}

func TestApp_RunHeadless(t *testing.T) {
	a, err := New(headlessSettings(t))
	require.NoError(t, err)
	assert.Nil(t, a.window)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		return a.Renderer().LastFrame().Frame >= 3
	}, 5*time.Second, 10*time.Millisecond)

	a.SelectScene(2)
	require.Eventually(t, func() bool {
		return a.Story().SceneIndex() == 2
	}, 5*time.Second, 10*time.Millisecond)

	stats := a.Renderer().LastFrame()
	assert.Equal(t, 320, stats.Width)
	assert.Greater(t, stats.Draws, 0)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApp_KeyDownSelectsScene(t *testing.T) {
	a, err := New(headlessSettings(t))
	require.NoError(t, err)

	a.keyDown(common.KeySpace)
	a.keyDown(common.Key3)
	assert.Equal(t, 1, a.dispatcher.Len())
}
