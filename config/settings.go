package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings are the process settings read from the environment.
type Settings struct {
	// StoryPath is an optional story file merged over the stock story.
	StoryPath string `env:"OXY_STORY_CONFIG"`

	// AssetRoot is the directory model paths are resolved against.
	AssetRoot string `env:"OXY_STORY_ASSETS" envDefault:"assets"`

	// SpritePath is an optional SVG sprite sheet replacing the embedded one.
	SpritePath string `env:"OXY_STORY_SPRITES"`

	Width  int `env:"OXY_STORY_WIDTH"  envDefault:"1280"`
	Height int `env:"OXY_STORY_HEIGHT" envDefault:"720"`

	// Workers is the size of the decode worker pool. Zero means one per CPU.
	Workers int `env:"OXY_STORY_WORKERS" envDefault:"0"`

	// MaxFrameDelta bounds the frame delta after the loop was suspended. Zero disables the bound.
	MaxFrameDelta time.Duration `env:"OXY_STORY_MAX_FRAME_DELTA" envDefault:"250ms"`

	// Backend selects the render surface: "wgpu" or "null".
	Backend string `env:"OXY_STORY_BACKEND" envDefault:"wgpu"`

	VSync   bool `env:"OXY_STORY_VSYNC"   envDefault:"true"`
	Profile bool `env:"OXY_STORY_PROFILE" envDefault:"false"`
}

// LoadSettings parses Settings from the environment.
//
// Returns:
//   - Settings: the settings
//   - error: an error if a variable cannot be parsed
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// LoadStory returns the story file named by the settings, or the stock story.
func (s Settings) LoadStory() (*Story, error) {
	if s.StoryPath == "" {
		return Default()
	}
	return Load(s.StoryPath)
}
