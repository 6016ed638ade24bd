package tts

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Preferences persists user-facing speech settings across sessions. The
// controller reads it once at construction and writes on every change.
type Preferences interface {
	Mode() string
	Rate() float64
	SetMode(mode string) error
	SetRate(rate float64) error
}

// FilePreferences stores preferences in a YAML file via viper.
type FilePreferences struct {
	v    *viper.Viper
	path string
}

// NewFilePreferences loads preferences from path, which need not exist
// yet. Missing or unreadable files yield defaults.
func NewFilePreferences(path string) (*FilePreferences, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("tts.mode", string(ModeAuto))
	v.SetDefault("tts.rate", DefaultRate)
	_ = v.ReadInConfig() // a fresh install has no file yet

	return &FilePreferences{v: v, path: path}, nil
}

func (p *FilePreferences) Mode() string {
	return p.v.GetString("tts.mode")
}

func (p *FilePreferences) Rate() float64 {
	return p.v.GetFloat64("tts.rate")
}

func (p *FilePreferences) SetMode(mode string) error {
	p.v.Set("tts.mode", mode)
	return p.v.WriteConfigAs(p.path)
}

func (p *FilePreferences) SetRate(rate float64) error {
	p.v.Set("tts.rate", rate)
	return p.v.WriteConfigAs(p.path)
}
