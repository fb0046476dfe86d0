// Package settings implements the process-wide Settings contract the
// pre-roll worker reads every pass. It is backed by spf13/viper, following
// the config-loading idiom used elsewhere in this project's lineage: env
// vars take precedence, then a $HOME/.prerollcached.yaml file, then
// built-in defaults.
package settings

import (
	"fmt"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/openshot-go/prerollcache/internal/contracts"
)

const (
	keyMinPrerollFrames = "VIDEO_CACHE_MIN_PREROLL_FRAMES"
	keyMaxPrerollFrames = "VIDEO_CACHE_MAX_PREROLL_FRAMES"
	keyPercentAhead     = "VIDEO_CACHE_PERCENT_AHEAD"
	keyMaxFrames        = "VIDEO_CACHE_MAX_FRAMES"
	keyEnableCaching    = "ENABLE_PLAYBACK_CACHING"
)

// Defaults used both as viper's fallback values and by the dependency-free
// Static implementation.
const (
	DefaultMinPrerollFrames = 4
	DefaultMaxPrerollFrames = 8
	DefaultPercentAhead     = 0.9
	DefaultMaxFrames        = 200
	DefaultEnableCaching    = true
)

// Viper implements contracts.Settings over a *viper.Viper instance.
type Viper struct {
	v *viper.Viper
}

// Load builds a Viper-backed Settings, reading from the environment and
// (if present) $HOME/.prerollcached.yaml, falling back to package defaults.
func Load() (*Viper, error) {
	v := viper.New()
	v.SetDefault(keyMinPrerollFrames, DefaultMinPrerollFrames)
	v.SetDefault(keyMaxPrerollFrames, DefaultMaxPrerollFrames)
	v.SetDefault(keyPercentAhead, DefaultPercentAhead)
	v.SetDefault(keyMaxFrames, DefaultMaxFrames)
	v.SetDefault(keyEnableCaching, DefaultEnableCaching)

	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigName(".prerollcached")
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("settings: read config: %w", err)
		}
	}

	return &Viper{v: v}, nil
}

func (s *Viper) MinPrerollFrames() int          { return s.v.GetInt(keyMinPrerollFrames) }
func (s *Viper) MaxPrerollFrames() int          { return s.v.GetInt(keyMaxPrerollFrames) }
func (s *Viper) PercentAhead() float64          { return s.v.GetFloat64(keyPercentAhead) }
func (s *Viper) MaxFrames() int                 { return s.v.GetInt(keyMaxFrames) }
func (s *Viper) PlaybackCachingEnabled() bool   { return s.v.GetBool(keyEnableCaching) }

var _ contracts.Settings = (*Viper)(nil)

// Static is a dependency-free, in-memory Settings implementation used by
// tests and anywhere a viper instance would be overkill.
type Static struct {
	MinPreroll     int
	MaxPreroll     int
	Percent        float64
	MaxFramesLimit int
	CachingEnabled bool
}

// Defaults returns a Static Settings populated with the package defaults.
func Defaults() *Static {
	return &Static{
		MinPreroll:     DefaultMinPrerollFrames,
		MaxPreroll:     DefaultMaxPrerollFrames,
		Percent:        DefaultPercentAhead,
		MaxFramesLimit: DefaultMaxFrames,
		CachingEnabled: DefaultEnableCaching,
	}
}

func (s *Static) MinPrerollFrames() int        { return s.MinPreroll }
func (s *Static) MaxPrerollFrames() int        { return s.MaxPreroll }
func (s *Static) PercentAhead() float64        { return s.Percent }
func (s *Static) MaxFrames() int               { return s.MaxFramesLimit }
func (s *Static) PlaybackCachingEnabled() bool { return s.CachingEnabled }

var _ contracts.Settings = (*Static)(nil)
