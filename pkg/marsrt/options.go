package marsrt

import (
	"io"

	"go.uber.org/zap"

	"drewnomars.net/marsrt/internal/config"
	"drewnomars.net/marsrt/internal/transcript"
)

// Option configures a Runtime.
type Option func(*Runtime)

// Config holds file and environment settings for a Runtime.
type Config = config.Config

// TranscriptStore records primitive calls.
type TranscriptStore = transcript.Store

// Event is a single recorded primitive call.
type Event = transcript.Event

// SessionInfo summarises one recorded session.
type SessionInfo = transcript.SessionInfo

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig reads a YAML config file and applies environment overrides.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// WithInput sets the stream read by GetBool and GetInt.
func WithInput(r io.Reader) Option {
	return func(rt *Runtime) {
		rt.in = r
	}
}

// WithOutput sets the stream written by the print primitives.
func WithOutput(w io.Writer) Option {
	return func(rt *Runtime) {
		rt.out = w
	}
}

// WithSeed fixes the seed of the magic bit source. Zero means the clock.
func WithSeed(seed int64) Option {
	return func(rt *Runtime) {
		rt.seed = seed
		rt.seedSet = true
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(rt *Runtime) {
		rt.logger = l
	}
}

// WithMemoryTranscript records primitive calls in memory.
func WithMemoryTranscript() Option {
	return func(rt *Runtime) {
		rt.store = nil
		rt.openStore = func() (transcript.Store, error) {
			return transcript.NewMemory(), nil
		}
	}
}

// WithSQLiteTranscript records primitive calls in a SQLite database at path.
func WithSQLiteTranscript(path string) Option {
	return func(rt *Runtime) {
		rt.store = nil
		rt.openStore = func() (transcript.Store, error) {
			return transcript.NewSQLite(path)
		}
	}
}

// WithTranscriptStore records primitive calls in s. The caller keeps
// ownership: Close does not close s.
func WithTranscriptStore(s TranscriptStore) Option {
	return func(rt *Runtime) {
		rt.openStore = nil
		rt.store = s
	}
}

// WithSession sets the transcript session id. By default a random UUID is
// used.
func WithSession(id string) Option {
	return func(rt *Runtime) {
		rt.session = id
	}
}

// WithConfig applies a loaded configuration. Explicit options take
// precedence over it regardless of order.
func WithConfig(cfg *Config) Option {
	return func(rt *Runtime) {
		rt.cfg = cfg
	}
}
