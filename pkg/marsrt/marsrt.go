// Package marsrt provides the runtime library for compiled Drewno Mars
// programs: console I/O for booleans, integers and strings plus the magic
// random bit.
package marsrt

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"drewnomars.net/marsrt/internal/config"
	"drewnomars.net/marsrt/internal/logging"
	"drewnomars.net/marsrt/internal/rng"
	"drewnomars.net/marsrt/internal/shim"
	"drewnomars.net/marsrt/internal/transcript"
)

// Runtime executes the primitives of one program run.
type Runtime struct {
	shim      *shim.Shim
	bits      *rng.Source
	logger    *zap.Logger
	store     transcript.Store
	ownsStore bool
	session   string
	seq       int64

	in        io.Reader
	out       io.Writer
	seed      int64
	seedSet   bool
	openStore func() (transcript.Store, error)
	cfg       *config.Config
}

// New creates a runtime. Without options it reads stdin, writes stdout,
// seeds the bit source from the clock and records nothing.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{
		in:  os.Stdin,
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.cfg != nil {
		if err := r.applyConfig(r.cfg); err != nil {
			return nil, err
		}
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	if r.openStore != nil {
		s, err := r.openStore()
		if err != nil {
			return nil, fmt.Errorf("open transcript: %w", err)
		}
		r.store = s
		r.ownsStore = true
	}
	if r.session == "" {
		r.session = uuid.NewString()
	}

	r.bits = rng.New(r.seed)
	r.shim = shim.New(r.in, r.out)

	r.logger.Debug("runtime started",
		zap.String("session", r.session),
		zap.Uint64("seed", r.bits.Seed()),
		zap.Bool("transcript", r.store != nil))
	return r, nil
}

func (r *Runtime) applyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !r.seedSet {
		r.seed = cfg.Seed
	}
	if r.openStore == nil && r.store == nil {
		switch cfg.Transcript.Driver {
		case config.DriverMemory:
			WithMemoryTranscript()(r)
		case config.DriverSQLite:
			WithSQLiteTranscript(cfg.Transcript.Path)(r)
		}
	}
	if r.logger == nil {
		logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
		if err != nil {
			return err
		}
		r.logger = logger
	}
	return nil
}

// Session returns the transcript session id.
func (r *Runtime) Session() string {
	return r.session
}

// Transcript returns the store calls are recorded in, or nil.
func (r *Runtime) Transcript() TranscriptStore {
	return r.store
}

// Err returns the first I/O error seen by the primitives. Compiled programs
// never observe it; it is for hosts embedding the runtime.
func (r *Runtime) Err() error {
	return r.shim.Err()
}

// Close releases the transcript store if the runtime opened it.
func (r *Runtime) Close() error {
	if err := r.shim.Err(); err != nil {
		r.logger.Warn("i/o error during run", zap.String("session", r.session), zap.Error(err))
	}
	if r.store != nil && r.ownsStore {
		return r.store.Close()
	}
	return nil
}

// PrintBool writes "true" for any nonzero value and "false" for zero.
func (r *Runtime) PrintBool(v int64) {
	r.record(transcript.OpPrintBool, r.shim.PrintBool(v))
}

// PrintInt writes v in decimal.
func (r *Runtime) PrintInt(v int64) {
	r.record(transcript.OpPrintInt, r.shim.PrintInt(v))
}

// PrintString writes text verbatim.
func (r *Runtime) PrintString(text string) {
	r.record(transcript.OpPrintString, r.shim.PrintString(text))
}

// GetBool reads one character: 0 for '0', 1 for anything else. The
// character after it is discarded.
func (r *Runtime) GetBool() int64 {
	v := r.shim.GetBool()
	r.record(transcript.OpGetBool, strconv.FormatInt(v, 10))
	return v
}

// GetInt reads one line of at most 31 bytes and parses it as a decimal
// integer. Non-numeric input yields 0.
func (r *Runtime) GetInt() int64 {
	v := r.shim.GetInt()
	r.record(transcript.OpGetInt, strconv.FormatInt(v, 10))
	return v
}

// Magic returns a random 0 or 1.
func (r *Runtime) Magic() int64 {
	v := r.bits.Bit()
	r.record(transcript.OpMagic, strconv.FormatInt(v, 10))
	return v
}

func (r *Runtime) record(op transcript.Op, value string) {
	r.seq++
	r.logger.Debug("primitive",
		zap.String("op", string(op)),
		zap.Int64("seq", r.seq),
		zap.String("value", value))

	if r.store == nil {
		return
	}
	err := r.store.Append(context.Background(), transcript.Event{
		Session: r.session,
		Seq:     r.seq,
		Op:      op,
		Value:   value,
		Time:    time.Now(),
	})
	if err != nil {
		r.logger.Warn("failed to record primitive",
			zap.String("op", string(op)),
			zap.Int64("seq", r.seq),
			zap.Error(err))
	}
}
