// Package transcript records the primitive calls made by a runtime session.
package transcript

import (
	"context"
	"time"
)

// Op names a runtime primitive.
type Op string

// Primitive names, as the code generator emits them.
const (
	OpPrintBool   Op = "printBool"
	OpPrintInt    Op = "printInt"
	OpPrintString Op = "printString"
	OpGetBool     Op = "getBool"
	OpGetInt      Op = "getInt"
	OpMagic       Op = "magic"
)

// Ops lists every primitive in declaration order.
var Ops = []Op{OpPrintBool, OpPrintInt, OpPrintString, OpGetBool, OpGetInt, OpMagic}

// ParseOp returns the Op named s.
func ParseOp(s string) (Op, bool) {
	for _, op := range Ops {
		if string(op) == s {
			return op, true
		}
	}
	return "", false
}

// IsInput reports whether op reads from the input stream or the bit source.
func (op Op) IsInput() bool {
	return op == OpGetBool || op == OpGetInt || op == OpMagic
}

// Event is a single recorded call. Value holds the text written for output
// primitives and the decimal return value for input primitives.
type Event struct {
	Session string
	Seq     int64
	Op      Op
	Value   string
	Time    time.Time
}

// SessionInfo summarises one recorded session.
type SessionInfo struct {
	Session string
	Events  int64
	First   time.Time
	Last    time.Time
}

// Store is the interface for transcript persistence.
type Store interface {
	// Append records e. Events of one session must be appended in Seq order.
	Append(ctx context.Context, e Event) error
	// Events returns the events of a session in Seq order. A limit of 0
	// returns all of them.
	Events(ctx context.Context, session string, limit int) ([]Event, error)
	// Sessions lists recorded sessions, oldest first.
	Sessions(ctx context.Context) ([]SessionInfo, error)
	// Close releases resources.
	Close() error
}
