package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"drewnomars.net/marsrt/internal/transcript"
	"drewnomars.net/marsrt/pkg/marsrt"
)

func newCallCmd(a *app) *cobra.Command {
	names := make([]string, len(transcript.Ops))
	for i, op := range transcript.Ops {
		names[i] = string(op)
	}

	return &cobra.Command{
		Use:   "call <primitive> [arg]",
		Short: "Invoke one runtime primitive on this process's stdio",
		Long: `Invokes a single primitive exactly as a compiled program would.

Output primitives take one argument. Input primitives take none and print
the value they return, followed by a newline.

Primitives: ` + strings.Join(names, ", ") + `

Examples:
  marsrt call printString 'hello'
  marsrt call printInt -- -42
  echo 42 | marsrt call getInt
  marsrt call magic --seed 7`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: names,
		RunE:      a.runCall,
	}
}

func (a *app) runCall(cmd *cobra.Command, args []string) (err error) {
	op, ok := transcript.ParseOp(args[0])
	if !ok {
		return fmt.Errorf("unknown primitive %q", args[0])
	}
	if op.IsInput() && len(args) != 1 {
		return fmt.Errorf("%s takes no argument", op)
	}
	if !op.IsInput() && len(args) != 2 {
		return fmt.Errorf("%s takes exactly one argument", op)
	}

	rt, err := marsrt.New(
		marsrt.WithConfig(a.cfg),
		marsrt.WithLogger(a.logger),
		marsrt.WithInput(cmd.InOrStdin()),
		marsrt.WithOutput(cmd.OutOrStdout()),
	)
	if err != nil {
		return err
	}
	defer closeInto(rt, &err)

	var result int64
	switch op {
	case transcript.OpPrintBool, transcript.OpPrintInt:
		v, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%s: argument must be an integer: %w", op, err)
		}
		if op == transcript.OpPrintBool {
			rt.PrintBool(v)
		} else {
			rt.PrintInt(v)
		}
	case transcript.OpPrintString:
		rt.PrintString(args[1])
	case transcript.OpGetBool:
		result = rt.GetBool()
	case transcript.OpGetInt:
		result = rt.GetInt()
	case transcript.OpMagic:
		result = rt.Magic()
	}

	if op.IsInput() {
		fmt.Fprintln(cmd.OutOrStdout(), result)
	}
	a.logger.Debug("call finished", zap.String("op", string(op)), zap.String("session", rt.Session()))
	return rt.Err()
}

// closeInto closes c and stores its error in *err unless *err is already set.
func closeInto(c io.Closer, err *error) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
