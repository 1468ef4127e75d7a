package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"drewnomars.net/marsrt/internal/config"
	"drewnomars.net/marsrt/internal/transcript"
)

func newTranscriptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Inspect recorded transcripts",
		Long: `Reads the SQLite transcript database named by --transcript or by
transcript.path in the config.`,
	}

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded sessions",
		Args:  cobra.NoArgs,
		RunE:  a.runSessions,
	}

	var limit int
	showCmd := &cobra.Command{
		Use:   "show <session>",
		Short: "Print the events of a session in call order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd, args[0], limit)
		},
	}
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n events (0 for all)")

	cmd.AddCommand(sessionsCmd, showCmd)
	return cmd
}

// openTranscript opens an existing transcript database. It never creates one.
func (a *app) openTranscript() (*transcript.SQLite, error) {
	if a.cfg.Transcript.Driver != config.DriverSQLite || a.cfg.Transcript.Path == "" {
		return nil, fmt.Errorf("no transcript database configured (use --transcript or transcript.driver: sqlite)")
	}
	if _, err := os.Stat(a.cfg.Transcript.Path); err != nil {
		return nil, fmt.Errorf("transcript database %s: %w", a.cfg.Transcript.Path, err)
	}
	s, err := transcript.NewSQLite(a.cfg.Transcript.Path)
	if err != nil {
		return nil, fmt.Errorf("open transcript %s: %w", a.cfg.Transcript.Path, err)
	}
	return s, nil
}

func (a *app) runSessions(cmd *cobra.Command, args []string) error {
	s, err := a.openTranscript()
	if err != nil {
		return err
	}
	defer s.Close()

	sessions, err := s.Sessions(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION\tEVENTS\tFIRST\tLAST")
	for _, info := range sessions {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", info.Session, info.Events,
			info.First.Format(time.RFC3339), info.Last.Format(time.RFC3339))
	}
	return w.Flush()
}

func (a *app) runShow(cmd *cobra.Command, session string, limit int) error {
	s, err := a.openTranscript()
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.Events(cmd.Context(), session, limit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no events for session %s", session)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tOP\tVALUE")
	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%q\n", e.Seq, e.Op, e.Value)
	}
	return w.Flush()
}
