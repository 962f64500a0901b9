package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cube3d/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List recorded sessions or show one session's turns",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var (
	historyLimit  int
	historyDelete bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of sessions to list")
	historyCmd.Flags().BoolVar(&historyDelete, "delete", false, "Delete the given session")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 0 {
		return listSessions(cmd, db)
	}

	if historyDelete {
		if err := storage.NewSessionRepository(db).Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
		return nil
	}
	return showSession(cmd, db, args[0])
}

func listSessions(cmd *cobra.Command, db *storage.DB) error {
	out := cmd.OutOrStdout()
	sessions, err := storage.NewSessionRepository(db).List(historyLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet. Record one with: cube3d play --record")
		return nil
	}

	turns := storage.NewTurnRepository(db)
	fmt.Fprintf(out, "%-36s  %-19s  %-8s  %6s  %9s  %s\n", "SESSION", "STARTED", "SOURCE", "TURNS", "DURATION", "DEVICE")
	fmt.Fprintln(out, strings.Repeat("-", 100))
	for _, s := range sessions {
		count, err := turns.Count(s.SessionID)
		if err != nil {
			return err
		}
		duration := "-"
		if s.EndedAt != nil {
			duration = formatDuration(s.Duration())
		}
		device := ""
		if s.DeviceName != nil {
			device = *s.DeviceName
		}
		fmt.Fprintf(out, "%-36s  %-19s  %-8s  %6d  %9s  %s\n",
			s.SessionID, s.StartedAt.Local().Format("2006-01-02 15:04:05"), s.Source, count, duration, device)
	}
	return nil
}

func showSession(cmd *cobra.Command, db *storage.DB, id string) error {
	out := cmd.OutOrStdout()
	s, err := findSession(db, []string{id})
	if err != nil {
		return err
	}

	turns, err := storage.NewTurnRepository(db).ListBySession(s.SessionID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Session: %s\n", s.SessionID)
	fmt.Fprintf(out, "Started: %s\n", s.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "Source:  %s\n", s.Source)
	if s.Notes != nil {
		fmt.Fprintf(out, "Notes:   %s\n", *s.Notes)
	}
	fmt.Fprintf(out, "Turns:   %d\n\n", len(turns))

	if len(turns) == 0 {
		return nil
	}

	first := turns[0].Time()
	var notation []string
	for _, t := range turns {
		name := t.Notation
		if name == "" {
			name = "?"
		}
		notation = append(notation, name)
		fmt.Fprintf(out, "%4d  %9s  %-3s  %s@%+.2f %+d\n",
			t.TurnIndex, formatDuration(t.Time().Sub(first)), name, t.Axis, t.Layer, t.Direction)
	}
	fmt.Fprintf(out, "\n%s\n", strings.Join(notation, " "))
	return nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}
