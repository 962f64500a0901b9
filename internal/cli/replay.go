package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cube3d/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay [session-id]",
	Short: "Replay a recorded session",
	Long: `Replay the turns of a recorded session in the interactive view, with the
original timing. Without a session ID the most recent session is replayed.

Usage:
  cube3d replay                  # Replay the latest session
  cube3d replay <session-id>     # Replay a specific session
  cube3d replay --speed 2.0      # Replay at 2x speed`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

var (
	replayEngine engineFlags
	replaySpeed  float64
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayEngine.register(replayCmd)
	replayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Playback speed multiplier")
}

func runReplay(cmd *cobra.Command, args []string) error {
	if replaySpeed <= 0 {
		return fmt.Errorf("--speed must be positive")
	}

	opts, err := replayEngine.options(cmd)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	session, err := findSession(db, args)
	if err != nil {
		return err
	}

	turns, err := storage.NewTurnRepository(db).ListBySession(session.SessionID)
	if err != nil {
		return err
	}
	if len(turns) == 0 {
		return fmt.Errorf("session %s has no turns", session.SessionID)
	}

	script, err := turnsScript(turns, replaySpeed)
	if err != nil {
		return err
	}

	_, restore, err := logToFile()
	if err != nil {
		return err
	}
	defer restore()

	model := newPlayModel(fmt.Sprintf("Replay %s (%.1fx)", session.SessionID, replaySpeed), opts, nil)
	model.script = script

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	return nil
}

// findSession returns the session named by args, or the latest one.
func findSession(db *storage.DB, args []string) (*storage.Session, error) {
	sessions := storage.NewSessionRepository(db)

	var (
		s   *storage.Session
		err error
	)
	if len(args) > 0 {
		s, err = sessions.Get(args[0])
	} else {
		s, err = sessions.GetLast()
	}
	if err != nil {
		return nil, err
	}
	if s == nil {
		if len(args) > 0 {
			return nil, fmt.Errorf("session %s not found", args[0])
		}
		return nil, fmt.Errorf("no sessions recorded yet; try: cube3d play --record")
	}
	return s, nil
}

// turnsScript schedules recorded turns relative to the first one.
func turnsScript(turns []storage.TurnRecord, speed float64) ([]scriptStep, error) {
	steps := make([]scriptStep, 0, len(turns))
	first := turns[0].TsMs
	for _, t := range turns {
		rot, err := t.Rotation()
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", t.TurnIndex, err)
		}
		at := time.Duration(float64(t.TsMs-first)/speed) * time.Millisecond
		steps = append(steps, scriptStep{at: at, rot: rot})
	}
	return steps, nil
}
