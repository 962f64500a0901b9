package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cube3d"
	"github.com/SeamusWaldron/cube3d/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Apply moves without a display",
	Long: `Apply a move sequence headlessly, animating every turn with a simulated
frame clock, and print the resulting faces.

Example:
  cube3d run --moves "R U R' U'"`,
	RunE: runRun,
}

var (
	runEngine engineFlags
	runMoves  string
	runFrame  time.Duration
	runColor  bool
	runRecord bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runEngine.register(runCmd)
	runCmd.Flags().StringVar(&runMoves, "moves", "", "Move sequence to apply")
	runCmd.Flags().DurationVar(&runFrame, "frame", frameInterval, "Simulated frame interval")
	runCmd.Flags().BoolVar(&runColor, "color", false, "Print the faces as colored cells")
	runCmd.Flags().BoolVar(&runRecord, "record", false, "Record completed turns to the database")
	runCmd.MarkFlagRequired("moves")
}

func runRun(cmd *cobra.Command, args []string) error {
	moves, err := cube3d.ParseMoves(runMoves)
	if err != nil {
		return fmt.Errorf("invalid --moves: %w", err)
	}

	opts, err := runEngine.options(cmd)
	if err != nil {
		return err
	}

	c := cube3d.Build()

	var rec *sessionRecorder
	if runRecord {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		rec, err = newSessionRecorder(db, storage.SourceScript, runMoves, "", c.Offset(), logger)
		if err != nil {
			return err
		}
		opts = append(opts, cube3d.WithOnTurnComplete(rec.Record))
	}

	q := cube3d.NewQueue(c, opts...)
	q.EnqueueMoves(moves...)

	start := time.Now()
	end := q.Run(start, runFrame)

	out := cmd.OutOrStdout()
	if runColor {
		fmt.Fprintln(out, renderNet(c.Net()))
	} else {
		fmt.Fprint(out, c.Net().String())
	}
	fmt.Fprintf(out, "\nTurns: %d  Animated: %s  Solved: %v\n",
		q.Completed(), end.Sub(start), c.Net().Uniform())

	if rec != nil {
		if err := rec.Close(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Session: %s\n", rec.ID())
	}
	return nil
}
