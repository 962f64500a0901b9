// Package cli implements the cube3d command-line interface.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cube3d"
	"github.com/SeamusWaldron/cube3d/internal/config"
	"github.com/SeamusWaldron/cube3d/internal/storage"
	"github.com/SeamusWaldron/cube3d/internal/tween"
)

const version = "0.2.0"

var (
	// Global flags
	dbPath     string
	configPath string
	verbose    bool

	// Loaded in PersistentPreRunE.
	settings *config.File
	logger   = logrus.New()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cube3d",
	Short: "Animated 3x3x3 cube in the terminal",
	Long: `cube3d - an animated 3x3x3 cube you can turn from the keyboard or
with a GoCube smart cube over Bluetooth.

Turns are animated one at a time; requests made while a turn is running
are queued, and a request that undoes the last queued one cancels it.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cube3d/cube3d.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file path (default: ~/.cube3d/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	var err error
	if configPath != "" {
		settings, err = config.Load(configPath)
	} else {
		settings, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	return nil
}

// getDBPath returns the database path from flag, settings or default.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if settings != nil && settings.Settings().DBPath != "" {
		return settings.Settings().DBPath, nil
	}
	return storage.DefaultDBPath()
}

func openDB() (*storage.DB, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}

// engineFlags are the animation settings shared by play, replay and run.
type engineFlags struct {
	duration   time.Duration
	maxPending int
	easing     string
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.duration, "duration", cube3d.DefaultDuration, "Duration of one quarter turn")
	cmd.Flags().IntVar(&f.maxPending, "max-pending", cube3d.DefaultMaxPending, "Requests kept while a turn is running")
	cmd.Flags().StringVar(&f.easing, "easing", "quad-out", "Easing curve: linear, quad-out, quad-in-out, cubic-out")
}

// options resolves flags against the settings file. Flags set on the
// command line win.
func (f *engineFlags) options(cmd *cobra.Command) ([]cube3d.Option, error) {
	var s config.Settings
	if settings != nil {
		s = settings.Settings()
	}

	duration := f.duration
	if !cmd.Flags().Changed("duration") {
		duration = s.Duration(f.duration)
	}
	maxPending := f.maxPending
	if !cmd.Flags().Changed("max-pending") && s.MaxPending > 0 {
		maxPending = s.MaxPending
	}
	easing := f.easing
	if !cmd.Flags().Changed("easing") && s.Easing != "" {
		easing = s.Easing
	}

	if tween.ByName(easing) == nil {
		return nil, fmt.Errorf("unknown easing %q", easing)
	}

	return []cube3d.Option{
		cube3d.WithDuration(duration),
		cube3d.WithMaxPending(maxPending),
		cube3d.WithEasing(easing),
		cube3d.WithLogger(logger),
	}, nil
}
