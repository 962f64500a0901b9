package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cube3d"
	"github.com/SeamusWaldron/cube3d/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Turn the cube interactively",
	Long: `Start an interactive view of the cube. Each key turns one layer a quarter
turn; hold Shift for the opposite direction.

Keyboard:
  u d l r f b   - Up, Down, Left, Right, Front, Back
  m e s         - Middle, Equatorial, Standing slices
  Shift+key     - Opposite direction
  Space         - Reset the cube
  q/Esc         - Quit

With --ble the view follows a GoCube smart cube as well.`,
	RunE: runPlay,
}

var (
	playEngine engineFlags
	playRecord bool
	playBLE    bool
	playMoves  string
	playNotes  string
)

func init() {
	rootCmd.AddCommand(playCmd)
	playEngine.register(playCmd)
	playCmd.Flags().BoolVar(&playRecord, "record", false, "Record completed turns to the database")
	playCmd.Flags().BoolVar(&playBLE, "ble", false, "Connect to a GoCube and follow its turns")
	playCmd.Flags().StringVar(&playMoves, "moves", "", "Moves to play on start, e.g. \"R U R' U'\"")
	playCmd.Flags().StringVar(&playNotes, "notes", "", "Notes stored with a recorded session")
}

func runPlay(cmd *cobra.Command, args []string) error {
	opts, err := playEngine.options(cmd)
	if err != nil {
		return err
	}

	var script []scriptStep
	if playMoves != "" {
		moves, err := cube3d.ParseMoves(playMoves)
		if err != nil {
			return fmt.Errorf("invalid --moves: %w", err)
		}
		script = movesScript(moves, cube3d.CubieSize+cube3d.CubieGap)
	}

	var g *cube3d.GoCube
	if playBLE {
		g, err = connectGoCube(cmd)
		if err != nil {
			return err
		}
		defer g.Close()
	}

	var rec *sessionRecorder
	if playRecord {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		source, device := storage.SourceKeyboard, ""
		if g != nil {
			source, device = storage.SourceGoCube, g.DeviceName()
		}
		rec, err = newSessionRecorder(db, source, playNotes, device, cube3d.CubieSize+cube3d.CubieGap, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.WithError(err).Error("failed to end session")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d turns in session %s\n", rec.Count(), rec.ID())
		}()
	}

	logPath, restore, err := logToFile()
	if err != nil {
		return err
	}
	defer restore()

	model := newPlayModel("cube3d", opts, rec)
	model.script = script
	model.logPath = logPath
	if g != nil {
		model.device = g.DeviceName()
		model.battery = g.Battery()
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if g != nil {
		g.OnMove(func(m cube3d.Move) { p.Send(physicalMoveMsg(m)) })
		g.OnBattery(func(level int) { p.Send(batteryMsg(level)) })
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("play error: %w", err)
	}
	return nil
}

// connectGoCube connects to the last used GoCube, falling back to the
// first one found, and remembers it.
func connectGoCube(cmd *cobra.Command) (*cube3d.GoCube, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	out := cmd.OutOrStdout()
	opts := []cube3d.Option{cube3d.WithLogger(logger)}

	if last := settings.Settings().LastDeviceID; last != "" {
		fmt.Fprintf(out, "Connecting to %s...\n", settings.Settings().LastDeviceName)
		g, err := cube3d.Connect(ctx, cube3d.Device{UUID: last}, opts...)
		if err == nil {
			return g, nil
		}
		logger.WithError(err).Warn("last device unavailable, scanning")
	}

	fmt.Fprintln(out, "Scanning for GoCube devices...")
	g, err := cube3d.ConnectFirst(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("no GoCube connected: %w", err)
	}
	fmt.Fprintf(out, "Connected to %s\n", g.DeviceName())

	if err := settings.SetLastDevice(g.Device().UUID, g.DeviceName()); err != nil {
		logger.WithError(err).Warn("failed to save device")
	}
	return g, nil
}

// Messages
type frameMsg time.Time
type physicalMoveMsg cube3d.Move
type batteryMsg int

// frameInterval is the time between animation frames.
const frameInterval = time.Second / 60

// scriptStep is a rotation to request at an offset from the first frame.
type scriptStep struct {
	at  time.Duration
	rot cube3d.Rotation
}

func movesScript(moves []cube3d.Move, offset float64) []scriptStep {
	var steps []scriptStep
	for _, m := range moves {
		for _, r := range m.Rotations(offset) {
			steps = append(steps, scriptStep{rot: r})
		}
	}
	return steps
}

// Model
type playModel struct {
	title string
	queue *cube3d.Queue

	// Scripted requests, fed as they fall due while the queue has room.
	script     []scriptStep
	scriptNext int
	started    time.Time

	history  []string
	device   string
	battery  int
	recorder *sessionRecorder
	logPath  string

	quitting bool
}

func newPlayModel(title string, opts []cube3d.Option, rec *sessionRecorder) *playModel {
	m := &playModel{
		title:    title,
		battery:  -1,
		recorder: rec,
	}

	opts = append(opts, cube3d.WithOnTurnComplete(m.turnDone))
	if rec != nil {
		opts = append(opts, cube3d.WithOnTurnComplete(rec.Record))
	}
	m.queue = cube3d.NewQueue(cube3d.Build(), opts...)
	return m
}

func (m *playModel) turnDone(r cube3d.Rotation, moved int) {
	if moved == 0 {
		return
	}
	name := r.Notation(m.queue.Cube().Offset())
	if name == "" {
		name = r.String()
	}
	m.history = append(m.history, name)
}

func (m *playModel) Init() tea.Cmd {
	return m.frameCmd()
}

func (m *playModel) frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "space":
			m.queue.Reset()
			m.history = nil

		default:
			if mv, ok := cube3d.KeyMove(key); ok {
				m.queue.EnqueueMoves(mv)
			}
		}

	case frameMsg:
		now := time.Time(msg)
		if m.started.IsZero() {
			m.started = now
		}
		m.feedScript(now)
		m.queue.Update(now)
		return m, m.frameCmd()

	case physicalMoveMsg:
		m.queue.EnqueueMoves(cube3d.Move(msg))

	case batteryMsg:
		m.battery = int(msg)
	}

	return m, nil
}

func (m *playModel) feedScript(now time.Time) {
	for m.scriptNext < len(m.script) {
		step := m.script[m.scriptNext]
		if now.Sub(m.started) < step.at || m.queue.Full() {
			return
		}
		m.queue.Enqueue(step.rot)
		m.scriptNext++
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(renderNet(m.queue.Cube().Net()))
	b.WriteString("\n\n")

	b.WriteString("Turn: ")
	b.WriteString(renderTurn(m.queue))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("Pending: %d  Completed: %d  Dropped: %d",
		m.queue.Len(), m.queue.Completed(), m.queue.Dropped())))
	b.WriteString("\n")

	if len(m.script) > 0 {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Script: %d/%d", m.scriptNext, len(m.script))))
		b.WriteString("\n")
	}
	if m.device != "" {
		battery := "?"
		if m.battery >= 0 {
			battery = fmt.Sprintf("%d%%", m.battery)
		}
		b.WriteString(fmt.Sprintf("Device: %s  Battery: %s\n", m.device, battery))
	}
	if m.recorder != nil {
		b.WriteString(errorStyle.Render("REC"))
		b.WriteString(statusStyle.Render(fmt.Sprintf(" %s (%d turns)", m.recorder.ID(), m.recorder.Count())))
		b.WriteString("\n")
	}
	if moves := recentMoves(m.history, 20); moves != "" {
		b.WriteString("Moves: ")
		b.WriteString(moves)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("udlrfbmes=turn  Shift=reverse  Space=reset  q=quit"))
	if m.logPath != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("log: " + m.logPath))
	}
	b.WriteString("\n")

	return b.String()
}
