package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cube3d/internal/ble"
	"github.com/SeamusWaldron/cube3d/internal/protocol"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for GoCube devices",
	Long: `Scan for nearby GoCube smart cubes over Bluetooth.

With --watch, connect to the first cube found and print every message it
sends until interrupted. Disconnect the cube from the phone app first and
turn a face to wake it up.`,
	RunE: runScan,
}

var (
	scanTimeout time.Duration
	scanWatch   bool
	scanRaw     bool
)

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().DurationVarP(&scanTimeout, "timeout", "t", 5*time.Second, "Scan duration")
	scanCmd.Flags().BoolVarP(&scanWatch, "watch", "w", false, "Connect and print messages")
	scanCmd.Flags().BoolVar(&scanRaw, "raw", false, "With --watch, print raw frames as hex")
}

func runScan(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	client, err := ble.NewClient(logger)
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}
	defer client.Disconnect()

	fmt.Fprintf(out, "Scanning for GoCube devices (%s)...\n", scanTimeout)
	results, err := client.Scan(ctx, scanTimeout)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "No GoCube found. Turn a face to wake the cube and make sure no phone is connected to it.")
		return nil
	}

	fmt.Fprintf(out, "%-40s %-25s %s\n", "ADDRESS", "NAME", "RSSI")
	for _, r := range results {
		fmt.Fprintf(out, "%-40s %-25s %d\n", r.UUID, r.Name, r.RSSI)
	}

	if !scanWatch {
		return nil
	}
	return watch(ctx, cmd, client, results[0])
}

func watch(ctx context.Context, cmd *cobra.Command, client *ble.Client, target ble.ScanResult) error {
	out := cmd.OutOrStdout()

	if scanRaw {
		client.SetRawCallback(func(data []byte) {
			fmt.Fprintf(out, "raw  % X\n", data)
		})
	}
	client.SetMessageCallback(func(msg *protocol.Message) {
		fmt.Fprintf(out, "%-12s %s\n", msg.TypeName(), describe(msg))
	})

	if err := client.ConnectToResult(ctx, target); err != nil {
		return err
	}
	if err := settings.SetLastDevice(target.UUID, target.Name); err != nil {
		logger.WithError(err).Warn("failed to save device")
	}

	fmt.Fprintf(out, "Connected to %s. Press Ctrl+C to stop.\n", target.Name)
	<-ctx.Done()
	return nil
}

// describe decodes the payload of the message types we understand.
func describe(msg *protocol.Message) string {
	switch msg.Type {
	case protocol.MsgTypeRotation:
		events, err := protocol.DecodeRotation(msg.Payload)
		if err != nil {
			return err.Error()
		}
		s := ""
		for _, ev := range events {
			dir := "ccw"
			if ev.Clockwise {
				dir = "cw"
			}
			s += fmt.Sprintf("%s %s  ", ev.ColorName(), dir)
		}
		return s
	case protocol.MsgTypeBattery:
		if b, err := protocol.DecodeBattery(msg.Payload); err == nil {
			return fmt.Sprintf("%d%%", b.Level)
		}
	case protocol.MsgTypeOrientation:
		if o, err := protocol.DecodeOrientation(msg.Payload); err == nil {
			return fmt.Sprintf("up=%s front=%s", o.UpFace, o.FrontFace)
		}
	case protocol.MsgTypeCubeType:
		if t, err := protocol.DecodeCubeType(msg.Payload); err == nil {
			return t.TypeName
		}
	}
	return msg.Base64()
}
