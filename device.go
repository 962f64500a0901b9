package cube3d

import (
	"context"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cube3d/internal/ble"
	"github.com/SeamusWaldron/cube3d/internal/protocol"
)

// DefaultScanTimeout is how long ConnectFirst scans before giving up.
const DefaultScanTimeout = 10 * time.Second

// Device is a discovered GoCube smart cube. Devices are returned by Scan
// and can be passed to Connect.
type Device struct {
	Name string // advertised name, e.g. "GoCube_XXXX"
	UUID string // address used to connect
	RSSI int16  // signal strength in dBm

	result ble.ScanResult
}

// GoCube is a connected GoCube. Physical face turns are reported as
// Moves whose face is the one with the same center color on a built
// Cube, so they can be fed straight into a Queue:
//
//	g, err := cube3d.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer g.Close()
//
//	g.OnMove(func(m cube3d.Move) {
//	    moves <- m // hand over to the render loop
//	})
//
// Callbacks run on the BLE notification goroutine.
type GoCube struct {
	client *ble.Client
	device Device
	log    logrus.FieldLogger

	mu            sync.RWMutex
	onMove        func(Move)
	onBattery     func(int)
	onOrientation func(Orientation)
}

// Orientation is the physical orientation of the cube.
type Orientation struct {
	Rotation  mgl64.Quat
	UpFace    Face // face pointing up
	FrontFace Face // face pointing at the solver
}

// Scan discovers nearby GoCube devices for the duration of timeout.
//
// On macOS scanning sometimes needs more than one attempt, and a cube
// connected to another host (the phone app) does not advertise.
func Scan(ctx context.Context, timeout time.Duration, opts ...Option) ([]Device, error) {
	cfg := newConfig(opts)
	client, err := ble.NewClient(cfg.logger)
	if err != nil {
		return nil, err
	}

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, len(results))
	for i, r := range results {
		devices[i] = Device{Name: r.Name, UUID: r.UUID, RSSI: r.RSSI, result: r}
	}
	return devices, nil
}

// Connect connects to a device returned by Scan. A Device with only a
// UUID set (a remembered address) is located by scanning first.
func Connect(ctx context.Context, device Device, opts ...Option) (*GoCube, error) {
	cfg := newConfig(opts)
	client, err := ble.NewClient(cfg.logger)
	if err != nil {
		return nil, err
	}

	if device.result.UUID != "" {
		err = client.ConnectToResult(ctx, device.result)
	} else {
		err = client.Connect(ctx, device.UUID)
	}
	if err != nil {
		if err == ble.ErrDeviceNotFound {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	if device.Name == "" {
		device.Name = client.DeviceName()
	}

	g := newGoCube(client, device, cfg)
	client.SetMessageCallback(g.handleMessage)
	return g, nil
}

// ConnectFirst scans and connects to the first GoCube found.
func ConnectFirst(ctx context.Context, opts ...Option) (*GoCube, error) {
	devices, err := Scan(ctx, DefaultScanTimeout, opts...)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrDeviceNotFound
	}
	return Connect(ctx, devices[0], opts...)
}

func newGoCube(client *ble.Client, device Device, cfg *config) *GoCube {
	return &GoCube{
		client: client,
		device: device,
		log:    cfg.logger.WithField("device", device.Name),
	}
}

// Close disconnects from the cube.
func (g *GoCube) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Disconnect()
}

// IsConnected reports whether the connection is up.
func (g *GoCube) IsConnected() bool {
	return g.client != nil && g.client.IsConnected()
}

// Device returns the device this cube was connected from.
func (g *GoCube) Device() Device {
	return g.device
}

// DeviceName returns the connected device name.
func (g *GoCube) DeviceName() string {
	return g.device.Name
}

// Battery returns the last known battery level (0-100), or -1 if unknown.
func (g *GoCube) Battery() int {
	if g.client == nil {
		return -1
	}
	return g.client.Battery()
}

// OnMove sets the callback for physical face turns.
func (g *GoCube) OnMove(cb func(Move)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onMove = cb
}

// OnBattery sets the callback for battery level updates.
func (g *GoCube) OnBattery(cb func(int)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onBattery = cb
}

// OnOrientation sets the callback for orientation updates. Orientation
// notifications must be enabled with EnableOrientation.
func (g *GoCube) OnOrientation(cb func(Orientation)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onOrientation = cb
}

// FlashBacklight flashes the cube backlight.
func (g *GoCube) FlashBacklight() error {
	if g.client == nil {
		return ErrNotConnected
	}
	return g.client.FlashBacklight()
}

// EnableOrientation turns on orientation notifications.
func (g *GoCube) EnableOrientation() error {
	if g.client == nil {
		return ErrNotConnected
	}
	return g.client.EnableOrientation()
}

// DisableOrientation turns off orientation notifications.
func (g *GoCube) DisableOrientation() error {
	if g.client == nil {
		return ErrNotConnected
	}
	return g.client.DisableOrientation()
}

func (g *GoCube) handleMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgTypeRotation:
		g.handleRotation(msg)
	case protocol.MsgTypeBattery:
		g.handleBattery(msg)
	case protocol.MsgTypeOrientation:
		g.handleOrientation(msg)
	default:
		g.log.WithField("type", msg.TypeName()).Debug("ignoring message")
	}
}

func (g *GoCube) handleRotation(msg *protocol.Message) {
	events, err := protocol.DecodeRotation(msg.Payload)
	if err != nil {
		g.log.WithError(err).Warn("bad rotation payload")
		return
	}

	g.mu.RLock()
	cb := g.onMove
	g.mu.RUnlock()

	now := time.Now()
	for _, ev := range events {
		m, ok := moveFromEvent(ev, now)
		if !ok {
			continue
		}
		g.log.WithField("move", m.Notation()).Debug("physical turn")
		if cb != nil {
			cb(m)
		}
	}
}

func (g *GoCube) handleBattery(msg *protocol.Message) {
	battery, err := protocol.DecodeBattery(msg.Payload)
	if err != nil {
		return
	}

	g.mu.RLock()
	cb := g.onBattery
	g.mu.RUnlock()
	if cb != nil {
		cb(battery.Level)
	}
}

func (g *GoCube) handleOrientation(msg *protocol.Message) {
	ev, err := protocol.DecodeOrientation(msg.Payload)
	if err != nil {
		g.log.WithError(err).Debug("bad orientation payload")
		return
	}

	g.mu.RLock()
	cb := g.onOrientation
	g.mu.RUnlock()
	if cb != nil {
		cb(Orientation{
			Rotation:  ev.Rotation,
			UpFace:    Face(ev.UpFace),
			FrontFace: Face(ev.FrontFace),
		})
	}
}

// centerFaces maps a physical center color to the face of a built Cube
// with that center color.
var centerFaces = map[byte]Face{
	protocol.ColorRed:    FaceR,
	protocol.ColorOrange: FaceL,
	protocol.ColorWhite:  FaceU,
	protocol.ColorYellow: FaceD,
	protocol.ColorBlue:   FaceF,
	protocol.ColorGreen:  FaceB,
}

func moveFromEvent(ev protocol.RotationEvent, t time.Time) (Move, bool) {
	face, ok := centerFaces[ev.Color]
	if !ok {
		return Move{}, false
	}
	m := FaceTurn(face, ev.Clockwise)
	m.Time = t
	return m, true
}
