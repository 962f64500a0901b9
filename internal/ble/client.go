// Package ble provides low-level BLE communication with GoCube devices.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/cube3d/internal/protocol"
)

var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: GoCube service not found")
)

// DefaultConnectTimeout bounds the scan that locates a device by address.
const DefaultConnectTimeout = 10 * time.Second

var (
	serviceUUID = mustParseUUID(protocol.ServiceUUID)
	txCharUUID  = mustParseUUID(protocol.TxCharUUID)
	rxCharUUID  = mustParseUUID(protocol.RxCharUUID)
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// IsGoCube reports whether an advertised name belongs to a GoCube.
func IsGoCube(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "gocube")
}

// ScanResult is a discovered GoCube.
type ScanResult struct {
	Name    string
	UUID    string
	RSSI    int16
	Address bluetooth.Address
}

// Client manages the connection to one GoCube.
type Client struct {
	adapter *bluetooth.Adapter
	log     logrus.FieldLogger

	device bluetooth.Device
	txChar bluetooth.DeviceCharacteristic
	rxChar bluetooth.DeviceCharacteristic

	mu         sync.RWMutex
	connected  bool
	deviceName string
	deviceUUID string
	battery    int

	onMessage func(*protocol.Message)
	onRaw     func([]byte)
}

// NewClient enables the default adapter and returns a client using it.
func NewClient(log logrus.FieldLogger) (*Client, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	return &Client{
		adapter: adapter,
		log:     log.WithField("component", "ble"),
		battery: -1,
	}, nil
}

// SetMessageCallback sets the callback for parsed messages.
func (c *Client) SetMessageCallback(cb func(*protocol.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = cb
}

// SetRawCallback sets a callback receiving every notification before
// parsing, including frames that fail to parse.
func (c *Client) SetRawCallback(cb func([]byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRaw = cb
}

// Scan collects GoCube advertisements until timeout or ctx is done.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	var (
		mu      sync.Mutex
		results []ScanResult
	)
	err := c.Watch(ctx, timeout, func(r ScanResult) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	})
	return results, err
}

// Watch calls fn once for each GoCube seen until timeout or ctx is done.
func (c *Client) Watch(ctx context.Context, timeout time.Duration, fn func(ScanResult)) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	var mu sync.Mutex
	seen := make(map[string]bool)
	done := make(chan error, 1)

	go func() {
		done <- c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			addr := result.Address.String()
			if !IsGoCube(name) {
				return
			}

			mu.Lock()
			dup := seen[addr]
			seen[addr] = true
			mu.Unlock()
			if dup {
				return
			}

			c.log.WithFields(logrus.Fields{"name": name, "address": addr, "rssi": result.RSSI}).Debug("device found")
			fn(ScanResult{Name: name, UUID: addr, RSSI: result.RSSI, Address: result.Address})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	if err := c.adapter.StopScan(); err != nil {
		c.log.WithError(err).Debug("stop scan")
	}
	if err := <-done; err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}

// Connect locates the device with the given address and connects to it.
func (c *Client) Connect(ctx context.Context, deviceUUID string) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultConnectTimeout)
	defer cancel()

	found := make(chan ScanResult, 1)
	go func() {
		c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if result.Address.String() != deviceUUID {
				return
			}
			select {
			case found <- ScanResult{Name: result.LocalName(), UUID: deviceUUID, RSSI: result.RSSI, Address: result.Address}:
				adapter.StopScan()
			default:
			}
		})
	}()

	select {
	case r := <-found:
		return c.ConnectToResult(ctx, r)
	case <-ctx.Done():
		c.adapter.StopScan()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrDeviceNotFound
		}
		return ctx.Err()
	}
}

// ConnectToResult connects directly to a device from a scan result.
func (c *Client) ConnectToResult(ctx context.Context, result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	device, err := c.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	tx, rx, err := discover(device)
	if err != nil {
		device.Disconnect()
		return err
	}

	if err := tx.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.txChar = tx
	c.rxChar = rx
	c.connected = true
	c.deviceName = result.Name
	c.deviceUUID = result.UUID
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"name": result.Name, "address": result.UUID}).Info("connected")

	if err := c.RequestBattery(); err != nil {
		c.log.WithError(err).Warn("battery request failed")
	}
	return nil
}

func discover(device bluetooth.Device) (tx, rx bluetooth.DeviceCharacteristic, err error) {
	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		return tx, rx, fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		return tx, rx, ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		return tx, rx, fmt.Errorf("failed to discover characteristics: %w", err)
	}

	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			tx = ch
		case rxCharUUID:
			rx = ch
		}
	}
	return tx, rx, nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.deviceUUID = ""
	c.battery = -1
	c.log.Info("disconnected")

	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// DeviceUUID returns the connected device address.
func (c *Client) DeviceUUID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceUUID
}

// Battery returns the last known battery level (-1 if unknown).
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := protocol.BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		_, err = c.rxChar.Write(data)
		return err
	}
	return nil
}

// RequestBattery requests the battery level.
func (c *Client) RequestBattery() error {
	return c.SendCommand(protocol.CmdRequestBattery)
}

// FlashBacklight flashes the cube backlight.
func (c *Client) FlashBacklight() error {
	return c.SendCommand(protocol.CmdFlashBacklight)
}

// EnableOrientation turns on orientation notifications.
func (c *Client) EnableOrientation() error {
	return c.SendCommand(protocol.CmdEnableOrientation)
}

// DisableOrientation turns off orientation notifications.
func (c *Client) DisableOrientation() error {
	return c.SendCommand(protocol.CmdDisableOrientation)
}

func (c *Client) handleNotification(data []byte) {
	c.mu.RLock()
	raw := c.onRaw
	c.mu.RUnlock()
	if raw != nil {
		raw(data)
	}

	msg, err := protocol.Parse(data)
	if err != nil {
		c.log.WithError(err).WithField("bytes", len(data)).Debug("dropping malformed notification")
		return
	}

	if msg.Type == protocol.MsgTypeBattery {
		if battery, err := protocol.DecodeBattery(msg.Payload); err == nil {
			c.mu.Lock()
			c.battery = battery.Level
			c.mu.Unlock()
		}
	}

	c.mu.RLock()
	cb := c.onMessage
	c.mu.RUnlock()
	if cb != nil {
		cb(msg)
	}
}
