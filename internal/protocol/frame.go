// Package protocol implements the GoCube BLE wire format: message
// framing, commands and payload decoding.
package protocol

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// GoCube BLE service and characteristic UUIDs (Nordic UART).
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // write
)

// Message types.
const (
	MsgTypeRotation     byte = 0x01
	MsgTypeState        byte = 0x02
	MsgTypeOrientation  byte = 0x03
	MsgTypeBattery      byte = 0x05
	MsgTypeOfflineStats byte = 0x07
	MsgTypeCubeType     byte = 0x08
)

// Command codes written to the RX characteristic.
const (
	CmdRequestBattery       byte = 0x32
	CmdRequestState         byte = 0x33
	CmdReboot               byte = 0x34
	CmdResetSolved          byte = 0x35
	CmdDisableOrientation   byte = 0x37
	CmdEnableOrientation    byte = 0x38
	CmdRequestOfflineStats  byte = 0x39
	CmdFlashBacklight       byte = 0x41
	CmdToggleAnimatedBL     byte = 0x42
	CmdSlowFlashBacklight   byte = 0x43
	CmdToggleBacklight      byte = 0x44
	CmdRequestCubeType      byte = 0x56
	CmdCalibrateOrientation byte = 0x57
)

// Frame delimiters.
const (
	FramePrefix  byte = 0x2A // '*'
	FrameSuffix1 byte = 0x0D // CR
	FrameSuffix2 byte = 0x0A // LF
)

var (
	ErrInvalidPrefix   = errors.New("protocol: invalid message prefix")
	ErrInvalidSuffix   = errors.New("protocol: invalid message suffix")
	ErrInvalidChecksum = errors.New("protocol: invalid checksum")
	ErrMessageTooShort = errors.New("protocol: message too short")
	ErrInvalidLength   = errors.New("protocol: invalid message length")
)

// Message is one parsed notification.
type Message struct {
	Type    byte   // message type
	Payload []byte // payload without framing
	Raw     []byte // the complete frame
}

// Base64 returns the raw frame base64 encoded, for logs.
func (m *Message) Base64() string {
	return base64.StdEncoding.EncodeToString(m.Raw)
}

// TypeName returns a readable name for the message type.
func (m *Message) TypeName() string {
	return MessageTypeName(m.Type)
}

// Parse parses a raw notification.
//
// Frame format: [0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A]
// where length counts the bytes after itself and the checksum is the
// low byte of the sum of every byte before it.
func Parse(data []byte) (*Message, error) {
	if len(data) < 6 {
		return nil, ErrMessageTooShort
	}
	if data[0] != FramePrefix {
		return nil, ErrInvalidPrefix
	}

	total := 2 + int(data[1])
	if total < 6 {
		return nil, ErrMessageTooShort
	}
	if len(data) < total {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidLength, total, len(data))
	}

	checksumIdx := total - 3
	if data[total-2] != FrameSuffix1 || data[total-1] != FrameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	if sum := checksum(data[:checksumIdx]); sum != data[checksumIdx] {
		return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrInvalidChecksum, data[checksumIdx], sum)
	}

	return &Message{
		Type:    data[2],
		Payload: data[3:checksumIdx],
		Raw:     data[:total],
	}, nil
}

// Encode frames a message of the given type. It is the inverse of Parse
// and is used to replay captured traffic.
func Encode(msgType byte, payload []byte) []byte {
	frame := make([]byte, 0, len(payload)+6)
	frame = append(frame, FramePrefix, byte(len(payload)+4), msgType)
	frame = append(frame, payload...)
	frame = append(frame, checksum(frame), FrameSuffix1, FrameSuffix2)
	return frame
}

// BuildCommand creates a command frame with no payload.
// Format: [0x2A] [0x01] [cmd] [checksum] [0x0D] [0x0A]
func BuildCommand(cmd byte) []byte {
	length := byte(0x01)
	return []byte{FramePrefix, length, cmd, FramePrefix + length + cmd, FrameSuffix1, FrameSuffix2}
}

func checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}

// MessageTypeName returns a readable name for a message type.
func MessageTypeName(msgType byte) string {
	switch msgType {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeOrientation:
		return "orientation"
	case MsgTypeBattery:
		return "battery"
	case MsgTypeOfflineStats:
		return "offline_stats"
	case MsgTypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", msgType)
	}
}
