package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Center colors as numbered by the cube firmware.
const (
	ColorBlue byte = iota
	ColorGreen
	ColorWhite
	ColorYellow
	ColorRed
	ColorOrange
)

var colorNames = map[byte]string{
	ColorBlue:   "blue",
	ColorGreen:  "green",
	ColorWhite:  "white",
	ColorYellow: "yellow",
	ColorRed:    "red",
	ColorOrange: "orange",
}

// ColorName returns the name of a center color, or "" if unknown.
func ColorName(c byte) string {
	return colorNames[c]
}

// RotationEvent is a single face turn reported by the cube.
type RotationEvent struct {
	FaceCode          byte // raw face and direction code, 0x00-0x0B
	CenterOrientation byte // orientation of the turned center
	Color             byte // center color of the turned face
	Clockwise         bool // as seen looking at the face
}

// ColorName returns the name of the turned face's center color.
func (e RotationEvent) ColorName() string {
	return ColorName(e.Color)
}

// BatteryEvent is a battery level notification.
type BatteryEvent struct {
	Level int // 0-100
}

// CubeTypeEvent is a cube type notification.
type CubeTypeEvent struct {
	TypeCode byte
	TypeName string
}

// OrientationEvent is a physical orientation notification.
type OrientationEvent struct {
	Rotation mgl64.Quat // normalized

	// Faces pointing up and towards the solver, in U D F B R L letters.
	UpFace    string
	FrontFace string
}

// DecodeRotation decodes a rotation payload. The payload holds pairs of
// bytes: [face_dir] [center_orientation]. Even face codes are clockwise
// turns and odd codes counter-clockwise.
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("protocol: rotation payload must have even length, got %d", len(payload))
	}

	events := make([]RotationEvent, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		color := code / 2
		if _, ok := colorNames[color]; !ok {
			return nil, fmt.Errorf("protocol: unknown color index %d from face code 0x%02X", color, code)
		}

		events = append(events, RotationEvent{
			FaceCode:          code,
			CenterOrientation: payload[i+1],
			Color:             color,
			Clockwise:         code%2 == 0,
		})
	}

	return events, nil
}

// DecodeBattery decodes a battery payload.
func DecodeBattery(payload []byte) (*BatteryEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("protocol: battery payload too short")
	}
	return &BatteryEvent{Level: int(payload[0])}, nil
}

// DecodeCubeType decodes a cube type payload.
func DecodeCubeType(payload []byte) (*CubeTypeEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("protocol: cube type payload too short")
	}

	name := "standard"
	if payload[0] == 0x01 {
		name = "edge"
	}
	return &CubeTypeEvent{TypeCode: payload[0], TypeName: name}, nil
}

// DecodeOrientation decodes an orientation payload, the ASCII string
// "x#y#z#w" holding raw quaternion components.
func DecodeOrientation(payload []byte) (*OrientationEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("protocol: orientation payload must have 4 parts, got %d", len(parts))
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(leadingNumber(p), 64)
		if err != nil {
			return nil, fmt.Errorf("protocol: invalid orientation component %d: %w", i, err)
		}
		v[i] = f
	}

	q := mgl64.Quat{W: v[3], V: mgl64.Vec3{v[0], v[1], v[2]}}
	if q.Len() == 0 {
		return nil, fmt.Errorf("protocol: zero orientation quaternion")
	}
	q = q.Normalize()

	return &OrientationEvent{
		Rotation:  q,
		UpFace:    faceOf(q.Rotate(mgl64.Vec3{0, 1, 0})),
		FrontFace: faceOf(q.Rotate(mgl64.Vec3{0, 0, 1})),
	}, nil
}

// leadingNumber strips anything after the numeric prefix of s.
func leadingNumber(s string) string {
	end := 0
	for i, r := range s {
		if (r == '-' && i == 0) || r == '.' || (r >= '0' && r <= '9') {
			end = i + 1
			continue
		}
		break
	}
	return s[:end]
}

// faceOf returns the face letter a direction points to.
func faceOf(v mgl64.Vec3) string {
	ax, ay, az := math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])
	switch {
	case ay >= ax && ay >= az:
		if v[1] > 0 {
			return "U"
		}
		return "D"
	case az >= ax:
		if v[2] > 0 {
			return "F"
		}
		return "B"
	case v[0] > 0:
		return "R"
	default:
		return "L"
	}
}
