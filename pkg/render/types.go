package render

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Vec2 is a 2D point or size in screen space.
type Vec2 struct {
	X, Y float32
}

// Vec4 holds an RGBA color or a 4-component uniform value.
type Vec4 struct {
	X, Y, Z, W float32
}

// Rect is an axis-aligned rectangle: top-left corner plus size.
// Screen space has its origin in the top-left corner, Y pointing down.
type Rect struct {
	X, Y, W, H float32
}

// Intersect returns the intersection of r and o, with negative
// width/height clamped to zero.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		X: max32(r.X, o.X),
		Y: max32(r.Y, o.Y),
	}
	out.W = min32(r.X+r.W, o.X+o.W) - out.X
	out.H = min32(r.Y+r.H, o.Y+o.H) - out.Y
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Kind identifies the rendering path of an object. The set is closed:
// every object is exactly one of these.
type Kind uint8

const (
	KindRect Kind = iota
	KindRoundedRect
	KindCircle
	KindGlyph
	KindLine
)

// LineMode selects how a line's point sequence is turned into geometry.
type LineMode uint8

const (
	LineStraight LineMode = iota
	LineCurved
)

// UniformType tags the payload of a UniformValue.
type UniformType uint8

const (
	UniformFloat UniformType = iota
	UniformVec2
	UniformVec3
	UniformVec4
	UniformInt
)

// uniformSize maps a type tag to its expected raw payload size in bytes.
var uniformSize = map[UniformType]int{
	UniformFloat: 4,
	UniformVec2:  8,
	UniformVec3:  12,
	UniformVec4:  16,
	UniformInt:   4,
}

// UniformValue is a tagged shader parameter. Vector payloads live in Vec;
// only the first Type-determined components are meaningful.
type UniformValue struct {
	Type UniformType
	Vec  [4]float32
	Int  int32
}

// FloatUniform wraps a float32 as a uniform value.
func FloatUniform(v float32) UniformValue {
	return UniformValue{Type: UniformFloat, Vec: [4]float32{v}}
}

// Vec2Uniform wraps a 2-vector as a uniform value.
func Vec2Uniform(v Vec2) UniformValue {
	return UniformValue{Type: UniformVec2, Vec: [4]float32{v.X, v.Y}}
}

// Vec3Uniform wraps a 3-vector as a uniform value.
func Vec3Uniform(x, y, z float32) UniformValue {
	return UniformValue{Type: UniformVec3, Vec: [4]float32{x, y, z}}
}

// Vec4Uniform wraps a 4-vector as a uniform value.
func Vec4Uniform(v Vec4) UniformValue {
	return UniformValue{Type: UniformVec4, Vec: [4]float32{v.X, v.Y, v.Z, v.W}}
}

// IntUniform wraps an int32 as a uniform value.
func IntUniform(v int32) UniformValue {
	return UniformValue{Type: UniformInt, Int: v}
}

// uniformFromBytes decodes a little-endian raw payload against its declared
// type tag. The length is checked, not trusted.
func uniformFromBytes(tag UniformType, raw []byte) (UniformValue, error) {
	want, ok := uniformSize[tag]
	if !ok {
		return UniformValue{}, fmt.Errorf("unknown uniform type tag %d", tag)
	}
	if len(raw) != want {
		return UniformValue{}, fmt.Errorf("uniform payload is %d bytes, type tag expects %d", len(raw), want)
	}
	val := UniformValue{Type: tag}
	if tag == UniformInt {
		val.Int = int32(binary.LittleEndian.Uint32(raw))
		return val, nil
	}
	for i := 0; i < want/4; i++ {
		val.Vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return val, nil
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
