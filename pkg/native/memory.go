// Package native - Struct memory views and vector types shared by generated code
package native

import "unsafe"

// At views buf[offset:] as a *T. The caller guarantees the field fits the slot.
func At[T any](buf []byte, offset int) *T {
	var zero T
	if offset < 0 || offset+int(unsafe.Sizeof(zero)) > len(buf) {
		panic("native: field view out of range")
	}
	return (*T)(unsafe.Pointer(&buf[offset]))
}

// Read loads a T stored at offset
func Read[T any](buf []byte, offset int) T {
	return *At[T](buf, offset)
}

// Write stores v at offset
func Write[T any](buf []byte, offset int, v T) {
	*At[T](buf, offset) = v
}

type Vector2 struct {
	X, Y float32
}

type Vector3 struct {
	X, Y, Z float32
}

type Vector4 struct {
	X, Y, Z, W float32
}

// Color is an RGBA color with 8-bit channels stored as ints, as natives pass them
type Color struct {
	R, G, B, A int32
}
