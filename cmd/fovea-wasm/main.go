//go:build js && wasm

// Command fovea-wasm exposes the bounding-box reducer to JavaScript as
// calculateDiff(current, previous, width, height, threshold).
//
// current and previous are Uint8Array/Uint8ClampedArray RGBA buffers (for
// example ImageData.data). The result is {min_x, max_x, min_y, max_y, changed}.
package main

import (
	"syscall/js"

	"github.com/ivlev/fovea/internal/analyzer"
)

func main() {
	js.Global().Set("calculateDiff", js.FuncOf(calculateDiff))
	select {}
}

func calculateDiff(this js.Value, args []js.Value) any {
	if len(args) != 5 {
		return jsError("calculateDiff expects (current, previous, width, height, threshold)")
	}
	for i, name := range []string{"current", "previous"} {
		if !isByteArray(args[i]) {
			return jsError(name + " must be a Uint8Array or Uint8ClampedArray")
		}
	}
	for i, name := range []string{"width", "height", "threshold"} {
		if args[i+2].Type() != js.TypeNumber {
			return jsError(name + " must be a number")
		}
	}

	width := args[2].Int()
	height := args[3].Int()
	threshold := args[4].Int()
	if width < 0 || height < 0 {
		return jsError("width and height must not be negative")
	}
	if threshold < 0 || threshold > 255 {
		return jsError("threshold must be 0-255")
	}

	box, err := analyzer.ComputeBoundingBox(copyBytes(args[0]), copyBytes(args[1]), uint32(width), uint32(height), uint8(threshold))
	if err != nil {
		return jsError(err.Error())
	}
	return boxObject(box)
}

// boxObject builds the result with keys in the documented order
func boxObject(box analyzer.BoundingBox) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("min_x", box.MinX)
	obj.Set("max_x", box.MaxX)
	obj.Set("min_y", box.MinY)
	obj.Set("max_y", box.MaxY)
	obj.Set("changed", box.Changed)
	return obj
}

func isByteArray(v js.Value) bool {
	return v.InstanceOf(js.Global().Get("Uint8Array")) ||
		v.InstanceOf(js.Global().Get("Uint8ClampedArray"))
}

// copyBytes copies a typed array into Go memory
func copyBytes(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func jsError(msg string) js.Value {
	return js.Global().Get("Error").New(msg)
}
