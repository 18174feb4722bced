// Package onnxutil centralizes the small bit of host-specific setup the
// ONNX Runtime binding needs, shared by internal/apiserver, cmd/worker and
// cmd/piv.
package onnxutil

import "runtime"

// SharedLibraryPath returns the ONNX Runtime shared library name for the
// current OS, assuming it is resolvable on the default library search path.
func SharedLibraryPath() string {
	switch runtime.GOOS {
	case "windows":
		return "onnxruntime.dll"
	case "linux":
		return "libonnxruntime.so"
	case "darwin":
		return "libonnxruntime.dylib"
	default:
		return "onnxruntime.dll"
	}
}
