// Package volserr defines the error taxonomy shared by the container codec,
// frame store, texture pipeline, audio trimmer, and cut/convert pipeline.
//
// Each kind is a distinct type so callers can recover it with errors.As after
// it has been wrapped with github.com/pkg/errors for stack context. Argument
// errors are not part of this taxonomy: they are returned directly from CLI
// flag validation and never wrapped.
package volserr

import "fmt"

// BadMagic means the container's format tag did not decode to "VOLS".
type BadMagic struct {
	Got string
}

func (e *BadMagic) Error() string { return fmt.Sprintf("bad magic: got %q, want VOLS", e.Got) }

// UnsupportedVersion means the header declared a version outside {10,11,12,13}.
type UnsupportedVersion struct {
	Version uint32
}

func (e *UnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported container version %d", e.Version)
}

// TruncatedHeader means fewer bytes were available than the header shape requires.
type TruncatedHeader struct {
	Want, Got int
}

func (e *TruncatedHeader) Error() string {
	return fmt.Sprintf("truncated header: want at least %d bytes, got %d", e.Want, e.Got)
}

// CorruptFrame means a frame record could not be read: its header or body was
// truncated, a size prefix pointed past the end of the data, or the requested
// frame index was out of range. A leading/trailing mesh_data_sz disagreement is
// reported as IndexMismatch instead.
type CorruptFrame struct {
	FrameNumber uint32
	Reason      string
}

func (e *CorruptFrame) Error() string {
	return fmt.Sprintf("corrupt frame %d: %s", e.FrameNumber, e.Reason)
}

// IndexMismatch means a frame's trailing mesh_data_sz disagreed with its header's
// mesh_data_sz (version >= 12 only), found while building the frame store index
// or while reading a frame body.
type IndexMismatch struct {
	FrameIndex   int
	HeaderSize   uint32
	TrailingSize uint32
}

func (e *IndexMismatch) Error() string {
	return fmt.Sprintf("frame %d: header mesh_data_sz %d != trailing mesh_data_sz %d", e.FrameIndex, e.HeaderSize, e.TrailingSize)
}

// NoKeyframeBefore means previous_keyframe_index found no keyframe at or before the
// requested index — an invalid container per spec.
type NoKeyframeBefore struct {
	Index int
}

func (e *NoKeyframeBefore) Error() string {
	return fmt.Sprintf("no keyframe found at or before frame %d", e.Index)
}

// TranscodeFailed wraps a failure from the external texture transcoder.
type TranscodeFailed struct {
	Cause error
}

func (e *TranscodeFailed) Error() string { return fmt.Sprintf("texture transcode failed: %v", e.Cause) }
func (e *TranscodeFailed) Unwrap() error { return e.Cause }

// EncodeFailed wraps a failure from the external texture encoder.
type EncodeFailed struct {
	Cause error
}

func (e *EncodeFailed) Error() string { return fmt.Sprintf("texture encode failed: %v", e.Cause) }
func (e *EncodeFailed) Unwrap() error { return e.Cause }

// AllocationFailed means a scratch or working buffer could not be sized/allocated.
type AllocationFailed struct {
	Reason string
}

func (e *AllocationFailed) Error() string { return fmt.Sprintf("allocation failed: %s", e.Reason) }

// EmptyAudioSlice means no packets fell inside the requested [t0,t1) window.
type EmptyAudioSlice struct {
	T0, T1 float64
}

func (e *EmptyAudioSlice) Error() string {
	return fmt.Sprintf("no audio frames in window [%.3f,%.3f]s", e.T0, e.T1)
}
