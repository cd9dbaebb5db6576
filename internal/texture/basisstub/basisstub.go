//go:build !basisu

// Package basisstub is the default Codec: it performs no transcoding and
// reports ErrTranscodeUnavailable, matching the teacher's nvenc_stub.go
// behavior of failing loudly rather than silently skipping work when the
// real implementation wasn't compiled in.
package basisstub

import (
	"github.com/Volograms/vol-cl-tools/internal/texture"
)

// Codec is a texture.Codec that always fails.
type Codec struct{}

// New returns the stub Codec.
func New() texture.Codec { return Codec{} }

// Decode always returns ErrTranscodeUnavailable.
func (Codec) Decode(data []byte, useUASTC bool) (*texture.DecodedImage, error) {
	return nil, texture.ErrTranscodeUnavailable
}

// Encode always returns ErrTranscodeUnavailable.
func (Codec) Encode(img *texture.DecodedImage, useUASTC bool) ([]byte, error) {
	return nil, texture.ErrTranscodeUnavailable
}
