// Package pipeline implements the cut/convert pipeline (C5): it owns the
// per-run state (no package-level globals, per the design note that this
// codebase avoids process-wide singletons) and drives the sequential,
// one-frame-at-a-time loop that reads via internal/framestore, transcodes
// textures via internal/texture, trims audio via internal/audio, and writes
// a new container via internal/vols. Frames are never processed out of
// order or concurrently — that is an explicit non-goal of this tool.
package pipeline

import (
	"go.uber.org/zap"

	"github.com/Volograms/vol-cl-tools/internal/audio"
	"github.com/Volograms/vol-cl-tools/internal/texture"
)

// Context holds everything one Cut or Convert run needs, owned by the
// caller and passed by reference rather than reached for as a global.
type Context struct {
	Logger       *zap.Logger
	TextureCodec texture.Codec
	AudioRemuxer audio.Remuxer
}

// NewContext builds a Context from its collaborators. Passing a nil
// AudioRemuxer selects audio.DefaultRemuxer{}.
func NewContext(logger *zap.Logger, codec texture.Codec, remuxer audio.Remuxer) *Context {
	if remuxer == nil {
		remuxer = audio.DefaultRemuxer{}
	}
	return &Context{Logger: logger, TextureCodec: codec, AudioRemuxer: remuxer}
}
