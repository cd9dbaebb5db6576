package pipeline

import (
	"time"

	"github.com/Volograms/vol-cl-tools/internal/texture"
)

// Report summarizes one Cut or Convert run: how many frames were written,
// how many needed keyframe reconstitution, texture timing, and the trimmed
// audio's resulting duration.
type Report struct {
	FramesWritten       int
	ReconstitutedFrames int
	Texture             texture.Report
	AudioDurationSec    float64
	Elapsed             time.Duration
}
