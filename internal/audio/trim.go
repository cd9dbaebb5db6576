package audio

import (
	"bytes"

	"github.com/Volograms/vol-cl-tools/internal/volserr"
)

// Remuxer is the narrow external-collaborator interface the cut/convert
// pipeline depends on for audio, per the design note that C5 should not
// call directly into frame parsing details it doesn't own.
type Remuxer interface {
	// Trim returns the elementary-stream bytes for [t0,t1) seconds of data,
	// with frame start times rebased so the first selected frame begins at
	// time zero.
	Trim(data []byte, t0, t1 float64) ([]byte, error)
}

// DefaultRemuxer is the direct-scan Remuxer implementation.
type DefaultRemuxer struct{}

// Trim strips any leading ID3v2 tag, scans MPEG-1 Layer III frames, and
// concatenates the header+data bytes of every frame whose start time falls
// in [t0,t1). Frame boundaries are never split — a frame is either wholly
// included or wholly excluded, matching the frame-accurate trim contract.
func (DefaultRemuxer) Trim(data []byte, t0, t1 float64) ([]byte, error) {
	stripped, _ := StripID3v2(data)
	frames, err := Parse(stripped)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	selected := 0
	for _, f := range frames {
		if f.StartTime >= t0 && f.StartTime < t1 {
			out.Write(f.HeaderBytes)
			out.Write(f.Data)
			selected++
		}
	}
	if selected == 0 {
		return nil, &volserr.EmptyAudioSlice{T0: t0, T1: t1}
	}
	return out.Bytes(), nil
}

// Duration returns the total playback duration of an elementary stream: the
// end time of its last parsed frame, or 0 when no frame is found.
func Duration(data []byte) (float64, error) {
	stripped, _ := StripID3v2(data)
	frames, err := Parse(stripped)
	if err != nil {
		return 0, err
	}
	if len(frames) == 0 {
		return 0, nil
	}
	last := frames[len(frames)-1]
	return last.StartTime + last.Duration, nil
}
