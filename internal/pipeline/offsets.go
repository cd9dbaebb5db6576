package pipeline

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/Volograms/vol-cl-tools/internal/vols"
)

// layoutOffsets computes audio_start/frame_body_start for a version >= 13
// single-file container deterministically from the header's own serialized
// size and the audio payload length that will follow it, resolving spec.md
// §9 open question 1: these offsets are never recovered via a seek-and-tell
// after the fact, they are computed up front so the header can be written
// once, in order, before the audio and frame bodies that follow it.
//
// audioPayloadLen is the length of the raw elementary-stream bytes, not
// counting the 4-byte audio_size prefix that precedes them on disk — when
// h.Audio is set, frame_body_start accounts for that prefix explicitly
// (audio_start + 4 + audio_size), matching P8.
func layoutOffsets(h *vols.Header, audioPayloadLen int) (audioStart, frameBodyStart uint32) {
	headerSize := uint32(vols.SerializedSize(h))
	audioStart = headerSize
	frameBodyStart = headerSize
	if h.Audio {
		frameBodyStart += 4 + uint32(audioPayloadLen)
	}
	return audioStart, frameBodyStart
}

// writeAudioBlob writes the on-disk audio region: a 4-byte little-endian
// audio_size prefix followed by payload. Called with the trimmed or
// passed-through elementary-stream bytes, never with the prefix already
// attached — the prefix is always freshly derived from len(payload) so it
// can never drift from the bytes that actually follow it.
func writeAudioBlob(w io.Writer, payload []byte) error {
	var sz [4]byte
	binary.LittleEndian.PutUint32(sz[:], uint32(len(payload)))
	if _, err := w.Write(sz[:]); err != nil {
		return errors.Wrap(err, "writing audio_size")
	}
	if _, err := w.Write(payload); err != nil {
		return errors.Wrap(err, "writing audio payload")
	}
	return nil
}
