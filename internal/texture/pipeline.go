package texture

import (
	"github.com/pkg/errors"

	"github.com/Volograms/vol-cl-tools/internal/volserr"
)

// Warning is returned alongside a passthrough result when the pipeline
// could not honor a resize request and fell back to emitting the input
// unchanged, mirroring the original tool's warning-and-continue behavior
// for unsupported codecs confirmed against original_source/tools/vol2vol.
type Warning string

// Resize applies a target width/height to one frame's texture bytes.
// containerFormat/compression come from the container header.
// Unsupported combinations (no codec compiled in, or an undecodable raw
// image) fall back to returning data unchanged with a non-empty warning,
// rather than failing the whole run — this spec keeps that behavior rather
// than promoting it to a hard error.
func Resize(codec Codec, data []byte, containerFormat, compression uint8, width, height int, rep *Report) ([]byte, Warning, error) {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return data, "", nil
	}

	if containerFormat == ContainerBasis || containerFormat == ContainerBasisZstd {
		payload := data
		if containerFormat == ContainerBasisZstd {
			plain, err := DecompressSupercompressed(data)
			if err != nil {
				return data, Warning("supercompressed texture could not be decompressed, passing through unresized"), nil
			}
			payload = plain
		}

		start := rep.markStart()
		useUASTC := compression == CompressionUASTC
		out, err := ResizeBasis(codec, payload, useUASTC, width, height)
		rep.recordTranscode(start)
		if err != nil {
			if errors.Is(err, ErrTranscodeUnavailable) {
				return data, Warning("basis transcoder unavailable, passing texture through unresized"), nil
			}
			return nil, "", &volserr.TranscodeFailed{Cause: err}
		}

		if containerFormat == ContainerBasisZstd {
			recompressed, err := CompressSupercompressed(out)
			if err != nil {
				return nil, "", &volserr.EncodeFailed{Cause: err}
			}
			return recompressed, "", nil
		}
		return out, "", nil
	}

	start := rep.markStart()
	out, err := ResizeRaw(data, width, height)
	rep.recordEncode(start)
	if err != nil {
		return data, Warning("unsupported raw texture codec, passing texture through unresized: " + err.Error()), nil
	}
	return out, "", nil
}
