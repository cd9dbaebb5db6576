package pipeline

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/Volograms/vol-cl-tools/internal/framestore"
	"github.com/Volograms/vol-cl-tools/internal/vols"
)

// CutOptions selects a contiguous, inclusive frame range to extract, plus
// the same per-frame modifications Convert applies: §4.5 specifies C5 as a
// single orchestrator that can strip normals and resize the texture while
// it cuts, not two disjoint passes.
type CutOptions struct {
	StartFrame int
	EndFrame   int

	StripNormals bool

	ResizeTexture bool
	TextureWidth  int
	TextureHeight int
}

// Cut reads a container from in, extracts [opts.StartFrame, opts.EndFrame],
// renumbers the extracted frames starting at zero, reconstitutes a keyframe
// at the new frame zero if the range started on an inter-frame, reconstitutes
// an end-keyframe at the new last frame if the range holds two or more
// frames and that last frame is an inter-frame, optionally strips normals and
// resizes the texture, and writes the result to out. Audio (version >= 13
// only, embedded in the same file) is trimmed to the matching time window.
// No partial output is left behind on error: callers should write to a temp
// file and rename on success.
func (ctx *Context) Cut(in io.ReadSeeker, out io.Writer, opts CutOptions) (*Report, error) {
	startedAt := time.Now()
	rep := &Report{}

	header, err := vols.ReadHeader(in)
	if err != nil {
		return nil, err
	}
	if err := validateRange(header, opts.StartFrame, opts.EndFrame); err != nil {
		return nil, err
	}

	bodyStart, audioPayload, err := readEmbeddedAudio(in, header)
	if err != nil {
		return nil, err
	}

	if _, err := in.Seek(bodyStart, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "seeking to frame body region")
	}
	idx, err := framestore.BuildIndex(in, header)
	if err != nil {
		return nil, err
	}
	cache := framestore.NewCache(idx, header)

	newHeader := *header
	newHeader.FrameCount = uint32(opts.EndFrame-opts.StartFrame) + 1
	if opts.StripNormals {
		newHeader.Normals = false
	}
	if opts.ResizeTexture {
		newHeader.TextureWidth = uint32(opts.TextureWidth)
		newHeader.TextureHeight = uint32(opts.TextureHeight)
	}

	var outAudio []byte
	if header.Version >= vols.Version13 && header.Audio {
		t0 := float64(opts.StartFrame) / float64(header.FPS)
		t1 := float64(opts.EndFrame+1) / float64(header.FPS)
		outAudio, err = ctx.AudioRemuxer.Trim(audioPayload, t0, t1)
		if err != nil {
			return nil, err
		}
		rep.AudioDurationSec = t1 - t0
	}

	if header.Version >= vols.Version13 {
		newHeader.AudioStart, newHeader.FrameBodyStart = layoutOffsets(&newHeader, len(outAudio))
	}

	if err := vols.WriteHeader(out, &newHeader); err != nil {
		return nil, err
	}
	if header.Version >= vols.Version13 && header.Audio {
		if err := writeAudioBlob(out, outAudio); err != nil {
			return nil, err
		}
	}

	count := int(newHeader.FrameCount)
	for i := 0; i < count; i++ {
		srcIdx := opts.StartFrame + i
		forceAs := uint8(vols.KeyframeInter)
		if i == 0 {
			forceAs = vols.KeyframeStart
		}
		if count >= 2 && i == count-1 {
			forceAs = vols.KeyframeEnd
		}

		body, keyframeByte, reconstituted, err := reconstituteFrame(in, idx, cache, header, srcIdx, forceAs)
		if err != nil {
			return nil, err
		}
		if reconstituted {
			rep.ReconstitutedFrames++
		}
		isKeyframe := keyframeByte != vols.KeyframeInter

		outBody := &vols.FrameBody{
			Vertices: body.Vertices,
			Indices:  body.Indices,
			UVs:      body.UVs,
			Texture:  body.Texture,
		}
		if !opts.StripNormals {
			outBody.Normals = body.Normals
		}
		if opts.ResizeTexture && header.Textured && outBody.Texture != nil {
			resized, warning, err := resizeTextureForFrame(ctx, header, outBody.Texture, opts.TextureWidth, opts.TextureHeight, &rep.Texture)
			if err != nil {
				return nil, err
			}
			if warning != "" && ctx.Logger != nil {
				ctx.Logger.Warn(string(warning), logFrameField(uint32(i)))
			}
			outBody.Texture = resized
		}

		meshSz := vols.MeshDataSz(outBody, newHeader.Normals, isKeyframe, newHeader.Textured)
		fh := &vols.FrameHeader{FrameNumber: uint32(i), MeshDataSz: meshSz, Keyframe: keyframeByte}

		if err := vols.WriteFrameHeader(out, fh); err != nil {
			return nil, err
		}
		if err := vols.WriteFrameBody(out, outBody, meshSz, header.Version, newHeader.Normals, isKeyframe, newHeader.Textured); err != nil {
			return nil, err
		}
		rep.FramesWritten++
	}

	rep.Elapsed = time.Since(startedAt)
	return rep, nil
}

func validateRange(header *vols.Header, start, end int) error {
	if start < 0 || end < start || uint32(end) >= header.FrameCount {
		return errors.Errorf("invalid frame range [%d,%d] for container with %d frames", start, end, header.FrameCount)
	}
	return nil
}

// readEmbeddedAudio returns the frame-body start offset and, for a
// version >= 13 container with audio, the raw elementary-stream payload
// bytes between the audio_size prefix and frame_body_start — the prefix
// itself is validated against the region length and then discarded, never
// handed to a caller as if it were stream data. in is left positioned
// wherever it was after the read.
func readEmbeddedAudio(in io.ReadSeeker, header *vols.Header) (bodyStart int64, audio []byte, err error) {
	if header.Version < vols.Version13 {
		cur, err := in.Seek(0, io.SeekCurrent)
		return cur, nil, err
	}

	bodyStart = int64(header.FrameBodyStart)
	if !header.Audio {
		return bodyStart, nil, nil
	}

	n := int64(header.FrameBodyStart) - int64(header.AudioStart)
	if n < 4 {
		return bodyStart, nil, errors.New("frame_body_start precedes audio_start + audio_size prefix")
	}
	if _, err := in.Seek(int64(header.AudioStart), io.SeekStart); err != nil {
		return bodyStart, nil, errors.Wrap(err, "seeking to audio region")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(in, buf); err != nil {
		return bodyStart, nil, errors.Wrap(err, "reading embedded audio")
	}

	declaredSz := binary.LittleEndian.Uint32(buf[:4])
	payload := buf[4:]
	if int64(declaredSz) != int64(len(payload)) {
		return bodyStart, nil, errors.Errorf("audio_size %d does not match audio region length %d", declaredSz, len(payload))
	}
	return bodyStart, payload, nil
}
