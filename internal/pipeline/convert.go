package pipeline

import (
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/Volograms/vol-cl-tools/internal/framestore"
	"github.com/Volograms/vol-cl-tools/internal/vols"
)

// ConvertOptions selects which modifications to apply while rewriting a
// container. Every frame is kept — unlike Cut, Convert never changes
// frame_count — but a frame's sub-arrays and the embedded texture/audio may
// be rewritten.
type ConvertOptions struct {
	StripNormals bool

	ResizeTexture bool
	TextureWidth  int
	TextureHeight int

	TrimAudio       bool
	AudioStartFrame int
	AudioEndFrame   int
}

// Convert rewrites a container applying opts, writing the result to out.
func (ctx *Context) Convert(in io.ReadSeeker, out io.Writer, opts ConvertOptions) (*Report, error) {
	startedAt := time.Now()
	rep := &Report{}

	header, err := vols.ReadHeader(in)
	if err != nil {
		return nil, err
	}

	newHeader := *header
	if opts.StripNormals {
		newHeader.Normals = false
	}
	if opts.ResizeTexture {
		newHeader.TextureWidth = uint32(opts.TextureWidth)
		newHeader.TextureHeight = uint32(opts.TextureHeight)
	}

	bodyStart, audioPayload, err := readEmbeddedAudio(in, header)
	if err != nil {
		return nil, err
	}

	outAudio := audioPayload
	if header.Version >= vols.Version13 && header.Audio && opts.TrimAudio {
		if opts.AudioEndFrame < opts.AudioStartFrame {
			return nil, errors.Errorf("invalid audio trim range [%d,%d]", opts.AudioStartFrame, opts.AudioEndFrame)
		}
		t0 := float64(opts.AudioStartFrame) / float64(header.FPS)
		t1 := float64(opts.AudioEndFrame+1) / float64(header.FPS)
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

	if _, err := in.Seek(bodyStart, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "seeking to frame body region")
	}
	idx, err := framestore.BuildIndex(in, header)
	if err != nil {
		return nil, err
	}
	cache := framestore.NewCache(idx, header)

	for i := 0; i < int(header.FrameCount); i++ {
		fh, body, err := cache.Load(in, i)
		if err != nil {
			return nil, err
		}

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
				ctx.Logger.Warn(string(warning), logFrameField(fh.FrameNumber))
			}
			outBody.Texture = resized
		}

		isKeyframe := fh.IsKeyframe()
		meshSz := vols.MeshDataSz(outBody, newHeader.Normals, isKeyframe, newHeader.Textured)
		outFH := &vols.FrameHeader{FrameNumber: fh.FrameNumber, MeshDataSz: meshSz, Keyframe: fh.Keyframe}

		if err := vols.WriteFrameHeader(out, outFH); err != nil {
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
