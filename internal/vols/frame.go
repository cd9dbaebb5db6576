package vols

import (
	"io"

	"github.com/Volograms/vol-cl-tools/internal/volserr"
)

// FrameHeader precedes every frame body: a renumberable frame index, the
// declared body size, and the one-byte keyframe marker.
type FrameHeader struct {
	FrameNumber uint32
	MeshDataSz  uint32
	Keyframe    uint8
}

// FrameBody holds the decoded sub-arrays for one frame, in canonical order.
// Normals is nil when the container has no normals; Indices/UVs are nil for
// inter-frames; Texture is nil when the frame carries no embedded texture
// update.
type FrameBody struct {
	Vertices []byte
	Normals  []byte
	Indices  []byte
	UVs      []byte
	Texture  []byte
}

// ReadFrameHeader reads the fixed-size record preceding a frame body.
func ReadFrameHeader(r io.Reader) (*FrameHeader, error) {
	br := &byteReader{r: r}
	fh := &FrameHeader{
		FrameNumber: br.readU32(),
		MeshDataSz:  br.readU32(),
		Keyframe:    br.readU8(),
	}
	if br.err != nil {
		if br.err == io.EOF || br.err == io.ErrUnexpectedEOF {
			return nil, &volserr.CorruptFrame{FrameNumber: fh.FrameNumber, Reason: "truncated frame header"}
		}
		return nil, br.err
	}
	return fh, nil
}

// WriteFrameHeader writes fh in the same fixed shape ReadFrameHeader expects.
func WriteFrameHeader(w io.Writer, fh *FrameHeader) error {
	bw := &byteWriter{w: w}
	bw.writeU32(fh.FrameNumber)
	bw.writeU32(fh.MeshDataSz)
	bw.writeU8(fh.Keyframe)
	return bw.err
}

// IsKeyframe reports whether fh carries indices and UVs.
func (fh *FrameHeader) IsKeyframe() bool {
	return fh.Keyframe != KeyframeInter
}

// ReadFrameBody reads the sub-arrays for one frame body. hasNormals and
// textured come from the container header; isKeyframe comes from fh.
//
// Versions 10 and 11 carry the same per-array size prefixes as version 12 —
// the container never omits the length of an array it wrote, since nothing
// else in the format would let a reader recover a vertex or index count —
// but skip the trailing repeated mesh_data_sz that versions >= 12 append
// (DESIGN.md records this as a resolved source ambiguity).
func ReadFrameBody(r io.Reader, fh *FrameHeader, version uint32, hasNormals, textured bool) (*FrameBody, error) {
	br := &byteReader{r: r}
	body := &FrameBody{}

	body.Vertices = readSizedArray(br)
	if hasNormals {
		body.Normals = readSizedArray(br)
	}
	if fh.IsKeyframe() {
		body.Indices = readSizedArray(br)
		body.UVs = readSizedArray(br)
	}
	if textured {
		body.Texture = readSizedArray(br)
	}

	if shapeFor(version).HasSizePrefixSum {
		trailing := br.readU32()
		if br.err == nil && trailing != fh.MeshDataSz {
			return nil, &volserr.IndexMismatch{
				FrameIndex:   int(fh.FrameNumber),
				HeaderSize:   fh.MeshDataSz,
				TrailingSize: trailing,
			}
		}
	}

	if br.err != nil {
		if br.err == io.EOF || br.err == io.ErrUnexpectedEOF {
			return nil, &volserr.CorruptFrame{FrameNumber: fh.FrameNumber, Reason: "truncated frame body"}
		}
		return nil, br.err
	}
	return body, nil
}

func readSizedArray(br *byteReader) []byte {
	n := br.readU32()
	if br.err != nil {
		return nil
	}
	return br.readN(int(n))
}

// MeshDataSz computes the sizing-invariant value for body under the given
// flags: the sum of each present sub-array's byte length plus one 4-byte
// size prefix per present field (spec.md §3, confirmed against
// original_source's vol2vol mesh_data_sz computation).
func MeshDataSz(body *FrameBody, hasNormals, isKeyframe, textured bool) uint32 {
	n := uint32(4 + len(body.Vertices))
	if hasNormals {
		n += uint32(4 + len(body.Normals))
	}
	if isKeyframe {
		n += uint32(4 + len(body.Indices))
		n += uint32(4 + len(body.UVs))
	}
	if textured && body.Texture != nil {
		n += uint32(4 + len(body.Texture))
	}
	return n
}

// WriteFrameBody writes body's sub-arrays in canonical order with the given
// flags, mirroring ReadFrameBody. The caller is responsible for having set
// fh.MeshDataSz to MeshDataSz(body, ...) before calling WriteFrameHeader.
func WriteFrameBody(w io.Writer, body *FrameBody, meshDataSz uint32, version uint32, hasNormals, isKeyframe, textured bool) error {
	bw := &byteWriter{w: w}

	writeSizedArray(bw, body.Vertices)
	if hasNormals {
		writeSizedArray(bw, body.Normals)
	}
	if isKeyframe {
		writeSizedArray(bw, body.Indices)
		writeSizedArray(bw, body.UVs)
	}
	if textured && body.Texture != nil {
		writeSizedArray(bw, body.Texture)
	}

	if shapeFor(version).HasSizePrefixSum {
		bw.writeU32(meshDataSz)
	}

	return bw.err
}

func writeSizedArray(bw *byteWriter, data []byte) {
	bw.writeU32(uint32(len(data)))
	bw.writeN(data)
}
