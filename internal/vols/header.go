// Package vols implements the bit-exact binary container codec: the
// versioned Header, the per-frame FrameHeader, and the per-frame FrameBody
// sub-array layout. It mirrors the teacher's offset-driven atom walk in
// core/probe.go and core/demux.go, generalized from MP4 boxes to vologram
// frame records, and its version dispatch follows the small-table approach
// spec.md §9 asks for rather than a per-version type hierarchy.
package vols

import (
	"io"

	"github.com/pkg/errors"

	"github.com/Volograms/vol-cl-tools/internal/volserr"
)

// Supported container versions.
const (
	Version10 = 10
	Version11 = 11
	Version12 = 12
	Version13 = 13
)

// Keyframe values as stored on disk — always one byte, never widened
// (spec.md §9 note 2).
const (
	KeyframeInter = 0
	KeyframeStart = 1
	KeyframeEnd   = 2
)

func supportedVersion(v uint32) bool {
	switch v {
	case Version10, Version11, Version12, Version13:
		return true
	}
	return false
}

// Header holds the union of every field shape described in spec.md §3. The
// serializer (write.go) consults Version to decide which fields to emit —
// a single struct with a version tag, per spec.md §9, not a type per version.
type Header struct {
	// FormatIFF records whether the format tag was read as the 4-byte IFF
	// magic "VOLS" or as a u8-length-prefixed string. Preserved from the
	// read so that an unmodified write reproduces the exact input bytes
	// (spec.md §8 P1).
	FormatIFF bool

	Version     uint32
	Compression uint32

	// Present only for Version < 13.
	MeshName string
	Material string
	Shader   string
	Topology uint32

	FrameCount uint32

	// Present for Version >= 11.
	Normals  bool
	Textured bool

	// Present for Version >= 13.
	TextureCompression     uint8
	TextureContainerFormat uint8
	FPS                    float32
	Audio                  bool
	AudioStart             uint32
	FrameBodyStart         uint32

	// TextureWidth/TextureHeight are present for Version >= 11. They are
	// stored on disk as uint16 for 11 <= Version < 13 and uint32 for
	// Version >= 13; this struct always holds the widened value.
	TextureWidth  uint32
	TextureHeight uint32

	// TextureFormat is present only for 11 <= Version < 13.
	TextureFormat uint16

	// Present only for 12 <= Version < 13.
	Translation [3]float32
	Rotation    [4]float32
	Scale       float32
}

const magicVOLS = "VOLS"

// ReadHeader recovers every field the output path of the same version will
// need, per spec.md §4.1's reader contract.
func ReadHeader(r io.Reader) (*Header, error) {
	br := &byteReader{r: r}

	first := br.readN(1)
	if br.err != nil {
		return nil, wrapShortHeader(br.err, 1, br.total)
	}

	h := &Header{}
	if first[0] == 'V' {
		rest := br.readN(3)
		if br.err != nil {
			return nil, wrapShortHeader(br.err, 4, br.total)
		}
		if string(rest) != "OLS" {
			return nil, &volserr.BadMagic{Got: string(first) + string(rest)}
		}
		h.FormatIFF = true
	} else {
		nameLen := first[0]
		if int(nameLen) != len(magicVOLS) {
			return nil, &volserr.BadMagic{Got: string(first)}
		}
		name := br.readN(int(nameLen))
		if br.err != nil {
			return nil, wrapShortHeader(br.err, int(nameLen)+1, br.total)
		}
		if string(name) != magicVOLS {
			return nil, &volserr.BadMagic{Got: string(name)}
		}
		h.FormatIFF = false
	}

	h.Version = br.readU32()
	if br.err != nil {
		return nil, wrapShortHeader(br.err, 4, br.total)
	}
	if !supportedVersion(h.Version) {
		return nil, &volserr.UnsupportedVersion{Version: h.Version}
	}

	h.Compression = br.readU32()

	shape := shapeFor(h.Version)

	if shape.HasLegacyNames {
		h.MeshName = br.readString()
		h.Material = br.readString()
		h.Shader = br.readString()
		h.Topology = br.readU32()
	}

	h.FrameCount = br.readU32()

	if shape.HasNormalsFlags {
		h.Normals = br.readBool()
		h.Textured = br.readBool()
	}

	if shape.HasV13TextureHdr {
		h.TextureCompression = br.readU8()
		h.TextureContainerFormat = br.readU8()
		h.TextureWidth = br.readU32()
		h.TextureHeight = br.readU32()
		h.FPS = br.readF32()
		h.Audio = br.readU32() != 0
		h.AudioStart = br.readU32()
		h.FrameBodyStart = br.readU32()
	} else if shape.HasLegacyTexture {
		h.TextureWidth = uint32(br.readU16())
		h.TextureHeight = uint32(br.readU16())
		h.TextureFormat = br.readU16()
	}

	if shape.HasTransform {
		for i := range h.Translation {
			h.Translation[i] = br.readF32()
		}
		for i := range h.Rotation {
			h.Rotation[i] = br.readF32()
		}
		h.Scale = br.readF32()
	}

	if br.err != nil {
		return nil, wrapShortHeader(br.err, br.total+8, br.total)
	}
	return h, nil
}

func wrapShortHeader(err error, want, got int) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &volserr.TruncatedHeader{Want: want, Got: got}
	}
	return errors.Wrap(err, "reading header")
}

// SerializedSize returns the exact number of bytes WriteHeader will emit for
// h, computed from the header shape and field widths rather than from a
// tell() after writing — spec.md §9 open question 1 requires this be
// deterministic so audio_start/frame_body_start can be computed up front.
func SerializedSize(h *Header) int {
	shape := shapeFor(h.Version)

	n := 0
	if h.FormatIFF {
		n += 4
	} else {
		n += 1 + len(magicVOLS)
	}
	n += 4 + 4 // version, compression

	if shape.HasLegacyNames {
		n += 1 + len(h.MeshName)
		n += 1 + len(h.Material)
		n += 1 + len(h.Shader)
		n += 4 // topology
	}

	n += 4 // frame_count

	if shape.HasNormalsFlags {
		n += 1 + 1 // normals, textured
	}

	if shape.HasV13TextureHdr {
		n += 1 + 1 + 4 + 4 + 4 + 4 + 4 + 4 // compression, container, w, h, fps, audio, audio_start, frame_body_start
	} else if shape.HasLegacyTexture {
		n += 2 + 2 + 2 // w, h, format
	}

	if shape.HasTransform {
		n += 4*3 + 4*4 + 4 // translation, rotation, scale
	}

	return n
}
