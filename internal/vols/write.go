package vols

import "io"

// WriteHeader serializes h exactly as SerializedSize(h) predicts: the same
// magic style it was read with, the version-gated field set, little-endian
// throughout.
func WriteHeader(w io.Writer, h *Header) error {
	bw := &byteWriter{w: w}

	if h.FormatIFF {
		bw.writeN([]byte(magicVOLS))
	} else {
		bw.writeString(magicVOLS)
	}

	bw.writeU32(h.Version)
	bw.writeU32(h.Compression)

	shape := shapeFor(h.Version)

	if shape.HasLegacyNames {
		bw.writeString(h.MeshName)
		bw.writeString(h.Material)
		bw.writeString(h.Shader)
		bw.writeU32(h.Topology)
	}

	bw.writeU32(h.FrameCount)

	if shape.HasNormalsFlags {
		bw.writeBool(h.Normals)
		bw.writeBool(h.Textured)
	}

	if shape.HasV13TextureHdr {
		bw.writeU8(h.TextureCompression)
		bw.writeU8(h.TextureContainerFormat)
		bw.writeU32(h.TextureWidth)
		bw.writeU32(h.TextureHeight)
		bw.writeF32(h.FPS)
		if h.Audio {
			bw.writeU32(1)
		} else {
			bw.writeU32(0)
		}
		bw.writeU32(h.AudioStart)
		bw.writeU32(h.FrameBodyStart)
	} else if shape.HasLegacyTexture {
		bw.writeU16(uint16(h.TextureWidth))
		bw.writeU16(uint16(h.TextureHeight))
		bw.writeU16(h.TextureFormat)
	}

	if shape.HasTransform {
		for _, v := range h.Translation {
			bw.writeF32(v)
		}
		for _, v := range h.Rotation {
			bw.writeF32(v)
		}
		bw.writeF32(h.Scale)
	}

	return bw.err
}
