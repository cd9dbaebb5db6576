package vols

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Volograms/vol-cl-tools/internal/volserr"
)

// buildV13Header writes a minimal, well-formed version 13 header by hand,
// in the same explicit-byte-construction style as the teacher's
// core/probe_test.go.
func buildV13Header(t *testing.T) []byte {
	t.Helper()
	h := &Header{
		FormatIFF:              true,
		Version:                Version13,
		Compression:            0,
		FrameCount:             3,
		Normals:                true,
		Textured:               true,
		TextureCompression:     1,
		TextureContainerFormat: 1,
		TextureWidth:           512,
		TextureHeight:          512,
		FPS:                    30,
		Audio:                  true,
		AudioStart:             1000,
		FrameBodyStart:         2000,
	}
	var buf bytes.Buffer
	if err := WriteHeader(&buf, h); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	return buf.Bytes()
}

func TestReadHeaderRoundTripV13(t *testing.T) {
	raw := buildV13Header(t)

	h, err := ReadHeader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.Version != Version13 {
		t.Fatalf("version = %d, want 13", h.Version)
	}
	if h.FrameCount != 3 {
		t.Fatalf("frame_count = %d, want 3", h.FrameCount)
	}
	if h.TextureWidth != 512 || h.TextureHeight != 512 {
		t.Fatalf("texture dims = %dx%d, want 512x512", h.TextureWidth, h.TextureHeight)
	}
	if h.AudioStart != 1000 || h.FrameBodyStart != 2000 {
		t.Fatalf("offsets = %d/%d, want 1000/2000", h.AudioStart, h.FrameBodyStart)
	}

	var out bytes.Buffer
	if err := WriteHeader(&out, h); err != nil {
		t.Fatalf("WriteHeader round-trip: %v", err)
	}
	if !bytes.Equal(raw, out.Bytes()) {
		t.Fatalf("round trip mismatch:\n got %x\nwant %x", out.Bytes(), raw)
	}
}

func TestSerializedSizeMatchesWrite(t *testing.T) {
	h := &Header{
		FormatIFF:   false,
		Version:     Version12,
		Compression: 0,
		MeshName:    "mesh",
		Material:    "material",
		Shader:      "shader",
		Topology:    1,
		FrameCount:  10,
		Normals:     true,
		Textured:    false,
	}
	var buf bytes.Buffer
	if err := WriteHeader(&buf, h); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if got, want := buf.Len(), SerializedSize(h); got != want {
		t.Fatalf("SerializedSize = %d, actual write = %d", want, got)
	}
}

func TestReadHeaderBadMagic(t *testing.T) {
	raw := []byte{'X', 'O', 'L', 'S', 13, 0, 0, 0}
	_, err := ReadHeader(bytes.NewReader(raw))
	var badMagic *volserr.BadMagic
	if !errors.As(err, &badMagic) {
		t.Fatalf("expected BadMagic, got %v", err)
	}
}

func TestReadHeaderUnsupportedVersion(t *testing.T) {
	raw := append([]byte("VOLS"), 99, 0, 0, 0)
	_, err := ReadHeader(bytes.NewReader(raw))
	var unsupported *volserr.UnsupportedVersion
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedVersion, got %v", err)
	}
}

func TestReadHeaderTruncated(t *testing.T) {
	raw := []byte("VO")
	_, err := ReadHeader(bytes.NewReader(raw))
	var truncated *volserr.TruncatedHeader
	if !errors.As(err, &truncated) {
		t.Fatalf("expected TruncatedHeader, got %v", err)
	}
}
