package vols

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Volograms/vol-cl-tools/internal/volserr"
)

func TestFrameBodyRoundTripV13Keyframe(t *testing.T) {
	body := &FrameBody{
		Vertices: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		Normals:  []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		Indices:  []byte{0, 0, 1, 0, 2, 0},
		UVs:      []byte{1, 2, 3, 4, 5, 6, 7, 8},
		Texture:  []byte{0xAA, 0xBB, 0xCC},
	}
	meshSz := MeshDataSz(body, true, true, true)

	var buf bytes.Buffer
	if err := WriteFrameBody(&buf, body, meshSz, Version13, true, true, true); err != nil {
		t.Fatalf("WriteFrameBody: %v", err)
	}

	fh := &FrameHeader{FrameNumber: 0, MeshDataSz: meshSz, Keyframe: KeyframeStart}
	got, err := ReadFrameBody(bytes.NewReader(buf.Bytes()), fh, Version13, true, true)
	if err != nil {
		t.Fatalf("ReadFrameBody: %v", err)
	}
	if !bytes.Equal(got.Vertices, body.Vertices) || !bytes.Equal(got.Indices, body.Indices) ||
		!bytes.Equal(got.UVs, body.UVs) || !bytes.Equal(got.Texture, body.Texture) {
		t.Fatalf("round trip body mismatch: got %+v, want %+v", got, body)
	}
}

func TestFrameBodyInterFrameNoIndices(t *testing.T) {
	body := &FrameBody{
		Vertices: []byte{1, 2, 3, 4},
	}
	meshSz := MeshDataSz(body, false, false, false)

	var buf bytes.Buffer
	if err := WriteFrameBody(&buf, body, meshSz, Version12, false, false, false); err != nil {
		t.Fatalf("WriteFrameBody: %v", err)
	}

	fh := &FrameHeader{FrameNumber: 5, MeshDataSz: meshSz, Keyframe: KeyframeInter}
	got, err := ReadFrameBody(bytes.NewReader(buf.Bytes()), fh, Version12, false, false)
	if err != nil {
		t.Fatalf("ReadFrameBody: %v", err)
	}
	if got.Indices != nil || got.UVs != nil {
		t.Fatalf("inter-frame should carry no indices/uvs, got %+v", got)
	}
}

func TestFrameBodyTrailingMismatchV12(t *testing.T) {
	body := &FrameBody{Vertices: []byte{1, 2, 3, 4}}
	correctSz := MeshDataSz(body, false, false, false)

	var buf bytes.Buffer
	_ = WriteFrameBody(&buf, body, correctSz, Version12, false, false, false)

	fh := &FrameHeader{FrameNumber: 1, MeshDataSz: correctSz + 1, Keyframe: KeyframeInter}
	_, err := ReadFrameBody(bytes.NewReader(buf.Bytes()), fh, Version12, false, false)
	var mismatch *volserr.IndexMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected IndexMismatch, got %v", err)
	}
}

func TestFrameBodyV10NoTrailingRepeat(t *testing.T) {
	// Versions 10/11 never append the trailing mesh_data_sz repeat, so the
	// serialized form is exactly the sum of per-array size-prefixed blocks.
	body := &FrameBody{
		Vertices: []byte{1, 2, 3, 4, 5, 6, 7, 8},
		Indices:  []byte{0, 0, 1, 0},
		UVs:      []byte{1, 2, 3, 4},
	}
	meshSz := MeshDataSz(body, false, true, false)

	var buf bytes.Buffer
	if err := WriteFrameBody(&buf, body, meshSz, Version10, false, true, false); err != nil {
		t.Fatalf("WriteFrameBody: %v", err)
	}
	if uint32(buf.Len()) != meshSz {
		t.Fatalf("v10 body length = %d, want exactly mesh_data_sz = %d (no trailing repeat)", buf.Len(), meshSz)
	}

	fh := &FrameHeader{FrameNumber: 0, MeshDataSz: meshSz, Keyframe: KeyframeStart}
	got, err := ReadFrameBody(bytes.NewReader(buf.Bytes()), fh, Version10, false, false)
	if err != nil {
		t.Fatalf("ReadFrameBody v10: %v", err)
	}
	if !bytes.Equal(got.Vertices, body.Vertices) || !bytes.Equal(got.Indices, body.Indices) {
		t.Fatalf("v10 round trip mismatch: got %+v", got)
	}
}
