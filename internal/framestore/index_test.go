package framestore

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Volograms/vol-cl-tools/internal/volserr"
	"github.com/Volograms/vol-cl-tools/internal/vols"
)

// writeTestFrame appends one frame record (header + body) to buf, with
// fh.MeshDataSz computed from body by vols.MeshDataSz.
func writeTestFrame(t *testing.T, buf *bytes.Buffer, frameNum uint32, keyframe uint8, body *vols.FrameBody, version uint32, hasNormals, textured bool) {
	t.Helper()
	isKeyframe := keyframe != vols.KeyframeInter
	meshSz := vols.MeshDataSz(body, hasNormals, isKeyframe, textured)
	fh := &vols.FrameHeader{FrameNumber: frameNum, MeshDataSz: meshSz, Keyframe: keyframe}
	if err := vols.WriteFrameHeader(buf, fh); err != nil {
		t.Fatalf("WriteFrameHeader: %v", err)
	}
	if err := vols.WriteFrameBody(buf, body, meshSz, version, hasNormals, isKeyframe, textured); err != nil {
		t.Fatalf("WriteFrameBody: %v", err)
	}
}

func TestBuildIndexAndCacheRoundTrip(t *testing.T) {
	header := &vols.Header{Version: vols.Version12, FrameCount: 3, Normals: false, Textured: false}

	var buf bytes.Buffer
	writeTestFrame(t, &buf, 0, vols.KeyframeStart, &vols.FrameBody{
		Vertices: []byte{1, 2, 3, 4},
		Indices:  []byte{0, 0, 1, 0},
		UVs:      []byte{1, 2, 3, 4},
	}, header.Version, header.Normals, header.Textured)
	writeTestFrame(t, &buf, 1, vols.KeyframeInter, &vols.FrameBody{
		Vertices: []byte{5, 6, 7, 8},
	}, header.Version, header.Normals, header.Textured)
	writeTestFrame(t, &buf, 2, vols.KeyframeInter, &vols.FrameBody{
		Vertices: []byte{9, 10, 11, 12},
	}, header.Version, header.Normals, header.Textured)

	r := bytes.NewReader(buf.Bytes())
	idx, err := BuildIndex(r, header)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if len(idx.Offsets) != 3 {
		t.Fatalf("offsets len = %d, want 3", len(idx.Offsets))
	}
	if !idx.Keyframes[0] || idx.Keyframes[1] || idx.Keyframes[2] {
		t.Fatalf("keyframe flags = %v, want [true false false]", idx.Keyframes)
	}

	cache := NewCache(idx, header)
	fh, body, err := cache.Load(r, 1)
	if err != nil {
		t.Fatalf("Load(1): %v", err)
	}
	if fh.FrameNumber != 1 || !bytes.Equal(body.Vertices, []byte{5, 6, 7, 8}) {
		t.Fatalf("loaded wrong frame: %+v %+v", fh, body)
	}

	kfIdx, err := PreviousKeyframeIndex(idx, 2)
	if err != nil {
		t.Fatalf("PreviousKeyframeIndex: %v", err)
	}
	if kfIdx != 0 {
		t.Fatalf("previous keyframe index = %d, want 0", kfIdx)
	}

	kfBody, err := cache.EnsureKeyframeLoaded(r, kfIdx)
	if err != nil {
		t.Fatalf("EnsureKeyframeLoaded: %v", err)
	}
	if !bytes.Equal(kfBody.Indices, []byte{0, 0, 1, 0}) {
		t.Fatalf("keyframe indices mismatch: %+v", kfBody)
	}
}

func TestPreviousKeyframeIndexNoneFound(t *testing.T) {
	idx := &Index{Offsets: []int64{0, 10}, Keyframes: []bool{false, false}}
	_, err := PreviousKeyframeIndex(idx, 1)
	var noKf *volserr.NoKeyframeBefore
	if !errors.As(err, &noKf) {
		t.Fatalf("expected NoKeyframeBefore, got %v", err)
	}
}

func TestFingerprintStable(t *testing.T) {
	body := &vols.FrameBody{Vertices: []byte{1, 2, 3}}
	if Fingerprint(body) != Fingerprint(body) {
		t.Fatalf("fingerprint not stable across calls")
	}
	other := &vols.FrameBody{Vertices: []byte{1, 2, 4}}
	if Fingerprint(body) == Fingerprint(other) {
		t.Fatalf("different bodies hashed identically")
	}
}
