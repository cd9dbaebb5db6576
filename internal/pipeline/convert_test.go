package pipeline

import (
	"bytes"
	"testing"

	"github.com/Volograms/vol-cl-tools/internal/audio"
	"github.com/Volograms/vol-cl-tools/internal/texture/basisstub"
	"github.com/Volograms/vol-cl-tools/internal/vols"
)

func buildNormalsContainer(t *testing.T) []byte {
	t.Helper()
	header := vols.Header{
		FormatIFF:  true,
		Version:    vols.Version12,
		FrameCount: 1,
		Normals:    true,
		Textured:   false,
	}
	var buf bytes.Buffer
	if err := vols.WriteHeader(&buf, &header); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	writeFrame(t, &buf, 0, vols.KeyframeStart, &vols.FrameBody{
		Vertices: []byte{1, 2, 3, 4},
		Normals:  []byte{5, 6, 7, 8},
		Indices:  []byte{0, 0, 1, 0, 2, 0},
		UVs:      []byte{1, 1, 2, 2, 3, 3, 4, 4},
	}, header.Version, header.Normals, header.Textured)
	return buf.Bytes()
}

func TestConvertStripsNormals(t *testing.T) {
	raw := buildNormalsContainer(t)
	ctx := NewContext(nil, basisstub.New(), audio.DefaultRemuxer{})

	var out bytes.Buffer
	rep, err := ctx.Convert(bytes.NewReader(raw), &out, ConvertOptions{StripNormals: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if rep.FramesWritten != 1 {
		t.Fatalf("frames written = %d, want 1", rep.FramesWritten)
	}

	outHeader, err := vols.ReadHeader(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("ReadHeader(output): %v", err)
	}
	if outHeader.Normals {
		t.Fatalf("output header should have normals=false after strip")
	}

	r := bytes.NewReader(out.Bytes())
	if _, err := r.Seek(int64(vols.SerializedSize(outHeader)), 0); err != nil {
		t.Fatalf("seek: %v", err)
	}
	fh, err := vols.ReadFrameHeader(r)
	if err != nil {
		t.Fatalf("ReadFrameHeader: %v", err)
	}
	body, err := vols.ReadFrameBody(r, fh, outHeader.Version, outHeader.Normals, outHeader.Textured)
	if err != nil {
		t.Fatalf("ReadFrameBody: %v", err)
	}
	if body.Normals != nil {
		t.Fatalf("expected no normals in stripped output body, got %v", body.Normals)
	}
	if !bytes.Equal(body.Vertices, []byte{1, 2, 3, 4}) {
		t.Fatalf("vertices altered unexpectedly: %v", body.Vertices)
	}
}
