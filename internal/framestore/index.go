// Package framestore implements the frame store (C2): building a byte-offset
// index over a container's frame records without materializing every body,
// a two-slot buffer cache that keeps a keyframe's indices/UVs addressable
// alongside the currently-decoded frame, and the backward keyframe scan that
// keyframe reconstitution depends on. It follows the same "index first, walk
// offsets on demand" shape as the teacher's core/demux.go sample tables,
// generalized from MP4 stsc/stco/stsz/stss to vologram frame records.
package framestore

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/Volograms/vol-cl-tools/internal/volserr"
	"github.com/Volograms/vol-cl-tools/internal/vols"
)

// Index records, per frame, where its FrameHeader begins and whether it is
// a keyframe, plus the largest body size seen (for scratch-buffer sizing).
type Index struct {
	Offsets       []int64
	Keyframes     []bool
	BiggestBlobSz uint32
}

// BuildIndex walks header.FrameCount frame records starting at the reader's
// current position, seeking past each body's sub-arrays rather than reading
// them, and returns the resulting Index. r must support Seek.
func BuildIndex(r io.ReadSeeker, header *vols.Header) (*Index, error) {
	idx := &Index{
		Offsets:   make([]int64, header.FrameCount),
		Keyframes: make([]bool, header.FrameCount),
	}

	for i := uint32(0); i < header.FrameCount; i++ {
		off, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, errors.Wrap(err, "seeking to frame record")
		}
		idx.Offsets[i] = off

		fh, err := vols.ReadFrameHeader(r)
		if err != nil {
			return nil, err
		}
		idx.Keyframes[i] = fh.IsKeyframe()

		consumed, err := skipFrameBody(r, fh, header.Version, header.Normals, header.Textured)
		if err != nil {
			return nil, err
		}
		if consumed > idx.BiggestBlobSz {
			idx.BiggestBlobSz = consumed
		}
	}

	return idx, nil
}

// skipFrameBody advances r past one frame body by reading only the 4-byte
// size prefixes and seeking over the sub-array payloads, returning the total
// number of bytes the body occupied on disk. For version >= 12 that total
// includes the 4-byte trailing mesh_data_sz repeat, so it is fh.MeshDataSz + 4.
func skipFrameBody(r io.ReadSeeker, fh *vols.FrameHeader, version uint32, hasNormals, textured bool) (uint32, error) {
	var total uint32

	skip := func() error {
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return &volserr.CorruptFrame{FrameNumber: fh.FrameNumber, Reason: "truncated size prefix"}
		}
		n := binary.LittleEndian.Uint32(buf[:])
		if _, err := r.Seek(int64(n), io.SeekCurrent); err != nil {
			return &volserr.CorruptFrame{FrameNumber: fh.FrameNumber, Reason: "size prefix points past end of file"}
		}
		total += 4 + n
		return nil
	}

	if err := skip(); err != nil { // vertices
		return 0, err
	}
	if hasNormals {
		if err := skip(); err != nil {
			return 0, err
		}
	}
	if fh.IsKeyframe() {
		if err := skip(); err != nil { // indices
			return 0, err
		}
		if err := skip(); err != nil { // uvs
			return 0, err
		}
	}
	if textured {
		if err := skip(); err != nil {
			return 0, err
		}
	}

	hasTrailing := version >= vols.Version12
	if hasTrailing {
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, &volserr.CorruptFrame{FrameNumber: fh.FrameNumber, Reason: "truncated trailing mesh_data_sz"}
		}
		trailing := binary.LittleEndian.Uint32(buf[:])
		if trailing != fh.MeshDataSz {
			return 0, &volserr.IndexMismatch{
				FrameIndex:   int(fh.FrameNumber),
				HeaderSize:   fh.MeshDataSz,
				TrailingSize: trailing,
			}
		}
		total += 4
	}

	return total, nil
}
