package framestore

import (
	"io"

	"github.com/Volograms/vol-cl-tools/internal/volserr"
	"github.com/Volograms/vol-cl-tools/internal/vols"
)

// Cache holds two resident frame slots: the currently decoded frame, and a
// dedicated slot for the most recently seen keyframe. Keeping a second slot
// means an inter-frame's vertices/normals stay addressable at the same time
// as the keyframe's indices/UVs that a reconstitution needs, without the
// reconstituted frame evicting the very keyframe it was built from.
type Cache struct {
	idx    *Index
	header *vols.Header

	current   *vols.FrameBody
	currentAt int

	keyframe   *vols.FrameBody
	keyframeAt int
}

// NewCache returns an empty two-slot cache over idx.
func NewCache(idx *Index, header *vols.Header) *Cache {
	return &Cache{idx: idx, header: header, currentAt: -1, keyframeAt: -1}
}

// Load reads frame i's header and body from r, which must be seeked
// somewhere the caller doesn't otherwise need; Load seeks to idx.Offsets[i]
// itself. The returned body is cached in the current slot, and also in the
// keyframe slot when i is a keyframe.
func (c *Cache) Load(r io.ReadSeeker, i int) (*vols.FrameHeader, *vols.FrameBody, error) {
	if i < 0 || i >= len(c.idx.Offsets) {
		return nil, nil, &volserr.CorruptFrame{FrameNumber: uint32(i), Reason: "frame index out of range"}
	}
	if _, err := r.Seek(c.idx.Offsets[i], io.SeekStart); err != nil {
		return nil, nil, err
	}
	fh, err := vols.ReadFrameHeader(r)
	if err != nil {
		return nil, nil, err
	}
	body, err := vols.ReadFrameBody(r, fh, c.header.Version, c.header.Normals, c.header.Textured)
	if err != nil {
		return nil, nil, err
	}

	c.current, c.currentAt = body, i
	if fh.IsKeyframe() {
		c.keyframe, c.keyframeAt = body, i
	}
	return fh, body, nil
}

// Keyframe returns the most recently loaded keyframe body and its index, or
// nil/-1 if none has been loaded yet.
func (c *Cache) Keyframe() (*vols.FrameBody, int) {
	return c.keyframe, c.keyframeAt
}

// EnsureKeyframeLoaded loads frame kfIndex into the keyframe slot if it
// isn't already resident there, without disturbing the current slot.
func (c *Cache) EnsureKeyframeLoaded(r io.ReadSeeker, kfIndex int) (*vols.FrameBody, error) {
	if c.keyframeAt == kfIndex && c.keyframe != nil {
		return c.keyframe, nil
	}
	if _, err := r.Seek(c.idx.Offsets[kfIndex], io.SeekStart); err != nil {
		return nil, err
	}
	fh, err := vols.ReadFrameHeader(r)
	if err != nil {
		return nil, err
	}
	body, err := vols.ReadFrameBody(r, fh, c.header.Version, c.header.Normals, c.header.Textured)
	if err != nil {
		return nil, err
	}
	if !fh.IsKeyframe() {
		return nil, &volserr.NoKeyframeBefore{Index: kfIndex}
	}
	c.keyframe, c.keyframeAt = body, kfIndex
	return body, nil
}

// PreviousKeyframeIndex scans idx backward from (and including) from for the
// nearest keyframe, matching the legacy cutter's backward scan used to
// reconstitute a keyframe at a cut boundary. It returns NoKeyframeBefore if
// no keyframe exists at or before from.
func PreviousKeyframeIndex(idx *Index, from int) (int, error) {
	for i := from; i >= 0; i-- {
		if idx.Keyframes[i] {
			return i, nil
		}
	}
	return -1, &volserr.NoKeyframeBefore{Index: from}
}
