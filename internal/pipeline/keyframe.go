package pipeline

import (
	"io"

	"github.com/Volograms/vol-cl-tools/internal/framestore"
	"github.com/Volograms/vol-cl-tools/internal/vols"
)

// reconstituteFrame builds the body and on-disk keyframe flag for an output
// frame at source index srcIdx. When forceAs is vols.KeyframeInter, the
// frame's own on-disk flag is kept as-is. Otherwise, if the frame wasn't
// already naturally a keyframe, it is promoted to forceAs (KeyframeStart or
// KeyframeEnd), borrowing indices/UVs from the nearest keyframe at or before
// it while keeping its own vertices, normals, and texture. This mirrors
// writeCutSequencetoVOLS in the legacy cutter: the first frame of a cut
// range is always promoted to a start-keyframe, and — when the range holds
// two or more frames — the last frame is likewise promoted to an
// end-keyframe if it wasn't already one.
func reconstituteFrame(r io.ReadSeeker, idx *framestore.Index, cache *framestore.Cache, header *vols.Header, srcIdx int, forceAs uint8) (*vols.FrameBody, uint8, bool, error) {
	fh, body, err := cache.Load(r, srcIdx)
	if err != nil {
		return nil, 0, false, err
	}

	if fh.IsKeyframe() {
		return body, fh.Keyframe, false, nil
	}
	if forceAs == vols.KeyframeInter {
		return body, fh.Keyframe, false, nil
	}

	kfIdx, err := framestore.PreviousKeyframeIndex(idx, srcIdx)
	if err != nil {
		return nil, 0, false, err
	}
	kfBody, err := cache.EnsureKeyframeLoaded(r, kfIdx)
	if err != nil {
		return nil, 0, false, err
	}
	// Re-load srcIdx into the current slot: EnsureKeyframeLoaded only
	// touches the keyframe slot, but reload to guarantee body wasn't
	// aliased away by a two-slot eviction.
	_, body, err = cache.Load(r, srcIdx)
	if err != nil {
		return nil, 0, false, err
	}

	reconstituted := &vols.FrameBody{
		Vertices: body.Vertices,
		Normals:  body.Normals,
		Indices:  kfBody.Indices,
		UVs:      kfBody.UVs,
		Texture:  body.Texture,
	}
	return reconstituted, forceAs, true, nil
}
