package framestore

import (
	xxhash "github.com/cespare/xxhash/v2"

	"github.com/Volograms/vol-cl-tools/internal/vols"
)

// Fingerprint returns a deterministic hash of a frame body's sub-arrays, for
// diagnostics such as telling whether two frame bodies carry the same data.
// The cut/convert pipeline does not call it.
func Fingerprint(body *vols.FrameBody) uint64 {
	h := xxhash.New()
	h.Write(body.Vertices)
	h.Write(body.Normals)
	h.Write(body.Indices)
	h.Write(body.UVs)
	h.Write(body.Texture)
	return h.Sum64()
}
