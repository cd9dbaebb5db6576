// Package objexport implements the EXPORT operation: one OBJ+MTL+still-image
// triple per frame. The vertex/normal X-negation and the reversed c,b,a face
// winding are carried over exactly from original_source/tools/vol2obj/main.c
// (VOLS meshes are wound clockwise; OBJ convention is counter-clockwise), and
// the fixed MTL material block is copied verbatim from the same tool. Only
// 16-bit index buffers are supported, matching that tool's assertion and
// this tool's explicit non-goal of supporting wider index types.
package objexport

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/Volograms/vol-cl-tools/internal/vols"
)

// WriteMTL writes the fixed material block vol2obj always emits, naming the
// texture image imageFile.
func WriteMTL(w io.Writer, materialName, imageFile string) error {
	_, err := fmt.Fprintf(w,
		"newmtl %s\n"+
			"map_Kd %s\n"+
			"map_Ka %s\n"+
			"Ka 0.1 0.1 0.1\n"+
			"Kd 0.9 0.9 0.9\n"+
			"Ks 0.0 0.0 0.0\n"+
			"d 1.0\n"+
			"Tr 0.0\n"+
			"Ns 0.0\n",
		materialName, imageFile, imageFile,
	)
	return err
}

// WriteOBJ writes body as an OBJ mesh, referencing mtlFile via mtllib and
// materialName via usemtl. hasNormals controls whether normals and the
// v/vt/vn face form are emitted (otherwise faces use the v/vt form). Indices must be a flat uint16 buffer
// (index_type 1); any other width is rejected.
func WriteOBJ(w io.Writer, mtlFile, materialName string, body *vols.FrameBody, hasNormals bool) error {
	if len(body.Indices)%2 != 0 {
		return errors.New("index buffer is not a whole number of uint16 values; only 16-bit indices are supported")
	}
	if len(body.Vertices)%12 != 0 {
		return errors.New("vertex buffer is not a whole number of float3 vertices")
	}
	if len(body.UVs)%8 != 0 {
		return errors.New("uv buffer is not a whole number of float2 uvs")
	}

	if _, err := fmt.Fprintf(w, "#Exported by vol-cl-tools vol2obj\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "mtllib %s\nusemtl %s\n", mtlFile, materialName); err != nil {
		return err
	}

	nVerts := len(body.Vertices) / 12
	for i := 0; i < nVerts; i++ {
		x := readF32LE(body.Vertices, i*12)
		y := readF32LE(body.Vertices, i*12+4)
		z := readF32LE(body.Vertices, i*12+8)
		if _, err := fmt.Fprintf(w, "v %0.3f %0.3f %0.3f\n", -x, y, z); err != nil {
			return err
		}
	}

	nUVs := len(body.UVs) / 8
	for i := 0; i < nUVs; i++ {
		u := readF32LE(body.UVs, i*8)
		v := readF32LE(body.UVs, i*8+4)
		if _, err := fmt.Fprintf(w, "vt %0.3f %0.3f\n", u, v); err != nil {
			return err
		}
	}

	if hasNormals {
		nNormals := len(body.Normals) / 12
		for i := 0; i < nNormals; i++ {
			x := readF32LE(body.Normals, i*12)
			y := readF32LE(body.Normals, i*12+4)
			z := readF32LE(body.Normals, i*12+8)
			if _, err := fmt.Fprintf(w, "vn %0.3f %0.3f %0.3f\n", -x, y, z); err != nil {
				return err
			}
		}
	}

	nTris := len(body.Indices) / 2 / 3
	for i := 0; i < nTris; i++ {
		a := int(binary.LittleEndian.Uint16(body.Indices[i*6:])) + 1
		b := int(binary.LittleEndian.Uint16(body.Indices[i*6+2:])) + 1
		c := int(binary.LittleEndian.Uint16(body.Indices[i*6+4:])) + 1

		// VOLS winding is clockwise; OBJ expects counter-clockwise, so the
		// triangle is emitted in reverse order (c, b, a).
		var err error
		if hasNormals {
			_, err = fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", c, c, c, b, b, b, a, a, a)
		} else {
			_, err = fmt.Fprintf(w, "f %d/%d %d/%d %d/%d\n", c, c, b, b, a, a)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func readF32LE(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}
