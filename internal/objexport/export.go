package objexport

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Volograms/vol-cl-tools/internal/diskprobe"
	"github.com/Volograms/vol-cl-tools/internal/framestore"
	"github.com/Volograms/vol-cl-tools/internal/texture"
	"github.com/Volograms/vol-cl-tools/internal/vols"
)

// Names returns the obj/mtl/png filenames for frame index i under the
// <prefix><frame:05d>.{obj,mtl,png} naming convention.
func Names(prefix string, frame int) (obj, mtl, png string) {
	base := fmt.Sprintf("%s%05d", prefix, frame)
	return base + ".obj", base + ".mtl", base + ".png"
}

// ExportOptions configures one EXPORT run.
type ExportOptions struct {
	OutDir string
	Prefix string
}

// Run decodes each frame of the container read from r and writes its
// OBJ+MTL+still-image triple into opts.OutDir, reconstituting a keyframe's
// indices/UVs for any inter-frame exactly as Cut does, since an exported
// frame always needs a full index buffer to write faces.
func Run(r io.ReadSeeker, codec texture.Codec, opts ExportOptions) (int, error) {
	header, err := vols.ReadHeader(r)
	if err != nil {
		return 0, err
	}

	if err := diskprobe.EnsureDir(opts.OutDir, 0o755); err != nil {
		return 0, err
	}

	bodyStart := int64(vols.SerializedSize(header))
	if header.Version >= vols.Version13 {
		bodyStart = int64(header.FrameBodyStart)
	}
	if _, err := r.Seek(bodyStart, io.SeekStart); err != nil {
		return 0, errors.Wrap(err, "seeking to frame body region")
	}

	idx, err := framestore.BuildIndex(r, header)
	if err != nil {
		return 0, err
	}
	cache := framestore.NewCache(idx, header)

	materialName := header.Material
	if materialName == "" {
		materialName = "vol_material"
	}

	written := 0
	for i := 0; i < int(header.FrameCount); i++ {
		fh, body, err := cache.Load(r, i)
		if err != nil {
			return written, err
		}

		exportBody := body
		if !fh.IsKeyframe() {
			kfIdx, err := framestore.PreviousKeyframeIndex(idx, i)
			if err != nil {
				return written, err
			}
			kfBody, err := cache.EnsureKeyframeLoaded(r, kfIdx)
			if err != nil {
				return written, err
			}
			exportBody = &vols.FrameBody{
				Vertices: body.Vertices,
				Normals:  body.Normals,
				Indices:  kfBody.Indices,
				UVs:      kfBody.UVs,
				Texture:  body.Texture,
			}
		}

		objName, mtlName, pngName := Names(opts.Prefix, i)
		objPath := filepath.Join(opts.OutDir, objName)
		mtlPath := filepath.Join(opts.OutDir, mtlName)
		pngPath := filepath.Join(opts.OutDir, pngName)

		if err := writeFile(objPath, func(w io.Writer) error {
			return WriteOBJ(w, mtlName, materialName, exportBody, header.Normals)
		}); err != nil {
			return written, err
		}
		if err := writeFile(mtlPath, func(w io.Writer) error {
			return WriteMTL(w, materialName, pngName)
		}); err != nil {
			return written, err
		}

		if header.Textured && exportBody.Texture != nil {
			imgBytes := exportBody.Texture
			if header.Version >= vols.Version13 && header.TextureContainerFormat == texture.ContainerBasis {
				decoded, decErr := codec.Decode(exportBody.Texture, header.TextureCompression == texture.CompressionUASTC)
				switch {
				case decErr == nil:
					pngBytes, encErr := texture.EncodeDecodedToPNG(decoded)
					if encErr != nil {
						return written, encErr
					}
					imgBytes = pngBytes
				case errors.Is(decErr, texture.ErrTranscodeUnavailable):
					// No basis codec compiled in: fall through and let
					// WriteStillImage try to decode the raw bytes directly,
					// which will fail loudly if they truly are BASIS data.
				default:
					return written, decErr
				}
			}
			if err := WriteStillImage(pngPath, imgBytes); err != nil {
				return written, err
			}
		}

		written++
	}

	return written, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return err
	}
	return f.Close()
}
