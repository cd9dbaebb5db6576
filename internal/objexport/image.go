package objexport

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// WriteStillImage decodes raw encoded image bytes (PNG, JPEG, or a
// BASIS-decoded RGBA buffer already turned into one of those by the caller)
// and saves it as a PNG at path, using the same gg.Context the rest of this
// tool's pack uses for canvas work.
func WriteStillImage(path string, encoded []byte) error {
	img, _, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		return errors.Wrap(err, "decoding frame texture for still-image export")
	}

	ctx := gg.NewContextForImage(img)
	if err := ctx.SavePNG(path); err != nil {
		return errors.Wrapf(err, "saving still image %s", path)
	}
	return nil
}
