package texture

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// rgbaFromDecoded wraps a DecodedImage's flat bytes in an *image.RGBA so it
// can be handed to golang.org/x/image/draw, the same resampler the teacher
// pack's ggrenderer.ResizeImage uses via draw.CatmullRom.
func rgbaFromDecoded(img *DecodedImage) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.RGBA)
	return out
}

func scaleRGBA(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// ResizeBasis decodes BASIS-encoded data with codec, resizes with a
// Catmull-Rom resampler, and re-encodes in the same compression mode.
func ResizeBasis(codec Codec, data []byte, useUASTC bool, width, height int) ([]byte, error) {
	decoded, err := codec.Decode(data, useUASTC)
	if err != nil {
		return nil, err
	}
	src := rgbaFromDecoded(decoded)
	dst := scaleRGBA(src, width, height)

	return codec.Encode(&DecodedImage{Width: width, Height: height, RGBA: dst.Pix}, useUASTC)
}

// ResizeRaw decodes a general-purpose raw image (PNG or JPEG, as produced by
// the legacy non-BASIS texture path), resizes it, and re-encodes it in the
// format it was decoded from.
func ResizeRaw(data []byte, width, height int) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	dst := scaleRGBA(src, width, height)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 92}); err != nil {
			return nil, err
		}
	default:
		if err := png.Encode(&buf, dst); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
