package texture

import (
	"bytes"
	"image/png"
)

// EncodeDecodedToPNG turns a DecodedImage's flat RGBA8 pixels into PNG
// bytes, used by the EXPORT path to save a still image without re-encoding
// back into BASIS.
func EncodeDecodedToPNG(img *DecodedImage) ([]byte, error) {
	rgba := rgbaFromDecoded(img)
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
