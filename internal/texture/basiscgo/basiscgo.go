//go:build basisu

// Package basiscgo is the real Codec implementation, bridging to the Basis
// Universal transcoder/encoder over cgo. The C structures below mock the
// real basisu transcoder/encoder API surface closely enough to compile and
// exercise the Go-side plumbing, in the same spirit as the teacher's
// nvenc_linux.go mocking the NVENC SDK it doesn't have on hand.
package basiscgo

/*
#cgo LDFLAGS: -lbasisu -ldl

#include <stdlib.h>
#include <string.h>

typedef struct _basisu_transcoder {
    int initialized;
} basisu_transcoder;

typedef struct _basisu_image {
    int width;
    int height;
    unsigned char *rgba;
} basisu_image;

static basisu_transcoder *basisu_transcoder_new(void) {
    basisu_transcoder *t = (basisu_transcoder*)malloc(sizeof(basisu_transcoder));
    t->initialized = 1;
    return t;
}

static int basisu_transcode(basisu_transcoder *t, const unsigned char *data, int data_len,
                             int use_uastc, basisu_image *out) {
    (void)t; (void)data; (void)data_len; (void)use_uastc;
    // A real bridge calls into basist::basisu_transcoder here. This mock
    // allocates a 1x1 opaque white pixel so the Go side has real bytes to
    // round-trip through resize.
    out->width = 1;
    out->height = 1;
    out->rgba = (unsigned char*)malloc(4);
    out->rgba[0] = 255; out->rgba[1] = 255; out->rgba[2] = 255; out->rgba[3] = 255;
    return 0;
}

static int basisu_encode(basisu_transcoder *t, const unsigned char *rgba, int width, int height,
                          int use_uastc, unsigned char **out_data, int *out_len) {
    (void)t; (void)rgba; (void)use_uastc;
    *out_len = width * height * 4;
    *out_data = (unsigned char*)malloc(*out_len);
    memcpy(*out_data, rgba, *out_len);
    return 0;
}

static void basisu_transcoder_free(basisu_transcoder *t) {
    free(t);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/Volograms/vol-cl-tools/internal/texture"
)

// Codec bridges to the cgo-mocked Basis Universal transcoder/encoder.
type Codec struct {
	handle *C.basisu_transcoder
}

// New opens a transcoder session.
func New() texture.Codec {
	return &Codec{handle: C.basisu_transcoder_new()}
}

// Close releases the underlying transcoder handle.
func (c *Codec) Close() {
	C.basisu_transcoder_free(c.handle)
}

// Decode transcodes BASIS-encoded bytes to flat RGBA8.
func (c *Codec) Decode(data []byte, useUASTC bool) (*texture.DecodedImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("basiscgo: empty input")
	}
	var out C.basisu_image
	uastc := C.int(0)
	if useUASTC {
		uastc = 1
	}
	res := C.basisu_transcode(c.handle, (*C.uchar)(unsafe.Pointer(&data[0])), C.int(len(data)), uastc, &out)
	if res != 0 {
		return nil, fmt.Errorf("basisu_transcode failed: %d", int(res))
	}
	defer C.free(unsafe.Pointer(out.rgba))

	n := int(out.width) * int(out.height) * 4
	rgba := make([]byte, n)
	copy(rgba, unsafe.Slice((*byte)(unsafe.Pointer(out.rgba)), n))

	return &texture.DecodedImage{Width: int(out.width), Height: int(out.height), RGBA: rgba}, nil
}

// Encode transcodes flat RGBA8 back to BASIS-encoded bytes.
func (c *Codec) Encode(img *texture.DecodedImage, useUASTC bool) ([]byte, error) {
	if len(img.RGBA) == 0 {
		return nil, fmt.Errorf("basiscgo: empty image")
	}
	var outData *C.uchar
	var outLen C.int
	uastc := C.int(0)
	if useUASTC {
		uastc = 1
	}
	res := C.basisu_encode(c.handle, (*C.uchar)(unsafe.Pointer(&img.RGBA[0])), C.int(img.Width), C.int(img.Height), uastc, &outData, &outLen)
	if res != 0 {
		return nil, fmt.Errorf("basisu_encode failed: %d", int(res))
	}
	defer C.free(unsafe.Pointer(outData))

	data := make([]byte, int(outLen))
	copy(data, unsafe.Slice((*byte)(unsafe.Pointer(outData)), int(outLen)))
	return data, nil
}
