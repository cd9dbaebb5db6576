package texture

import (
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// DecompressSupercompressed reverses zstd supercompression wrapping a BASIS
// payload (ContainerBasisZstd), the same scheme KTX2 files use to shrink an
// already-compressed BASIS blob further.
func DecompressSupercompressed(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.Wrap(err, "constructing zstd reader")
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "decompressing supercompressed texture")
	}
	return out, nil
}

// CompressSupercompressed applies zstd supercompression to a re-encoded
// BASIS payload before it is written back into a ContainerBasisZstd frame.
func CompressSupercompressed(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, errors.Wrap(err, "constructing zstd writer")
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}
