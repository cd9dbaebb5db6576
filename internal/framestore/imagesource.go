package framestore

// FrameImageSource abstracts the legacy split-file layout's per-frame
// texture lookup: some older vologram exports keep per-frame JPEG/PNG
// stills alongside the sequence file rather than embedding texture bytes in
// the frame body. CUT/CONVERT over that layout need a source of per-frame
// image bytes that isn't the container reader itself.
type FrameImageSource interface {
	// ImageForFrame returns the raw encoded image bytes for frame index i,
	// or nil if that frame has no associated image.
	ImageForFrame(i int) ([]byte, error)
}

// NoImages is a FrameImageSource that has no per-frame images, for
// containers whose texture is always embedded in the frame body.
type NoImages struct{}

// ImageForFrame always returns nil, nil.
func (NoImages) ImageForFrame(int) ([]byte, error) { return nil, nil }
