// Package audio implements the audio trimmer (C4): direct MPEG-1 Layer III
// elementary-stream frame scanning and frame-accurate slicing. No in-pack
// mux/demux library targets a bare MP3 elementary stream — Eyevinn/mp4ff
// works at the MP4-box level, not the raw MPEG frame level — so this
// package scans frame headers directly, grounded on the field shapes in
// the other_examples mp3parser reference rather than on a library.
package audio

// ID3v2Header is the tag header stripped from the front of an MP3 stream
// before frame scanning, so a trimmed output never carries stale tag data.
type ID3v2Header struct {
	Version [2]byte
	Flags   byte
	Size    int
}

// FrameHeader is one MPEG-1 Layer III frame header, decoded from its 4
// leading bytes.
type FrameHeader struct {
	VersionID     int // 3 = MPEG-1
	Layer         int // 1 = Layer III
	ProtectionBit bool
	BitrateKbps   int
	SampleRateHz  int
	Padding       bool
	ChannelMode   int
	FrameLength   int // total bytes including the 4-byte header
}

// Frame is one complete MP3 frame as found in the stream.
type Frame struct {
	Header      *FrameHeader
	HeaderBytes []byte // the original 4 header bytes, never rewritten
	Data        []byte // payload following the header
	StartTime   float64
	Duration    float64
}
