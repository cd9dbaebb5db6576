package audio

import (
	"github.com/pkg/errors"
)

const samplesPerFrameLayer3MPEG1 = 1152

var bitrateTableLayer3MPEG1 = [16]int{
	0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0,
}

var sampleRateTableMPEG1 = [4]int{44100, 48000, 32000, 0}

// StripID3v2 returns data with a leading ID3v2 tag removed, if present, and
// the parsed header (nil if none was found).
func StripID3v2(data []byte) ([]byte, *ID3v2Header) {
	if len(data) < 10 || string(data[0:3]) != "ID3" {
		return data, nil
	}
	size := int(data[6]&0x7f)<<21 | int(data[7]&0x7f)<<14 | int(data[8]&0x7f)<<7 | int(data[9]&0x7f)
	h := &ID3v2Header{Version: [2]byte{data[3], data[4]}, Flags: data[5], Size: size}
	end := 10 + size
	if end > len(data) {
		end = len(data)
	}
	return data[end:], h
}

// ParseFrameHeader decodes a 4-byte MPEG-1 Layer III frame header. It
// returns an error if the sync pattern, version, or layer don't match.
func ParseFrameHeader(b []byte) (*FrameHeader, error) {
	if len(b) < 4 {
		return nil, errors.New("short frame header")
	}
	if b[0] != 0xFF || b[1]&0xE0 != 0xE0 {
		return nil, errors.New("missing frame sync")
	}

	versionID := int(b[1]>>3) & 0x3
	layer := int(b[1]>>1) & 0x3
	protection := b[1]&0x1 == 0

	if versionID != 3 || layer != 1 {
		return nil, errors.Errorf("unsupported mpeg version/layer %d/%d (only MPEG-1 Layer III)", versionID, layer)
	}

	bitrateIdx := int(b[2]>>4) & 0xF
	sampleRateIdx := int(b[2]>>2) & 0x3
	padding := b[2]&0x2 != 0
	channelMode := int(b[3]>>6) & 0x3

	bitrate := bitrateTableLayer3MPEG1[bitrateIdx]
	sampleRate := sampleRateTableMPEG1[sampleRateIdx]
	if bitrate == 0 || sampleRate == 0 {
		return nil, errors.New("reserved bitrate or sample rate index")
	}

	frameLen := 144*bitrate*1000/sampleRate + boolToInt(padding)

	return &FrameHeader{
		VersionID:     versionID,
		Layer:         layer,
		ProtectionBit: protection,
		BitrateKbps:   bitrate,
		SampleRateHz:  sampleRate,
		Padding:       padding,
		ChannelMode:   channelMode,
		FrameLength:   frameLen,
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Parse scans data (after any leading ID3v2 tag has been stripped) into a
// sequence of Frames, stamping each with its start time and duration so a
// caller can slice by time without re-deriving bitrate/sample-rate math.
func Parse(data []byte) ([]*Frame, error) {
	var frames []*Frame
	t := 0.0
	i := 0
	for i+4 <= len(data) {
		hdr, err := ParseFrameHeader(data[i : i+4])
		if err != nil {
			i++
			continue
		}
		end := i + hdr.FrameLength
		if end > len(data) {
			break
		}
		dur := float64(samplesPerFrameLayer3MPEG1) / float64(hdr.SampleRateHz)
		frames = append(frames, &Frame{
			Header:      hdr,
			HeaderBytes: data[i : i+4],
			Data:        data[i+4 : end],
			StartTime:   t,
			Duration:    dur,
		})
		t += dur
		i = end
	}
	return frames, nil
}
