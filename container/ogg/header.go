package ogg

import (
	"encoding/binary"
)

// Opus header constants per RFC 7845.
const (
	// DefaultPreSkip is the standard Opus encoder lookahead at 48kHz.
	// This is the number of samples to discard at the beginning of decode.
	DefaultPreSkip = 312

	// opusHeadMagic is the magic signature for the OpusHead header.
	opusHeadMagic = "OpusHead"

	// opusTagsMagic is the magic signature for the OpusTags header.
	opusTagsMagic = "OpusTags"

	// opusHeadMinSize is the minimum size of an OpusHead packet (mapping family 0).
	opusHeadMinSize = 19

	// opusHeadVersion is the required version number for OpusHead.
	opusHeadVersion = 1
)

// MappingFamilyRTP is the only mapping family this package supports: implicit
// mono/stereo channel order. Per the data model this module implements,
// OpusHead is always exactly 19 bytes; multistream/ambisonics mapping
// families (1, 2, 3, 255) are out of scope.
const MappingFamilyRTP = 0

// OpusHead is the identification header for Opus in Ogg.
// This appears in the first Ogg page (BOS) and describes the stream format.
// It is always exactly 19 bytes: mapping family 0 (mono/stereo, implicit
// channel order) only.
type OpusHead struct {
	// Version is the format version (must be 1).
	Version uint8

	// Channels is the output channel count (1 or 2).
	Channels uint8

	// PreSkip is the number of samples to discard at the start (at 48kHz).
	// Typically 312 for standard Opus encoder lookahead.
	PreSkip uint16

	// SampleRate is the original input sample rate (informational only).
	// Opus always operates at 48kHz internally.
	SampleRate uint32

	// OutputGain is the gain to apply in Q7.8 dB format.
	// Positive values amplify, negative values attenuate.
	OutputGain int16

	// MappingFamily is always MappingFamilyRTP (0).
	MappingFamily uint8
}

// Encode serializes the OpusHead to its 19-byte wire form.
func (h *OpusHead) Encode() []byte {
	data := make([]byte, opusHeadMinSize)
	copy(data[0:8], opusHeadMagic)
	data[8] = h.Version
	data[9] = h.Channels
	binary.LittleEndian.PutUint16(data[10:12], h.PreSkip)
	binary.LittleEndian.PutUint32(data[12:16], h.SampleRate)
	binary.LittleEndian.PutUint16(data[16:18], uint16(h.OutputGain))
	data[18] = h.MappingFamily
	return data
}

// ParseOpusHead parses an OpusHead from a 19-byte packet.
// Returns ErrInvalidHeader if the data is malformed.
func ParseOpusHead(data []byte) (*OpusHead, error) {
	if len(data) != opusHeadMinSize {
		return nil, ErrInvalidHeader
	}

	// Verify magic signature.
	if string(data[0:8]) != opusHeadMagic {
		return nil, ErrInvalidHeader
	}

	// Verify version.
	version := data[8]
	if version != opusHeadVersion {
		return nil, ErrInvalidHeader
	}

	h := &OpusHead{
		Version:       version,
		Channels:      data[9],
		PreSkip:       binary.LittleEndian.Uint16(data[10:12]),
		SampleRate:    binary.LittleEndian.Uint32(data[12:16]),
		OutputGain:    int16(binary.LittleEndian.Uint16(data[16:18])),
		MappingFamily: data[18],
	}

	if h.Channels == 0 || h.Channels > 2 {
		return nil, ErrInvalidHeader
	}
	if h.MappingFamily != MappingFamilyRTP {
		return nil, ErrInvalidHeader
	}

	return h, nil
}

// OpusTags is the comment header for Opus in Ogg.
// This appears in the second Ogg page and contains metadata.
type OpusTags struct {
	// Vendor is the encoder/converter name (e.g., "oggcaf").
	Vendor string

	// Comments is a map of user comments (key=value pairs).
	// Common keys: TITLE, ARTIST, ALBUM, DATE, TRACKNUMBER, etc.
	Comments map[string]string
}

// Encode serializes the OpusTags to bytes.
func (t *OpusTags) Encode() []byte {
	// Calculate size.
	// 8 bytes: "OpusTags"
	// 4 bytes: vendor string length
	// N bytes: vendor string
	// 4 bytes: comment count
	// For each comment:
	//   4 bytes: comment length
	//   N bytes: comment string ("KEY=value")

	size := 8 + 4 + len(t.Vendor) + 4
	for k, v := range t.Comments {
		size += 4 + len(k) + 1 + len(v) // "KEY=value"
	}

	data := make([]byte, size)
	offset := 0

	// Write magic.
	copy(data[offset:offset+8], opusTagsMagic)
	offset += 8

	// Write vendor string.
	binary.LittleEndian.PutUint32(data[offset:offset+4], uint32(len(t.Vendor)))
	offset += 4
	copy(data[offset:offset+len(t.Vendor)], t.Vendor)
	offset += len(t.Vendor)

	// Write comment count.
	binary.LittleEndian.PutUint32(data[offset:offset+4], uint32(len(t.Comments)))
	offset += 4

	// Write comments.
	for k, v := range t.Comments {
		comment := k + "=" + v
		binary.LittleEndian.PutUint32(data[offset:offset+4], uint32(len(comment)))
		offset += 4
		copy(data[offset:offset+len(comment)], comment)
		offset += len(comment)
	}

	return data
}

// ParseOpusTags parses an OpusTags from bytes.
// Returns ErrInvalidHeader if the data is malformed.
func ParseOpusTags(data []byte) (*OpusTags, error) {
	// Minimum size: 8 (magic) + 4 (vendor len) + 4 (comment count) = 16
	if len(data) < 16 {
		return nil, ErrInvalidHeader
	}

	// Verify magic signature.
	if string(data[0:8]) != opusTagsMagic {
		return nil, ErrInvalidHeader
	}

	offset := 8

	// Read vendor string length.
	vendorLen := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4

	if offset+int(vendorLen) > len(data) {
		return nil, ErrInvalidHeader
	}

	t := &OpusTags{
		Vendor:   string(data[offset : offset+int(vendorLen)]),
		Comments: make(map[string]string),
	}
	offset += int(vendorLen)

	// Read comment count.
	if offset+4 > len(data) {
		return nil, ErrInvalidHeader
	}
	commentCount := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4

	// Read comments.
	for i := uint32(0); i < commentCount; i++ {
		if offset+4 > len(data) {
			return nil, ErrInvalidHeader
		}
		commentLen := binary.LittleEndian.Uint32(data[offset : offset+4])
		offset += 4

		if offset+int(commentLen) > len(data) {
			return nil, ErrInvalidHeader
		}
		comment := string(data[offset : offset+int(commentLen)])
		offset += int(commentLen)

		// Split on first '=' to get key=value.
		for j := 0; j < len(comment); j++ {
			if comment[j] == '=' {
				key := comment[:j]
				value := comment[j+1:]
				t.Comments[key] = value
				break
			}
		}
	}

	return t, nil
}

// DefaultOpusHead returns an OpusHead with standard settings.
// sampleRate is the original input sample rate (informational).
// channels is 1 for mono, 2 for stereo.
func DefaultOpusHead(sampleRate uint32, channels uint8) *OpusHead {
	return &OpusHead{
		Version:       opusHeadVersion,
		Channels:      channels,
		PreSkip:       DefaultPreSkip,
		SampleRate:    sampleRate,
		OutputGain:    0,
		MappingFamily: MappingFamilyRTP,
	}
}

// DefaultOpusTags returns an OpusTags with this package's vendor string.
func DefaultOpusTags() *OpusTags {
	return &OpusTags{
		Vendor:   "oggcaf",
		Comments: make(map[string]string),
	}
}
