package ogg

import (
	"math/rand"
	"time"
)

// maxSegmentsPerPage and maxPageBodyBytes bound how much a single page can
// carry before BuildFile must flush it and start a new one: at most 255
// segment-table entries, and at most 255*255 bytes of lacing-described
// payload (the largest value representable by 255 lacing bytes of 255
// each).
const (
	maxSegmentsPerPage = 255
	maxPageBodyBytes   = 255 * 255
)

// BuildOptions configures BuildFile. It carries exactly the fields a CAF
// source provides: no live encoder is involved, so packets and their sizes
// are already known up front.
type BuildOptions struct {
	// SampleRate is the OpusHead input sample rate. When Repackage is
	// false it also scales the granule step (see Repackage).
	SampleRate uint32

	// Channels is the output channel count (1 or 2; mapping family 0).
	Channels uint8

	// FrameSize is the number of samples at SampleRate represented by each
	// packet (desc.framesPerPacket on the CAF side). It is also written
	// as the Ogg pre-skip (see DESIGN.md Open Question 2): this mirrors
	// the reference converter's behavior rather than RFC 7845 pre-skip
	// semantics.
	FrameSize int

	// Repackage, when true, advances the granule position by FrameSize
	// per packet regardless of SampleRate. When false, it advances by
	// FrameSize*48000/SampleRate, the correction needed when SampleRate
	// is not already 48kHz (OPUS granule position is always expressed
	// at 48kHz).
	Repackage bool

	// Serial is the bitstream serial number. Zero means derive one from
	// the wall clock.
	Serial uint32
}

// BuildFile assembles a complete Ogg Opus byte stream from packet sizes and
// their concatenated payload, as produced by a CAF packet table and data
// chunk. It packs as many packets as fit into each page (up to RFC 3533's
// 255-segment lacing limit), matching how a typical Ogg Opus encoder lays
// out pages, rather than one packet per page.
func BuildFile(packetSizes []uint32, audioData []byte, opts BuildOptions) []byte {
	serial := opts.Serial
	if serial == 0 {
		serial = rand.New(rand.NewSource(time.Now().UnixNano())).Uint32()
	}

	var out []byte
	var pageSeq uint32

	head := &OpusHead{
		Version:       opusHeadVersion,
		Channels:      opts.Channels,
		PreSkip:       uint16(opts.FrameSize),
		SampleRate:    opts.SampleRate,
		OutputGain:    0,
		MappingFamily: MappingFamilyRTP,
	}
	out = append(out, (&Page{
		HeaderType:   PageFlagBOS,
		SerialNumber: serial,
		PageSequence: pageSeq,
		Segments:     BuildSegmentTable(len(head.Encode())),
		Payload:      head.Encode(),
	}).Encode()...)
	pageSeq++

	tagsPayload := DefaultOpusTags().Encode()
	out = append(out, (&Page{
		HeaderType:   0,
		SerialNumber: serial,
		PageSequence: pageSeq,
		Segments:     BuildSegmentTable(len(tagsPayload)),
		Payload:      tagsPayload,
	}).Encode()...)
	pageSeq++

	packets := splitPackets(packetSizes, audioData)

	var granule uint64
	var curSegs []byte
	var curBody []byte
	headerType := byte(PageFlagContinuation)

	flush := func(final bool) {
		ht := headerType
		if final {
			ht |= PageFlagEOS
		}
		out = append(out, (&Page{
			HeaderType:   ht,
			GranulePos:   granule,
			SerialNumber: serial,
			PageSequence: pageSeq,
			Segments:     curSegs,
			Payload:      curBody,
		}).Encode()...)
		pageSeq++
		curSegs = nil
		curBody = nil
		headerType = 0
	}

	for _, pkt := range packets {
		segs := BuildSegmentTable(len(pkt))
		off := 0
		for _, segLen := range segs {
			if len(curSegs) == maxSegmentsPerPage || len(curBody)+int(segLen) > maxPageBodyBytes {
				flush(false)
			}
			curSegs = append(curSegs, segLen)
			curBody = append(curBody, pkt[off:off+int(segLen)]...)
			off += int(segLen)
		}

		if opts.Repackage {
			granule += uint64(opts.FrameSize)
		} else {
			granule += uint64(opts.FrameSize) * 48000 / uint64(opts.SampleRate)
		}
	}
	flush(true)

	return out
}

// splitPackets reconstitutes individual packets from a flat audio buffer
// and their sizes, as stored in a CAF data/pakt chunk pair.
func splitPackets(sizes []uint32, audioData []byte) [][]byte {
	packets := make([][]byte, len(sizes))
	offset := 0
	for i, s := range sizes {
		packets[i] = audioData[offset : offset+int(s)]
		offset += int(s)
	}
	return packets
}
