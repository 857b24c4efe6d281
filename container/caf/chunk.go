package caf

import (
	"encoding/binary"
	"math"
)

// chunkHeaderSize is the fixed 12-byte chunk header: a 4-byte FourCC type
// followed by an 8-byte big-endian chunk size (payload only).
const chunkHeaderSize = 12

// Chunk is a tagged variant over the CAF chunk kinds this package
// understands. Each concrete type owns its own encode/decode logic;
// encodeChunk and ReadFile handle the shared 12-byte envelope.
type Chunk interface {
	// ChunkType returns this chunk's FourCC.
	ChunkType() FourCC

	// EncodePayload returns the chunk's payload, not including the
	// 12-byte chunk header.
	EncodePayload() []byte
}

// AudioDescription is the "desc" chunk: the fixed-size audio format
// description every CAF file carries.
type AudioDescription struct {
	SampleRate        float64
	FormatID          FourCC
	FormatFlags       uint32
	BytesPerPacket    uint32
	FramesPerPacket   uint32
	ChannelsPerPacket uint32
	BitsPerChannel    uint32
}

func (d *AudioDescription) ChunkType() FourCC { return fourCCDesc }

func (d *AudioDescription) EncodePayload() []byte {
	buf := make([]byte, 32)
	binary.BigEndian.PutUint64(buf[0:8], math.Float64bits(d.SampleRate))
	copy(buf[8:12], d.FormatID[:])
	binary.BigEndian.PutUint32(buf[12:16], d.FormatFlags)
	binary.BigEndian.PutUint32(buf[16:20], d.BytesPerPacket)
	binary.BigEndian.PutUint32(buf[20:24], d.FramesPerPacket)
	binary.BigEndian.PutUint32(buf[24:28], d.ChannelsPerPacket)
	binary.BigEndian.PutUint32(buf[28:32], d.BitsPerChannel)
	return buf
}

func decodeAudioDescription(payload []byte) (*AudioDescription, error) {
	if len(payload) < 32 {
		return nil, ErrTruncated
	}
	var fid FourCC
	copy(fid[:], payload[8:12])
	return &AudioDescription{
		SampleRate:        math.Float64frombits(binary.BigEndian.Uint64(payload[0:8])),
		FormatID:          fid,
		FormatFlags:       binary.BigEndian.Uint32(payload[12:16]),
		BytesPerPacket:    binary.BigEndian.Uint32(payload[16:20]),
		FramesPerPacket:   binary.BigEndian.Uint32(payload[20:24]),
		ChannelsPerPacket: binary.BigEndian.Uint32(payload[24:28]),
		BitsPerChannel:    binary.BigEndian.Uint32(payload[28:32]),
	}, nil
}

// Channel layout tags used by this package (kAudioChannelLayoutTag_* from
// Apple's CoreAudioBaseTypes.h).
const (
	ChannelLayoutTagMono   = 6553601
	ChannelLayoutTagStereo = 6619138
)

// ChannelLayout is the "chan" chunk: the channel layout tag plus an
// optional bitmap and per-channel descriptions. This package only ever
// writes the no-descriptions form (mono/stereo layout tags), but preserves
// whatever raw description bytes it reads.
type ChannelLayout struct {
	Tag          int32
	Bitmap       int32
	Descriptions []byte // raw, (channelLabel+channelFlags+3 coordinates) * count
}

func (c *ChannelLayout) ChunkType() FourCC { return fourCCChan }

func (c *ChannelLayout) EncodePayload() []byte {
	const descSize = 20
	count := len(c.Descriptions) / descSize
	buf := make([]byte, 12+len(c.Descriptions))
	binary.BigEndian.PutUint32(buf[0:4], uint32(c.Tag))
	binary.BigEndian.PutUint32(buf[4:8], uint32(c.Bitmap))
	binary.BigEndian.PutUint32(buf[8:12], uint32(count))
	copy(buf[12:], c.Descriptions)
	return buf
}

func decodeChannelLayout(payload []byte) (*ChannelLayout, error) {
	if len(payload) < 12 {
		return nil, ErrTruncated
	}
	count := int(binary.BigEndian.Uint32(payload[8:12]))
	const descSize = 20
	need := 12 + count*descSize
	if len(payload) < need {
		return nil, ErrTruncated
	}
	descs := make([]byte, count*descSize)
	copy(descs, payload[12:need])
	return &ChannelLayout{
		Tag:          int32(binary.BigEndian.Uint32(payload[0:4])),
		Bitmap:       int32(binary.BigEndian.Uint32(payload[4:8])),
		Descriptions: descs,
	}, nil
}

// ChannelLayoutTagFor returns the stereo or mono layout tag for channels.
func ChannelLayoutTagFor(channels uint8) int32 {
	if channels == 2 {
		return ChannelLayoutTagStereo
	}
	return ChannelLayoutTagMono
}

// InformationEntry is one key/value pair of an "info" chunk. A slice (not
// a map) keeps the encoded byte order deterministic.
type InformationEntry struct {
	Key   string
	Value string
}

// Information is the "info" chunk: a count-prefixed list of NUL-terminated
// key/value string pairs.
type Information struct {
	Entries []InformationEntry
}

func (i *Information) ChunkType() FourCC { return fourCCInfo }

func (i *Information) EncodePayload() []byte {
	size := 4
	for _, e := range i.Entries {
		size += len(e.Key) + 1 + len(e.Value) + 1
	}
	buf := make([]byte, size)
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(i.Entries)))
	off := 4
	for _, e := range i.Entries {
		off += copy(buf[off:], e.Key)
		buf[off] = 0
		off++
		off += copy(buf[off:], e.Value)
		buf[off] = 0
		off++
	}
	return buf
}

func decodeInformation(payload []byte) (*Information, error) {
	if len(payload) < 4 {
		return nil, ErrTruncated
	}
	count := binary.BigEndian.Uint32(payload[0:4])
	info := &Information{}
	off := 4
	for i := uint32(0); i < count; i++ {
		key, n, err := readCString(payload[off:])
		if err != nil {
			break
		}
		off += n
		value, n, err := readCString(payload[off:])
		if err != nil {
			break
		}
		off += n
		info.Entries = append(info.Entries, InformationEntry{Key: key, Value: value})
	}
	return info, nil
}

// readCString reads bytes up to and including a NUL terminator, returning
// the string (without the terminator) and the number of bytes consumed.
// An unterminated or malformed sub-key does not abort conversion: it is
// returned as the remaining bytes verbatim.
func readCString(data []byte) (string, int, error) {
	for i, b := range data {
		if b == 0 {
			return string(data[:i]), i + 1, nil
		}
	}
	if len(data) == 0 {
		return "", 0, ErrTruncated
	}
	return string(data), len(data), nil
}

// AudioData is the "data" chunk: an edit-count prefix followed by the raw
// concatenated Opus packet bytes.
type AudioData struct {
	EditCount uint32
	Data      []byte
}

func (a *AudioData) ChunkType() FourCC { return fourCCData }

func (a *AudioData) EncodePayload() []byte {
	buf := make([]byte, 4+len(a.Data))
	binary.BigEndian.PutUint32(buf[0:4], a.EditCount)
	copy(buf[4:], a.Data)
	return buf
}

func decodeAudioData(payload []byte) (*AudioData, error) {
	if len(payload) < 4 {
		return nil, ErrTruncated
	}
	data := make([]byte, len(payload)-4)
	copy(data, payload[4:])
	return &AudioData{
		EditCount: binary.BigEndian.Uint32(payload[0:4]),
		Data:      data,
	}, nil
}

// PacketTable is the "pakt" chunk: packet count/frame bookkeeping followed
// by a contiguous stream of CAF varints, one per packet size.
type PacketTable struct {
	NumberPackets     int64
	NumberValidFrames int64
	PrimingFrames     int32
	RemainderFrames   int32
	Entries           []byte // raw varint stream
}

const paktHeaderSize = 24

func (p *PacketTable) ChunkType() FourCC { return fourCCPakt }

func (p *PacketTable) EncodePayload() []byte {
	buf := make([]byte, paktHeaderSize+len(p.Entries))
	binary.BigEndian.PutUint64(buf[0:8], uint64(p.NumberPackets))
	binary.BigEndian.PutUint64(buf[8:16], uint64(p.NumberValidFrames))
	binary.BigEndian.PutUint32(buf[16:20], uint32(p.PrimingFrames))
	binary.BigEndian.PutUint32(buf[20:24], uint32(p.RemainderFrames))
	copy(buf[24:], p.Entries)
	return buf
}

// Sizes decodes Entries into one size per packet.
func (p *PacketTable) Sizes() ([]uint32, error) {
	values, err := DecodeVarints(p.Entries)
	if err != nil {
		return nil, err
	}
	sizes := make([]uint32, len(values))
	for i, v := range values {
		sizes[i] = uint32(v)
	}
	return sizes, nil
}

// NewPacketTable builds a PacketTable chunk from per-packet sizes.
func NewPacketTable(sizes []uint32, framesPerPacket uint32) *PacketTable {
	var entries []byte
	for _, s := range sizes {
		entries = append(entries, EncodeVarint(uint64(s))...)
	}
	return &PacketTable{
		NumberPackets:     int64(len(sizes)),
		NumberValidFrames: int64(framesPerPacket) * int64(len(sizes)),
		PrimingFrames:     0,
		RemainderFrames:   0,
		Entries:           entries,
	}
}

func decodePacketTable(payload []byte) (*PacketTable, error) {
	if len(payload) < paktHeaderSize {
		return nil, ErrTruncated
	}
	entries := make([]byte, len(payload)-paktHeaderSize)
	copy(entries, payload[paktHeaderSize:])
	return &PacketTable{
		NumberPackets:     int64(binary.BigEndian.Uint64(payload[0:8])),
		NumberValidFrames: int64(binary.BigEndian.Uint64(payload[8:16])),
		PrimingFrames:     int32(binary.BigEndian.Uint32(payload[16:20])),
		RemainderFrames:   int32(binary.BigEndian.Uint32(payload[20:24])),
		Entries:           entries,
	}, nil
}

// RawChunk preserves a chunk this package does not interpret (e.g. "midi")
// verbatim, so unknown chunks can still round-trip through File.Encode if
// ever re-emitted, and so the chunk list stays exhaustive by construction.
type RawChunk struct {
	Type FourCC
	Data []byte
}

func (r *RawChunk) ChunkType() FourCC   { return r.Type }
func (r *RawChunk) EncodePayload() []byte { return r.Data }

// encodeChunk wraps a chunk's payload in its 12-byte header.
func encodeChunk(c Chunk) []byte {
	payload := c.EncodePayload()
	buf := make([]byte, chunkHeaderSize+len(payload))
	typ := c.ChunkType()
	copy(buf[0:4], typ[:])
	binary.BigEndian.PutUint64(buf[4:12], uint64(len(payload)))
	copy(buf[12:], payload)
	return buf
}
