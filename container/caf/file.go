package caf

import "encoding/binary"

const fileHeaderSize = 8

// File is a fully decoded (or to-be-encoded) CAF file: the 8-byte file
// header plus its ordered chunk list.
type File struct {
	FileVersion uint16
	FileFlags   uint16

	Description *AudioDescription
	Channels    *ChannelLayout
	Info        *Information
	Data        *AudioData
	PacketTable *PacketTable

	// Extra carries any chunk this package doesn't interpret, in the
	// order encountered, so a read file can still report what else it
	// contained.
	Extra []*RawChunk
}

// Encode serializes f as a complete CAF file: header, then desc, chan,
// info, data, pakt in that order (the order every CAF-Opus writer,
// including this one, uses), followed by any Extra chunks.
func (f *File) Encode() []byte {
	var out []byte
	hdr := make([]byte, fileHeaderSize)
	copy(hdr[0:4], fileSignature[:])
	binary.BigEndian.PutUint16(hdr[4:6], f.FileVersion)
	binary.BigEndian.PutUint16(hdr[6:8], f.FileFlags)
	out = append(out, hdr...)

	if f.Description != nil {
		out = append(out, encodeChunk(f.Description)...)
	}
	if f.Channels != nil {
		out = append(out, encodeChunk(f.Channels)...)
	}
	if f.Info != nil {
		out = append(out, encodeChunk(f.Info)...)
	}
	if f.Data != nil {
		out = append(out, encodeChunk(f.Data)...)
	}
	if f.PacketTable != nil {
		out = append(out, encodeChunk(f.PacketTable)...)
	}
	for _, c := range f.Extra {
		out = append(out, encodeChunk(c)...)
	}
	return out
}

// RequireDescription returns the desc chunk or ErrChunkNotFound.
func (f *File) RequireDescription() (*AudioDescription, error) {
	if f.Description == nil {
		return nil, &ErrChunkNotFound{Kind: fourCCDesc.String()}
	}
	return f.Description, nil
}

// RequireData returns the data chunk or ErrChunkNotFound.
func (f *File) RequireData() (*AudioData, error) {
	if f.Data == nil {
		return nil, &ErrChunkNotFound{Kind: fourCCData.String()}
	}
	return f.Data, nil
}

// RequirePacketTable returns the pakt chunk or ErrChunkNotFound.
func (f *File) RequirePacketTable() (*PacketTable, error) {
	if f.PacketTable == nil {
		return nil, &ErrChunkNotFound{Kind: fourCCPakt.String()}
	}
	return f.PacketTable, nil
}
