package caf

import "encoding/binary"

// ReadFile parses a complete in-memory CAF file. Unknown chunk kinds are
// preserved (not interpreted) in File.Extra rather than rejected, so a
// CAF file carrying e.g. a midi chunk still parses; required-chunk checks
// happen at the call site via File.RequireDescription/RequireData/
// RequirePacketTable.
func ReadFile(data []byte) (*File, error) {
	if len(data) < fileHeaderSize {
		return nil, ErrTruncated
	}
	var sig FourCC
	copy(sig[:], data[0:4])
	if sig != fileSignature {
		return nil, ErrBadFileSignature
	}

	f := &File{
		FileVersion: binary.BigEndian.Uint16(data[4:6]),
		FileFlags:   binary.BigEndian.Uint16(data[6:8]),
	}

	off := fileHeaderSize
	for off < len(data) {
		if off+chunkHeaderSize > len(data) {
			return nil, ErrTruncated
		}
		var kind FourCC
		copy(kind[:], data[off:off+4])
		size := binary.BigEndian.Uint64(data[off+4 : off+12])
		off += chunkHeaderSize

		if uint64(len(data)-off) < size {
			return nil, ErrTruncated
		}
		payload := data[off : off+int(size)]
		off += int(size)

		switch kind {
		case fourCCDesc:
			desc, err := decodeAudioDescription(payload)
			if err != nil {
				return nil, err
			}
			f.Description = desc
		case fourCCChan:
			ch, err := decodeChannelLayout(payload)
			if err != nil {
				return nil, err
			}
			f.Channels = ch
		case fourCCInfo:
			info, err := decodeInformation(payload)
			if err != nil {
				return nil, err
			}
			f.Info = info
		case fourCCData:
			ad, err := decodeAudioData(payload)
			if err != nil {
				return nil, err
			}
			f.Data = ad
		case fourCCPakt:
			pakt, err := decodePacketTable(payload)
			if err != nil {
				return nil, err
			}
			f.PacketTable = pakt
		default:
			raw := make([]byte, len(payload))
			copy(raw, payload)
			f.Extra = append(f.Extra, &RawChunk{Type: kind, Data: raw})
		}
	}
	return f, nil
}
