package oggcaf

import (
	"errors"

	"github.com/kjalvik/oggcaf/container/caf"
	"github.com/kjalvik/oggcaf/container/ogg"
	"github.com/kjalvik/oggcaf/opus"
)

const oggPageHeaderSize = 27

// readIDPage validates and parses the identification (first, BOS) page of
// an Ogg-Opus stream, distinguishing each way it can be malformed instead
// of collapsing them into one generic parse error.
func readIDPage(data []byte) (*ogg.Page, int, *OpusStreamInfo, error) {
	if len(data) < oggPageHeaderSize {
		return nil, 0, nil, newConvertError(KindShortPageHeader, nil)
	}
	if string(data[0:4]) != "OggS" {
		return nil, 0, nil, newConvertError(KindBadIDPageSignature, nil)
	}

	page, n, err := ogg.ParsePage(data)
	if err != nil {
		return nil, 0, nil, newConvertError(KindBadIDPageLength, err)
	}
	if !page.IsBOS() {
		return nil, 0, nil, newConvertError(KindBadIDPageType, nil)
	}

	if len(page.Segments) != 1 || page.Segments[0] != 19 {
		return nil, 0, nil, newConvertError(KindBadIDPageLength, nil)
	}

	head, err := ogg.ParseOpusHead(page.Packets()[0])
	if err != nil {
		return nil, 0, nil, newConvertError(KindBadIDPagePayloadSignature, err)
	}

	return page, n, &OpusStreamInfo{
		SampleRate: head.SampleRate,
		Channels:   head.Channels,
		PreSkip:    head.PreSkip,
	}, nil
}

// OpusStreamInfo is the stream identity recovered from an Ogg-Opus
// identification header.
type OpusStreamInfo struct {
	SampleRate uint32
	Channels   uint8
	PreSkip    uint16
}

// readAllPackets walks every Ogg page after the identification page,
// reassembling packets split across page boundaries (a segment table
// entry of 255 means the packet continues on the following page).
func readAllPackets(data []byte, offset int) ([][]byte, error) {
	var packets [][]byte
	var pending []byte

	for offset < len(data) {
		page, n, err := ogg.ParsePage(data[offset:])
		if err != nil {
			return nil, newConvertError(KindIOFailure, err)
		}
		offset += n

		// PacketLengths reports only packets terminated within this
		// page; an unterminated tail (final segment value 255) is not
		// included and must be carried over as pending.
		lengths := page.PacketLengths()
		bodyOff := 0
		for i, l := range lengths {
			pkt := page.Payload[bodyOff : bodyOff+l]
			bodyOff += l
			if i == 0 && len(pending) > 0 {
				pending = append(pending, pkt...)
				packets = append(packets, pending)
				pending = nil
			} else {
				packets = append(packets, pkt)
			}
		}

		if len(page.Segments) > 0 && page.Segments[len(page.Segments)-1] == 255 {
			pending = append(pending, page.Payload[bodyOff:]...)
		}

		if page.IsEOS() {
			break
		}
	}
	return packets, nil
}

// ConvertOggToCAF reads a complete Ogg-Opus stream and returns the
// equivalent CAF file. The Opus packet payloads are copied verbatim; no
// decoding, encoding, or resampling occurs.
func ConvertOggToCAF(input []byte) ([]byte, error) {
	_, n, info, err := readIDPage(input)
	if err != nil {
		return nil, err
	}

	// Second page: OpusTags comment header. Validated generically; its
	// content does not affect the CAF output.
	tagsPage, n2, err := ogg.ParsePage(input[n:])
	if err != nil {
		return nil, newConvertError(KindIOFailure, err)
	}
	if packets := tagsPage.Packets(); len(packets) > 0 {
		if _, err := ogg.ParseOpusTags(packets[0]); err != nil {
			return nil, newConvertError(KindIOFailure, err)
		}
	}
	offset := n + n2

	packets, err := readAllPackets(input, offset)
	if err != nil {
		return nil, err
	}
	if len(packets) == 0 {
		return nil, newConvertError(KindIOFailure, errors.New("no audio packets"))
	}

	frameSize := opus.FrameSize(packets[0][0], info.SampleRate)

	sizes := make([]uint32, len(packets))
	var audio []byte
	for i, p := range packets {
		sizes[i] = uint32(len(p))
		audio = append(audio, p...)
	}

	file := caf.BuildFile(caf.BuildOptions{
		SampleRate:      float64(info.SampleRate),
		Channels:        info.Channels,
		FramesPerPacket: uint32(frameSize),
		PacketSizes:     sizes,
		AudioData:       audio,
	})
	return file.Encode(), nil
}

// ConvertCAFToOgg reads a complete CAF file carrying an Opus payload and
// returns the equivalent Ogg-Opus stream.
func ConvertCAFToOgg(input []byte) ([]byte, error) {
	file, err := caf.ReadFile(input)
	if err != nil {
		return nil, newConvertError(KindIOFailure, err)
	}

	desc, err := file.RequireDescription()
	if err != nil {
		return nil, wrapChunkNotFound(err)
	}
	data, err := file.RequireData()
	if err != nil {
		return nil, wrapChunkNotFound(err)
	}
	pakt, err := file.RequirePacketTable()
	if err != nil {
		return nil, wrapChunkNotFound(err)
	}

	sizes, err := pakt.Sizes()
	if err != nil {
		return nil, newConvertError(KindBadVarint, err)
	}

	out := ogg.BuildFile(sizes, data.Data, ogg.BuildOptions{
		SampleRate: uint32(desc.SampleRate),
		Channels:   uint8(desc.ChannelsPerPacket),
		FrameSize:  int(desc.FramesPerPacket),
		Repackage:  false,
	})
	return out, nil
}

func wrapChunkNotFound(err error) error {
	var notFound *caf.ErrChunkNotFound
	if errors.As(err, &notFound) {
		return newChunkNotFoundError(notFound.Kind)
	}
	return newConvertError(KindIOFailure, err)
}
