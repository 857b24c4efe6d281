package caf

// formatIDOpus is the desc chunk's FormatID for Opus-in-CAF.
var formatIDOpus = fourCCOpus

// BuildOptions configures BuildFile.
type BuildOptions struct {
	SampleRate      float64
	Channels        uint8
	FramesPerPacket uint32 // samples per packet at SampleRate, e.g. 960 for 20ms@48kHz
	PacketSizes     []uint32
	AudioData       []byte
}

// BuildFile assembles a File carrying an Opus payload: desc, chan, info,
// data, pakt, in that fixed order. It does not touch the codec payload;
// PacketSizes/AudioData are carried through verbatim.
func BuildFile(opts BuildOptions) *File {
	return &File{
		FileVersion: 1,
		FileFlags:   0,
		Description: &AudioDescription{
			SampleRate:        opts.SampleRate,
			FormatID:          formatIDOpus,
			FormatFlags:       0,
			BytesPerPacket:    0, // variable, per CAF convention for compressed formats
			FramesPerPacket:   opts.FramesPerPacket,
			ChannelsPerPacket: uint32(opts.Channels),
			BitsPerChannel:    0,
		},
		Channels: &ChannelLayout{
			Tag: ChannelLayoutTagFor(opts.Channels),
		},
		Info: &Information{
			Entries: []InformationEntry{
				{Key: "encoder", Value: "Lavf59.27.100"},
			},
		},
		Data: &AudioData{
			EditCount: 0,
			Data:      opts.AudioData,
		},
		PacketTable: NewPacketTable(opts.PacketSizes, opts.FramesPerPacket),
	}
}
