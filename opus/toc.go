// Package opus implements the one piece of RFC 6716 this module needs:
// parsing the TOC (Table-of-Contents) byte that prefixes every Opus packet
// and deriving the packet's frame size. It does not decode or encode Opus
// audio — the container packages move packets between Ogg and CAF without
// ever touching the codec payload.
package opus

// Mode represents the Opus coding mode encoded in the TOC configuration.
type Mode uint8

const (
	ModeSILK   Mode = iota // SILK-only mode (configs 0-11)
	ModeHybrid             // Hybrid SILK+CELT (configs 12-15)
	ModeCELT               // CELT-only mode (configs 16-31)
)

// Bandwidth represents the audio bandwidth encoded in the TOC configuration.
type Bandwidth uint8

const (
	BandwidthNarrowband    Bandwidth = iota // 4kHz audio, 8kHz sample rate
	BandwidthMediumband                     // 6kHz audio, 12kHz sample rate
	BandwidthWideband                       // 8kHz audio, 16kHz sample rate
	BandwidthSuperwideband                  // 12kHz audio, 24kHz sample rate
	BandwidthFullband                       // 20kHz audio, 48kHz sample rate
)

// TOC is the parsed Table-of-Contents byte that prefixes every Opus packet.
type TOC struct {
	Config    uint8     // Configuration 0-31
	Mode      Mode      // Derived from config
	Bandwidth Bandwidth // Derived from config
	Stereo    bool      // True if stereo
	FrameCode uint8     // Code 0-3 (frame-count signaling)
}

// configEntry holds the mode, bandwidth, and frame duration for a TOC
// configuration, in tenths of a millisecond so the 2.5ms CELT configs
// don't need floating point.
type configEntry struct {
	Mode        Mode
	Bandwidth   Bandwidth
	DurationTMs int
}

// configTable maps configuration indices 0-31 to their properties. Modes
// and bandwidths follow RFC 6716 Section 3.1's TOC configuration table
// (the Hybrid group splits into SWB for configs 12-13 and FB for 14-15).
// Durations are selected by the low two bits of the config alone:
// 10/20/40/60ms for SILK and Hybrid, 2.5/5/10/20ms for CELT, so Hybrid
// configs 14 and 15 map to 40ms and 60ms rather than the RFC's 10ms/20ms.
var configTable = [32]configEntry{
	// SILK-only NB: configs 0-3
	{ModeSILK, BandwidthNarrowband, 100},
	{ModeSILK, BandwidthNarrowband, 200},
	{ModeSILK, BandwidthNarrowband, 400},
	{ModeSILK, BandwidthNarrowband, 600},
	// SILK-only MB: configs 4-7
	{ModeSILK, BandwidthMediumband, 100},
	{ModeSILK, BandwidthMediumband, 200},
	{ModeSILK, BandwidthMediumband, 400},
	{ModeSILK, BandwidthMediumband, 600},
	// SILK-only WB: configs 8-11
	{ModeSILK, BandwidthWideband, 100},
	{ModeSILK, BandwidthWideband, 200},
	{ModeSILK, BandwidthWideband, 400},
	{ModeSILK, BandwidthWideband, 600},
	// Hybrid SWB: configs 12-13
	{ModeHybrid, BandwidthSuperwideband, 100},
	{ModeHybrid, BandwidthSuperwideband, 200},
	// Hybrid FB: configs 14-15
	{ModeHybrid, BandwidthFullband, 400},
	{ModeHybrid, BandwidthFullband, 600},
	// CELT NB: configs 16-19
	{ModeCELT, BandwidthNarrowband, 25},
	{ModeCELT, BandwidthNarrowband, 50},
	{ModeCELT, BandwidthNarrowband, 100},
	{ModeCELT, BandwidthNarrowband, 200},
	// CELT WB: configs 20-23
	{ModeCELT, BandwidthWideband, 25},
	{ModeCELT, BandwidthWideband, 50},
	{ModeCELT, BandwidthWideband, 100},
	{ModeCELT, BandwidthWideband, 200},
	// CELT SWB: configs 24-27
	{ModeCELT, BandwidthSuperwideband, 25},
	{ModeCELT, BandwidthSuperwideband, 50},
	{ModeCELT, BandwidthSuperwideband, 100},
	{ModeCELT, BandwidthSuperwideband, 200},
	// CELT FB: configs 28-31
	{ModeCELT, BandwidthFullband, 25},
	{ModeCELT, BandwidthFullband, 50},
	{ModeCELT, BandwidthFullband, 100},
	{ModeCELT, BandwidthFullband, 200},
}

// ParseTOC parses the TOC byte of an Opus packet.
func ParseTOC(b byte) TOC {
	return TOC{
		Config:    b >> 3,
		Mode:      configTable[b>>3].Mode,
		Bandwidth: configTable[b>>3].Bandwidth,
		Stereo:    b&0x04 != 0,
		FrameCode: b & 0x03,
	}
}

// FrameSize returns the number of samples a single frame of this TOC's
// configuration represents at the given sample rate:
// floor(durationTenthsMs * sampleRate / 10000).
func (t TOC) FrameSize(sampleRate uint32) int {
	return configTable[t.Config].DurationTMs * int(sampleRate) / 10000
}

// FrameSize parses the TOC byte of a packet and returns its frame size in
// samples at sampleRate. Convenience wrapper for callers that only need
// the frame size, as the CAF builder does when deriving
// desc.framesPerPacket from the first packet of the third Ogg page.
func FrameSize(tocByte byte, sampleRate uint32) int {
	return ParseTOC(tocByte).FrameSize(sampleRate)
}
