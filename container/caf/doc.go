// Package caf implements the Apple Core Audio Format container, restricted
// to the pieces this module needs to carry an Opus payload: the file
// header, the chunk list, and the five chunk kinds an Opus CAF file uses
// (desc, chan, info, data, pakt).
//
// All multi-byte integers and floats in CAF are big-endian, the opposite
// of Ogg. See the sibling container/ogg package for the Ogg side of the
// bridge.
//
// # File Structure
//
//	Bytes 0-3:  "caff" capture pattern
//	Bytes 4-5:  File version (1)
//	Bytes 6-7:  File flags (0)
//	Remaining:  Chunk list
//
// # Chunk Structure
//
//	Bytes 0-3:  Chunk type (FourCC)
//	Bytes 4-11: Chunk size (i64 BE), not counting this 12-byte header
//	Remaining:  Chunk payload (chunkSize bytes)
//
// # Varints
//
// The packet table (pakt) chunk stores per-packet sizes as CAF varints:
// big-endian base-128 integers with the continuation bit (0x80) set on
// every byte but the last. See EncodeVarint/DecodeVarint.
//
// # References
//
//   - Apple "Core Audio Format Specification 1.0"
package caf
