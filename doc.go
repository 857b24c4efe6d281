// Package oggcaf losslessly repackages Opus audio between the Ogg
// container (RFC 3533/7845) and Apple's Core Audio Format, without
// touching the codec payload. See container/ogg and container/caf for the
// two container implementations, and opus for Opus TOC byte parsing.
//
// Conversion is fully buffered: both directions take a complete input
// byte slice and return a complete output byte slice. There is no
// streaming interface, and no support for multiplexed logical streams or
// non-Opus CAF formats.
package oggcaf
