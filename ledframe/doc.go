// Package ledframe implements the binary frame protocol spoken to the LED
// board controller over serial.
//
// Frame layout (little-endian):
//
//	[1 byte]  0xAA marker
//	[1 byte]  protocol version
//	[2 bytes] entry count
//	[N×7]     entries: u16 led index, u8 mode, u8 r, u8 g, u8 b
//	[2 bytes] CRC-16/CCITT over everything before it
//
// The CRC uses polynomial 0x1021 with initial value 0xFFFF, matching the
// board firmware. Decoding validates the marker, version, length and CRC
// before trusting the body and reports each failure class distinctly.
package ledframe
