/*************************************************************************
 * Copyright 2026 The meian-client Authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package wire

// keystream is the fixed obfuscation constant used to XOR every frame
// body. Only the first 128 bytes are ever referenced (index is always
// masked with 0x7F), so the second half of the protocol's documented
// 256-byte constant is redundant and is not stored.
var keystream = [128]byte{
	0x0c, 0x38, 0x4e, 0x4e, 0x62, 0x38, 0x2d, 0x62, 0x0e, 0x38, 0x4e, 0x4e, 0x44, 0x38, 0x2d, 0x30,
	0x0f, 0x38, 0x2b, 0x38, 0x2b, 0x0c, 0x5a, 0x62, 0x34, 0x38, 0x4e, 0x30, 0x4e, 0x4c, 0x37, 0x2b,
	0x10, 0x53, 0x5a, 0x0c, 0x20, 0x43, 0x2d, 0x17, 0x11, 0x42, 0x44, 0x4e, 0x58, 0x42, 0x2c, 0x42,
	0x11, 0x57, 0x32, 0x2a, 0x20, 0x40, 0x36, 0x17, 0x20, 0x56, 0x44, 0x62, 0x62, 0x38, 0x2b, 0x5f,
	0x0c, 0x38, 0x4e, 0x4e, 0x62, 0x38, 0x2d, 0x62, 0x0e, 0x38, 0x58, 0x58, 0x08, 0x2e, 0x23, 0x2c,
	0x0f, 0x38, 0x2b, 0x38, 0x2b, 0x0c, 0x5a, 0x62, 0x34, 0x38, 0x30, 0x30, 0x4e, 0x2e, 0x36, 0x2b,
	0x10, 0x54, 0x5a, 0x0c, 0x3e, 0x43, 0x2e, 0x17, 0x11, 0x38, 0x4e, 0x62, 0x58, 0x24, 0x37, 0x1c,
	0x11, 0x57, 0x32, 0x42, 0x20, 0x40, 0x2c, 0x17, 0x20, 0x4c, 0x44, 0x4e, 0x62, 0x4c, 0x2e, 0x12,
}

// obfuscate XORes b against the keystream in place and returns it. The
// operation is involutive: calling it twice restores the original bytes.
func obfuscate(b []byte) []byte {
	for i := range b {
		b[i] ^= keystream[i&0x7f]
	}
	return b
}
