// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sht3x

import "testing"

func TestCRC8(t *testing.T) {
	var tests = []struct {
		bytes  []byte
		result byte
	}{
		{bytes: []byte{0xbe, 0xef}, result: 0x92},
		{bytes: []byte{0xab, 0xcd}, result: 0x6f},
		{bytes: []byte{0x01, 0xa4}, result: 0x4d},
		{bytes: []byte{0x62, 0x99}, result: 0xbc},
		{bytes: []byte{0x62, 0x4e}, result: 0x2f},
		{bytes: []byte{0x00, 0x00}, result: 0x81},
		{bytes: []byte{0xff, 0xff}, result: 0xac},
	}
	for _, test := range tests {
		res := crc8(test.bytes)
		if res != test.result {
			t.Errorf("crc8(%#v)!=0x%x received 0x%x", test.bytes, test.result, res)
		}
	}
}

// Flipping any single bit of the payload must change the checksum, otherwise
// the validation would be degenerate.
func TestCRC8BitSensitivity(t *testing.T) {
	payload := []byte{0x62, 0x4e}
	want := crc8(payload)
	for byteIx := range payload {
		for bit := 0; bit < 8; bit++ {
			corrupted := []byte{payload[0], payload[1]}
			corrupted[byteIx] ^= 1 << bit
			if got := crc8(corrupted); got == want {
				t.Errorf("crc8 unchanged after flipping bit %d of byte %d", bit, byteIx)
			}
		}
	}
}
