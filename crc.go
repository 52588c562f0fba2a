// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sht3x

// The sensor appends a CRC-8 to every 16 bit word it returns. Polynomial
// 0x31, initial value 0xff, no reflection, no final xor.
var crc8Table = makeCRC8Table(0x31)

func makeCRC8Table(poly byte) [256]byte {
	var table [256]byte
	for i := 0; i < 256; i++ {
		crc := byte(i)
		for j := 0; j < 8; j++ {
			if crc&0x80 == 0 {
				crc <<= 1
			} else {
				crc = (crc << 1) ^ poly
			}
		}
		table[i] = crc
	}
	return table
}

func crc8(bytes []byte) byte {
	crc := byte(0xff)
	for _, b := range bytes {
		crc = crc8Table[crc^b]
	}
	return crc
}
