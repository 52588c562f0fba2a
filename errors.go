// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sht3x

import (
	"errors"
	"fmt"
)

// ErrSequence is returned, wrapped with the offending operation, when a call
// is made in an acquisition state that forbids it. For example calling Read()
// before Measure(), or Break() while no periodic acquisition is running. It
// indicates a caller-side logic error, not a transient device condition, so
// retrying the same call will fail the same way.
var ErrSequence = errors.New("operation not permitted in current acquisition state")

// ChecksumError is returned by Read(), Sense() and Status() when a response
// word fails CRC validation. It is recoverable: in periodic mode another
// Read() fetches fresh data, in single-shot mode the caller re-measures.
type ChecksumError struct {
	// Field names the response word that failed, "temperature", "humidity"
	// or "status".
	Field string
	// Data holds the two data bytes as received.
	Data [2]byte
	// Received is the checksum byte received with the data, Computed the
	// value calculated over Data.
	Received byte
	Computed byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("sht3x: %s bytes [%#02x, %#02x] have checksum %#02x, computed %#02x",
		e.Field, e.Data[0], e.Data[1], e.Received, e.Computed)
}
