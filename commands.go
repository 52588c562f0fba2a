// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sht3x

import "time"

// Accuracy selects the measurement repeatability of the sensor. Higher
// repeatability lowers noise at the cost of a longer conversion time and
// higher power draw. The datasheet calls this "repeatability".
type Accuracy int

const (
	AccuracyLow Accuracy = iota
	AccuracyMedium
	AccuracyHigh
)

func (a Accuracy) String() string {
	switch a {
	case AccuracyLow:
		return "low"
	case AccuracyMedium:
		return "medium"
	case AccuracyHigh:
		return "high"
	}
	return "unknown"
}

// ConversionTime returns the maximum time the sensor needs to convert one
// sample at this accuracy, per the datasheet. After Measure() in single-shot
// mode the caller must wait at least this long before Read(); reading earlier
// is not detectable from the bytes and yields stale data.
func (a Accuracy) ConversionTime() time.Duration {
	return conversionTimes[a]
}

// SampleRate selects how often the sensor samples in periodic mode.
type SampleRate int

const (
	// Every other second.
	RateHalfHertz SampleRate = iota
	// Once per second.
	RateHertz
	RateTwoHertz
	RateFourHertz
	Rate10Hertz
)

func (r SampleRate) String() string {
	switch r {
	case RateHalfHertz:
		return "0.5Hz"
	case RateHertz:
		return "1Hz"
	case RateTwoHertz:
		return "2Hz"
	case RateFourHertz:
		return "4Hz"
	case Rate10Hertz:
		return "10Hz"
	}
	return "unknown"
}

// Period returns the interval between two samples at this rate.
func (r SampleRate) Period() time.Duration {
	return samplePeriods[r]
}

type devCommand []byte

// Commands outside the measurement tables.
var (
	periodicFetch    = devCommand{0xe0, 0x00}
	breakCommand     = devCommand{0x30, 0x93}
	artCommand       = devCommand{0x2b, 0x32}
	enableHeater     = devCommand{0x30, 0x6d}
	disableHeater    = devCommand{0x30, 0x66}
	readStatus       = devCommand{0xf3, 0x2d}
	clearStatus      = devCommand{0x30, 0x41}
	softReset        = devCommand{0x30, 0xa2}
	generalCallReset = devCommand{0x06}
)

// Single-shot start commands, indexed by Accuracy. The 0x24 family leaves the
// clock free; the 0x2c family asks the sensor to stretch the clock until the
// conversion completes. The driver sends the non-stretching variants and
// handles conversion time itself, so it works on hosts without clock-stretch
// support.
var singleShotCommands = [3]devCommand{
	AccuracyLow:    {0x24, 0x16},
	AccuracyMedium: {0x24, 0x0b},
	AccuracyHigh:   {0x24, 0x00},
}

var singleShotStretchCommands = [3]devCommand{
	AccuracyLow:    {0x2c, 0x10},
	AccuracyMedium: {0x2c, 0x0d},
	AccuracyHigh:   {0x2c, 0x06},
}

// Periodic start commands, indexed by [SampleRate][Accuracy]. The MSB selects
// the rate, the LSB the repeatability.
var periodicCommands = [5][3]devCommand{
	RateHalfHertz: {
		AccuracyLow:    {0x20, 0x2f},
		AccuracyMedium: {0x20, 0x24},
		AccuracyHigh:   {0x20, 0x32},
	},
	RateHertz: {
		AccuracyLow:    {0x21, 0x2d},
		AccuracyMedium: {0x21, 0x26},
		AccuracyHigh:   {0x21, 0x30},
	},
	RateTwoHertz: {
		AccuracyLow:    {0x22, 0x2b},
		AccuracyMedium: {0x22, 0x20},
		AccuracyHigh:   {0x22, 0x36},
	},
	RateFourHertz: {
		AccuracyLow:    {0x23, 0x29},
		AccuracyMedium: {0x23, 0x22},
		AccuracyHigh:   {0x23, 0x34},
	},
	Rate10Hertz: {
		AccuracyLow:    {0x27, 0x2a},
		AccuracyMedium: {0x27, 0x21},
		AccuracyHigh:   {0x27, 0x37},
	},
}

// Maximum conversion durations per accuracy, from the datasheet.
var conversionTimes = [3]time.Duration{
	AccuracyLow:    4 * time.Millisecond,
	AccuracyMedium: 6 * time.Millisecond,
	AccuracyHigh:   15500 * time.Microsecond,
}

var samplePeriods = [5]time.Duration{
	RateHalfHertz: 2 * time.Second,
	RateHertz:     time.Second,
	RateTwoHertz:  500 * time.Millisecond,
	RateFourHertz: 250 * time.Millisecond,
	Rate10Hertz:   100 * time.Millisecond,
}

// singleShotCommand returns the start command for one single-shot conversion.
func singleShotCommand(a Accuracy, clockStretch bool) devCommand {
	if clockStretch {
		return singleShotStretchCommands[a]
	}
	return singleShotCommands[a]
}

// periodicCommand returns the start command for periodic acquisition. When
// art is set the fixed 4Hz accelerated-response command is used and the rate
// is ignored.
func periodicCommand(r SampleRate, a Accuracy, art bool) devCommand {
	if art {
		return artCommand
	}
	return periodicCommands[r][a]
}
