// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sht3x

import "periph.io/x/conn/v3/physic"

// Unit selects the temperature unit of the Reading returned by Read(). It
// only affects the final conversion, never what goes over the wire.
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

func (u Unit) String() string {
	switch u {
	case Celsius:
		return "°C"
	case Fahrenheit:
		return "°F"
	}
	return "unknown"
}

const (
	countDivisor = float64(65535)

	celsiusOffset    = -45.0
	celsiusScalar    = 175.0
	fahrenheitOffset = -49.0
	fahrenheitScalar = 315.0
	humidityScalar   = 100.0
)

// countToTemperature maps a raw temperature count to the given unit. Strictly
// increasing in count.
func countToTemperature(count uint16, unit Unit) float64 {
	offset, scalar := celsiusOffset, celsiusScalar
	if unit == Fahrenheit {
		offset, scalar = fahrenheitOffset, fahrenheitScalar
	}
	return offset + scalar*(float64(count)/countDivisor)
}

// countToHumidity maps a raw humidity count to relative humidity in percent.
// The result is in [0, 100] for any count.
func countToHumidity(count uint16) float64 {
	return humidityScalar * (float64(count) / countDivisor)
}

func countToPhysicTemperature(count uint16) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(countToTemperature(count, Celsius)*float64(physic.Celsius))
}

func countToPhysicHumidity(count uint16) physic.RelativeHumidity {
	return physic.RelativeHumidity(countToHumidity(count) * float64(physic.PercentRH))
}
