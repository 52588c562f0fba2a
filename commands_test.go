// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sht3x

import (
	"bytes"
	"testing"
)

func TestSingleShotCommands(t *testing.T) {
	var tests = []struct {
		accuracy Accuracy
		stretch  bool
		want     devCommand
	}{
		{AccuracyLow, false, devCommand{0x24, 0x16}},
		{AccuracyMedium, false, devCommand{0x24, 0x0b}},
		{AccuracyHigh, false, devCommand{0x24, 0x00}},
		{AccuracyLow, true, devCommand{0x2c, 0x10}},
		{AccuracyMedium, true, devCommand{0x2c, 0x0d}},
		{AccuracyHigh, true, devCommand{0x2c, 0x06}},
	}
	for _, test := range tests {
		got := singleShotCommand(test.accuracy, test.stretch)
		if !bytes.Equal(got, test.want) {
			t.Errorf("singleShotCommand(%s, %t) = %#v want %#v", test.accuracy, test.stretch, got, test.want)
		}
	}
}

func TestPeriodicCommands(t *testing.T) {
	var tests = []struct {
		rate     SampleRate
		accuracy Accuracy
		want     devCommand
	}{
		{RateHalfHertz, AccuracyHigh, devCommand{0x20, 0x32}},
		{RateHalfHertz, AccuracyMedium, devCommand{0x20, 0x24}},
		{RateHalfHertz, AccuracyLow, devCommand{0x20, 0x2f}},
		{RateHertz, AccuracyHigh, devCommand{0x21, 0x30}},
		{RateHertz, AccuracyMedium, devCommand{0x21, 0x26}},
		{RateHertz, AccuracyLow, devCommand{0x21, 0x2d}},
		{RateTwoHertz, AccuracyHigh, devCommand{0x22, 0x36}},
		{RateTwoHertz, AccuracyMedium, devCommand{0x22, 0x20}},
		{RateTwoHertz, AccuracyLow, devCommand{0x22, 0x2b}},
		{RateFourHertz, AccuracyHigh, devCommand{0x23, 0x34}},
		{RateFourHertz, AccuracyMedium, devCommand{0x23, 0x22}},
		{RateFourHertz, AccuracyLow, devCommand{0x23, 0x29}},
		{Rate10Hertz, AccuracyHigh, devCommand{0x27, 0x37}},
		{Rate10Hertz, AccuracyMedium, devCommand{0x27, 0x21}},
		{Rate10Hertz, AccuracyLow, devCommand{0x27, 0x2a}},
	}
	for _, test := range tests {
		got := periodicCommand(test.rate, test.accuracy, false)
		if !bytes.Equal(got, test.want) {
			t.Errorf("periodicCommand(%s, %s) = %#v want %#v", test.rate, test.accuracy, got, test.want)
		}
		// Same input, same bytes.
		if again := periodicCommand(test.rate, test.accuracy, false); !bytes.Equal(got, again) {
			t.Errorf("periodicCommand(%s, %s) is not deterministic", test.rate, test.accuracy)
		}
	}
}

// ART overrides the configured rate entirely.
func TestARTOverridesRate(t *testing.T) {
	want := devCommand{0x2b, 0x32}
	for rate := RateHalfHertz; rate <= Rate10Hertz; rate++ {
		for acc := AccuracyLow; acc <= AccuracyHigh; acc++ {
			if got := periodicCommand(rate, acc, true); !bytes.Equal(got, want) {
				t.Errorf("periodicCommand(%s, %s, art) = %#v want %#v", rate, acc, got, want)
			}
		}
	}
}

func TestConversionTimes(t *testing.T) {
	// Higher accuracy needs a longer conversion.
	if !(AccuracyLow.ConversionTime() < AccuracyMedium.ConversionTime() &&
		AccuracyMedium.ConversionTime() < AccuracyHigh.ConversionTime()) {
		t.Errorf("conversion times are not increasing with accuracy: %v %v %v",
			AccuracyLow.ConversionTime(), AccuracyMedium.ConversionTime(), AccuracyHigh.ConversionTime())
	}
}

func TestSamplePeriods(t *testing.T) {
	for rate := RateHalfHertz; rate < Rate10Hertz; rate++ {
		if rate.Period() <= (rate + 1).Period() {
			t.Errorf("sample period of %s (%v) is not longer than %s (%v)",
				rate, rate.Period(), rate+1, (rate + 1).Period())
		}
	}
}
