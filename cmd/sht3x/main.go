// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sht3x reads a Sensirion SHT3x temperature/humidity sensor and prints the
// readings to the terminal, colored by temperature.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/GermanBionicSystems/sht3x"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var rates = map[string]sht3x.SampleRate{
	"0.5": sht3x.RateHalfHertz,
	"1":   sht3x.RateHertz,
	"2":   sht3x.RateTwoHertz,
	"4":   sht3x.RateFourHertz,
	"10":  sht3x.Rate10Hertz,
}

var accuracies = map[string]sht3x.Accuracy{
	"low":    sht3x.AccuracyLow,
	"medium": sht3x.AccuracyMedium,
	"high":   sht3x.AccuracyHigh,
}

// tempColor maps a temperature to a blue (cold) to red (hot) gradient over
// -10°C to 40°C.
func tempColor(celsius float64) color.NRGBA {
	f := (celsius + 10) / 50
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return color.NRGBA{R: byte(255 * f), B: byte(255 * (1 - f)), A: 255}
}

func mainImpl() error {
	busName := flag.String("b", "", "I2C bus to use, empty for the first available")
	alt := flag.Bool("alt", false, "use the alternate address 0x45 (ADDR pin high)")
	periodic := flag.Bool("periodic", false, "free-running periodic acquisition instead of single-shot")
	mps := flag.String("mps", "1", "measurements per second in periodic mode (0.5, 1, 2, 4, 10)")
	art := flag.Bool("art", false, "accelerated response time: fixed 4Hz periodic acquisition")
	accuracy := flag.String("accuracy", "medium", "measurement accuracy (low, medium, high)")
	fahrenheit := flag.Bool("f", false, "report temperature in Fahrenheit")
	interval := flag.Duration("interval", time.Second, "time between readings")
	n := flag.Int("n", 10, "number of readings")
	flag.Parse()
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Arg(0))
	}

	opts := sht3x.DefaultOpts
	if *periodic {
		opts.Mode = sht3x.ModePeriodic
	}
	rate, ok := rates[*mps]
	if !ok {
		return fmt.Errorf("invalid -mps value %q", *mps)
	}
	opts.Rate = rate
	opts.ART = *art
	acc, ok := accuracies[*accuracy]
	if !ok {
		return fmt.Errorf("invalid -accuracy value %q", *accuracy)
	}
	opts.Accuracy = acc
	unitSuffix := "°C"
	if *fahrenheit {
		opts.Unit = sht3x.Fahrenheit
		unitSuffix = "°F"
	}
	addr := sht3x.AddrAD0
	if *alt {
		addr = sht3x.AddrAD1
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		return err
	}
	defer bus.Close()

	dev, err := sht3x.New(bus, addr, &opts)
	if err != nil {
		return err
	}
	defer dev.Halt()

	if opts.Mode == sht3x.ModePeriodic {
		if err := dev.Measure(); err != nil {
			return err
		}
		// The first sample needs one full period.
		time.Sleep(*interval)
	}

	w := colorable.NewColorableStdout()
	for i := 0; i < *n; i++ {
		if opts.Mode == sht3x.ModeSingleShot {
			if err := dev.Measure(); err != nil {
				return err
			}
			time.Sleep(opts.Accuracy.ConversionTime())
		}
		reading, err := dev.Read()
		if err != nil {
			return err
		}
		celsius := reading.Temperature
		if *fahrenheit {
			celsius = (celsius - 32) * 5 / 9
		}
		fmt.Fprintf(w, "%s\033[0m %6.2f%s %6.2f%%RH\n",
			ansi256.Default.Block(tempColor(celsius)), reading.Temperature, unitSuffix, reading.Humidity)
		if i != *n-1 {
			time.Sleep(*interval)
		}
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "sht3x: %s.\n", err)
		os.Exit(1)
	}
}
