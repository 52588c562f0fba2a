// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sht3x provides a driver for the Sensirion SHT30/SHT31/SHT35 I2C
// temperature/humidity sensors.
//
// The sensor supports two acquisition styles. In single-shot mode every
// reading is started explicitly with Measure() and collected with Read()
// after the conversion time has elapsed. In periodic mode a single Measure()
// starts free-running acquisition at a configured rate and Read() fetches the
// most recent sample until Break() stops the device.
//
// # Datasheet
//
// https://sensirion.com/media/documents/213E6A3B/63A5A569/Datasheet_SHT3x_DIS.pdf
package sht3x

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	// AddrAD0 is the device address with the ADDR pin strapped low. This is
	// the default.
	AddrAD0 i2c.Addr = 0x44
	// AddrAD1 is the device address with the ADDR pin strapped high.
	AddrAD1 i2c.Addr = 0x45

	DefaultAddress = AddrAD0
)

// Mode selects the acquisition style of the sensor.
type Mode int

const (
	// ModeSingleShot starts one conversion per Measure() call.
	ModeSingleShot Mode = iota
	// ModePeriodic lets the sensor free-run at the configured SampleRate
	// after one Measure() call, until Break().
	ModePeriodic
)

func (m Mode) String() string {
	switch m {
	case ModeSingleShot:
		return "single-shot"
	case ModePeriodic:
		return "periodic"
	}
	return "unknown"
}

// The acquisition state. Only the driver transitions it.
type deviceState int

const (
	stateIdle deviceState = iota
	stateSingleShotPending
	statePeriodicRunning
)

// Opts holds the device configuration applied at New().
type Opts struct {
	Mode Mode
	// Rate is the sample rate in periodic mode. Ignored in single-shot mode
	// and when ART is set.
	Rate SampleRate
	// ART enables accelerated response time: periodic acquisition at a fixed
	// 4Hz, overriding Rate.
	ART      bool
	Accuracy Accuracy
	// Unit is the temperature unit of Read() results. Sense() always fills
	// in typed physic values and is not affected.
	Unit Unit
}

// DefaultOpts is the configuration used by New() when opts is nil:
// single-shot acquisition, medium accuracy, Celsius readings.
var DefaultOpts = Opts{
	Mode:     ModeSingleShot,
	Rate:     RateHertz,
	Accuracy: AccuracyMedium,
	Unit:     Celsius,
}

// Reading is one validated measurement. Temperature is expressed in the
// configured Unit, Humidity in percent relative humidity.
type Reading struct {
	Temperature float64
	Humidity    float64
}

// rawReading holds the two counts of a response frame after CRC validation.
type rawReading struct {
	temperature uint16
	humidity    uint16
}

// StatusWord is the sensor's 16 bit status register.
type StatusWord uint16

const (
	// At least one alert is pending. Mirrored on the alert pin.
	StatusAlertPending StatusWord = 1 << 15
	StatusHeaterOn     StatusWord = 1 << 13
	StatusRHAlert      StatusWord = 1 << 11
	StatusTempAlert    StatusWord = 1 << 10
	// The sensor was reset (power cycle, soft reset or general call) since
	// the last ClearStatus().
	StatusResetDetected StatusWord = 1 << 4
	// The last command was not processed.
	StatusCommandFailed StatusWord = 1 << 1
	// The checksum of the last write transaction was invalid.
	StatusWriteCRCFailed StatusWord = 1 << 0
)

// Dev represents an SHT3x sensor on an I2C bus.
//
// Dev serializes its own bus transactions but assumes exclusive ownership of
// the device: no other driver instance may talk to the same address.
type Dev struct {
	d *i2c.Dev

	mu       sync.Mutex
	mode     Mode
	rate     SampleRate
	art      bool
	accuracy Accuracy
	unit     Unit
	state    deviceState
	shutdown chan struct{}
}

// New returns a handle to an SHT3x sensor at the given address. addr must be
// AddrAD0 or AddrAD1, matching the ADDR pin strap. opts may be nil, in which
// case DefaultOpts is used.
//
// New does not touch the bus; the device stays idle until the first
// Measure() or Sense().
func New(b i2c.Bus, addr i2c.Addr, opts *Opts) (*Dev, error) {
	if addr != AddrAD0 && addr != AddrAD1 {
		return nil, fmt.Errorf("sht3x: unsupported address %#02x", uint16(addr))
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Mode != ModeSingleShot && opts.Mode != ModePeriodic {
		return nil, fmt.Errorf("sht3x: invalid mode %d", opts.Mode)
	}
	if opts.Rate < RateHalfHertz || opts.Rate > Rate10Hertz {
		return nil, fmt.Errorf("sht3x: invalid sample rate %d", opts.Rate)
	}
	if opts.Accuracy < AccuracyLow || opts.Accuracy > AccuracyHigh {
		return nil, fmt.Errorf("sht3x: invalid accuracy %d", opts.Accuracy)
	}
	if opts.Unit != Celsius && opts.Unit != Fahrenheit {
		return nil, fmt.Errorf("sht3x: invalid unit %d", opts.Unit)
	}
	return &Dev{
		d:        &i2c.Dev{Bus: b, Addr: uint16(addr)},
		mode:     opts.Mode,
		rate:     opts.Rate,
		art:      opts.ART,
		accuracy: opts.Accuracy,
		unit:     opts.Unit,
	}, nil
}

// Measure starts an acquisition. In single-shot mode it triggers one
// conversion; the caller must wait the accuracy's ConversionTime() before
// Read(). In periodic mode it starts free-running acquisition; calling it
// again while running is a no-op.
func (d *Dev) Measure() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.measure()
}

func (d *Dev) measure() error {
	if d.state == statePeriodicRunning {
		// Already acquiring.
		return nil
	}
	var cmd devCommand
	if d.mode == ModePeriodic {
		cmd = periodicCommand(d.rate, d.accuracy, d.art)
	} else {
		cmd = singleShotCommand(d.accuracy, false)
	}
	if err := d.d.Tx(cmd, nil); err != nil {
		return fmt.Errorf("sht3x: measure: %w", err)
	}
	if d.mode == ModePeriodic {
		d.state = statePeriodicRunning
	} else {
		d.state = stateSingleShotPending
	}
	return nil
}

// Read fetches, validates and converts one measurement frame.
//
// It is only legal after Measure(): from idle it returns ErrSequence without
// touching the bus. A ChecksumError is recoverable; the state is left
// unchanged so periodic callers can Read() again and single-shot callers can
// re-Measure().
func (d *Dev) Read() (Reading, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	raw, err := d.readFrame()
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		Temperature: countToTemperature(raw.temperature, d.unit),
		Humidity:    countToHumidity(raw.humidity),
	}, nil
}

// readFrame reads one 6 byte frame and validates both checksums. On success
// a pending single-shot acquisition returns to idle; periodic acquisition
// keeps running. Errors leave the state unchanged.
func (d *Dev) readFrame() (rawReading, error) {
	var buf [6]byte
	var err error
	switch d.state {
	case stateIdle:
		return rawReading{}, fmt.Errorf("sht3x: read before measure: %w", ErrSequence)
	case stateSingleShotPending:
		err = d.d.Tx(nil, buf[:])
	case statePeriodicRunning:
		err = d.d.Tx(periodicFetch, buf[:])
	}
	if err != nil {
		return rawReading{}, fmt.Errorf("sht3x: read: %w", err)
	}
	raw, err := decodeFrame(buf[:])
	if err != nil {
		return rawReading{}, err
	}
	if d.state == stateSingleShotPending {
		d.state = stateIdle
	}
	return raw, nil
}

// decodeFrame validates the two words of a measurement frame independently
// and returns the raw counts.
func decodeFrame(buf []byte) (rawReading, error) {
	if c := crc8(buf[:2]); c != buf[2] {
		return rawReading{}, &ChecksumError{
			Field:    "temperature",
			Data:     [2]byte{buf[0], buf[1]},
			Received: buf[2],
			Computed: c,
		}
	}
	if c := crc8(buf[3:5]); c != buf[5] {
		return rawReading{}, &ChecksumError{
			Field:    "humidity",
			Data:     [2]byte{buf[3], buf[4]},
			Received: buf[5],
			Computed: c,
		}
	}
	return rawReading{
		temperature: uint16(buf[0])<<8 | uint16(buf[1]),
		humidity:    uint16(buf[3])<<8 | uint16(buf[4]),
	}, nil
}

// Break stops a running periodic acquisition and returns the device to idle.
// It returns ErrSequence when no periodic acquisition is running. If the bus
// write fails the state is left unchanged, since the device may not have
// received the command.
func (d *Dev) Break() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != statePeriodicRunning {
		return fmt.Errorf("sht3x: break without periodic acquisition: %w", ErrSequence)
	}
	if err := d.d.Tx(breakCommand, nil); err != nil {
		return fmt.Errorf("sht3x: break: %w", err)
	}
	d.state = stateIdle
	return nil
}

// SetMode changes the acquisition mode. Only legal while idle: periodic
// acquisition must be stopped with Break() and a pending single-shot
// conversion collected with Read() first.
func (d *Dev) SetMode(m Mode) error {
	if m != ModeSingleShot && m != ModePeriodic {
		return fmt.Errorf("sht3x: invalid mode %d", m)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != stateIdle {
		return fmt.Errorf("sht3x: mode change during acquisition: %w", ErrSequence)
	}
	d.mode = m
	return nil
}

// SetRate changes the periodic sample rate. Only legal while idle.
func (d *Dev) SetRate(r SampleRate) error {
	if r < RateHalfHertz || r > Rate10Hertz {
		return fmt.Errorf("sht3x: invalid sample rate %d", r)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != stateIdle {
		return fmt.Errorf("sht3x: rate change during acquisition: %w", ErrSequence)
	}
	d.rate = r
	return nil
}

// SetAccuracy changes the measurement accuracy. Only legal while idle, since
// it selects the start command of the next acquisition.
func (d *Dev) SetAccuracy(a Accuracy) error {
	if a < AccuracyLow || a > AccuracyHigh {
		return fmt.Errorf("sht3x: invalid accuracy %d", a)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != stateIdle {
		return fmt.Errorf("sht3x: accuracy change during acquisition: %w", ErrSequence)
	}
	d.accuracy = a
	return nil
}

// SetUnit changes the temperature unit of Read() results. The unit only
// affects conversion, so it may be changed at any time.
func (d *Dev) SetUnit(u Unit) {
	d.mu.Lock()
	d.unit = u
	d.mu.Unlock()
}

// samplePeriod returns the interval between samples in periodic mode. ART
// forces 4Hz.
func (d *Dev) samplePeriod() time.Duration {
	if d.art {
		return samplePeriods[RateFourHertz]
	}
	return samplePeriods[d.rate]
}

// Sense reads temperature and humidity from the device and writes them to
// the given env variable, starting an acquisition and waiting for the data
// if needed. Implements physic.SenseEnv.
func (d *Dev) Sense(env *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	env.Temperature = 0
	env.Pressure = 0
	env.Humidity = 0
	switch d.state {
	case stateIdle:
		if err := d.measure(); err != nil {
			return err
		}
		if d.mode == ModePeriodic {
			// The first sample is not available before one full period.
			time.Sleep(d.samplePeriod())
		} else {
			time.Sleep(d.accuracy.ConversionTime())
		}
	case stateSingleShotPending:
		time.Sleep(d.accuracy.ConversionTime())
	}
	raw, err := d.readFrame()
	if err != nil {
		return err
	}
	env.Temperature = countToPhysicTemperature(raw.temperature)
	env.Humidity = countToPhysicHumidity(raw.humidity)
	return nil
}

// SenseContinuous continuously reads from the device and writes readings to
// the returned channel. To terminate it, call Halt(). Implements
// physic.SenseEnv.
//
// In periodic mode interval must not be shorter than the configured sample
// period, in single-shot mode not shorter than the conversion time.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shutdown != nil {
		return nil, errors.New("sht3x: SenseContinuous already running")
	}
	if d.mode == ModePeriodic && interval < d.samplePeriod() {
		return nil, errors.New("sht3x: interval is shorter than the sample period")
	}
	if d.mode == ModeSingleShot && interval < d.accuracy.ConversionTime() {
		return nil, errors.New("sht3x: interval is shorter than the conversion time")
	}

	d.shutdown = make(chan struct{})
	chResult := make(chan physic.Env, 16)
	go func(ch chan physic.Env, shutdown <-chan struct{}) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ch)
		for {
			select {
			case <-shutdown:
				return
			case <-ticker.C:
				env := physic.Env{}
				if err := d.Sense(&env); err == nil {
					ch <- env
				}
			}
		}
	}(chResult, d.shutdown)
	return chResult, nil
}

// Precision returns the smallest change in readings the device can resolve.
// Implements physic.SenseEnv.
func (d *Dev) Precision(env *physic.Env) {
	env.Temperature = physic.Temperature(math.Round(celsiusScalar / countDivisor * float64(physic.Celsius)))
	env.Humidity = physic.RelativeHumidity(math.Round(humidityScalar / countDivisor * float64(physic.PercentRH)))
	env.Pressure = 0
}

// Halt terminates a running SenseContinuous and stops periodic acquisition
// if one is running. Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shutdown != nil {
		close(d.shutdown)
		d.shutdown = nil
	}
	if d.state == statePeriodicRunning {
		if err := d.d.Tx(breakCommand, nil); err != nil {
			return fmt.Errorf("sht3x: halt: %w", err)
		}
		d.state = stateIdle
	}
	return nil
}

// ReadStatus returns the sensor's status register. Refer to the Status*
// constants and the datasheet for interpretation.
func (d *Dev) ReadStatus() (StatusWord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := make([]byte, 3)
	if err := d.d.Tx(readStatus, r); err != nil {
		return 0, fmt.Errorf("sht3x: status: %w", err)
	}
	if c := crc8(r[:2]); c != r[2] {
		return 0, &ChecksumError{
			Field:    "status",
			Data:     [2]byte{r[0], r[1]},
			Received: r[2],
			Computed: c,
		}
	}
	return StatusWord(r[0])<<8 | StatusWord(r[1]), nil
}

// ClearStatus clears the alert and reset flags of the status register.
func (d *Dev) ClearStatus() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.d.Tx(clearStatus, nil); err != nil {
		return fmt.Errorf("sht3x: clear status: %w", err)
	}
	return nil
}

// SetHeater switches the built-in heater element on or off. The heater is
// meant for plausibility checks and operation in condensing environments; it
// is off after every reset.
func (d *Dev) SetHeater(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cmd := disableHeater
	if on {
		cmd = enableHeater
	}
	if err := d.d.Tx(cmd, nil); err != nil {
		return fmt.Errorf("sht3x: heater: %w", err)
	}
	return nil
}

// SoftReset re-initializes the sensor without a power cycle. The device does
// not accept it while a periodic acquisition is running; call Break() first.
func (d *Dev) SoftReset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.d.Tx(softReset, nil); err != nil {
		return fmt.Errorf("sht3x: soft reset: %w", err)
	}
	// Maximum soft reset time per the datasheet is 1.5ms.
	time.Sleep(2 * time.Millisecond)
	d.state = stateIdle
	return nil
}

// GeneralCallReset issues an I2C general call reset. Every device on the bus
// that honors the general call is reset, not just this sensor.
func (d *Dev) GeneralCallReset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.d.Bus.Tx(0, generalCallReset, nil); err != nil {
		return fmt.Errorf("sht3x: general call reset: %w", err)
	}
	time.Sleep(2 * time.Millisecond)
	d.state = stateIdle
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("sht3x: %s", d.d.String())
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
