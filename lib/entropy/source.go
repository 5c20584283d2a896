// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entropy

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/privexec/lib/clock"
	"github.com/bureau-foundation/privexec/lib/process"
)

// DefaultDevice is the random device read by the second tier.
const DefaultDevice = "/dev/urandom"

// jitterDelay is slept between clock readings in the third tier.
const jitterDelay = time.Nanosecond

// Tier identifies which method filled the last buffer.
type Tier int

const (
	TierNone Tier = iota
	TierSyscall
	TierDevice
	TierClock
)

func (t Tier) String() string {
	switch t {
	case TierSyscall:
		return "getrandom"
	case TierDevice:
		return "device"
	case TierClock:
		return "clock"
	default:
		return "none"
	}
}

// Source fills buffers using the tiered fallback. A Source is not safe
// for concurrent use.
type Source struct {
	// Getrandom fills as much of buf as it can, like getrandom(2) with
	// no flags. Nil disables the first tier.
	Getrandom func(buf []byte) (int, error)

	// Device is the random device path. Empty means DefaultDevice.
	Device string

	// Timestamp reads the realtime clock as seconds and nanoseconds.
	Timestamp func() (seconds, nanoseconds int64, err error)

	// Clock provides the sleep between clock readings. Nil means
	// clock.Real().
	Clock clock.Clock

	Logger *slog.Logger

	tier Tier
}

// New returns a Source with the platform's default tiers.
func New(logger *slog.Logger) *Source {
	return &Source{
		Getrandom: platformGetrandom,
		Timestamp: platformTimestamp,
		Logger:    logger,
	}
}

// Tier reports which tier filled the most recent buffer.
func (s *Source) Tier() Tier { return s.tier }

// Read fills p completely and implements io.Reader. It never returns a
// short read without an error.
func (s *Source) Read(p []byte) (int, error) {
	if err := s.Fill(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Fill writes len(buf) unpredictable bytes to buf.
func (s *Source) Fill(buf []byte) error {
	s.tier = TierNone
	if len(buf) == 0 {
		return nil
	}

	if s.Getrandom != nil {
		done, err := s.fillSyscall(buf)
		if err != nil {
			return err
		}
		if done {
			s.tier = TierSyscall
			return nil
		}
	}

	err := s.fillDevice(buf)
	if err == nil {
		s.tier = TierDevice
		return nil
	}
	s.logger().Warn("random device unavailable", "device", s.device(), "error", err)

	s.logger().Warn("seeding PRNG via system clock; may be predictable")
	if err = s.fillClock(buf); err != nil {
		return err
	}
	s.tier = TierClock
	return nil
}

// fillSyscall reports done=false when the kernel lacks getrandom or
// when a call returns no bytes without an error. The next tier then
// overwrites the whole buffer.
func (s *Source) fillSyscall(buf []byte) (bool, error) {
	filled := 0
	for filled < len(buf) {
		n, err := s.Getrandom(buf[filled:])
		if err != nil {
			switch {
			case errors.Is(err, unix.EINTR):
				continue
			case errors.Is(err, unix.ENOSYS):
				return false, nil
			default:
				return false, process.Fatalf("getrandom", "%w", err)
			}
		}
		if n == 0 {
			s.logger().Warn("getrandom made no progress", "filled", filled, "wanted", len(buf))
			return false, nil
		}
		filled += n
	}
	return true, nil
}

func (s *Source) fillDevice(buf []byte) error {
	file, err := os.Open(s.device())
	if err != nil {
		return fmt.Errorf("could not open: %w", err)
	}
	defer file.Close()

	if _, err := io.ReadFull(file, buf); err != nil {
		return fmt.Errorf("could not read: %w", err)
	}
	return nil
}

func (s *Source) fillClock(buf []byte) error {
	timestamp := s.Timestamp
	if timestamp == nil {
		timestamp = platformTimestamp
	}
	sleeper := s.Clock
	if sleeper == nil {
		sleeper = clock.Real()
	}

	var stamp [16]byte
	for index := range buf {
		seconds, nanoseconds, err := timestamp()
		if err != nil {
			return process.Fatalf("clock_gettime", "could not read CLOCK_REALTIME: %w", err)
		}
		binary.NativeEndian.PutUint64(stamp[:8], uint64(seconds))
		binary.NativeEndian.PutUint64(stamp[8:], uint64(nanoseconds))
		for _, b := range stamp {
			buf[index] ^= b
		}
		sleeper.Sleep(jitterDelay)
	}
	return nil
}

func (s *Source) device() string {
	if s.Device != "" {
		return s.Device
	}
	return DefaultDevice
}

func (s *Source) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// ReadUint32 reads one native-endian 32-bit word from r.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(buf[:]), nil
}

// ReadUint64 reads one native-endian 64-bit word from r.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint64(buf[:]), nil
}
