// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/privexec/lib/config"
	"github.com/bureau-foundation/privexec/lib/entropy"
	"github.com/bureau-foundation/privexec/lib/logging"
	"github.com/bureau-foundation/privexec/lib/prng"
)

func (a *app) randCmd(args []string) error {
	flagSet := pflag.NewFlagSet("rand", pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	configPath := flagSet.String("config", "", "path to config file (default: $"+config.EnvironmentVariable+")")
	generator := flagSet.String("gen", "xorshift", "generator: tausworthe or xorshift")
	count := flagSet.Int("count", 1, "number of draws")
	seed := flagSet.Uint64("seed", 0, "fixed seed instead of system entropy")
	device := flagSet.String("device", "", "random device for the fallback tier")
	hex := flagSet.Bool("hex", false, "print draws in hexadecimal")
	jitter := flagSet.Duration("jitter", 0, "print base durations with ±25% jitter instead of raw draws")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if *count < 0 {
		return fmt.Errorf("--count must not be negative")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("device") {
		cfg.Entropy.Device = *device
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.New(a.stderr, level).With("command", "rand")

	var source io.Reader
	switch {
	case flagSet.Changed("seed"):
		source = seedReader(*seed)
	case a.entropy != nil:
		source = a.entropy
	default:
		system := entropy.New(logger)
		system.Device = cfg.Entropy.Device
		source = system
	}

	var draw func() uint64
	width := 16
	switch *generator {
	case "tausworthe":
		state, err := prng.NewTausworthe(source)
		if err != nil {
			return err
		}
		draw = func() uint64 { return uint64(state.Next()) }
		width = 8
		if *jitter > 0 {
			draw = state.Uint64
		}
	case "xorshift":
		state, err := prng.NewXorshift64Star(source)
		if err != nil {
			return err
		}
		draw = state.Next
	default:
		return fmt.Errorf("unknown generator %q (expected tausworthe or xorshift)", *generator)
	}
	if system, ok := source.(*entropy.Source); ok {
		logger.Debug("seeded generator", "generator", *generator, "tier", system.Tier().String())
	}

	for range *count {
		switch {
		case *jitter > 0:
			fmt.Fprintln(a.stdout, prng.Jitter(drawSource(draw), *jitter, 0.25).Round(time.Microsecond))
		case *hex:
			fmt.Fprintf(a.stdout, "%0*x\n", width, draw())
		default:
			fmt.Fprintln(a.stdout, draw())
		}
	}
	return nil
}

// seedReader returns the bytes the generators read for a fixed seed:
// the native-endian encoding, truncated to 32 bits for Tausworthe.
func seedReader(seed uint64) io.Reader {
	return &fixedSeed{seed: seed}
}

type fixedSeed struct {
	seed uint64
}

func (f *fixedSeed) Read(p []byte) (int, error) {
	switch len(p) {
	case 4:
		binary.NativeEndian.PutUint32(p, uint32(f.seed))
	case 8:
		binary.NativeEndian.PutUint64(p, f.seed)
	default:
		return 0, fmt.Errorf("fixed seed cannot fill %d bytes", len(p))
	}
	return len(p), nil
}

// drawSource adapts a draw function to math/rand/v2.Source.
type drawSource func() uint64

func (d drawSource) Uint64() uint64 { return d() }
