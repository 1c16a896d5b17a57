// Package config parses the CLI surface: a single positional bound N, with
// an optional (mode, exponent) pair selecting the gap-width function.
// Parsing is done directly with the standard flag package's FlagSet rather
// than a third-party CLI library — gensmooth's flag surface is small enough
// that a dedicated parser would be pure overhead.
package config

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/bfix/gensmooth/internal/errs"
	"github.com/bfix/gensmooth/internal/width"
)

// Config is the parsed, validated command line.
type Config struct {
	// Bound is N, the decimal upper bound (the leading positional argument),
	// kept as a string since its numeric type depends on magnitude (u64 vs
	// u128-class regime) decided later by the caller.
	Bound string

	Mode     width.Mode
	Exponent float64

	PrimeBound uint64
	Workers    int
	StepWidth  int
	LogLevel   string
	LogFile    string
}

// defaultGapExponent is the default width shape: w(x) = sqrt(x), expressed
// as mode ModePow, exponent 0.5. There is no separate scaling knob: w is
// used unscaled, so a constant factor such as 2*sqrt(x) cannot be
// expressed.
const defaultGapExponent = 0.5

// Parse accepts two CLI variants:
//
//	gensmooth N
//	gensmooth N mode e
//
// plus the ambient flags (-primebound, -workers, -step, -loglevel), which
// have no positional form but are needed to run at all.
func Parse(args []string) (*Config, error) {
	fs := flag.NewFlagSet("gensmooth", flag.ContinueOnError)
	primeBound := fs.Uint64("primebound", 1<<24, "static sieve bound for the prime table")
	workers := fs.Int("workers", runtime.GOMAXPROCS(0), "worker count for the gap scanner (the fixed-prime generator sizes its pool from GOMAXPROCS)")
	step := fs.Int("step", 1<<20, "gap-scanner slab width")
	logLevel := fs.String("loglevel", "INFO", "CRITICAL|ERROR|WARN|INFO|DBG")
	logFile := fs.String("logfile", "", "write log output to this file instead of stdout (SIGHUP rotates it)")

	if err := fs.Parse(args); err != nil {
		return nil, errs.New(errs.ErrMalformedInput, "parsing flags: %v", err)
	}

	rest := fs.Args()
	cfg := &Config{
		Mode:       width.ModePow,
		Exponent:   defaultGapExponent,
		PrimeBound: *primeBound,
		Workers:    *workers,
		StepWidth:  *step,
		LogLevel:   *logLevel,
		LogFile:    *logFile,
	}

	switch len(rest) {
	case 1:
		cfg.Bound = rest[0]
	case 3:
		cfg.Bound = rest[0]
		var mode int
		if _, err := fmt.Sscanf(rest[1], "%d", &mode); err != nil || (mode != 0 && mode != 1) {
			return nil, errs.New(errs.ErrMalformedInput, "mode must be 0 or 1, got %q", rest[1])
		}
		cfg.Mode = width.Mode(mode)
		var e float64
		if _, err := fmt.Sscanf(rest[2], "%g", &e); err != nil {
			return nil, errs.New(errs.ErrMalformedInput, "exponent must be a float, got %q", rest[2])
		}
		cfg.Exponent = e
	default:
		return nil, errs.New(errs.ErrMalformedInput, "want `N` or `N mode e`, got %d positional arguments", len(rest))
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.StepWidth < 1 {
		cfg.StepWidth = 1
	}
	return cfg, nil
}
