// Command gensmooth runs the smooth-number gap search: given an upper
// bound N and a gap-width function w(·), it enumerates B-smooth numbers up
// to N and reports whether consecutive values stay close enough to cover
// the integer line under w, widening the smoothness basis as needed.
package main

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/bfix/gensmooth/internal/concurrent"
	"github.com/bfix/gensmooth/internal/config"
	"github.com/bfix/gensmooth/internal/driver"
	"github.com/bfix/gensmooth/internal/errs"
	"github.com/bfix/gensmooth/internal/logger"
	"github.com/bfix/gensmooth/internal/numeric"
	"github.com/bfix/gensmooth/internal/primetable"
	"github.com/bfix/gensmooth/internal/width"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.SetLevelFromName(cfg.LogLevel)
	if cfg.LogFile != "" {
		if logger.LogToFile(cfg.LogFile) {
			rotateOnSIGHUP()
		}
	}

	n, ok := new(big.Int).SetString(cfg.Bound, 10)
	if !ok || n.Sign() < 0 {
		fmt.Fprintf(os.Stderr, "malformed bound %q\n", cfg.Bound)
		return 1
	}

	w := width.New(cfg.Mode, cfg.Exponent)

	// Numeric regime selection: u64 suffices below 2^63; from there on the
	// u128-class big.Int-backed regime takes over.
	if n.BitLen() <= 63 {
		return runU64(cfg, n.Uint64(), w)
	}
	return runBig(cfg, n, w)
}

// rotateOnSIGHUP asks the logger to rotate its log file whenever the
// process receives SIGHUP, the conventional signal for telling a long-running
// daemon its log file was moved out from under it (e.g. by logrotate).
func rotateOnSIGHUP() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP)
	go func() {
		for range ch {
			logger.Rotate()
		}
	}()
}

func runU64(cfg *config.Config, n uint64, w width.Func) int {
	ring := numeric.U64Ring{}
	table := primetable.Build[numeric.U64](ring, cfg.PrimeBound)
	d := driver.New[numeric.U64](table, ring, numeric.U64(n), w, cfg.StepWidth, cfg.Workers)
	return runDriver[numeric.U64](d, func(v numeric.U64) string { return fmt.Sprintf("%d", v) })
}

func runBig(cfg *config.Config, n *big.Int, w width.Func) int {
	ring := numeric.BigRing{}
	table := primetable.Build[numeric.Big](ring, cfg.PrimeBound)
	bound, ok := numeric.NewBigFromString(n.String())
	if !ok {
		fmt.Fprintf(os.Stderr, "malformed bound %q\n", n.String())
		return 1
	}
	d := driver.New[numeric.Big](table, ring, bound, w, cfg.StepWidth, cfg.Workers)
	return runDriver[numeric.Big](d, func(v numeric.Big) string { return v.String() })
}

// genericDriver is the subset of driver.Driver[T] runDriver needs; kept
// narrow so it stays generic over T without re-parameterizing on every
// driver method.
type genericDriver[T numeric.Num[T]] interface {
	Events() (*concurrent.Listener, error)
	Run() (driver.Result[T], error)
}

func runDriver[T numeric.Num[T]](d genericDriver[T], format func(T) string) int {
	listener, err := d.Events()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	go logEvents(listener, format)

	result, err := d.Run()
	if err != nil {
		logger.Printf(logger.CRITICAL, "run failed: %v", err)
		if errors.Is(err, errs.ErrPrimeTableExhausted) {
			return 2
		}
		return 1
	}

	if result.UnresolvedGap {
		logger.Printf(logger.WARN, "gap unresolved at c=%.4f, final cursor value %s", result.FinalC, format(result.FinalCursorValue))
	}
	logger.Printf(logger.INFO, "completed in %s, final c=%.4f, final cursor value %s",
		result.Elapsed, result.FinalC, format(result.FinalCursorValue))
	return 0
}

func logEvents[T numeric.Num[T]](l *concurrent.Listener, format func(T) string) {
	for sig := range l.Signal() {
		switch ev := sig.(type) {
		case driver.PrimeAdmitted[T]:
			logger.Printf(logger.INFO, "admitted primes through index %d", ev.NewIndex)
			for i, mag := range ev.Coverage.Magnitudes {
				logger.Printf(logger.DBG, "coverage magnitude %d: full=%v alt=%v", mag, ev.Coverage.FullCovered[i], ev.Coverage.AltCovered[i])
			}
		case driver.GapDetected[T]:
			logger.Printf(logger.INFO, "gap detected at value %s (c=%.4f)", format(ev.AtValue), ev.C)
		case driver.WindowAdvanced[T]:
			logger.Printf(logger.INFO, "window advanced, new upper bound %s", format(ev.NewUpperBound))
		case driver.ShapeAdjusted:
			logger.Printf(logger.INFO, "shape parameter raised to %.4f", ev.NewC)
		case driver.Completed[T]:
			logger.Printf(logger.DBG, "completed event: elapsed=%s unresolved=%v", ev.Elapsed, ev.UnresolvedGap)
		}
	}
}

