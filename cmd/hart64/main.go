// Command hart64 boots a bare-metal or xv6-class guest image on a simulated
// single-hart RISC-V RV64 machine.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rvsim/hart64/internal/console"
	"github.com/rvsim/hart64/internal/hart"
	"github.com/rvsim/hart64/internal/log"
)

// This is a single-command tool — there is only ever one thing to run, a
// guest image — so main wires flag.FlagSet directly rather than adopting
// the teacher's internal/cli Commander, which exists to dispatch among
// several named sub-commands (see DESIGN.md).
func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		logLevel string
		ticks    int64
		mtimeHz  int
	)

	fs := flag.NewFlagSet("hart64", flag.ContinueOnError)
	fs.StringVar(&logLevel, "loglevel", "info", "log `level`: debug, info, warn, or error")
	fs.Int64Var(&ticks, "ticks", -1, "instruction budget; -1 runs until halt or fault")
	fs.IntVar(&mtimeHz, "mtime-hz", 0, "advance mtime at `hz` ticks/sec; 0 disables the ticker")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: hart64 [flags] <guest-image> [<disk-image>]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	var level log.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		fmt.Fprintln(os.Stderr, "hart64:", err)
		return 2
	}

	log.LogLevel.Set(level)
	logger := log.DefaultLogger()

	loader := hart.NewLoader()

	guestPath := fs.Arg(0)

	diskPath := ""
	if fs.NArg() > 1 {
		diskPath = fs.Arg(1)
	}

	guest, err := loader.LoadGuestImage(guestPath)
	if err != nil {
		logger.Error(err.Error())
		return 2
	}

	disk, err := loader.LoadDiskImage(diskPath)
	if err != nil {
		logger.Error(err.Error())
		return 2
	}

	bus := hart.NewBus(guest, disk)
	h := hart.New(bus, hart.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	con, err := console.NewConsole(os.Stdin)
	if err != nil {
		if !errors.Is(err, console.ErrNoTTY) {
			logger.Error(err.Error())
			return 2
		}

		logger.Debug("stdin is not a tty, running without raw mode")
		console.AttachPlain(ctx, bus.UART, os.Stdin, os.Stdout)
	} else {
		defer con.Restore()
		con.Attach(ctx, bus.UART, os.Stdout)
	}

	if mtimeHz > 0 {
		go bus.CLINT.RunTicker(ctx, mtimeHz)
	}

	err = h.Run(ctx, ticks)

	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 0
	default:
		return 1
	}
}
