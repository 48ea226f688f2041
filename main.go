package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flags "github.com/jessevdk/go-flags"

	"organizer-console/internal/config"
	"organizer-console/internal/ui/headless"
	"organizer-console/internal/ui/plain"
)

var BuildVersion = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	rootCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	opts, err := config.ParseOptions(nil)
	if err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	saved, err := config.LoadSettings()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "ignoring saved settings:", err)
	}
	opts = config.MergeOptionsWithSettings(opts, saved)

	tuning, err := config.LoadTuning(opts.Tuning)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	tuning = tuning.ApplyOptions(opts)

	// One-shot commands may run next to an open console; only the
	// full-screen UI is single instance.
	if opts.Plain || opts.Action != "" || opts.Query != "" {
		return plain.Run(rootCtx, BuildVersion, opts, tuning)
	}

	opts = config.WithDefaults(opts)
	lock, lockedByOther, lockErr := acquireInstanceLock(instanceKey(opts.BaseURL))
	if lockErr != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize single-instance lock:", lockErr)
		return 2
	}
	if lockedByOther {
		fmt.Fprintf(os.Stderr, "Organizer console for %s is already running.\n", opts.BaseURL)
		return 1
	}
	defer func() {
		_ = lock.Release()
	}()

	return headless.Run(rootCtx, BuildVersion, opts, tuning)
}
