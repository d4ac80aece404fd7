//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"guition/app"
	"guition/hal"
)

func main() {
	var hcfg hal.HeadlessConfig
	var cfg app.Config
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&cfg.ColorCycle, "color-cycle", false, "Run the solid-fill smoke test instead of the scene.")
	flag.BoolVar(&cfg.BootLog, "boot-log", false, "Show init progress on the panel before the scene.")
	flag.Parse()

	newApp := func(h hal.HAL) func() error {
		step, err := app.New(h, cfg)
		if err != nil {
			return func() error { return err }
		}
		return step
	}

	if hcfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
