//go:build tinygo

// Command bonnaroo-led is the firmware build of the panel player. It runs
// the same control loop as the simulator against the HUB75 matrix and the
// IR demodulator.
//
//	tinygo flash -target=teensy40 ./cmd/bonnaroo-led
package main

import (
	"context"
	"log/slog"
	"machine"
	"os"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/drewsortega/bonnaroo-led/internal/catalog"
	"github.com/drewsortega/bonnaroo-led/internal/config"
	"github.com/drewsortega/bonnaroo-led/internal/gifdec"
	"github.com/drewsortega/bonnaroo-led/internal/hw"
	"github.com/drewsortega/bonnaroo-led/internal/logging"
	"github.com/drewsortega/bonnaroo-led/internal/overlay"
	"github.com/drewsortega/bonnaroo-led/internal/player"
)

func main() {
	cfg := config.Default()

	logger := logging.New(os.Stdout, parseLevelOrInfo(cfg.Logging.Level))

	spi := machine.SPI1
	spi.Configure(machine.SPIConfig{Frequency: 8_000_000})

	panel := hw.NewPanel(hw.PanelConfig{
		Width:         cfg.Matrix.Width,
		Height:        cfg.Matrix.Height,
		MaxBrightness: cfg.Brightness.Max,
		SPI:           spi,
		Latch:         machine.D9,
		OE:            machine.D10,
		A:             machine.D2,
		B:             machine.D3,
		C:             machine.D4,
		D:             machine.D5,
	})
	panel.SetBrightness(cfg.Brightness.Initial)

	recv := hw.NewIRReceiver(machine.Pin(cfg.Input.Pin))
	recv.Begin(cfg.Input.Pin)

	clk := clock.New()
	ov := overlay.NewController(panel, time.Duration(cfg.Overlay.TimeoutMS)*time.Millisecond)
	ov.Write("POWER: ON", clk.Now(), true)

	// No SD stack wired up yet, so the firmware plays the builtin set.
	// TODO: enumerate a FAT volume on the SD slot once an sdcard driver
	// lands here.
	cat := catalog.Builtin(cfg.Matrix.Width, cfg.Matrix.Height)

	state := player.NewState(cat.Len(), cfg.Brightness.Initial, cfg.Brightness.Max)
	disp := player.NewDispatcher(recv, state, panel, ov, logger,
		time.Duration(cfg.Input.CooldownMS)*time.Millisecond,
		cfg.Brightness.Step, player.NavigationImmediate)
	dec := gifdec.New(gifdec.NewSurfaceTarget(panel), cfg.Matrix.Width, cfg.Matrix.Height)
	drv := player.NewDriver(state, cat, dec, panel, ov, logger,
		cfg.Matrix.Width, cfg.Matrix.Height,
		time.Duration(cfg.Playback.DefaultFrameDelayMS)*time.Millisecond,
		time.Duration(cfg.Playback.MinFrameDelayMS)*time.Millisecond)

	loop := player.NewLoop(clk, ov, disp, drv, logger, 0)
	loop.Run(context.Background())
}

func parseLevelOrInfo(level string) slog.Level {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}
