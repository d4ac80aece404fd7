// Command fbshot runs the bring-up against the simulated panel and writes
// what would appear on the glass to a WebP file. Useful for eyeballing
// scene changes without flashing a board.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"

	"guition/app"
	"guition/hal"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	xdraw "golang.org/x/image/draw"
)

func main() {
	var (
		out        = flag.String("o", "guition.webp", "Output WebP path.")
		ticks      = flag.Uint64("ticks", 30, "Simulated ticks to run before the snapshot.")
		scale      = flag.Int("scale", 1, "Integer upscale factor for the output image.")
		overlay    = flag.String("overlay", "", "Optional TGA image composited over the snapshot.")
		colorCycle = flag.Bool("color-cycle", false, "Snapshot the solid-fill smoke test.")
		bootLog    = flag.Bool("boot-log", false, "Snapshot with the on-panel boot log enabled.")
	)
	flag.Parse()

	if err := run(*out, *ticks, *scale, *overlay, app.Config{
		ColorCycle: *colorCycle,
		BootLog:    *bootLog,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out string, ticks uint64, scale int, overlay string, cfg app.Config) error {
	if ticks == 0 {
		ticks = 1
	}
	if scale < 1 {
		scale = 1
	}

	var captured hal.HAL
	newApp := func(h hal.HAL) func() error {
		captured = h
		step, err := app.New(h, cfg)
		if err != nil {
			return func() error { return err }
		}
		return step
	}

	err := hal.RunHeadless(context.Background(), newApp, hal.HeadlessConfig{
		Enabled: true,
		Hz:      240, // hurry the simulation along
		Ticks:   ticks,
	})
	if err != nil {
		return err
	}

	img, err := hal.FrameImage(captured)
	if err != nil {
		return err
	}

	if overlay != "" {
		if err := composite(img, overlay); err != nil {
			return fmt.Errorf("overlay %s: %w", overlay, err)
		}
	}

	if scale > 1 {
		img = upscale(img, scale)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return nativewebp.Encode(f, img, nil)
}

// composite centers a TGA image (a board logo, usually) over the snapshot.
func composite(dst *image.RGBA, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := tga.Decode(f)
	if err != nil {
		return err
	}

	db := dst.Bounds()
	sb := src.Bounds()
	off := image.Pt(
		db.Min.X+(db.Dx()-sb.Dx())/2,
		db.Min.Y+(db.Dy()-sb.Dy())/2,
	)
	xdraw.Draw(dst, sb.Sub(sb.Min).Add(off), src, sb.Min, xdraw.Over)
	return nil
}

func upscale(img *image.RGBA, scale int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
