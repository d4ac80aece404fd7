//go:build tinygo

package main

import (
	"time"

	"guition/app"
	"guition/hal"
)

func main() {
	h := hal.New()
	step, err := app.New(h, app.Config{ColorCycle: colorCycle})
	if err != nil {
		h.Logger().WriteLineString("bring-up failed: " + err.Error())
		select {} // fail loudly, stop rendering
	}

	for {
		if err := step(); err != nil {
			h.Logger().WriteLineString("render: " + err.Error())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
