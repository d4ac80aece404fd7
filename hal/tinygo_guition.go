//go:build tinygo && baremetal && guition

package hal

import "machine"

type guitionHAL struct {
	logger *uartLogger
	panel  *axs15231b
	t      *tinyGoTime
}

// New returns the Guition JC3248W535 HAL (ESP32-S3, 3.5" QSPI panel).
//
// UART: UART0, 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
	})
	logger := &uartLogger{uart: uart}

	panel, err := initAXS15231B()
	if err != nil {
		logger.WriteLineString("display init failed: " + err.Error())
	}

	return &guitionHAL{
		logger: logger,
		panel:  panel,
		t:      newTinyGoTime(),
	}
}

func (h *guitionHAL) Logger() Logger   { return h.logger }
func (h *guitionHAL) Display() Display { return guitionDisplay{p: h.panel} }
func (h *guitionHAL) Time() Time       { return h.t }

type guitionDisplay struct {
	p *axs15231b
}

func (d guitionDisplay) Panel() Panel {
	if d.p == nil {
		return nil
	}
	return d.p
}
