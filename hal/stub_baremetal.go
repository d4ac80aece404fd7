//go:build tinygo && baremetal && !guition

package hal

import "machine"

type stubHAL struct {
	logger *uartLogger
	t      *tinyGoTime
}

// New returns a panel-less HAL for boards without the guition tag, so the
// firmware still links and logs on other hardware.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
	})
	return &stubHAL{
		logger: &uartLogger{uart: uart},
		t:      newTinyGoTime(),
	}
}

func (h *stubHAL) Logger() Logger   { return h.logger }
func (h *stubHAL) Display() Display { return stubDisplay{} }
func (h *stubHAL) Time() Time       { return h.t }

type stubDisplay struct{}

func (stubDisplay) Panel() Panel { return nil }
