package hart_test

import (
	"bytes"
	"testing"

	"github.com/rvsim/hart64/internal/hart"
)

func TestUARTTransmit(t *testing.T) {
	u := hart.NewUART()

	var out bytes.Buffer
	u.AttachOutput(&out)

	if trap := u.Store(hart.UartBase+hart.UartTHR, 8, 'A'); trap != nil {
		t.Fatalf("store THR: %v", trap)
	}

	if got := out.String(); got != "A" {
		t.Errorf("transmitted %q, want %q", got, "A")
	}
}

func TestUARTReceive(t *testing.T) {
	u := hart.NewUART()

	u.Update('z')

	if !u.InterruptRequested() {
		t.Fatalf("expected an interrupt request after Update")
	}

	value, trap := u.Load(hart.UartBase+hart.UartRHR, 8)
	if trap != nil {
		t.Fatalf("load RHR: %v", trap)
	}

	if value != 'z' {
		t.Errorf("RHR = %q, want 'z'", value)
	}

	lsr, trap := u.Load(hart.UartBase+hart.UartLSR, 8)
	if trap != nil {
		t.Fatalf("load LSR: %v", trap)
	}

	if lsr&uint64(hart.UartLSRRxReady) != 0 {
		t.Errorf("LSR still reports rx-ready after the byte was read")
	}
}
