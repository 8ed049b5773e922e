package hart_test

import (
	"context"
	"testing"
	"time"

	"github.com/rvsim/hart64/internal/hart"
)

func TestCLINTTickSetsMTIP(t *testing.T) {
	clint := hart.NewCLINT()

	if trap := clint.Store(hart.ClintMtimeCmp, 64, 3); trap != nil {
		t.Fatalf("store mtimecmp: %v", trap)
	}

	for i := 0; i < 3; i++ {
		clint.Tick()
	}

	if !clint.TimerPending() {
		t.Errorf("TimerPending false after mtime reached mtimecmp")
	}
}

func TestCLINTRunTickerAdvancesMtime(t *testing.T) {
	clint := hart.NewCLINT()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		clint.RunTicker(ctx, 1000)
		close(done)
	}()

	<-done

	mtime, trap := clint.Load(hart.ClintMtime, 64)
	if trap != nil {
		t.Fatalf("load mtime: %v", trap)
	}

	if mtime == 0 {
		t.Errorf("mtime did not advance while the ticker ran")
	}
}

func TestPLICClaimAndComplete(t *testing.T) {
	plic := hart.NewPLIC()

	if trap := plic.Store(hart.PlicSEnable, 32, 1<<hart.UartIRQ); trap != nil {
		t.Fatalf("store senable: %v", trap)
	}

	plic.SetPending(hart.UartIRQ)

	if !plic.Pending() {
		t.Fatalf("expected a pending enabled interrupt")
	}

	claimed, trap := plic.Load(hart.PlicSClaim, 32)
	if trap != nil {
		t.Fatalf("claim: %v", trap)
	}

	if claimed != hart.UartIRQ {
		t.Errorf("claimed irq = %d, want %d", claimed, hart.UartIRQ)
	}

	if plic.Pending() {
		t.Errorf("interrupt still pending after claim")
	}

	if trap := plic.Store(hart.PlicSClaim, 32, claimed); trap != nil {
		t.Fatalf("complete: %v", trap)
	}
}
