package hart

// clint.go is the core-local interruptor: mtime/mtimecmp. Grounded on
// original_source/src/interrupt/clint.rs, which holds exactly these two
// 64-bit registers and requires 64-bit-width accesses. RunTicker resolves
// spec.md §9's open question about who advances mtime, per SPEC_FULL.md §5:
// an optional background goroutine, off by default.
//
// spec.md §5 names the UART's interrupt flag as the only cross-thread-shared
// state; CLINT reuses that exact channel for mtime/mtimecmp (guarded by mut,
// the same as uart.go's regs) and for the pending-timer-interrupt flag
// (timerPending, an atomic.Bool sampled and cleared by the interpreter
// goroutine, the same as UART.interrupt/InterruptRequested). Tick, running
// on the ticker goroutine, never touches the hart's CSR file directly.

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// CLINT is the timer device: mtime free-runs and, once it reaches
// mtimecmp, the hart's machine timer interrupt pending bit is set.
type CLINT struct {
	mut      sync.Mutex
	mtime    uint64
	mtimecmp uint64

	// timerPending is set by Tick once mtime crosses mtimecmp, and sampled
	// and cleared by the interpreter goroutine's pollInterrupts, mirroring
	// UART.interrupt.
	timerPending atomic.Bool
}

// NewCLINT creates a CLINT with both registers at zero, matching
// original_source/src/interrupt/clint.rs's constructor.
func NewCLINT() *CLINT {
	return &CLINT{}
}

// Load reads mtime or mtimecmp; any other address in the CLINT's window
// reads as zero, per original_source's catch-all match arm.
func (c *CLINT) Load(addr uint64, width int) (uint64, *Trap) {
	if width != 64 {
		return 0, loadAccessFault(addr)
	}

	c.mut.Lock()
	defer c.mut.Unlock()

	switch addr {
	case ClintMtime:
		return c.mtime, nil
	case ClintMtimeCmp:
		return c.mtimecmp, nil
	default:
		return 0, nil
	}
}

// Store writes mtime or mtimecmp; writes to other addresses are ignored.
func (c *CLINT) Store(addr uint64, width int, value uint64) *Trap {
	if width != 64 {
		return storeAMOAccessFault(addr)
	}

	c.mut.Lock()
	defer c.mut.Unlock()

	switch addr {
	case ClintMtime:
		c.mtime = value
	case ClintMtimeCmp:
		c.mtimecmp = value
	}

	return nil
}

// Tick advances mtime by one and raises timerPending once mtime reaches
// mtimecmp. Runs on the ticker goroutine; it never touches the hart's CSR
// file, which belongs to the interpreter goroutine.
func (c *CLINT) Tick() {
	c.mut.Lock()
	c.mtime++
	crossed := c.mtime >= c.mtimecmp
	c.mut.Unlock()

	if crossed {
		c.timerPending.Store(true)
	}
}

// TimerPending reports and clears a pending machine-timer interrupt,
// mirroring UART.InterruptRequested. Called only from the interpreter
// goroutine.
func (c *CLINT) TimerPending() bool {
	return c.timerPending.Swap(false)
}

// RunTicker increments mtime at the given frequency until ctx is cancelled.
// A hz of zero or less disables the ticker entirely; callers that want
// mtime to advance only as a side effect of guest writes (e.g. the
// deterministic single-step test scenarios) simply never call RunTicker.
func (c *CLINT) RunTicker(ctx context.Context, hz int) {
	if hz <= 0 {
		return
	}

	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}
