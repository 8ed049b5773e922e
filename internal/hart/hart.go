package hart

// hart.go defines the simulated hart and assembles it from the smaller
// parts defined elsewhere in this package, the way the teacher's vm.go
// assembles an LC3 from RegisterFile/Memory/Interrupt/ControlRegister.

import (
	"fmt"

	"github.com/rvsim/hart64/internal/log"
)

// Hart is a single RISC-V RV64 hardware thread: its register file, program
// counter, privilege mode, CSR file, MMU, and the bus it executes against.
type Hart struct {
	Regs RegisterFile
	PC   uint64
	Mode Privilege
	CSR  CSRFile
	MMU  MMU
	Bus  *Bus

	// halted is set once Step observes a fetch of the literal zero word,
	// spec.md §5's defined clean-halt condition.
	halted bool

	log *log.Logger
}

// OptionFn customizes a Hart during New, following the teacher's
// vm.OptionFn pattern for post-construction configuration.
type OptionFn func(h *Hart)

// WithLogger overrides the hart's default logger.
func WithLogger(logger *log.Logger) OptionFn {
	return func(h *Hart) { h.log = logger }
}

// New creates a hart wired to bus, with the stack pointer initialized to
// the top of DRAM the way original_source/src/cpu.rs's constructor sets
// regs[2] = DRAM_END, and PC initialized to DramBase, the guest image's
// load address.
func New(bus *Bus, opts ...OptionFn) *Hart {
	h := &Hart{
		Bus:  bus,
		PC:   DramBase,
		Mode: PrivilegeMachine,
		log:  log.DefaultLogger(),
	}

	h.Regs.Set(2, DramEnd)

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *Hart) String() string {
	return fmt.Sprintf("PC: %#018x MODE: %s\n%s", h.PC, h.Mode, h.Regs.String())
}

// Halted reports whether the hart has reached the defined clean-halt
// condition.
func (h *Hart) Halted() bool {
	return h.halted
}
