package hart_test

import (
	"context"
	"testing"

	"github.com/rvsim/hart64/internal/asm"
	"github.com/rvsim/hart64/internal/hart"
)

// TestIllegalInstructionIsFatal covers spec.md §8's invariant that an
// unrecognized opcode halts the run with a fatal trap rather than being
// silently skipped.
func TestIllegalInstructionIsFatal(t *testing.T) {
	bus := hart.NewBus(image(0xffffffff), nil) // not a valid opcode encoding
	h := hart.New(bus)

	err := h.Run(context.Background(), 10)
	if err == nil {
		t.Fatalf("expected a fatal trap, got nil")
	}

	trap, ok := err.(*hart.Trap)
	if !ok {
		t.Fatalf("err is %T, want *hart.Trap", err)
	}

	if trap.Cause != hart.CauseIllegalInstruction {
		t.Errorf("cause = %s, want IllegalInstruction", trap.Cause)
	}
}

// TestMisalignedInstructionFetchIsFatal covers the pc%4 check in Step.
func TestMisalignedInstructionFetchIsFatal(t *testing.T) {
	bus := hart.NewBus(image(asm.ADDI(asm.A0, asm.Zero, 1), 0), nil)
	h := hart.New(bus)
	h.PC += 2 // misalign

	err := h.Run(context.Background(), 10)

	trap, ok := err.(*hart.Trap)
	if !ok {
		t.Fatalf("err is %T, want *hart.Trap", err)
	}

	if trap.Cause != hart.CauseInstructionAddrMisaligned {
		t.Errorf("cause = %s, want InstructionAddrMisaligned", trap.Cause)
	}
}

// TestEnvironmentCallAtBootIsFromMMode covers spec.md §3's lifecycle rule
// that a hart boots in M-mode: an ECALL before any MRET/SRET must trap as
// EnvironmentCallFromMMode, never delegated to S-mode regardless of MEDELEG,
// since handleTrap's delegation check requires Mode <= Supervisor.
func TestEnvironmentCallAtBootIsFromMMode(t *testing.T) {
	bus := hart.NewBus(image(asm.ECALL(), 0), nil)
	h := hart.New(bus)
	h.CSR.RawStore(hart.CSRMedeleg, 1<<hart.CauseEnvironmentCallFromMMode|1<<hart.CauseEnvironmentCallFromUMode)

	if err := h.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if h.Mode != hart.PrivilegeMachine {
		t.Errorf("mode = %s, want M (boot trap is never delegated)", h.Mode)
	}

	if cause := h.CSR.RawLoad(hart.CSRMcause); cause != uint64(hart.CauseEnvironmentCallFromMMode) {
		t.Errorf("mcause = %d, want EnvironmentCallFromMMode (%d)", cause, hart.CauseEnvironmentCallFromMMode)
	}
}

// TestEnvironmentCallFromUserDelegatesToSupervisor covers spec.md §4.10's
// delegation rule: an ECALL from U-mode, with the cause bit set in
// MEDELEG, traps into S-mode rather than M-mode.
func TestEnvironmentCallFromUserDelegatesToSupervisor(t *testing.T) {
	bus := hart.NewBus(image(asm.ECALL(), 0), nil)
	h := hart.New(bus)
	h.Mode = hart.PrivilegeUser
	h.CSR.RawStore(hart.CSRMedeleg, 1<<hart.CauseEnvironmentCallFromUMode)
	h.CSR.RawStore(hart.CSRStvec, hart.DramBase+0x100)

	if err := h.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if h.Mode != hart.PrivilegeSupervisor {
		t.Errorf("mode = %s, want S (delegated trap)", h.Mode)
	}

	if h.PC != hart.DramBase+0x100 {
		t.Errorf("pc = %#x, want stvec %#x", h.PC, hart.DramBase+0x100)
	}
}
