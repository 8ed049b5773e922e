package asm_test

import (
	"testing"

	"github.com/rvsim/hart64/internal/asm"
	"github.com/rvsim/hart64/internal/hart"
)

func TestEncodeFieldsRoundTrip(t *testing.T) {
	word := asm.ADD(asm.A0, asm.A1, asm.A2)

	if got := hart.Opcode(word); got != 0x33 {
		t.Errorf("opcode = %#x, want 0x33", got)
	}

	if got := hart.Rd(word); got != asm.A0 {
		t.Errorf("rd = %d, want %d", got, asm.A0)
	}

	if got := hart.Rs1(word); got != asm.A1 {
		t.Errorf("rs1 = %d, want %d", got, asm.A1)
	}

	if got := hart.Rs2(word); got != asm.A2 {
		t.Errorf("rs2 = %d, want %d", got, asm.A2)
	}
}

func TestEncodeIImmediateSignExtends(t *testing.T) {
	word := asm.ADDI(asm.T0, asm.T1, -4)

	if got := hart.ImmI(word); got != -4 {
		t.Errorf("ImmI = %d, want -4", got)
	}
}

func TestEncodeSImmediate(t *testing.T) {
	word := asm.SD(asm.SP, asm.T0, 24)

	if got := hart.ImmS(word); got != 24 {
		t.Errorf("ImmS = %d, want 24", got)
	}
}

func TestEncodeBImmediate(t *testing.T) {
	word := asm.BEQ(asm.T0, asm.T1, -8)

	if got := hart.ImmB(word); got != -8 {
		t.Errorf("ImmB = %d, want -8", got)
	}
}

func TestEncodeJImmediate(t *testing.T) {
	word := asm.JAL(asm.RA, 2048)

	if got := hart.ImmJ(word); got != 2048 {
		t.Errorf("ImmJ = %d, want 2048", got)
	}
}

func TestEncodeUImmediate(t *testing.T) {
	word := asm.LUI(asm.T0, 0x12345000)

	if got := hart.ImmU(word); got != 0x12345000 {
		t.Errorf("ImmU = %#x, want 0x12345000", got)
	}
}

func TestEncodeCSRImmediate(t *testing.T) {
	word := asm.CSRRW(asm.Zero, 0x340, asm.T0)

	if got := hart.Funct3(word); got != 0x1 {
		t.Errorf("funct3 = %d, want 1", got)
	}

	if got := hart.ImmI(word); got != 0x340 {
		t.Errorf("csr imm = %#x, want 0x340", got)
	}
}
