package hart

// regfile.go is the general-purpose register file. The ABI name table and
// the initial stack pointer value are grounded on original_source/src/cpu.rs
// (the RVABI constant and `regs[2] = DRAM_END`); the String/LogValue split
// is grounded on the teacher's internal/vm/vm.go RegisterFile, which offers
// the same pair of methods for a one-line dump versus structured logging.

import (
	"fmt"
	"strings"

	"github.com/rvsim/hart64/internal/log"
)

const NumGPR = 32

// rvabi names the 32 integer registers by calling convention, for
// diagnostics only; the simulator itself addresses registers by number.
var rvabi = [NumGPR]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// RegisterFile is the hart's 32 integer registers. x0 is wired to zero: Set
// discards writes to it and Get returns zero for it.
type RegisterFile [NumGPR]uint64

// Set writes a register, silently discarding writes to x0 per the RV64
// calling convention.
func (rf *RegisterFile) Set(reg int, value uint64) {
	if reg == 0 {
		return
	}

	rf[reg] = value
}

// Get reads a register. x0 always reads zero.
func (rf *RegisterFile) Get(reg int) uint64 {
	if reg == 0 {
		return 0
	}

	return rf[reg]
}

func (rf RegisterFile) String() string {
	b := strings.Builder{}

	for i := 0; i < NumGPR; i += 4 {
		fmt.Fprintf(&b, "x%-2d/%-4s %#018x  x%-2d/%-4s %#018x  x%-2d/%-4s %#018x  x%-2d/%-4s %#018x\n",
			i, rvabi[i], rf[i],
			i+1, rvabi[i+1], rf[i+1],
			i+2, rvabi[i+2], rf[i+2],
			i+3, rvabi[i+3], rf[i+3],
		)
	}

	return b.String()
}

// LogValue groups the register file by ABI name for structured logging, the
// way vm.RegisterFile.LogValue groups R0-R7.
func (rf RegisterFile) LogValue() log.Value {
	attrs := make([]log.Attr, NumGPR)
	for i := range rf {
		attrs[i] = log.Uint64(rvabi[i], rf[i])
	}

	return log.GroupValue(attrs...)
}
