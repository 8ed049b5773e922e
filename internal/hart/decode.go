package hart

// decode.go extracts the fixed bit-fields out of a 32-bit instruction word.
//
// Instruction format
//
// Every instruction this simulator executes is 32 bits wide and uses the
// standard RISC-V field layout:
//
//	<Funct7:7><Rs2:5><Rs1:5><Funct3:3><Rd:5><Opcode:7>
//
// Immediates are assembled from different subsets of the same 32 bits
// depending on the instruction format (I/S/B/U/J), each sign-extended to 64
// bits; for U-type the sign bit is bit 31 of the 32-bit upper immediate.
//
// Grounded on bassosimone-risc32/pkg/vm/vm.go's DecodeOpcode/DecodeRA/...
// style of one small free function per field, applied to the RV64 field
// layout from spec.md §4.9 instead of RiSC-32's RRR/RRI/RI formats.

// Opcode extracts inst[6:0].
func Opcode(inst uint32) uint32 {
	return inst & 0x7f
}

// Rd extracts inst[11:7].
func Rd(inst uint32) uint32 {
	return (inst >> 7) & 0x1f
}

// Funct3 extracts inst[14:12].
func Funct3(inst uint32) uint32 {
	return (inst >> 12) & 0x7
}

// Rs1 extracts inst[19:15].
func Rs1(inst uint32) uint32 {
	return (inst >> 15) & 0x1f
}

// Rs2 extracts inst[24:20].
func Rs2(inst uint32) uint32 {
	return (inst >> 20) & 0x1f
}

// Funct7 extracts inst[31:25].
func Funct7(inst uint32) uint32 {
	return (inst >> 25) & 0x7f
}

// Shamt extracts inst[25:20], the 6-bit shift amount used by RV64's
// register-immediate shifts; 32-bit shift-word forms use only its low 5
// bits.
func Shamt(inst uint32) uint32 {
	return (inst >> 20) & 0x3f
}

// ImmI sign-extends the 12-bit I-type immediate, inst[31:20].
func ImmI(inst uint32) int64 {
	return int64(int32(inst)) >> 20
}

// ImmS sign-extends the 12-bit S-type immediate, inst[31:25] ++ inst[11:7].
func ImmS(inst uint32) int64 {
	raw := (inst >> 7) & 0x1f
	raw |= ((inst >> 25) & 0x7f) << 5

	return signExtend(uint64(raw), 12)
}

// ImmB sign-extends the 13-bit (LSB implicit zero) B-type immediate.
func ImmB(inst uint32) int64 {
	var raw uint32
	raw |= ((inst >> 8) & 0xf) << 1
	raw |= ((inst >> 25) & 0x3f) << 5
	raw |= ((inst >> 7) & 0x1) << 11
	raw |= ((inst >> 31) & 0x1) << 12

	return signExtend(uint64(raw), 13)
}

// ImmU returns the 32-bit upper immediate, inst[31:12]<<12, sign-extended to
// 64 bits as part of the shift (bit 31 of the instruction becomes bit 63).
func ImmU(inst uint32) int64 {
	return int64(int32(inst & 0xffff_f000))
}

// ImmJ sign-extends the 21-bit (LSB implicit zero) J-type immediate.
func ImmJ(inst uint32) int64 {
	var raw uint32
	raw |= ((inst >> 21) & 0x3ff) << 1
	raw |= ((inst >> 20) & 0x1) << 11
	raw |= ((inst >> 12) & 0xff) << 12
	raw |= ((inst >> 31) & 0x1) << 20

	return signExtend(uint64(raw), 21)
}

// signExtend treats the low `bits` bits of v as a signed integer and
// extends its sign across the remaining bits of a 64-bit word.
func signExtend(v uint64, bits uint) int64 {
	shift := 64 - bits
	return int64(v<<shift) >> shift
}
