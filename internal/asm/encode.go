package asm

// encode.go packs the six RV64 instruction formats (R/I/S/B/U/J) into
// their 32-bit words, the same field layout internal/hart/decode.go
// unpacks. Register operands are plain 0-31 indices rather than a Reg
// type, since there is only one register class to encode.

// EncodeR builds an R-type instruction: funct7 | rs2 | rs1 | funct3 | rd | opcode.
func EncodeR(opcode, rd, funct3, rs1, rs2, funct7 uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

// EncodeI builds an I-type instruction: imm[11:0] | rs1 | funct3 | rd | opcode.
func EncodeI(opcode, rd, funct3, rs1 uint32, imm int32) uint32 {
	return uint32(imm)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

// EncodeS builds an S-type instruction, splitting imm across two fields.
func EncodeS(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	imm11_5 := (u >> 5) & 0x7f
	imm4_0 := u & 0x1f

	return imm11_5<<25 | rs2<<20 | rs1<<15 | funct3<<12 | imm4_0<<7 | opcode
}

// EncodeB builds a B-type instruction. imm is the byte offset; bit 0 is
// implicitly zero and not encoded, matching the decoder's ImmB.
func EncodeB(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	imm12 := (u >> 12) & 0x1
	imm10_5 := (u >> 5) & 0x3f
	imm4_1 := (u >> 1) & 0xf
	imm11 := (u >> 11) & 0x1

	return imm12<<31 | imm10_5<<25 | rs2<<20 | rs1<<15 | funct3<<12 | imm4_1<<8 | imm11<<7 | opcode
}

// EncodeU builds a U-type instruction: imm[31:12] | rd | opcode. imm is
// the raw upper-20-bits value, already positioned as bits [31:12].
func EncodeU(opcode, rd uint32, imm int32) uint32 {
	return uint32(imm)&0xfffff000 | rd<<7 | opcode
}

// EncodeJ builds a J-type instruction. imm is the byte offset; bit 0 is
// implicitly zero and not encoded, matching the decoder's ImmJ.
func EncodeJ(opcode, rd uint32, imm int32) uint32 {
	u := uint32(imm)
	imm20 := (u >> 20) & 0x1
	imm10_1 := (u >> 1) & 0x3ff
	imm11 := (u >> 11) & 0x1
	imm19_12 := (u >> 12) & 0xff

	return imm20<<31 | imm10_1<<21 | imm11<<20 | imm19_12<<12 | rd<<7 | opcode
}
