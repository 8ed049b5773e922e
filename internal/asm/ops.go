package asm

// ops.go is the mnemonic layer: one function per instruction, each just a
// call into the EncodeX matching its format. Opcode/funct3/funct7 values
// mirror the constants internal/hart/ops.go dispatches on.

const (
	opLoad   = 0x03
	opImm    = 0x13
	opAUIPC  = 0x17
	opImm32  = 0x1b
	opStore  = 0x23
	opAMO    = 0x2f
	opOP     = 0x33
	opLUI    = 0x37
	opOP32   = 0x3b
	opBranch = 0x63
	opJALR   = 0x67
	opJAL    = 0x6f
	opSystem = 0x73
)

// Loads.
func LB(rd, rs1 int, imm int32) uint32  { return EncodeI(opLoad, u(rd), 0x0, u(rs1), imm) }
func LH(rd, rs1 int, imm int32) uint32  { return EncodeI(opLoad, u(rd), 0x1, u(rs1), imm) }
func LW(rd, rs1 int, imm int32) uint32  { return EncodeI(opLoad, u(rd), 0x2, u(rs1), imm) }
func LD(rd, rs1 int, imm int32) uint32  { return EncodeI(opLoad, u(rd), 0x3, u(rs1), imm) }
func LBU(rd, rs1 int, imm int32) uint32 { return EncodeI(opLoad, u(rd), 0x4, u(rs1), imm) }
func LHU(rd, rs1 int, imm int32) uint32 { return EncodeI(opLoad, u(rd), 0x5, u(rs1), imm) }
func LWU(rd, rs1 int, imm int32) uint32 { return EncodeI(opLoad, u(rd), 0x6, u(rs1), imm) }

// Stores.
func SB(rs1, rs2 int, imm int32) uint32 { return EncodeS(opStore, 0x0, u(rs1), u(rs2), imm) }
func SH(rs1, rs2 int, imm int32) uint32 { return EncodeS(opStore, 0x1, u(rs1), u(rs2), imm) }
func SW(rs1, rs2 int, imm int32) uint32 { return EncodeS(opStore, 0x2, u(rs1), u(rs2), imm) }
func SD(rs1, rs2 int, imm int32) uint32 { return EncodeS(opStore, 0x3, u(rs1), u(rs2), imm) }

// Register-immediate arithmetic.
func ADDI(rd, rs1 int, imm int32) uint32  { return EncodeI(opImm, u(rd), 0x0, u(rs1), imm) }
func SLTI(rd, rs1 int, imm int32) uint32  { return EncodeI(opImm, u(rd), 0x2, u(rs1), imm) }
func SLTIU(rd, rs1 int, imm int32) uint32 { return EncodeI(opImm, u(rd), 0x3, u(rs1), imm) }
func XORI(rd, rs1 int, imm int32) uint32  { return EncodeI(opImm, u(rd), 0x4, u(rs1), imm) }
func ORI(rd, rs1 int, imm int32) uint32   { return EncodeI(opImm, u(rd), 0x6, u(rs1), imm) }
func ANDI(rd, rs1 int, imm int32) uint32  { return EncodeI(opImm, u(rd), 0x7, u(rs1), imm) }

func SLLI(rd, rs1 int, shamt uint32) uint32 {
	return EncodeR(opImm, u(rd), 0x1, u(rs1), shamt&0x3f, 0x00)
}

func SRLI(rd, rs1 int, shamt uint32) uint32 {
	return EncodeR(opImm, u(rd), 0x5, u(rs1), shamt&0x3f, 0x00)
}

func SRAI(rd, rs1 int, shamt uint32) uint32 {
	return EncodeR(opImm, u(rd), 0x5, u(rs1), shamt&0x3f, 0x20)
}

func ADDIW(rd, rs1 int, imm int32) uint32 { return EncodeI(opImm32, u(rd), 0x0, u(rs1), imm) }

// Register-register arithmetic.
func ADD(rd, rs1, rs2 int) uint32  { return EncodeR(opOP, u(rd), 0x0, u(rs1), u(rs2), 0x00) }
func SUB(rd, rs1, rs2 int) uint32  { return EncodeR(opOP, u(rd), 0x0, u(rs1), u(rs2), 0x20) }
func SLL(rd, rs1, rs2 int) uint32  { return EncodeR(opOP, u(rd), 0x1, u(rs1), u(rs2), 0x00) }
func SLT(rd, rs1, rs2 int) uint32  { return EncodeR(opOP, u(rd), 0x2, u(rs1), u(rs2), 0x00) }
func SLTU(rd, rs1, rs2 int) uint32 { return EncodeR(opOP, u(rd), 0x3, u(rs1), u(rs2), 0x00) }
func XOR(rd, rs1, rs2 int) uint32  { return EncodeR(opOP, u(rd), 0x4, u(rs1), u(rs2), 0x00) }
func SRL(rd, rs1, rs2 int) uint32  { return EncodeR(opOP, u(rd), 0x5, u(rs1), u(rs2), 0x00) }
func SRA(rd, rs1, rs2 int) uint32  { return EncodeR(opOP, u(rd), 0x5, u(rs1), u(rs2), 0x20) }
func OR(rd, rs1, rs2 int) uint32   { return EncodeR(opOP, u(rd), 0x6, u(rs1), u(rs2), 0x00) }
func AND(rd, rs1, rs2 int) uint32  { return EncodeR(opOP, u(rd), 0x7, u(rs1), u(rs2), 0x00) }

func ADDW(rd, rs1, rs2 int) uint32 { return EncodeR(opOP32, u(rd), 0x0, u(rs1), u(rs2), 0x00) }
func SUBW(rd, rs1, rs2 int) uint32 { return EncodeR(opOP32, u(rd), 0x0, u(rs1), u(rs2), 0x20) }

// M extension.
func MUL(rd, rs1, rs2 int) uint32    { return EncodeR(opOP, u(rd), 0x0, u(rs1), u(rs2), 0x01) }
func MULH(rd, rs1, rs2 int) uint32   { return EncodeR(opOP, u(rd), 0x1, u(rs1), u(rs2), 0x01) }
func MULHSU(rd, rs1, rs2 int) uint32 { return EncodeR(opOP, u(rd), 0x2, u(rs1), u(rs2), 0x01) }
func MULHU(rd, rs1, rs2 int) uint32  { return EncodeR(opOP, u(rd), 0x3, u(rs1), u(rs2), 0x01) }
func DIV(rd, rs1, rs2 int) uint32    { return EncodeR(opOP, u(rd), 0x4, u(rs1), u(rs2), 0x01) }
func DIVU(rd, rs1, rs2 int) uint32   { return EncodeR(opOP, u(rd), 0x5, u(rs1), u(rs2), 0x01) }
func REM(rd, rs1, rs2 int) uint32    { return EncodeR(opOP, u(rd), 0x6, u(rs1), u(rs2), 0x01) }
func REMU(rd, rs1, rs2 int) uint32   { return EncodeR(opOP, u(rd), 0x7, u(rs1), u(rs2), 0x01) }

func MULW(rd, rs1, rs2 int) uint32  { return EncodeR(opOP32, u(rd), 0x0, u(rs1), u(rs2), 0x01) }
func DIVW(rd, rs1, rs2 int) uint32  { return EncodeR(opOP32, u(rd), 0x4, u(rs1), u(rs2), 0x01) }
func DIVUW(rd, rs1, rs2 int) uint32 { return EncodeR(opOP32, u(rd), 0x5, u(rs1), u(rs2), 0x01) }
func REMW(rd, rs1, rs2 int) uint32  { return EncodeR(opOP32, u(rd), 0x6, u(rs1), u(rs2), 0x01) }
func REMUW(rd, rs1, rs2 int) uint32 { return EncodeR(opOP32, u(rd), 0x7, u(rs1), u(rs2), 0x01) }

// Upper immediates.
func LUI(rd int, imm int32) uint32   { return EncodeU(opLUI, u(rd), imm) }
func AUIPC(rd int, imm int32) uint32 { return EncodeU(opAUIPC, u(rd), imm) }

// Control transfer.
func JAL(rd int, imm int32) uint32         { return EncodeJ(opJAL, u(rd), imm) }
func JALR(rd, rs1 int, imm int32) uint32   { return EncodeI(opJALR, u(rd), 0x0, u(rs1), imm) }
func BEQ(rs1, rs2 int, imm int32) uint32   { return EncodeB(opBranch, 0x0, u(rs1), u(rs2), imm) }
func BNE(rs1, rs2 int, imm int32) uint32   { return EncodeB(opBranch, 0x1, u(rs1), u(rs2), imm) }
func BLT(rs1, rs2 int, imm int32) uint32   { return EncodeB(opBranch, 0x4, u(rs1), u(rs2), imm) }
func BGE(rs1, rs2 int, imm int32) uint32   { return EncodeB(opBranch, 0x5, u(rs1), u(rs2), imm) }
func BLTU(rs1, rs2 int, imm int32) uint32  { return EncodeB(opBranch, 0x6, u(rs1), u(rs2), imm) }
func BGEU(rs1, rs2 int, imm int32) uint32  { return EncodeB(opBranch, 0x7, u(rs1), u(rs2), imm) }

// Atomics (width .W; aq/rl bits left clear).
func amo(funct5 uint32, rd, rs1, rs2 int) uint32 {
	return EncodeR(opAMO, u(rd), 0x2, u(rs1), u(rs2), funct5<<2)
}

func LRW(rd, rs1 int) uint32          { return amo(0x02, rd, rs1, 0) }
func SCW(rd, rs1, rs2 int) uint32     { return amo(0x03, rd, rs1, rs2) }
func AMOSWAPW(rd, rs1, rs2 int) uint32 { return amo(0x01, rd, rs1, rs2) }
func AMOADDW(rd, rs1, rs2 int) uint32  { return amo(0x00, rd, rs1, rs2) }

// System / CSR.
func ECALL() uint32  { return EncodeI(opSystem, 0, 0x0, 0, 0) }
func EBREAK() uint32 { return EncodeI(opSystem, 0, 0x0, 0, 1) }
func MRET() uint32   { return EncodeR(opSystem, 0, 0x0, 0, 0x02, 0x18) }
func SRET() uint32   { return EncodeR(opSystem, 0, 0x0, 0, 0x02, 0x08) }

func CSRRW(rd, csr, rs1 int) uint32  { return EncodeI(opSystem, u(rd), 0x1, u(rs1), int32(csr)) }
func CSRRS(rd, csr, rs1 int) uint32  { return EncodeI(opSystem, u(rd), 0x2, u(rs1), int32(csr)) }
func CSRRC(rd, csr, rs1 int) uint32  { return EncodeI(opSystem, u(rd), 0x3, u(rs1), int32(csr)) }

func CSRRWI(rd, csr int, zimm uint32) uint32 {
	return EncodeI(opSystem, u(rd), 0x5, zimm&0x1f, int32(csr))
}

func CSRRSI(rd, csr int, zimm uint32) uint32 {
	return EncodeI(opSystem, u(rd), 0x6, zimm&0x1f, int32(csr))
}

func u(reg int) uint32 { return uint32(reg) }
