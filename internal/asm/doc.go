// Package asm encodes RV64 instructions into their 32-bit machine-code
// words, for building small guest images in tests without hand-computing
// bit patterns.
//
// It does not parse assembly text — it is the encoder half only, a set of
// functions that each build one instruction format:
//
//	word := asm.ADDI(asm.A0, asm.A0, 1)
//	word := asm.ADD(asm.T0, asm.T1, asm.T2)
//
// The per-field encoders (EncodeR, EncodeI, EncodeS, EncodeB, EncodeU,
// EncodeJ) mirror the six RV64 instruction formats and are exported so
// tests can build instructions the mnemonic helpers don't cover.
package asm
