package hart

import "math/bits"

// plic.go is the platform-level interrupt controller. The four-register
// shape (pending/senable/spriority/sclaim) is grounded on
// original_source/src/interrupt/plic.rs, which stores each as a flat u64
// and requires 32-bit-width accesses. The claim/complete protocol (reading
// sclaim returns and clears the lowest-numbered pending enabled IRQ; writing sclaim
// completes it) is standard PLIC behavior named in SPEC_FULL.md §8 item 11
// but only stubbed as a plain register in original_source's store/load pair,
// so the claim/complete logic itself is implemented directly from spec.md
// §4.4 rather than copied.

// PLIC is a minimal platform-level interrupt controller supporting a single
// supervisor interrupt context, enough for UART and virtio sources.
type PLIC struct {
	pending   uint64
	senable   uint64
	spriority uint64
	sclaim    uint64
}

// NewPLIC creates a PLIC with all registers at zero.
func NewPLIC() *PLIC {
	return &PLIC{}
}

// Load reads one of the four PLIC registers. Reading SClaim performs the
// "claim" half of claim/complete: the lowest-numbered pending, enabled IRQ
// is returned and cleared from pending.
func (p *PLIC) Load(addr uint64, width int) (uint64, *Trap) {
	if width != 32 {
		return 0, loadAccessFault(addr)
	}

	switch addr {
	case PlicPending:
		return p.pending, nil
	case PlicSEnable:
		return p.senable, nil
	case PlicSPriority:
		return p.spriority, nil
	case PlicSClaim:
		return p.claim(), nil
	default:
		return 0, nil
	}
}

// Store writes one of the four PLIC registers. Writing SClaim performs the
// "complete" half: the IRQ number written is acknowledged, nothing further
// happens since this controller does not re-arm a claimed source until its
// device raises it again.
func (p *PLIC) Store(addr uint64, width int, value uint64) *Trap {
	if width != 32 {
		return storeAMOAccessFault(addr)
	}

	switch addr {
	case PlicPending:
		p.pending = value
	case PlicSEnable:
		p.senable = value
	case PlicSPriority:
		p.spriority = value
	case PlicSClaim:
		p.complete(uint(value))
	}

	return nil
}

// SetPending raises the pending bit for the given IRQ source, called by a
// device (UART, virtio) when it wants to interrupt the hart.
func (p *PLIC) SetPending(irq uint) {
	p.pending |= 1 << irq
}

// claim returns the lowest-numbered pending-and-enabled IRQ and clears its
// pending bit, or zero if none is pending.
func (p *PLIC) claim() uint64 {
	active := p.pending & p.senable
	if active == 0 {
		p.sclaim = 0
		return 0
	}

	irq := uint64(bits.TrailingZeros64(active))
	p.pending &^= 1 << irq
	p.sclaim = irq

	return irq
}

// complete clears the record of the most recently claimed IRQ.
func (p *PLIC) complete(irq uint) {
	if uint64(irq) == p.sclaim {
		p.sclaim = 0
	}
}

// Pending reports whether any enabled IRQ is currently pending. The hart's
// interrupt polling does not consult it; it raises SEIP from the device flags.
func (p *PLIC) Pending() bool {
	return p.pending&p.senable != 0
}
