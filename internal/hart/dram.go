package hart

// dram.go is the byte-addressed physical memory backing the DRAM region.
// Grounded on original_source/src/dram.rs: a flat byte slice, little-endian
// load/store helpers indexed by (addr - DramBase), and access-fault returns
// for unsupported widths. Widened from the original's 8/16/24/32-bit sizes
// to 8/16/32/64, since RV64's LD/SD instructions need a 64-bit width that
// the original (an RV32 work in progress at the point it was retrieved)
// never reached.

// DRAM is the hart's main memory.
type DRAM struct {
	mem []byte
}

// NewDRAM allocates a zeroed DRAM region and copies image into its front, the
// way original_source/src/dram.rs splices the boot code into a zeroed vec.
func NewDRAM(image []byte) *DRAM {
	mem := make([]byte, DramSize)
	copy(mem, image)

	return &DRAM{mem: mem}
}

// Load reads a little-endian value of the given bit width from physical
// address addr, which must fall within [DramBase, DramEnd).
func (d *DRAM) Load(addr uint64, width int) (uint64, *Trap) {
	switch width {
	case 8, 16, 32, 64:
	default:
		return 0, loadAccessFault(addr)
	}

	index := addr - DramBase
	bytes := width / 8
	if index+uint64(bytes) > uint64(len(d.mem)) {
		return 0, loadAccessFault(addr)
	}

	var value uint64
	for i := 0; i < bytes; i++ {
		value |= uint64(d.mem[index+uint64(i)]) << uint(i*8)
	}

	return value, nil
}

// Store writes a little-endian value of the given bit width to physical
// address addr.
func (d *DRAM) Store(addr uint64, width int, value uint64) *Trap {
	switch width {
	case 8, 16, 32, 64:
	default:
		return storeAMOAccessFault(addr)
	}

	index := addr - DramBase
	bytes := width / 8
	if index+uint64(bytes) > uint64(len(d.mem)) {
		return storeAMOAccessFault(addr)
	}

	for i := 0; i < bytes; i++ {
		d.mem[index+uint64(i)] = byte(value >> uint(i*8))
	}

	return nil
}
