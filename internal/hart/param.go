package hart

// param.go collects the fixed address map and sizing constants for the
// machine. Grounded on original_source/src/param.rs; DRAM and UART constants
// mirror that file almost exactly, CLINT/PLIC/virtio bases are added per
// spec.md's address map table (original_source's param.rs did not carry
// values for every device region).

// DRAM is mapped starting at DramBase and runs for DramSize bytes.
const (
	DramSize = 128 * 1024 * 1024 // 128 MiB
	DramBase = uint64(0x8000_0000)
	DramEnd  = DramBase + DramSize // exclusive
)

// LowRedirectEnd bounds the low-address window that is transparently
// redirected into DRAM at addr+DramBase, per spec.md §3. Addresses below
// LowRedirectStart (page zero / the null page) are not redirected.
const (
	LowRedirectStart = uint64(0x1000)
	LowRedirectEnd   = uint64(0xffff) // exclusive
)

// UART is a 16550-subset register window.
const (
	UartBase = uint64(0x1000_0000)
	UartSize = uint64(0x100)
	UartEnd  = UartBase + UartSize // exclusive

	UartIRQ = 10

	UartRHR = uint64(0) // Receive holding register (read).
	UartTHR = uint64(0) // Transmit holding register (write).
	UartLCR = uint64(3) // Line control register.
	UartLSR = uint64(5) // Line status register.

	UartLSRRxReady = byte(1 << 0)
	UartLSRTxEmpty = byte(1 << 5)
)

// CLINT holds mtime/mtimecmp as 64-bit registers.
const (
	ClintBase     = uint64(0x0200_0000)
	ClintMtimeCmp = ClintBase + 0x4000
	ClintMtime    = ClintBase + 0xbff8
	ClintEnd      = ClintBase + 0x10000 // implementation-defined extent
)

// PLIC exposes a handful of 32-bit fields sufficient to run a single
// external-interrupt source.
const (
	PlicBase      = uint64(0x0c00_0000)
	PlicPending   = PlicBase + 0x1000
	PlicSEnable   = PlicBase + 0x2080
	PlicSPriority = PlicBase + 0x20_1000
	PlicSClaim    = PlicBase + 0x20_1004
	PlicEnd       = PlicBase + 0x21_0000 // implementation-defined extent
)

// Virtio-mmio block device.
const (
	VirtioBase = uint64(0x1000_1000)
	VirtioEnd  = VirtioBase + 0x1000

	VirtioIRQ = 1

	DescNum    = 8
	PageSize   = 4096
	SectorSize = 512

	VirtioBlkTIn  = 0 // read from disk
	VirtioBlkTOut = 1 // write to disk
)

// NumCSRs is the size of the flat CSR register file.
const NumCSRs = 4096
