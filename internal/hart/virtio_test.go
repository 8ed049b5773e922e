package hart_test

// virtio_test.go exercises the descriptor-chain transaction spec.md §4.11
// describes, by hand-laying-out a one-descriptor-pair request the way a
// guest driver would, then calling ProcessRequest directly (bypassing the
// interrupt-polling step that would normally trigger it).

import (
	"testing"

	"github.com/rvsim/hart64/internal/hart"
)

func TestVirtioBlockWriteRoundTrip(t *testing.T) {
	disk := make([]byte, 512)
	bus := hart.NewBus(make([]byte, 0x10000), disk)

	// Map the descriptor table at the very base of DRAM: queuePFN chosen so
	// that DescAddr() == DramBase.
	pfn := uint32(hart.DramBase / hart.PageSize)
	if trap := bus.Store(hart.VirtioBase+0x040, 32, uint64(pfn)); trap != nil {
		t.Fatalf("store queuePFN: %v", trap)
	}

	descAddr := hart.DramBase
	reqAddr := descAddr + 0x3000
	dataAddr := descAddr + 0x3100
	availAddr := descAddr + hart.DescNum*16
	usedAddr := availAddr + hart.PageSize

	// desc[0]: the request header.
	mustStore(t, bus, descAddr+0, 64, reqAddr)
	mustStore(t, bus, descAddr+14, 16, 1) // next = desc[1]

	// desc[1]: the data buffer.
	mustStore(t, bus, descAddr+16, 64, dataAddr)
	mustStore(t, bus, descAddr+24, 32, 16) // length

	// avail ring: idx = 0, ring[0] = head descriptor 0.
	mustStore(t, bus, availAddr+2, 16, 0)
	mustStore(t, bus, availAddr+4, 16, 0)

	// request header: VIRTIO_BLK_T_OUT, sector 0.
	mustStore(t, bus, reqAddr+0, 32, hart.VirtioBlkTOut)
	mustStore(t, bus, reqAddr+8, 64, 0)

	// data buffer: a recognizable pattern.
	pattern := []byte("0123456789abcdef")
	for i, b := range pattern {
		mustStore(t, bus, dataAddr+uint64(i), 8, uint64(b))
	}

	if trap := bus.Virtio.ProcessRequest(bus); trap != nil {
		t.Fatalf("ProcessRequest: %v", trap)
	}

	for i, b := range pattern {
		if disk[i] != b {
			t.Fatalf("disk[%d] = %#x, want %#x", i, disk[i], b)
		}
	}

	usedIdx, trap := bus.Load(usedAddr+2, 16)
	if trap != nil {
		t.Fatalf("load used idx: %v", trap)
	}

	if usedIdx != 1 {
		t.Errorf("used idx = %d, want 1", usedIdx)
	}
}

func mustStore(t *testing.T, bus *hart.Bus, addr uint64, width int, value uint64) {
	t.Helper()

	if trap := bus.Store(addr, width, value); trap != nil {
		t.Fatalf("store at %#x: %v", addr, trap)
	}
}
