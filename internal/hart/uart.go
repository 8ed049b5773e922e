package hart

// uart.go is the 16550-subset UART. The register layout and the
// mutex/condvar background receiver thread are grounded on
// original_source/src/device/uart.rs (the Arc<(Mutex<[u8; SIZE]>, Condvar),
// AtomicBool interrupt flag> shape and its stdin-reading goroutine), cast
// into Go's sync.Mutex/sync.Cond the way the teacher's internal/vm/kbd.go
// Keyboard uses them: Update blocks on a condition variable until the
// consumer has drained the previous byte, then sets the data register and
// broadcasts.

import (
	"io"
	"sync"
	"sync/atomic"
)

// UART is a 16550-subset serial port: a receive holding register clocked by
// a background reader goroutine, and a transmit holding register the guest
// writes bytes to.
type UART struct {
	mut   sync.Mutex
	empty *sync.Cond

	regs [UartSize]byte

	// interrupt is set whenever the receive register gains new data, read
	// without holding mut, the way original_source's AtomicBool does.
	interrupt atomic.Bool

	// out receives transmitted bytes; typically the host console's writer.
	out io.Writer
}

// NewUART creates a UART with the transmit-empty flag set, exactly as
// original_source/src/device/uart.rs's constructor primes LSR before any
// reader goroutine is started.
func NewUART() *UART {
	u := &UART{}
	u.regs[UartLSR] |= UartLSRTxEmpty
	u.empty = sync.NewCond(&u.mut)

	return u
}

// AttachOutput directs transmitted bytes to w instead of discarding them.
func (u *UART) AttachOutput(w io.Writer) {
	u.mut.Lock()
	defer u.mut.Unlock()
	u.out = w
}

// AttachInput spawns a background goroutine that copies bytes read from r
// into the receive holding register, following original_source's
// thread::spawn(move || loop { stdin().read(...) }) pattern, blocking on the
// condition variable whenever the previous byte has not yet been consumed.
func (u *UART) AttachInput(r io.Reader) {
	go func() {
		var b [1]byte

		for {
			n, err := r.Read(b[:])
			if err != nil {
				return
			}

			if n == 0 {
				continue
			}

			u.Update(b[0])
		}
	}()
}

// Update blocks until the receive register has been drained, then stores the
// byte and raises the receive-ready flag and interrupt, mirroring
// kbd.Keyboard.Update's wait-set-broadcast shape.
func (u *UART) Update(b byte) {
	u.mut.Lock()
	defer u.mut.Unlock()

	for u.regs[UartLSR]&UartLSRRxReady != 0 {
		u.empty.Wait()
	}

	u.regs[UartRHR] = b
	u.regs[UartLSR] |= UartLSRRxReady
	u.interrupt.Store(true)
}

// InterruptRequested reports and clears whether a received byte has raised
// an interrupt to deliver through the PLIC. Transmits never raise one.
func (u *UART) InterruptRequested() bool {
	return u.interrupt.Swap(false)
}

// Load reads a UART register. Reading RHR clears the ready flag and wakes
// any goroutine waiting in Update to deliver the next byte.
func (u *UART) Load(addr uint64, width int) (uint64, *Trap) {
	if width != 8 {
		return 0, loadAccessFault(addr)
	}

	u.mut.Lock()
	defer u.mut.Unlock()

	offset := addr - UartBase

	value := u.regs[offset]
	if offset == UartRHR {
		u.regs[UartLSR] &^= UartLSRRxReady
		u.empty.Broadcast()
	}

	return uint64(value), nil
}

// Store writes a UART register. Writing THR transmits the byte to the
// attached output and leaves the transmit-empty flag set, since this
// simulator never backpressures on output.
func (u *UART) Store(addr uint64, width int, value uint64) *Trap {
	if width != 8 {
		return storeAMOAccessFault(addr)
	}

	u.mut.Lock()
	defer u.mut.Unlock()

	offset := addr - UartBase

	if offset == UartTHR {
		if u.out != nil {
			u.out.Write([]byte{byte(value)})
		}

		return nil
	}

	u.regs[offset] = byte(value)

	return nil
}
