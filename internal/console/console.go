// Package console adapts the host terminal to the simulated UART.
package console

// console.go is grounded on the teacher's cmd/internal/tty/tty.go Console:
// the same term.IsTerminal/term.MakeRaw/term.NewTerminal pairing with
// golang.org/x/sys/unix termios VMIN/VTIME tuning, generalized from a
// keyboard-device target to the UART's AttachInput/AttachOutput pair
// (internal/hart.UART), and falling back to a plain byte reader when stdin
// is not a TTY (SPEC_FULL.md §2 item 12), which the teacher's console does
// not need to do since its tests always run the keyboard driver directly.

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/rvsim/hart64/internal/hart"
)

// ErrNoTTY is returned by NewConsole when standard input is not a terminal;
// callers may treat this as non-fatal and fall back to AttachPlain.
var ErrNoTTY = errors.New("console: not a tty")

// Console adapts a host terminal into the UART's serial wire.
type Console struct {
	in    *os.File
	fd    int
	state *term.State
}

// NewConsole puts sin into raw mode and tunes VMIN/VTIME for byte-at-a-time
// reads, following the teacher's NewConsole. Returns ErrNoTTY if sin is not
// a terminal.
func NewConsole(sin *os.File) (*Console, error) {
	fd := int(sin.Fd())

	if !term.IsTerminal(fd) {
		return nil, ErrNoTTY
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoTTY, err)
	}

	c := &Console{fd: fd, in: sin, state: saved}

	if err := c.setTerminalParams(1, 0); err != nil {
		return nil, err
	}

	return c, nil
}

// Attach wires the console's input and output to u, spawning the
// background goroutine that reads raw terminal bytes into the UART.
func (c *Console) Attach(ctx context.Context, u *hart.UART, out io.Writer) {
	u.AttachOutput(out)
	u.AttachInput(&ctxReader{ctx: ctx, r: bufio.NewReader(c.in)})
}

// Restore returns the terminal to its initial state.
func (c *Console) Restore() {
	_ = c.in.SetReadDeadline(time.Now())
	_ = term.Restore(c.fd, c.state)
}

func (c *Console) setTerminalParams(vmin, vtime byte) error {
	_ = syscall.SetNonblock(c.fd, true)

	termIO, err := unix.IoctlGetTermios(c.fd, getTermiosIoctl)
	if err != nil {
		return err
	}

	termIO.Cc[unix.VMIN] = vmin
	termIO.Cc[unix.VTIME] = vtime

	if err := unix.IoctlSetTermios(c.fd, setTermiosIoctl, termIO); err != nil {
		return err
	}

	_ = c.in.SetReadDeadline(time.Time{})

	return nil
}

// AttachPlain wires a non-TTY reader (e.g. a pipe, or CI's stdin) into the
// UART without any raw-mode switching, per SPEC_FULL.md §2 item 12.
func AttachPlain(ctx context.Context, u *hart.UART, in io.Reader, out io.Writer) {
	u.AttachOutput(out)
	u.AttachInput(&ctxReader{ctx: ctx, r: in})
}

// ctxReader stops returning bytes once ctx is cancelled, so the UART's
// input goroutine exits when the run does.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
	}

	return r.r.Read(p)
}
