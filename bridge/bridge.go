// Package bridge runs a child process on a pseudo-terminal and turns its
// output into batches of lexer tokens.
//
// One goroutine reads the master side in fixed size chunks, lexes each
// chunk and queues the result. The queue is bounded: when the consumer
// falls behind, reading stops until it catches up.
package bridge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/hnimtadd/emuterm/logger"
	"github.com/hnimtadd/emuterm/terminal/lexer"
)

const (
	DefaultChunkSize = 1024
	DefaultQueueSize = 100
	DefaultShell     = "/bin/sh"
)

var ErrClosed = fmt.Errorf("bridge: closed")

// Size is the window size reported to the child. It is set once at
// start and never changes.
type Size struct {
	Rows, Cols     uint16
	XPixel, YPixel uint16
}

var DefaultSize = Size{Rows: 50, Cols: 100, XPixel: 1024, YPixel: 2048}

type Options struct {
	// Program to run. Defaults to $SHELL, then DefaultShell.
	Shell string
	Args  []string
	// Extra environment, appended after the parent's and TERM.
	Env []string
	Dir string

	Size Size

	// Bytes per read. Each read becomes one batch.
	ChunkSize int
	// Number of batches that may wait for the consumer.
	QueueSize int

	// Reassemble escape sequences and UTF-8 runes split across reads
	// instead of lexing every read on its own.
	Carry bool

	Logger logger.Logger
}

func (o Options) withDefaults() Options {
	if o.Shell == "" {
		o.Shell = os.Getenv("SHELL")
	}
	if o.Shell == "" {
		o.Shell = DefaultShell
	}
	if o.Size == (Size{}) {
		o.Size = DefaultSize
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	o.Logger = logger.Or(o.Logger)
	return o
}

type Bridge struct {
	master io.ReadWriteCloser
	cmd    *exec.Cmd

	batches chan []lexer.Token
	stop    chan struct{}
	done    chan struct{}
	// Set before done is closed.
	readErr error

	exited  chan struct{}
	waitErr error

	writeMu   sync.Mutex
	closed    bool
	closeOnce sync.Once
	closeErr  error

	logger logger.Logger
}

// Start runs the configured program on a new pseudo-terminal and starts
// reading its output.
func Start(opts Options) (*Bridge, error) {
	opts = opts.withDefaults()

	cmd := exec.Command(opts.Shell, opts.Args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	cmd.Env = append(cmd.Env, opts.Env...)
	cmd.Dir = opts.Dir

	master, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: opts.Size.Rows,
		Cols: opts.Size.Cols,
		X:    opts.Size.XPixel,
		Y:    opts.Size.YPixel,
	})
	if err != nil {
		return nil, fmt.Errorf("bridge: start %s: %w", opts.Shell, err)
	}

	b := newBridge(master, opts)
	b.cmd = cmd
	go func() {
		b.waitErr = cmd.Wait()
		close(b.exited)
	}()
	opts.Logger.Info("started child", "shell", opts.Shell, "pid", cmd.Process.Pid,
		"rows", opts.Size.Rows, "cols", opts.Size.Cols)

	go b.readLoop(opts.ChunkSize, opts.Carry)
	return b, nil
}

// Attach runs the read loop over an existing stream instead of a new
// child process. Closing the bridge closes rw.
func Attach(rw io.ReadWriteCloser, opts Options) *Bridge {
	opts = opts.withDefaults()
	b := newBridge(rw, opts)
	close(b.exited)
	go b.readLoop(opts.ChunkSize, opts.Carry)
	return b
}

func newBridge(master io.ReadWriteCloser, opts Options) *Bridge {
	return &Bridge{
		master:  master,
		batches: make(chan []lexer.Token, opts.QueueSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
		logger:  opts.Logger,
	}
}

// Batches delivers the lexed output, one batch per read, in read order.
// It is closed when the read loop ends.
func (b *Bridge) Batches() <-chan []lexer.Token {
	return b.batches
}

// Done is closed when the read loop has ended.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

// Err returns the error that ended the read loop. End of stream, the
// pseudo-terminal hang-up and Close are not errors. Only valid once Done
// is closed.
func (b *Bridge) Err() error {
	return b.readErr
}

func (b *Bridge) readLoop(chunkSize int, carry bool) {
	b.logger.Info("read loop started", "chunk_size", chunkSize, "carry", carry)

	var c lexer.Carry
	buf := make([]byte, chunkSize)
	for {
		n, err := b.master.Read(buf)
		if n > 0 {
			var tokens []lexer.Token
			if carry {
				tokens = c.Feed(buf[:n])
			} else {
				tokens = lexer.Lex(bytes.Clone(buf[:n]))
			}
			if !b.send(tokens) {
				b.finish(nil)
				return
			}
		}
		if err != nil {
			if carry {
				b.send(c.Flush())
			}
			b.finish(err)
			return
		}
	}
}

// send queues a batch, blocking while the queue is full. It reports false
// when the bridge was closed meanwhile.
func (b *Bridge) send(tokens []lexer.Token) bool {
	if len(tokens) == 0 {
		return true
	}
	select {
	case b.batches <- tokens:
		return true
	case <-b.stop:
		return false
	}
}

func (b *Bridge) finish(err error) {
	if isHangup(err) {
		err = nil
	}
	select {
	case <-b.stop:
		err = nil
	default:
	}
	if err != nil {
		b.logger.Warn("read loop failed", "error", err)
		b.readErr = fmt.Errorf("bridge: read: %w", err)
	}
	b.logger.Info("read loop stopped")
	close(b.batches)
	close(b.done)
}

func isHangup(err error) bool {
	// Linux reports EIO on the master once the child side is gone.
	return errors.Is(err, io.EOF) ||
		errors.Is(err, syscall.EIO) ||
		errors.Is(err, os.ErrClosed)
}

// Write sends p to the child. Writes are applied in call order and are
// not retried.
func (b *Bridge) Write(p []byte) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if _, err := b.master.Write(p); err != nil {
		return fmt.Errorf("bridge: write: %w", err)
	}
	return nil
}

// Pid returns the child's process id, or 0 for an attached stream.
func (b *Bridge) Pid() int {
	if b.cmd == nil || b.cmd.Process == nil {
		return 0
	}
	return b.cmd.Process.Pid
}

// Wait blocks until the child exits and returns its exit status.
func (b *Bridge) Wait() error {
	<-b.exited
	return b.waitErr
}

// Close stops the read loop, closes the master side, kills the child and
// reaps it.
func (b *Bridge) Close() error {
	b.closeOnce.Do(func() {
		b.writeMu.Lock()
		b.closed = true
		b.writeMu.Unlock()

		close(b.stop)
		b.closeErr = b.master.Close()
		if b.cmd != nil && b.cmd.Process != nil {
			select {
			case <-b.exited:
			default:
				if err := b.cmd.Process.Kill(); err != nil {
					b.logger.Warn("kill child", "pid", b.cmd.Process.Pid, "error", err)
				}
			}
			<-b.exited
		}
		<-b.done
	})
	return b.closeErr
}
