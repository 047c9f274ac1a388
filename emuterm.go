// Package emuterm runs a shell on a pseudo-terminal and keeps a terminal
// grid in sync with its output.
//
// A Session owns the consumer side of the bridge: one goroutine, inside
// Run, drains the token batches, applies them to the terminal and
// performs the writes requested through Write. Nothing else touches the
// terminal while Run is active.
package emuterm

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"

	"github.com/hnimtadd/emuterm/bridge"
	"github.com/hnimtadd/emuterm/logger"
	"github.com/hnimtadd/emuterm/terminal"
	"github.com/hnimtadd/emuterm/terminal/color"
	"github.com/hnimtadd/emuterm/terminal/lexer"
)

var (
	ErrSessionDone = fmt.Errorf("emuterm: session done")
	ErrRunning     = fmt.Errorf("emuterm: session already running")
)

type Options struct {
	Shell string
	Args  []string
	Env   []string
	Dir   string

	// Window size given to the child. Rows and Cols are also the
	// terminal's viewport.
	Size bridge.Size

	// Reassemble escape sequences split across reads.
	Carry bool
	UTF8  terminal.UTF8Policy

	Palette   *color.Palette
	QueueSize int

	Logger logger.Logger

	// OnUpdate is called from the consumer goroutine after every applied
	// batch. The viewport is only valid during the call.
	OnUpdate func(terminal.Viewport)
}

func (o Options) size() bridge.Size {
	if o.Size == (bridge.Size{}) {
		return bridge.DefaultSize
	}
	return o.Size
}

type writeRequest struct {
	p      []byte
	result chan error
}

type refreshRequest struct {
	fn   func(terminal.Viewport)
	done chan struct{}
}

type Session struct {
	terminal *terminal.Terminal
	bridge   *bridge.Bridge

	writes    chan writeRequest
	refreshes chan refreshRequest
	done    chan struct{}
	running atomic.Bool

	onUpdate func(terminal.Viewport)
	logger   logger.Logger
}

// New starts the shell and returns a session ready to Run.
func New(opts Options) (*Session, error) {
	opts.Logger = logger.Or(opts.Logger)
	b, err := bridge.Start(bridge.Options{
		Shell:     opts.Shell,
		Args:      opts.Args,
		Env:       opts.Env,
		Dir:       opts.Dir,
		Size:      opts.size(),
		QueueSize: opts.QueueSize,
		Carry:     opts.Carry,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return NewWithBridge(b, opts), nil
}

// NewWithBridge builds a session around an already running bridge. Only
// the terminal related options are used.
func NewWithBridge(b *bridge.Bridge, opts Options) *Session {
	opts.Logger = logger.Or(opts.Logger)
	size := opts.size()
	term := terminal.NewTerminal(terminal.Options{
		Rows:    int(size.Rows),
		Cols:    int(size.Cols),
		UTF8:    opts.UTF8,
		Palette: opts.Palette,
		Logger:  opts.Logger,
	})
	return &Session{
		terminal: term,
		bridge:   b,
		writes:    make(chan writeRequest),
		refreshes: make(chan refreshRequest),
		done:      make(chan struct{}),
		onUpdate:  opts.OnUpdate,
		logger:    opts.Logger,
	}
}

// Run is the consumer loop. It returns when the child's output ends,
// with the bridge's read error if any, or when ctx is cancelled. Run may
// only be called once.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer close(s.done)

	batches := s.bridge.Batches()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case batch, ok := <-batches:
			if !ok {
				return s.bridge.Err()
			}
			s.apply(batch)

		case req := <-s.writes:
			req.result <- s.bridge.Write(req.p)

		case req := <-s.refreshes:
			req.fn(s.terminal.Viewport())
			close(req.done)
		}
	}
}

func (s *Session) apply(batch []lexer.Token) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while applying batch", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	s.logger.Debug("applying batch", "tokens", len(batch), "batch", batchValue(batch))
	if err := s.terminal.ApplyBatch(batch); err != nil {
		s.logger.Warn("batch applied with errors", "error", err)
	}
	if s.onUpdate != nil {
		s.onUpdate(s.terminal.Viewport())
	}
}

// batchValue formats its tokens only when the record is actually logged.
type batchValue []lexer.Token

func (b batchValue) LogValue() slog.Value {
	out := make([]string, len(b))
	for i, tok := range b {
		out[i] = tok.String()
	}
	return slog.AnyValue(out)
}

// Write asks the consumer loop to send p to the child and waits for the
// outcome. Payloads are written in the order their requests are taken,
// unchanged. A failed write is not retried.
func (s *Session) Write(ctx context.Context, p []byte) error {
	req := writeRequest{p: p, result: make(chan error, 1)}
	select {
	case s.writes <- req:
	case <-s.done:
		return ErrSessionDone
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh runs fn on the consumer goroutine with the current viewport
// and waits for it to return. fn defaults to the OnUpdate callback. Use it
// to redraw without new output, as after a window resize.
func (s *Session) Refresh(ctx context.Context, fn func(terminal.Viewport)) error {
	if fn == nil {
		fn = s.onUpdate
	}
	if fn == nil {
		return nil
	}
	req := refreshRequest{fn: fn, done: make(chan struct{})}
	select {
	case s.refreshes <- req:
	case <-s.done:
		return ErrSessionDone
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send writes the payload of a key.
func (s *Session) Send(ctx context.Context, k Key) error {
	return s.Write(ctx, k.Bytes())
}

// Terminal returns the session's terminal. It may only be read from
// OnUpdate or after Run has returned.
func (s *Session) Terminal() *terminal.Terminal {
	return s.terminal
}

// Done is closed when Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// DumpString returns the plain text of the whole grid. Same rules as
// Terminal.
func (s *Session) DumpString() string {
	return s.terminal.PlainString()
}

// Wait blocks until the child exits.
func (s *Session) Wait() error {
	return s.bridge.Wait()
}

// Close shuts the bridge down, killing the child if it still runs.
func (s *Session) Close() error {
	return s.bridge.Close()
}
