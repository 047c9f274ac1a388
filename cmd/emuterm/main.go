package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/hnimtadd/emuterm"
	"github.com/hnimtadd/emuterm/bridge"
	"github.com/hnimtadd/emuterm/internal/render"
	"github.com/hnimtadd/emuterm/logger"
	"github.com/hnimtadd/emuterm/terminal"
	"github.com/hnimtadd/emuterm/terminal/ansi"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

type config struct {
	rows, cols     uint
	shell          string
	carry          bool
	replaceInvalid bool
	logFile        string
	logLevel       string
	logJSON        bool
	dump           bool
}

func parseFlags(args []string) (config, error) {
	var c config
	fs := flag.NewFlagSet("emuterm", flag.ContinueOnError)
	fs.UintVar(&c.rows, "rows", uint(bridge.DefaultSize.Rows), "terminal height in rows")
	fs.UintVar(&c.cols, "cols", uint(bridge.DefaultSize.Cols), "terminal width in columns")
	fs.StringVar(&c.shell, "shell", "", "program to run (default $SHELL, then /bin/sh)")
	fs.BoolVar(&c.carry, "carry", false, "reassemble escape sequences split across reads")
	fs.BoolVar(&c.replaceInvalid, "replace-invalid", false, "print invalid UTF-8 as U+FFFD instead of dropping it")
	fs.StringVar(&c.logFile, "log-file", "", "write logs to this file")
	fs.StringVar(&c.logLevel, "log-level", "info", "debug, info, warn or error")
	fs.BoolVar(&c.logJSON, "log-json", false, "log as JSON")
	fs.BoolVar(&c.dump, "dump", false, "run headless and print the whole grid when the shell exits")
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if c.rows == 0 || c.rows > 0xFFFF || c.cols == 0 || c.cols > 0xFFFF {
		return c, fmt.Errorf("rows and cols must be between 1 and 65535")
	}
	return c, nil
}

func (c config) options(log logger.Logger) emuterm.Options {
	opts := emuterm.Options{
		Shell:  c.shell,
		Size:   bridge.DefaultSize,
		Carry:  c.carry,
		Logger: log,
	}
	opts.Size.Rows = uint16(c.rows)
	opts.Size.Cols = uint16(c.cols)
	if c.replaceInvalid {
		opts.UTF8 = terminal.UTF8Replace
	}
	return opts
}

// openLogger returns the logger and a function closing its file. Without
// a log file, interactive runs log nothing since the screen owns stdout.
func (c config) openLogger(interactive bool) (logger.Logger, func() error, error) {
	level, err := logger.ParseLevel(c.logLevel)
	if err != nil {
		return nil, nil, err
	}
	typ := logger.TypeText
	if c.logJSON {
		typ = logger.TypeJSON
	}

	var out io.Writer = os.Stderr
	closer := func() error { return nil }
	switch {
	case c.logFile != "":
		f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f.Close
	case interactive:
		return logger.Discard, closer, nil
	}
	return logger.New(logger.Options{Buffer: out, Level: level, Type: typ}), closer, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "emuterm: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	c, err := parseFlags(args)
	if err != nil {
		return err
	}

	interactive := !c.dump && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	log, closeLog, err := c.openLogger(interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if interactive {
		return runInteractive(ctx, c.options(log))
	}
	return runHeadless(ctx, c, c.options(log))
}

func runInteractive(ctx context.Context, opts emuterm.Options) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	defer scr.Fini()
	scr.EnableMouse()
	scr.Clear()

	r := render.New(scr)
	opts.OnUpdate = r.Draw

	sess, err := emuterm.New(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	go pollEvents(ctx, scr, r, sess)

	if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// pollEvents forwards input to the child until the screen is finalized.
func pollEvents(ctx context.Context, scr tcell.Screen, r *render.Screen, sess *emuterm.Session) {
	for {
		var payload []byte
		switch ev := scr.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			payload = render.Translate(ev)
		case *tcell.EventMouse:
			payload = render.TranslateMouse(ev)
		case *tcell.EventResize:
			// The child keeps its start size, only repaint. The renderer
			// belongs to the consumer goroutine.
			scr.Sync()
			if err := sess.Refresh(ctx, r.Repaint); err != nil {
				return
			}
		}
		if payload == nil {
			continue
		}
		if err := sess.Write(ctx, payload); err != nil {
			return
		}
	}
}

func runHeadless(ctx context.Context, c config, opts emuterm.Options) error {
	sess, err := emuterm.New(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	go forwardInput(ctx, os.Stdin, sess)

	if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if c.dump {
		_, err = io.WriteString(os.Stdout, sess.DumpString())
		return err
	}
	v := sess.Terminal().Viewport()
	for _, row := range v.Rows {
		if _, err := fmt.Fprintln(os.Stdout, runewidth.Truncate(row.String(), v.Width, "")); err != nil {
			return err
		}
	}
	return nil
}

// forwardInput copies r to the child and ends the child's input with ^D.
func forwardInput(ctx context.Context, r io.Reader, sess *emuterm.Session) {
	buf := make([]byte, bridge.DefaultChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if werr := sess.Write(ctx, append([]byte(nil), buf[:n]...)); werr != nil {
				return
			}
		}
		if err != nil {
			_ = sess.Write(ctx, []byte{ansi.C0.EOT})
			return
		}
	}
}
