// Package ffmpegenc manages the external ffmpeg encoder process: argument
// construction, binary resolution, spawning with a writable input stream,
// and exit observation.
package ffmpegenc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/user/sketchcast/pkg/pipeline"
	"github.com/user/sketchcast/pkg/ports"
)

// stderrTailBytes bounds how much encoder diagnostic output is retained
// for error reporting.
const stderrTailBytes = 500

// Encoder implements ports.StreamEncoder using an ffmpeg subprocess.
type Encoder struct {
	ffmpegPath string

	mu       sync.Mutex
	cfg      ports.EncodeConfig
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stderr   *tailWriter
	started  bool
	finished bool
}

// New creates a new ffmpeg encoder.
func New() *Encoder {
	return &Encoder{}
}

// Start spawns ffmpeg with a stdin pipe for frame input and a bounded
// stderr tail buffer for diagnostics.
func (e *Encoder) Start(ctx context.Context, cfg ports.EncodeConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return fmt.Errorf("ffmpegenc: already started")
	}

	if e.ffmpegPath == "" {
		if _, err := e.ResolveBinary(); err != nil {
			return err
		}
	}

	e.cfg = cfg
	e.stderr = newTailWriter(stderrTailBytes)

	e.cmd = exec.CommandContext(ctx, e.ffmpegPath, BuildArgs(cfg)...)
	e.cmd.Stderr = e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	e.started = true
	return nil
}

// WriteFrame writes one PNG frame to the process input stream. The write
// blocks while the pipe buffer is full, which suspends the caller until
// ffmpeg has drained it.
func (e *Encoder) WriteFrame(data []byte) error {
	e.mu.Lock()
	stdin := e.stdin
	finished := e.finished
	started := e.started
	e.mu.Unlock()

	if !started {
		return ErrNotStarted
	}
	if finished || stdin == nil {
		return ErrFinished
	}

	// Held outside the mutex: a back-pressured write may block for a while
	// and must not deadlock Abort.
	if _, err := stdin.Write(data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Finish closes the input stream, signaling end-of-stream, and awaits
// process exit. A non-zero exit becomes an EncodingError carrying the
// stderr tail.
func (e *Encoder) Finish() error {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return ErrNotStarted
	}
	if e.finished {
		e.mu.Unlock()
		return nil
	}
	e.finished = true
	stdin := e.stdin
	e.stdin = nil
	cmd := e.cmd
	e.mu.Unlock()

	if stdin != nil {
		stdin.Close()
	}

	if err := cmd.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return &pipeline.EncodingError{
			ExitCode:   exitCode,
			StderrTail: e.stderr.String(),
			Err:        err,
		}
	}

	return e.verifyOutput()
}

// Abort terminates the process and reaps it. It is safe to call on any
// failure path, including after Finish.
func (e *Encoder) Abort() {
	e.mu.Lock()
	if !e.started || e.finished {
		e.mu.Unlock()
		return
	}
	e.finished = true
	stdin := e.stdin
	e.stdin = nil
	cmd := e.cmd
	e.mu.Unlock()

	if stdin != nil {
		stdin.Close()
	}
	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
		cmd.Wait()
	}
}

// Ensure Encoder implements ports.StreamEncoder
var _ ports.StreamEncoder = (*Encoder)(nil)

// tailWriter retains only the last limit bytes written to it.
type tailWriter struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func newTailWriter(limit int) *tailWriter {
	return &tailWriter{limit: limit}
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	if len(w.buf) > w.limit {
		w.buf = w.buf[len(w.buf)-w.limit:]
	}
	return len(p), nil
}

func (w *tailWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return string(w.buf)
}
