package gesture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

var (
	// ErrModelLoad reports that the landmark model could not be loaded.
	ErrModelLoad = errors.New("failed to load hand tracking model")
	// ErrCameraAccess reports that no camera stream could be opened.
	ErrCameraAccess = errors.New("camera access denied")
	// ErrNoFrame is returned by a HandSource when a grab produced no frame.
	// The tracker skips it and asks for the next one.
	ErrNoFrame = errors.New("no frame available")
)

// HandSource yields one detection result per video frame.
type HandSource interface {
	// Hands blocks until the next frame has been processed.
	Hands(ctx context.Context) ([]Hand, error)
	// Close stops the camera stream and releases the detector.
	Close() error
}

// Opener acquires a HandSource, typically loading a model and opening a camera.
type Opener func(ctx context.Context) (HandSource, error)

// State is the tracker lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateRunning
	StateFailed
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Status is a tracker state plus the message shown to the user.
type Status struct {
	State   State
	Message string
	Err     error
}

// Tracker runs hand detection on its own goroutine and publishes the mapped
// Sample of the newest frame into a Latest cell.
type Tracker struct {
	open    Opener
	latest  Latest
	status  atomic.Pointer[Status]
	verbose bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTracker returns an idle tracker using open to acquire its source.
func NewTracker(open Opener) *Tracker {
	t := &Tracker{open: open}
	t.setStatus(Status{State: StateIdle})
	return t
}

// SetVerbose enables logging of state transitions.
func (t *Tracker) SetVerbose(v bool) { t.verbose = v }

// Start launches the detection goroutine and returns immediately.
// Calling Start on a started tracker is a no-op.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done != nil {
		return
	}
	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})
	t.setStatus(Status{State: StateLoading, Message: "Init Vision..."})
	go t.run(ctx, t.done)
}

// Stop cancels detection, waits for the goroutine to release the source
// and clears the latest sample.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	t.latest.Reset()
}

// Latest returns the most recent gesture sample.
func (t *Tracker) Latest() Sample { return t.latest.Load() }

// Status returns the current lifecycle status.
func (t *Tracker) Status() Status {
	if s := t.status.Load(); s != nil {
		return *s
	}
	return Status{}
}

// Done is closed once the detection goroutine has exited. It is nil before Start.
func (t *Tracker) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

func (t *Tracker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	src, err := t.open(ctx)
	if err != nil {
		if ctx.Err() != nil {
			t.setStatus(Status{State: StateStopped})
			return
		}
		t.fail(err)
		return
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Printf("hand source close: %v", err)
		}
	}()

	t.setStatus(Status{State: StateRunning})
	for {
		hands, err := src.Hands(ctx)
		if ctx.Err() != nil {
			t.latest.Reset()
			t.setStatus(Status{State: StateStopped})
			return
		}
		if errors.Is(err, ErrNoFrame) {
			continue
		}
		if err != nil {
			t.latest.Reset()
			t.fail(err)
			return
		}
		t.latest.Store(Map(hands))
	}
}

func (t *Tracker) fail(err error) {
	log.Printf("hand tracking unavailable: %v", err)
	t.setStatus(Status{State: StateFailed, Message: Message(err), Err: err})
}

func (t *Tracker) setStatus(s Status) {
	if t.verbose {
		log.Printf("hand tracker: %s %s", s.State, s.Message)
	}
	t.status.Store(&s)
}

// Message returns the user-facing text for a tracking failure.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrModelLoad):
		return "Failed to load hand tracking. Check connection."
	case errors.Is(err, ErrCameraAccess):
		return "Camera access denied."
	default:
		return err.Error()
	}
}
