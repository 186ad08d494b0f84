package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed Status = iota + 1
	Open
	HalfOpen
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	}
	return "unknown"
}

var ErrOpenCB = errors.New("circuit breaker is open")

type Config struct {
	// Window is the number of most recent calls the failure ratio is taken over.
	Window int `envconfig:"CB_WINDOW" default:"20"`
	// FailureRatio of the window that opens the breaker.
	FailureRatio float64 `envconfig:"CB_FAILURE_RATIO" default:"0.5"`
	// OpenTimeout is how long an open breaker rejects calls before a probe.
	OpenTimeout time.Duration `envconfig:"CB_OPEN_TIMEOUT" default:"10s"`
	// RecoveryCalls is the number of successful probes that close the breaker.
	RecoveryCalls int `envconfig:"CB_RECOVERY_CALLS" default:"3"`
}

type CircuitBreaker interface {
	Call(fn func() error) error
	State() Status
	Reset()
}

type Option func(cb *circuitBreaker)

func WithClock(now func() time.Time) Option {
	return func(cb *circuitBreaker) {
		cb.now = now
	}
}

// OnStateChange is called under the breaker lock; it must not call back into the breaker.
func OnStateChange(fn func(from, to Status)) Option {
	return func(cb *circuitBreaker) {
		cb.onChange = fn
	}
}

type circuitBreaker struct {
	mu       sync.Mutex
	cfg      Config
	state    Status
	openedAt time.Time
	probes   int
	calls    *window

	now      func() time.Time
	onChange func(from, to Status)
}

func New(cfg Config, opts ...Option) CircuitBreaker {
	if cfg.Window <= 0 {
		cfg.Window = 1
	}
	if cfg.RecoveryCalls <= 0 {
		cfg.RecoveryCalls = 1
	}
	cb := &circuitBreaker{
		cfg:      cfg,
		state:    Closed,
		calls:    newWindow(cfg.Window),
		now:      time.Now,
		onChange: func(Status, Status) {},
	}
	for _, op := range opts {
		op(cb)
	}
	return cb
}

func (cb *circuitBreaker) State() Status {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Call runs fn unless the breaker is open. An open breaker lets calls through
// as probes once OpenTimeout has passed.
func (cb *circuitBreaker) Call(fn func() error) error {
	if !cb.allow() {
		return ErrOpenCB
	}
	err := fn()
	cb.record(err == nil)
	return err
}

func (cb *circuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state != Open {
		return true
	}
	if cb.now().Sub(cb.openedAt) < cb.cfg.OpenTimeout {
		return false
	}
	cb.setState(HalfOpen)
	cb.probes = 0
	return true
}

func (cb *circuitBreaker) record(ok bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case HalfOpen:
		if !ok {
			cb.open()
			return
		}
		cb.probes++
		if cb.probes >= cb.cfg.RecoveryCalls {
			cb.close()
		}
	case Closed:
		cb.calls.add(!ok)
		if cb.calls.ratio() >= cb.cfg.FailureRatio {
			cb.open()
		}
	}
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.close()
}

func (cb *circuitBreaker) open() {
	cb.setState(Open)
	cb.openedAt = cb.now()
	cb.probes = 0
}

func (cb *circuitBreaker) close() {
	cb.setState(Closed)
	cb.calls.clear()
	cb.probes = 0
}

func (cb *circuitBreaker) setState(st Status) {
	if cb.state == st {
		return
	}
	from := cb.state
	cb.state = st
	cb.onChange(from, st)
}

// window is a ring of call outcomes.
type window struct {
	failed []bool
	pos    int
	fails  int
}

func newWindow(size int) *window {
	return &window{failed: make([]bool, size)}
}

func (w *window) add(failed bool) {
	if w.failed[w.pos] {
		w.fails--
	}
	w.failed[w.pos] = failed
	if failed {
		w.fails++
	}
	w.pos = (w.pos + 1) % len(w.failed)
}

func (w *window) ratio() float64 {
	return float64(w.fails) / float64(len(w.failed))
}

func (w *window) clear() {
	for i := range w.failed {
		w.failed[i] = false
	}
	w.pos, w.fails = 0, 0
}
