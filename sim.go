package alarmd

import (
	"errors"
	"sync"
	"sync/atomic"
)

// SimPin is an in-memory pin, usable as both input and output. It
// backs the simulation rig and the tests.
type SimPin struct {
	v atomic.Bool
}

func (p *SimPin) Read() bool {
	return p.v.Load()
}

func (p *SimPin) Set(on bool) {
	p.v.Store(on)
}

func (p *SimPin) Toggle() bool {
	on := !p.v.Load()
	p.v.Store(on)
	return on
}

var errLinkDown = errors.New("link down")

// SimLink is an in-memory operator channel. Bytes go in with Push and
// come out one per PollByte; everything written is kept until Take.
type SimLink struct {
	mu   sync.Mutex
	in   []byte
	out  []byte
	fail bool
}

func (l *SimLink) Push(p ...byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.in = append(l.in, p...)
}

func (l *SimLink) PollByte() (byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.in) == 0 {
		return 0, false
	}
	b := l.in[0]
	l.in = l.in[1:]
	return b, true
}

func (l *SimLink) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return 0, errLinkDown
	}
	l.out = append(l.out, p...)
	return len(p), nil
}

// FailWrites makes every following Write fail, until turned off again.
func (l *SimLink) FailWrites(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fail = v
}

// Take returns everything written since the last Take.
func (l *SimLink) Take() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := string(l.out)
	l.out = nil
	return out
}
