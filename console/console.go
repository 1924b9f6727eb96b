// Package console fans one operator channel out to any number of
// links: the serial port, TCP clients, whatever can read and write
// bytes.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	logp "github.com/charmbracelet/log"
)

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "console",
})

const (
	// inboxSize bounds how many unread command bytes pile up before
	// the pumps stop reading. The loop drains one per iteration.
	inboxSize = 64

	writeTimeout = 100 * time.Millisecond
)

// Hub merges bytes from every attached link into one inbox and copies
// every outbound write to all of them. It satisfies the monitor's
// link: reads never block, writes never stall on a slow client.
type Hub struct {
	inbox chan byte

	mu    sync.Mutex
	links map[string]io.ReadWriteCloser
}

func New() *Hub {
	return &Hub{
		inbox: make(chan byte, inboxSize),
		links: map[string]io.ReadWriteCloser{},
	}
}

// Attach adds a link and starts pumping its bytes into the inbox. The
// link is dropped on the first read or write error. Attaching a name
// that is already in use closes and replaces the old link.
func (h *Hub) Attach(name string, rw io.ReadWriteCloser) {
	h.mu.Lock()
	old, replaced := h.links[name]
	h.links[name] = rw
	n := len(h.links)
	h.mu.Unlock()
	if replaced {
		_ = old.Close()
		log.Warn("link replaced", "name", name)
	}
	log.Info("link attached", "name", name, "links", n)
	go h.pump(name, rw)
}

// Serve accepts TCP clients and attaches each one until the context
// is done.
func (h *Hub) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = lis.Close()
	}()
	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("could not accept client: %w", err)
		}
		h.Attach(conn.RemoteAddr().String(), conn)
	}
}

// PollByte pops the next pending byte, if any.
func (h *Hub) PollByte() (byte, bool) {
	select {
	case b := <-h.inbox:
		return b, true
	default:
		return 0, false
	}
}

// Write copies p to every link. Links that fail are dropped. It only
// errors when there were links and none of them took the write.
func (h *Hub) Write(p []byte) (int, error) {
	h.mu.Lock()
	failed := map[string]io.ReadWriteCloser{}
	for name, rw := range h.links {
		if conn, ok := rw.(net.Conn); ok {
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		}
		if _, err := rw.Write(p); err != nil {
			failed[name] = rw
		}
	}
	total := len(h.links)
	h.mu.Unlock()

	for name, rw := range failed {
		h.detach(name, rw, errors.New("write failed"))
	}
	if total > 0 && len(failed) == total {
		return 0, fmt.Errorf("could not write to any link")
	}
	return len(p), nil
}

// Links reports how many links are currently attached.
func (h *Hub) Links() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.links)
}

func (h *Hub) pump(name string, rw io.ReadWriteCloser) {
	buf := make([]byte, 64)
	for {
		n, err := rw.Read(buf)
		for _, b := range buf[:n] {
			h.inbox <- b
		}
		if err != nil {
			h.detach(name, rw, err)
			return
		}
	}
}

// detach removes and closes a link. The rw identity check keeps a
// pump that outlived a replacement from touching the newer link.
func (h *Hub) detach(name string, rw io.ReadWriteCloser, err error) {
	h.mu.Lock()
	cur, ok := h.links[name]
	mine := ok && cur == rw
	if mine {
		delete(h.links, name)
	}
	n := len(h.links)
	h.mu.Unlock()
	if !mine {
		return
	}
	_ = rw.Close()
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
		log.Warn("link lost", "name", name, "links", n, "err", err)
		return
	}
	log.Info("link detached", "name", name, "links", n)
}
