package main

import (
	"bytes"
	"context"
	"net"
	"time"

	"github.com/go-errors/errors"

	mandel "github.com/marben/live_mandel"
	"github.com/marben/live_mandel/present"
	"github.com/marben/live_mandel/render"
	"github.com/marben/live_mandel/view"
)

// session drives one browser viewer.
// The client sends key bytes; the server answers with a PNG frame whenever the view changes,
// at most once per interval.
type session struct {
	conn     net.Conn
	ctrl     *view.Controller
	comp     *render.Compositor
	dims     mandel.Dims
	maxIter  int
	interval time.Duration
}

// run serves the session until the client quits, the connection drops or ctx ends.
func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.conn.Close()

	go func() {
		defer cancel()
		s.readKeys()
	}()

	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	var sent uint64
	first := true
	for {
		v, gen := s.ctrl.Snapshot()
		if first || gen != sent {
			if err := s.sendFrame(v); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			sent, first = gen, false
		}

		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
}

// readKeys applies key bytes to the controller until quit or a read error.
func (s *session) readKeys() {
	buf := make([]byte, 64)
	for {
		n, err := s.conn.Read(buf)
		if err != nil {
			return
		}
		for _, b := range buf[:n] {
			a := view.FromRune(rune(b))
			if a == view.Quit {
				return
			}
			s.ctrl.Apply(a)
		}
	}
}

func (s *session) sendFrame(v mandel.Viewport) error {
	f := s.comp.Render(v, s.dims, s.maxIter)
	var buf bytes.Buffer
	if err := present.Encode(&buf, f, present.PNG); err != nil {
		return errors.WrapPrefix(err, "encode frame", 0)
	}
	if _, err := s.conn.Write(buf.Bytes()); err != nil {
		return errors.WrapPrefix(err, "send frame", 0)
	}
	return nil
}
