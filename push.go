/*************************************************************************
 * Copyright 2026 The meian-client Authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package meian

import (
	"net"
	"sync"
	"time"

	"github.com/wildstray/meian-client/wire"
)

const pushSubscribePath = "/Root/Pair/Push"

// Handler decodes one alarm payload. An error return is fatal to the
// push session and surfaces to the caller wrapped in *HandlerError.
type Handler func(alarm *wire.Node) error

// Push is an independent, long-lived push session: its own socket, its
// own keepalive timer, one background event loop. Not safe for
// concurrent use by multiple callers beyond Close, Err, and Descriptor.
type Push struct {
	conn    *deadlineConn
	handler Handler
	logger  Logger

	keepalive   time.Duration
	readTimeout time.Duration

	mtx        sync.Mutex
	closed     bool
	descriptor *wire.Node
	lastErr    error

	dieChan chan struct{}
	done    chan struct{}
}

// PushOption configures a Push at OpenPush time.
type PushOption func(*Push)

func WithPushLogger(l Logger) PushOption { return func(p *Push) { p.logger = l } }

// WithPushKeepalive overrides the 60s keepalive period. Intended for
// tests that need a timer fast enough to observe in a reasonable span.
func WithPushKeepalive(d time.Duration) PushOption { return func(p *Push) { p.keepalive = d } }

func WithPushReadTimeout(d time.Duration) PushOption {
	return func(p *Push) { p.readTimeout = d }
}

// OpenPush dials addr, sends the one-shot subscription message for id,
// and starts the background event loop. handler is invoked for every
// decoded alarm, serialized: invocations never overlap.
func OpenPush(addr, id string, handler Handler, opts ...PushOption) (*Push, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Err: err}
	}
	return openPush(conn, id, handler, opts...)
}

func openPush(conn net.Conn, id string, handler Handler, opts ...PushOption) (*Push, error) {
	p := &Push{
		conn:        &deadlineConn{Conn: conn},
		handler:     handler,
		logger:      noopLogger{},
		keepalive:   defaultKeepalive,
		readTimeout: defaultPushReadTimeout,
		dieChan:     make(chan struct{}),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.subscribe(id); err != nil {
		conn.Close()
		return nil, err
	}

	frames := make(chan *wire.Frame)
	errs := make(chan error, 1)
	go p.readLoop(frames, errs)
	go p.eventLoop(frames, errs)
	return p, nil
}

func (p *Push) subscribe(id string) error {
	body, err := wire.EncodeXML(wire.BuildPath(pushSubscribePath, []*wire.Node{
		wire.Scalar("Id", wire.EncodeStr(id)),
		wire.Slot("Err"),
	}))
	if err != nil {
		return err
	}
	frame, err := wire.EncodeFrame(wire.MagicCommand, 0, body)
	if err != nil {
		return err
	}

	if err := p.conn.SetWriteTimeout(defaultWriteTimeout); err != nil {
		return &ConnectionError{Op: "set write timeout", Err: err}
	}
	if _, err := p.conn.Write(frame); err != nil {
		return &ConnectionError{Op: "write", Err: err}
	}
	p.conn.ClearWriteTimeout()

	if err := p.conn.SetReadTimeout(p.readTimeout); err != nil {
		return &ConnectionError{Op: "set read timeout", Err: err}
	}
	resp, err := wire.DecodeFrame(p.conn)
	p.conn.ClearReadTimeout()
	if err != nil {
		if _, ok := err.(*FrameError); ok {
			return err
		}
		return &ConnectionError{Op: "read", Err: err}
	}
	if resp.Magic != wire.MagicCommand {
		return &FrameError{Reason: "unexpected magic during push subscription"}
	}

	node, err := decodePushAck(resp.Body)
	if err != nil {
		return err
	}
	p.descriptor = node
	return nil
}

func decodePushAck(body []byte) (*wire.Node, error) {
	tree, err := wire.DecodeXML(body, false)
	if err != nil {
		return nil, err
	}
	node, ok := tree.SelectPath("Pair/Push")
	if !ok {
		return nil, &PushSubscriptionError{Reason: "response missing /Root/Pair/Push"}
	}
	if errNode, ok := node.Child("Err"); ok && errNode.Truthy() {
		code, _ := errNode.Int64()
		return nil, &PushSubscriptionError{Code: int(code)}
	}
	return node, nil
}

// readLoop owns the blocking reads and nothing else; it hands decoded
// frames to eventLoop over a channel because a blocking net.Conn.Read
// can't participate directly in a select.
func (p *Push) readLoop(frames chan<- *wire.Frame, errs chan<- error) {
	for {
		if err := p.conn.SetReadTimeout(p.readTimeout); err != nil {
			select {
			case errs <- &ConnectionError{Op: "set read timeout", Err: err}:
			case <-p.dieChan:
			}
			return
		}
		frame, err := wire.DecodeFrame(p.conn)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				// A read timeout is just the poll interval expiring,
				// not a dead connection; keep waiting for the next frame.
				continue
			}
			if _, ok := err.(*FrameError); !ok {
				err = &ConnectionError{Op: "read", Err: err}
			}
			select {
			case errs <- err:
			case <-p.dieChan:
			}
			return
		}
		select {
		case frames <- frame:
		case <-p.dieChan:
			return
		}
	}
}

// eventLoop is the single task that owns the socket's write side: it
// dispatches inbound frames and fires the keepalive timer.
func (p *Push) eventLoop(frames <-chan *wire.Frame, errs <-chan error) {
	defer close(p.done)
	timer := time.NewTimer(p.keepalive)
	defer timer.Stop()
	for {
		select {
		case <-p.dieChan:
			return
		case err := <-errs:
			p.setErr(err)
			return
		case frame := <-frames:
			if !timer.Stop() {
				<-timer.C
			}
			if err := p.dispatch(frame); err != nil {
				p.setErr(err)
				return
			}
			timer.Reset(p.keepalive)
		case <-timer.C:
			if err := p.sendKeepalive(); err != nil {
				p.setErr(&ConnectionError{Op: "keepalive write", Err: err})
				return
			}
			timer.Reset(p.keepalive)
		}
	}
}

func (p *Push) dispatch(frame *wire.Frame) error {
	switch frame.Magic {
	case wire.MagicKeepalive:
		return nil
	case wire.MagicCommand:
		// The subscription ack is consumed synchronously in subscribe
		// before the event loop starts, so a command-magic frame
		// arriving here is an unsolicited post-subscription ack. Treat
		// it as an error rather than a silent refresh.
		return &FrameError{Reason: "unsolicited subscription ack on push channel"}
	case wire.MagicAlarm:
		tree, err := wire.DecodeXML(frame.Body, false)
		if err != nil {
			return err
		}
		alarm, ok := tree.SelectPath("Host/Alarm")
		if !ok {
			return &FrameError{Reason: "alarm frame missing /Root/Host/Alarm"}
		}
		if err := p.handler(alarm); err != nil {
			return &HandlerError{Err: err}
		}
		return nil
	default:
		return &FrameError{Reason: "unexpected magic on push channel"}
	}
}

func (p *Push) sendKeepalive() error {
	if err := p.conn.SetWriteTimeout(defaultWriteTimeout); err != nil {
		return err
	}
	defer p.conn.ClearWriteTimeout()
	_, err := p.conn.Write(wire.EncodeKeepalive())
	return err
}

func (p *Push) setErr(err error) {
	p.mtx.Lock()
	p.lastErr = err
	p.mtx.Unlock()
}

// Err returns the error that caused the event loop to exit, if any.
func (p *Push) Err() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.lastErr
}

// Descriptor returns the last-received /Root/Pair/Push subtree.
func (p *Push) Descriptor() *wire.Node {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.descriptor
}

// Close is safe to call from any goroutine and from multiple goroutines
// concurrently; double-close is a no-op.
func (p *Push) Close() error {
	p.mtx.Lock()
	if p.closed {
		p.mtx.Unlock()
		return nil
	}
	p.closed = true
	p.mtx.Unlock()

	close(p.dieChan)
	err := p.conn.Close()
	<-p.done
	return err
}
