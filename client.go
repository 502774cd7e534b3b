/*************************************************************************
 * Copyright 2026 The meian-client Authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package meian is a client for the Meian/Emooz family of networked
// intruder-alarm control panels: a synchronous command channel with
// paginated list queries, and an independent push channel delivering
// alarm events and keepalives. The wire format itself lives in the
// wire subpackage.
package meian

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/wildstray/meian-client/wire"
)

const (
	dialTimeout            = 10 * time.Second
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultKeepalive       = 60 * time.Second
	defaultPushReadTimeout = 10 * time.Second
)

// deadlineConn adapts a net.Conn to timeout-scoped reads and writes, the
// way throttle.go's Conn interface wraps net.Conn's deadline calls. No
// rate limiting is carried over; see DESIGN.md.
type deadlineConn struct {
	net.Conn
}

func (c *deadlineConn) SetReadTimeout(d time.Duration) error {
	return c.Conn.SetReadDeadline(time.Now().Add(d))
}

func (c *deadlineConn) ClearReadTimeout() error {
	return c.Conn.SetReadDeadline(time.Time{})
}

func (c *deadlineConn) SetWriteTimeout(d time.Duration) error {
	return c.Conn.SetWriteDeadline(time.Now().Add(d))
}

func (c *deadlineConn) ClearWriteTimeout() error {
	return c.Conn.SetWriteDeadline(time.Time{})
}

// Client is a single synchronous command session: one socket, one
// sequence counter, at most one in-flight request. The socket, counter,
// and receive path are owned exclusively by the Client and must not be
// shared across goroutines without external synchronization beyond the
// mutex below, which only guarantees serialization, not concurrency.
type Client struct {
	conn   *deadlineConn
	logger Logger
	strict bool

	readTimeout  time.Duration
	writeTimeout time.Duration

	mtx        sync.Mutex
	running    bool
	seq        int
	descriptor *wire.Node
}

// Option configures a Client at Open time.
type Option func(*Client)

// WithLogger installs a structured logger. The default discards all output.
func WithLogger(l Logger) Option { return func(c *Client) { c.logger = l } }

// WithStrict makes an unrecognized leaf tag a CodecError instead of a
// pass-through string.
func WithStrict(strict bool) Option { return func(c *Client) { c.strict = strict } }

// WithTimeouts overrides the per-request read and write deadlines.
func WithTimeouts(read, write time.Duration) Option {
	return func(c *Client) { c.readTimeout, c.writeTimeout = read, write }
}

// Open dials addr, performs the login handshake with id/password, and
// returns a ready-to-use Client. No request may be issued until login
// completes; on login failure the socket is closed and Open returns the
// *LoginError.
func Open(addr, id, password string, opts ...Option) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Err: err}
	}
	return open(conn, id, password, opts...)
}

func open(conn net.Conn, id, password string, opts ...Option) (*Client, error) {
	c := &Client{
		conn:         &deadlineConn{Conn: conn},
		logger:       noopLogger{},
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.login(id, password); err != nil {
		conn.Close()
		return nil, err
	}
	c.running = true
	c.logger.Info("login succeeded", KV("remote", conn.RemoteAddr()))
	return c, nil
}

// Close shuts down the session. Double-close is a no-op.
func (c *Client) Close() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if !c.running {
		return nil
	}
	c.running = false
	return c.conn.Close()
}

// Descriptor returns the Client element cached from the login response.
func (c *Client) Descriptor() *wire.Node {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.descriptor
}

// request performs one send/receive exchange under path, returning the
// response subtree rooted at path (with the leading path element, which
// names the document root and is not itself a child of anything,
// stripped). It does not interpret the Err field; callers that need
// panel-error semantics wrap this with invoke.
func (c *Client) request(path string, fields []*wire.Node) (*wire.Node, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.requestLocked(path, fields)
}

func (c *Client) requestLocked(path string, fields []*wire.Node) (*wire.Node, error) {
	c.seq++
	seq := c.seq

	body, err := wire.EncodeXML(wire.BuildPath(path, fields))
	if err != nil {
		return nil, err
	}
	frame, err := wire.EncodeFrame(wire.MagicCommand, seq, body)
	if err != nil {
		return nil, err
	}

	if err := c.conn.SetWriteTimeout(c.writeTimeout); err != nil {
		return nil, &ConnectionError{Op: "set write timeout", Err: err}
	}
	if _, err := c.conn.Write(frame); err != nil {
		return nil, &ConnectionError{Op: "write", Err: err}
	}
	c.conn.ClearWriteTimeout()

	if err := c.conn.SetReadTimeout(c.readTimeout); err != nil {
		return nil, &ConnectionError{Op: "set read timeout", Err: err}
	}
	resp, err := wire.DecodeFrame(c.conn)
	c.conn.ClearReadTimeout()
	if err != nil {
		if _, ok := err.(*FrameError); ok {
			return nil, err
		}
		return nil, &ConnectionError{Op: "read", Err: err}
	}
	if resp.Magic != wire.MagicCommand {
		return nil, &FrameError{Reason: "unexpected magic on command channel"}
	}
	if resp.Seq != seq {
		return nil, &FrameError{Reason: "response sequence does not match request"}
	}

	tree, err := wire.DecodeXML(resp.Body, c.strict)
	if err != nil {
		return nil, err
	}
	rel := strings.TrimPrefix(path, "/")
	parts := strings.Split(rel, "/")
	node, ok := tree.SelectPath(strings.Join(parts[1:], "/"))
	if !ok {
		return nil, &ProtocolError{Reason: "response missing " + path}
	}
	return node, nil
}

// invoke is request plus the Err-field convention: a truthy Err in the
// response is surfaced as *PanelError without discarding the decoded
// node, so callers can still inspect whatever else came back.
func (c *Client) invoke(path string, fields []*wire.Node) (*wire.Node, error) {
	node, err := c.request(path, fields)
	if err != nil {
		return nil, err
	}
	if errNode, ok := node.Child("Err"); ok && errNode.Truthy() {
		code, _ := errNode.Int64()
		return node, &PanelError{Code: int(code), Path: path}
	}
	return node, nil
}
