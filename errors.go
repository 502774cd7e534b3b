/*************************************************************************
 * Copyright 2026 The meian-client Authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package meian

import (
	"fmt"

	"github.com/wildstray/meian-client/wire"
)

// FrameError and CodecError are produced by the wire package; re-exported
// here so callers never need to import wire just to use errors.As.
type FrameError = wire.FrameError
type CodecError = wire.CodecError

// ConnectionError reports a connect, read, or write I/O failure,
// including a read or write deadline expiring.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string { return "meian: connection error during " + e.Op + ": " + e.Err.Error() }
func (e *ConnectionError) Unwrap() error { return e.Err }

// LoginError reports a non-zero Err field in the login response.
type LoginError struct {
	Code int
}

func (e *LoginError) Error() string { return fmt.Sprintf("meian: login rejected, Err=%02d", e.Code) }

// PanelError reports a non-zero Err field in any non-login response. The
// session remains usable; only the request that produced it failed.
type PanelError struct {
	Code int
	Path string
}

func (e *PanelError) Error() string {
	return fmt.Sprintf("meian: panel returned Err=%02d for %s", e.Code, e.Path)
}

// ProtocolError reports a pagination anomaly or a response missing a
// field its path requires.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return "meian: protocol error: " + e.Reason }

// PushSubscriptionError reports a non-zero Err on the push subscription
// ack, or a malformed subscription response.
type PushSubscriptionError struct {
	Code   int
	Reason string
}

func (e *PushSubscriptionError) Error() string {
	if e.Reason != "" {
		return "meian: push subscription error: " + e.Reason
	}
	return fmt.Sprintf("meian: push subscription rejected, Err=%02d", e.Code)
}

// HandlerError wraps an error returned by the caller-supplied push
// handler. It always terminates the push session; handler failures are
// not isolated from the event loop.
type HandlerError struct {
	Err error
}

func (e *HandlerError) Error() string { return "meian: push handler error: " + e.Err.Error() }
func (e *HandlerError) Unwrap() error { return e.Err }
