/*************************************************************************
 * Copyright 2026 The meian-client Authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package meian

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/crewjam/rfc5424"
)

// Logger is the structured logging surface a Client or Push can be given.
// A Client writes one Info line after a successful login; requests,
// pagination, keepalives and push dispatch write nothing to it. It is not
// a configuration-file loader; callers still pass host/port/credentials
// as Go values.
type Logger interface {
	Info(msg string, sds ...rfc5424.SDParam) error
	Warn(msg string, sds ...rfc5424.SDParam) error
	Error(msg string, sds ...rfc5424.SDParam) error
}

// KV builds a structured log field.
func KV(name string, value interface{}) rfc5424.SDParam {
	if s, ok := value.(string); ok {
		return rfc5424.SDParam{Name: name, Value: s}
	}
	return rfc5424.SDParam{Name: name, Value: fmt.Sprintf("%v", value)}
}

// KVErr builds a structured "error" field.
func KVErr(err error) rfc5424.SDParam { return KV("error", err) }

type noopLogger struct{}

func (noopLogger) Info(string, ...rfc5424.SDParam) error  { return nil }
func (noopLogger) Warn(string, ...rfc5424.SDParam) error  { return nil }
func (noopLogger) Error(string, ...rfc5424.SDParam) error { return nil }

// NoLogger returns a Logger that discards everything.
func NoLogger() Logger { return noopLogger{} }

// StderrLogger is a minimal structured logger good enough for a library
// default: one line per call, RFC5424-style key=value pairs appended
// after the message.
type StderrLogger struct {
	mtx sync.Mutex
	w   io.Writer
}

// NewStderrLogger returns a Logger writing to os.Stderr.
func NewStderrLogger() *StderrLogger { return &StderrLogger{w: os.Stderr} }

func (l *StderrLogger) write(level, msg string, sds []rfc5424.SDParam) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	line := fmt.Sprintf("%s %s %s", time.Now().UTC().Format(time.RFC3339), level, msg)
	for _, sd := range sds {
		line += fmt.Sprintf(" %s=%q", sd.Name, sd.Value)
	}
	_, err := fmt.Fprintln(l.w, line)
	return err
}

func (l *StderrLogger) Info(msg string, sds ...rfc5424.SDParam) error  { return l.write("INFO", msg, sds) }
func (l *StderrLogger) Warn(msg string, sds ...rfc5424.SDParam) error  { return l.write("WARN", msg, sds) }
func (l *StderrLogger) Error(msg string, sds ...rfc5424.SDParam) error { return l.write("ERROR", msg, sds) }
