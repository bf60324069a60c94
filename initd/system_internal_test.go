// SPDX-FileCopyrightText: 2026 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"golang.org/x/sys/unix"
)

// errScriptExhausted is returned by fakeSystem once its scripted start
// results are used up.
var errScriptExhausted = errors.New("no scripted start result left")

// fakeSystem records lifecycle calls in order and serves scripted
// results.
type fakeSystem struct {
	pidNum int

	// startErrs is consumed one entry per start. A nil entry is a
	// successful start. An exhausted script fails the start.
	startErrs []error

	// waitErrs is consumed one entry per wait. An exhausted script
	// returns nil, a clean exit.
	waitErrs []error

	signalAllErr error
	powerOffErr  error

	calls []string
	slept []time.Duration
}

func (s *fakeSystem) pid() int {
	return s.pidNum
}

func (s *fakeSystem) startShell(path string) (process, error) {
	s.calls = append(s.calls, "start "+path)

	if len(s.startErrs) == 0 {
		return nil, errScriptExhausted
	}

	err := s.startErrs[0]
	s.startErrs = s.startErrs[1:]

	if err != nil {
		return nil, err
	}

	return &fakeProcess{sys: s}, nil
}

func (s *fakeSystem) signalAll(sig unix.Signal) error {
	s.calls = append(s.calls, fmt.Sprintf("signal %d", sig))
	return s.signalAllErr
}

func (s *fakeSystem) sync() {
	s.calls = append(s.calls, "sync")
}

func (s *fakeSystem) powerOff() error {
	s.calls = append(s.calls, "poweroff")
	return s.powerOffErr
}

func (s *fakeSystem) idle() {
	s.calls = append(s.calls, "idle")
}

func (s *fakeSystem) sleep(d time.Duration) {
	s.calls = append(s.calls, "sleep")
	s.slept = append(s.slept, d)
}

type fakeProcess struct {
	sys *fakeSystem
}

func (p *fakeProcess) Wait() error {
	p.sys.calls = append(p.sys.calls, "wait")

	if len(p.sys.waitErrs) == 0 {
		return nil
	}

	err := p.sys.waitErrs[0]
	p.sys.waitErrs = p.sys.waitErrs[1:]

	return err
}

// exitError resembles the error returned when waiting for a child that
// terminated with a non-zero exit status.
func exitError() error {
	return &exec.ExitError{ProcessState: &os.ProcessState{}}
}
