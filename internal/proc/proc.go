package proc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"zj-status/internal/logger"
)

// Dispatcher launches an external command and returns at once. There is no
// return channel: exit status, output and start failures never reach the
// caller.
type Dispatcher interface {
	Dispatch(argv []string)
}

type Child struct {
	Cmd  *exec.Cmd
	Name string

	done chan struct{}
}

// Supervisor starts children, streams their output into the log and reaps
// them when they exit.
type Supervisor struct {
	mu     sync.Mutex
	childs map[string]*Child
	seq    int
	log    *logger.Logger

	// StopTimeout bounds how long StopAll waits before killing.
	StopTimeout time.Duration
}

func NewSupervisor(log *logger.Logger) *Supervisor {
	return &Supervisor{childs: map[string]*Child{}, log: log, StopTimeout: 6 * time.Second}
}

// Dispatch starts argv in its own process group and forgets about it.
func (s *Supervisor) Dispatch(argv []string) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		s.log.Warn("dispatch ignored: empty command")
		return
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = newSysProcAttrForGroup()

	s.mu.Lock()
	s.seq++
	name := fmt.Sprintf("%s#%d", filepath.Base(argv[0]), s.seq)
	s.mu.Unlock()

	if _, err := s.Start(name, cmd); err != nil {
		s.log.Error(err, "dispatch failed", "command", argv)
		return
	}
	s.log.Debug("dispatched", "child", name, "command", argv)
}

// Start runs cmd under name. Names must be unique among running children.
func (s *Supervisor) Start(name string, cmd *exec.Cmd) (*Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.childs[name]; ok {
		return nil, fmt.Errorf("%s already started", name)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%s: stdout: %w", name, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%s: stderr: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	ch := &Child{Cmd: cmd, Name: name, done: make(chan struct{})}
	s.childs[name] = ch

	var pipes sync.WaitGroup
	pipes.Add(2)
	go s.pipeLogs(name, stdout, &pipes)
	go s.pipeLogs(name, stderr, &pipes)
	go s.reap(ch, &pipes)
	return ch, nil
}

func (s *Supervisor) pipeLogs(name string, r io.Reader, wg *sync.WaitGroup) {
	defer wg.Done()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.log.Info(line, "child", name)
	}
}

// reap waits for output to drain, then for the process, then forgets it.
func (s *Supervisor) reap(ch *Child, pipes *sync.WaitGroup) {
	pipes.Wait()
	err := ch.Cmd.Wait()

	s.mu.Lock()
	delete(s.childs, ch.Name)
	s.mu.Unlock()
	close(ch.done)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		s.log.Debug("child exited", "child", ch.Name)
	case errors.As(err, &exitErr):
		s.log.Warn("child exited", "child", ch.Name, "code", exitErr.ExitCode())
	default:
		s.log.Error(err, "child wait failed", "child", ch.Name)
	}
}

// StopAll interrupts every running child and kills the ones still alive when
// ctx ends or StopTimeout passes.
func (s *Supervisor) StopAll(ctx context.Context) error {
	s.mu.Lock()
	childs := make([]*Child, 0, len(s.childs))
	for _, ch := range s.childs {
		childs = append(childs, ch)
	}
	s.mu.Unlock()

	var first error
	for _, ch := range childs {
		s.log.Info("stopping child", "child", ch.Name, "pid", ch.Cmd.Process.Pid)
		if err := interruptGroup(ch.Cmd.Process.Pid); err != nil && first == nil {
			first = fmt.Errorf("%s: %w", ch.Name, err)
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.StopTimeout)
	defer cancel()
	for _, ch := range childs {
		select {
		case <-ch.done:
		case <-waitCtx.Done():
			_ = killGroup(ch.Cmd.Process.Pid)
			<-ch.done
		}
		s.log.Info("stopped child", "child", ch.Name)
	}
	return first
}
