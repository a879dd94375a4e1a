package proc

import "sort"

// ChildPID returns the pid of a running child, or 0.
func (s *Supervisor) ChildPID(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.childs[name]; ok && ch.Cmd != nil && ch.Cmd.Process != nil {
		return ch.Cmd.Process.Pid
	}
	return 0
}

// Running lists the names of children that have not exited yet.
func (s *Supervisor) Running() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.childs))
	for name := range s.childs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
