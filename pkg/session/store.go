package session

import (
	"errors"

	"go.uber.org/zap"
)

// ErrCwdUnsupported is returned by the cwd resolver on platforms that have
// no way to read another process's working directory.
var ErrCwdUnsupported = errors.New("process cwd lookup not supported on this platform")

// Store is the satellite index of session metadata, keyed by handle. It is
// owned by the control loop and not safe for concurrent use.
type Store struct {
	log       *zap.Logger
	records   map[Handle]*Meta
	abandoned map[Handle]struct{}
	cwdOf     func(pid int) (string, error)
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		log:       log.Named("store"),
		records:   make(map[Handle]*Meta),
		abandoned: make(map[Handle]struct{}),
		cwdOf:     processCwd,
	}
}

// Insert registers h as Pending with no pid.
func (s *Store) Insert(h Handle) {
	s.records[h] = &Meta{Handle: h, State: Pending}
}

// RecordSpawnSuccess marks h Running with pid. Unknown handles are logged
// and ignored.
func (s *Store) RecordSpawnSuccess(h Handle, pid int) {
	m, ok := s.records[h]
	if !ok {
		s.logUnknown(h, "spawn success")
		return
	}
	m.PID = pid
	m.HasPID = true
	m.State = Running
}

// RecordSpawnFailure marks h Failed.
func (s *Store) RecordSpawnFailure(h Handle) {
	m, ok := s.records[h]
	if !ok {
		s.logUnknown(h, "spawn failure")
		return
	}
	m.State = Failed
}

func (s *Store) logUnknown(h Handle, what string) {
	if _, ok := s.abandoned[h]; ok {
		delete(s.abandoned, h)
		s.log.Info("late spawn result for closed session", zap.String("session", h.Short()), zap.String("result", what))
		return
	}
	s.log.Warn("spawn result for unknown session", zap.String("session", h.Short()), zap.String("result", what))
}

// LookupCwd returns the working directory of h's process. Any failure,
// including no pid yet, yields ("", false).
func (s *Store) LookupCwd(h Handle) (string, bool) {
	m, ok := s.records[h]
	if !ok || !m.HasPID {
		return "", false
	}
	dir, err := s.cwdOf(m.PID)
	if err != nil {
		s.log.Debug("cwd lookup failed", zap.String("session", h.Short()), zap.Int("pid", m.PID), zap.Error(err))
		return "", false
	}
	return dir, true
}

// Remove deletes h. A record removed while still Pending is remembered so
// that its eventual spawn result can be told apart from a bogus one.
func (s *Store) Remove(h Handle) {
	m, ok := s.records[h]
	if !ok {
		return
	}
	if m.State == Pending {
		s.abandoned[h] = struct{}{}
	}
	delete(s.records, h)
}

// Get returns a copy of h's record.
func (s *Store) Get(h Handle) (Meta, bool) {
	m, ok := s.records[h]
	if !ok {
		return Meta{}, false
	}
	return *m, true
}

func (s *Store) Len() int {
	return len(s.records)
}
