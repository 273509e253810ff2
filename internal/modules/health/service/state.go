package service

import (
	"sync/atomic"
	"time"
)

// State — атомарные флаги живости: готовность телеграм-цикла и состояние
// ценового стрима.
type State struct {
	ready     atomic.Bool
	startedAt time.Time

	wsConnected     atomic.Bool
	lastPriceAtUnix atomic.Int64 // unix seconds
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetWSConnected(v bool) { s.wsConnected.Store(v) }
func (s *State) WSConnected() bool     { return s.wsConnected.Load() }

func (s *State) TouchPrice(t time.Time) { s.lastPriceAtUnix.Store(t.Unix()) }
func (s *State) LastTick() time.Time {
	u := s.lastPriceAtUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
