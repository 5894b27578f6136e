// Match state machine
//
// Copyright (c) 2024, 2025  The go-ipd authors
//
// This file is part of go-ipd.
//
// go-ipd is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-ipd is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-ipd. If not, see
// <http://www.gnu.org/licenses/>

package match

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-ipd"

	"github.com/google/uuid"
)

var (
	// A round-advance was requested while one was in flight
	ErrAlreadyRunning = errors.New("round already in progress")
	// A round-advance was requested on a completed match
	ErrAlreadyDone = errors.New("match is over")
)

type State uint8

const (
	// Waiting for the next round-advance
	Paused State = iota
	// A round-advance is in flight
	Running
	// Terminal: round limit reached or a seat forfeited
	Done
)

func (s State) String() string {
	switch s {
	case Paused:
		return "Paused"
	case Running:
		return "Running"
	case Done:
		return "Done"
	default:
		panic(fmt.Sprintf("Illegal state: %d", s))
	}
}

// A seat is one half of a match: the strategy instance owned by the
// match, its accumulated score and its per-round bookkeeping.
type seat struct {
	user  *ipd.User
	strat ipd.Strategy
	score uint
	delta uint
	last  ipd.Move
	// last is only meaningful once the seat has moved
	moved   bool
	forfeit bool
}

// A Match drives two strategy instances through repeated rounds of
// the dilemma.  The only way to mutate a match is PlayRound (or Play,
// which repeats it); everything else is read-only.  Misbehaving
// strategies never surface as errors here, they are scored as
// forfeits; PlayRound only fails on caller protocol violations.
type Match struct {
	id    uuid.UUID
	limit uint
	obs   ipd.Observer

	lock  sync.Mutex
	a, b  seat
	round uint
	state State
}

// New pairs two agents for a match over limit rounds.  Both
// strategies are spawned eagerly; a failing spawn forfeits that seat
// on the spot and credits the opponent with the maximum score it
// could have reached.  New never fails: even a doubly-forfeited
// match is a well-formed, completed match.
func New(a, b ipd.Agent, limit uint, obs ipd.Observer) *Match {
	if limit == 0 {
		panic("Round limit must be positive")
	}
	if obs == nil {
		obs = ipd.Silent{}
	}

	m := &Match{
		id:    uuid.New(),
		limit: limit,
		obs:   obs,
	}
	m.a.user = a.User()
	m.b.user = b.User()

	var erra, errb error
	m.a.strat, erra = a.Spawn()
	m.b.strat, errb = b.Spawn()

	obs.MatchStarted(m.id, m.a.user, m.b.user, limit)
	if erra == nil && errb == nil {
		return m
	}

	// A construction failure ends the match before it begins.
	// The surviving seat is credited as if it had taken the
	// temptation payoff every round.
	if erra != nil {
		m.a.forfeit = true
		obs.Forfeited(m.id, 0, ipd.SideA, fmt.Errorf("spawn: %w", erra))
	}
	if errb != nil {
		m.b.forfeit = true
		obs.Forfeited(m.id, 0, ipd.SideB, fmt.Errorf("spawn: %w", errb))
	}
	if erra == nil {
		m.a.delta = ipd.MaxPayoff * limit
		m.a.score = m.a.delta
	}
	if errb == nil {
		m.b.delta = ipd.MaxPayoff * limit
		m.b.score = m.b.delta
	}
	m.state = Done
	obs.MatchEnded(m.id, m.round, m.a.score, m.b.score)
	return m
}

// resume requests the next move from a strategy and validates it.
func resume(ctx context.Context, s ipd.Strategy, last *ipd.Move) (ipd.Move, error) {
	move, err := s.Resume(ctx, last)
	if err != nil {
		return 0, fmt.Errorf("terminated without a move: %w", err)
	}
	if !move.Legal() {
		return 0, fmt.Errorf("illegal move %d", uint8(move))
	}
	return move, nil
}

// PlayRound advances the match by one round.  It fails with
// ErrAlreadyRunning if a round-advance is in flight and with
// ErrAlreadyDone on a completed match; both leave the match
// untouched.  Otherwise both strategies are resumed with their
// opponent's previous move, the round is scored, and the state
// update commits atomically.  A strategy that terminates, blocks
// past the context deadline or produces an illegal value forfeits
// the match immediately: its opponent is credited as if it would
// take the temptation payoff for every remaining round.
func (m *Match) PlayRound(ctx context.Context) error {
	m.lock.Lock()
	switch m.state {
	case Running:
		m.lock.Unlock()
		return ErrAlreadyRunning
	case Done:
		m.lock.Unlock()
		return ErrAlreadyDone
	}
	m.state = Running
	round := m.round
	var lasta, lastb *ipd.Move
	if m.a.moved {
		prev := m.a.last
		lasta = &prev
	}
	if m.b.moved {
		prev := m.b.last
		lastb = &prev
	}
	m.lock.Unlock()

	m.obs.RoundStarted(m.id, round)

	// The suspension point: both strategies run outside the lock,
	// so concurrent callers observe the Running state instead of
	// blocking on a half-played round.
	movea, erra := resume(ctx, m.a.strat, lastb)
	moveb, errb := resume(ctx, m.b.strat, lasta)

	m.lock.Lock()
	defer m.lock.Unlock()

	if erra != nil || errb != nil {
		remain := ipd.MaxPayoff * (m.limit - round)
		if erra != nil {
			m.a.forfeit = true
			m.a.delta = 0
			m.obs.Forfeited(m.id, round, ipd.SideA, erra)
		} else {
			m.a.last, m.a.moved = movea, true
			m.a.delta = remain
			m.a.score += remain
			m.obs.MoveMade(m.id, round, ipd.SideA, movea, remain)
		}
		if errb != nil {
			m.b.forfeit = true
			m.b.delta = 0
			m.obs.Forfeited(m.id, round, ipd.SideB, errb)
		} else {
			m.b.last, m.b.moved = moveb, true
			m.b.delta = remain
			m.b.score += remain
			m.obs.MoveMade(m.id, round, ipd.SideB, moveb, remain)
		}
		m.state = Done
		m.obs.MatchEnded(m.id, m.round, m.a.score, m.b.score)
		return nil
	}

	deltaa, deltab := ipd.Payoff(movea, moveb)
	m.a.last, m.a.moved = movea, true
	m.b.last, m.b.moved = moveb, true
	m.a.delta, m.b.delta = deltaa, deltab
	m.a.score += deltaa
	m.b.score += deltab
	m.obs.MoveMade(m.id, round, ipd.SideA, movea, deltaa)
	m.obs.MoveMade(m.id, round, ipd.SideB, moveb, deltab)

	m.round++
	if m.round == m.limit {
		m.state = Done
		m.obs.MatchEnded(m.id, m.round, m.a.score, m.b.score)
	} else {
		m.state = Paused
	}
	return nil
}

// Play drives the match to completion.  Calling it on a completed
// match is a no-op; overlapping it with another round-advance fails
// with ErrAlreadyRunning, as round-advances on one match must never
// overlap.
func (m *Match) Play(ctx context.Context) error {
	for !m.Done() {
		err := m.PlayRound(ctx)
		if errors.Is(err, ErrAlreadyDone) {
			break
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Play is the one-call driver: it pairs two agents, runs the match
// to completion and returns it for its final scores.
func Play(ctx context.Context, a, b ipd.Agent, limit uint, obs ipd.Observer) (*Match, error) {
	m := New(a, b, limit, obs)
	return m, m.Play(ctx)
}

func (m *Match) Id() uuid.UUID { return m.id }
func (m *Match) Limit() uint   { return m.limit }

func (m *Match) seat(s ipd.Side) *seat {
	if s == ipd.SideA {
		return &m.a
	}
	return &m.b
}

// Player returns the roster metadata of a seat.
func (m *Match) Player(s ipd.Side) *ipd.User {
	return m.seat(s).user
}

// Round returns the number of rounds scored so far.
func (m *Match) Round() uint {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.round
}

func (m *Match) State() State {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.state
}

func (m *Match) Done() bool { return m.State() == Done }

// Score returns the accumulated score of a seat.  It is valid at any
// point in the match lifecycle, including on forfeited matches.
func (m *Match) Score(s ipd.Side) uint {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.seat(s).score
}

// Scores returns both accumulated scores at once.
func (m *Match) Scores() (uint, uint) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.a.score, m.b.score
}

// Delta returns the score delta a seat earned in the last scored
// round.
func (m *Match) Delta(s ipd.Side) uint {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.seat(s).delta
}

// Last returns the last move a seat made, if it has made one.
func (m *Match) Last(s ipd.Side) (ipd.Move, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.seat(s).last, m.seat(s).moved
}

// Forfeited reports whether a seat lost the match by misbehaving.
// Callers never need this to read final scores, a forfeited match is
// as well-formed as any other.
func (m *Match) Forfeited(s ipd.Side) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.seat(s).forfeit
}

func (m *Match) String() string {
	m.lock.Lock()
	defer m.lock.Unlock()
	return fmt.Sprintf("%s vs. %s (%d/%d)",
		m.a.user, m.b.user, m.round, m.limit)
}
