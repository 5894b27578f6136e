// Engine event side channel
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

package ipd

import (
	"log"

	"github.com/google/uuid"
)

// An Observer receives engine events as matches progress.  The
// engine reports everything of interest through this side channel
// and never through return values: strategy misbehaviour in
// particular is absorbed into forfeit scoring and only surfaces
// here.  Implementations must not call back into the match that
// emitted the event.
type Observer interface {
	// A match has been constructed between two agents
	MatchStarted(id uuid.UUID, a, b *User, limit uint)
	// A round-advance has begun
	RoundStarted(id uuid.UUID, round uint)
	// A seat made a legal move worth delta points
	MoveMade(id uuid.UUID, round uint, side Side, move Move, delta uint)
	// A seat forfeited the match
	Forfeited(id uuid.UUID, round uint, side Side, reason error)
	// A match reached its terminal state
	MatchEnded(id uuid.UUID, round uint, scoreA, scoreB uint)
}

// Observers fans every event out to a list of observers, in order.
type Observers []Observer

func (o Observers) MatchStarted(id uuid.UUID, a, b *User, limit uint) {
	for _, obs := range o {
		obs.MatchStarted(id, a, b, limit)
	}
}

func (o Observers) RoundStarted(id uuid.UUID, round uint) {
	for _, obs := range o {
		obs.RoundStarted(id, round)
	}
}

func (o Observers) MoveMade(id uuid.UUID, round uint, side Side, move Move, delta uint) {
	for _, obs := range o {
		obs.MoveMade(id, round, side, move, delta)
	}
}

func (o Observers) Forfeited(id uuid.UUID, round uint, side Side, reason error) {
	for _, obs := range o {
		obs.Forfeited(id, round, side, reason)
	}
}

func (o Observers) MatchEnded(id uuid.UUID, round uint, scoreA, scoreB uint) {
	for _, obs := range o {
		obs.MatchEnded(id, round, scoreA, scoreB)
	}
}

// Silent drops all events.
type Silent struct{}

func (Silent) MatchStarted(uuid.UUID, *User, *User, uint) {}
func (Silent) RoundStarted(uuid.UUID, uint)               {}
func (Silent) MoveMade(uuid.UUID, uint, Side, Move, uint) {}
func (Silent) Forfeited(uuid.UUID, uint, Side, error)     {}
func (Silent) MatchEnded(uuid.UUID, uint, uint, uint)     {}

type logger struct{}

// Logger reports every event on the shared debug logger, except
// forfeits, which are logged as errors on the default logger.
func Logger() Observer { return logger{} }

func (logger) MatchStarted(id uuid.UUID, a, b *User, limit uint) {
	Debug.Printf("Match %s: %s vs. %s over %d rounds", id, a, b, limit)
}

func (logger) RoundStarted(id uuid.UUID, round uint) {
	Debug.Printf("Match %s: starting round %d", id, round)
}

func (logger) MoveMade(id uuid.UUID, round uint, side Side, move Move, delta uint) {
	Debug.Printf("Match %s: %s played %s in round %d (+%d)",
		id, side, move, round, delta)
}

func (logger) Forfeited(id uuid.UUID, round uint, side Side, reason error) {
	log.Printf("Match %s: %s forfeited in round %d: %s",
		id, side, round, reason)
}

func (logger) MatchEnded(id uuid.UUID, round uint, scoreA, scoreB uint) {
	Debug.Printf("Match %s: over after %d rounds (%d-%d)",
		id, round, scoreA, scoreB)
}
