// Common Interfaces and constants
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
	"context"
	"fmt"
)

type (
	Move uint8
	Side bool
)

const (
	// Possible moves in a round
	Cooperate Move = iota
	Defect

	// The two seats of a match
	SideA, SideB Side = false, true
)

func (m Move) String() string {
	switch m {
	case Cooperate:
		return "Cooperate"
	case Defect:
		return "Defect"
	default:
		return fmt.Sprintf("Illegal(%d)", uint8(m))
	}
}

// Legal reports whether m is one of the two moves a strategy may
// make.  Strategies return Move values, but nothing stops a broken
// one from returning Move(7).
func (m Move) Legal() bool {
	return m == Cooperate || m == Defect
}

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	}
	panic("Illegal side")
}

// A Strategy is one suspended decision-maker for the duration of a
// single match.  Each Resume call hands it the opponent's previous
// move (nil before the first round) and expects exactly one move
// back.  Returning an error means the strategy terminated without
// producing a move; returning a Move outside {Cooperate, Defect} is
// an illegal move.  Either misbehaviour forfeits the match for that
// seat.  A Strategy is never reused across matches.
type Strategy interface {
	Resume(ctx context.Context, last *Move) (Move, error)
}

// An Agent is a roster entry: metadata plus a factory producing a
// fresh Strategy per match.  Spawn may fail, which the match engine
// treats as an immediate forfeit of that seat.
type Agent interface {
	Spawn() (Strategy, error)
	User() *User
}

type User struct {
	Name   string
	Descr  string
	Author string
}

func (u *User) String() string {
	if u == nil || u.Name == "" {
		return "anonymous"
	}
	return u.Name
}
