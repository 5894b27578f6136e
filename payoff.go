// Payoff Matrix
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

import "fmt"

// The classic payoff constants.  Mutual cooperation pays more than
// mutual defection, but a lone defector takes the temptation payoff
// while the sucker gets nothing.
const (
	Reward     uint = 3 // both cooperate
	Sucker     uint = 0 // cooperate against a defector
	Temptation uint = 5 // defect against a cooperator
	Punishment uint = 1 // both defect

	// Most a single round can pay out to one seat
	MaxPayoff = Temptation
)

// Payoff scores one round.  It maps a pair of legal moves to the
// score deltas of seat A and seat B respectively.
func Payoff(a, b Move) (uint, uint) {
	switch {
	case a == Cooperate && b == Cooperate:
		return Reward, Reward
	case a == Cooperate && b == Defect:
		return Sucker, Temptation
	case a == Defect && b == Cooperate:
		return Temptation, Sucker
	case a == Defect && b == Defect:
		return Punishment, Punishment
	}
	panic(fmt.Sprintf("Illegal move pair: %v, %v", a, b))
}
