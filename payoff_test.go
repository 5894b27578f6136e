// Payoff Matrix Tests
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

import "testing"

func TestPayoff(t *testing.T) {
	for _, test := range []struct {
		a, b   Move
		da, db uint
	}{
		{Cooperate, Cooperate, 3, 3},
		{Cooperate, Defect, 0, 5},
		{Defect, Cooperate, 5, 0},
		{Defect, Defect, 1, 1},
	} {
		da, db := Payoff(test.a, test.b)
		if da != test.da || db != test.db {
			t.Errorf("Payoff(%v, %v) = (%d, %d), expected (%d, %d)",
				test.a, test.b, da, db, test.da, test.db)
		}

		// Every round pays out 6 points in total, unless both
		// seats defect, in which case it pays out 2.
		sum := da + db
		if test.a == Defect && test.b == Defect {
			if sum != 2 {
				t.Errorf("Payoff(%v, %v) sums to %d, expected 2",
					test.a, test.b, sum)
			}
		} else if sum != 6 {
			t.Errorf("Payoff(%v, %v) sums to %d, expected 6",
				test.a, test.b, sum)
		}
	}
}

func TestMoveLegal(t *testing.T) {
	for _, test := range []struct {
		move  Move
		legal bool
	}{
		{Cooperate, true},
		{Defect, true},
		{Move(2), false},
		{Move(255), false},
	} {
		if test.move.Legal() != test.legal {
			t.Errorf("(%v).Legal() = %v, expected %v",
				test.move, !test.legal, test.legal)
		}
	}
}
