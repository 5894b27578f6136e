// Built-in Strategy Tests
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

package strat

import (
	"context"
	"testing"

	"go-ipd"
)

// trace feeds a strategy a scripted sequence of opponent moves and
// returns its replies.  The first resume passes no move.
func trace(t *testing.T, a ipd.Agent, opponent []ipd.Move) []ipd.Move {
	t.Helper()

	s, err := a.Spawn()
	if err != nil {
		t.Fatalf("%s failed to spawn: %s", a.User(), err)
	}

	var (
		ctx  = context.Background()
		last *ipd.Move
		out  []ipd.Move
	)
	for i := 0; ; i++ {
		move, err := s.Resume(ctx, last)
		if err != nil {
			t.Fatalf("%s terminated in round %d: %s", a.User(), i, err)
		}
		if !move.Legal() {
			t.Fatalf("%s made an illegal move in round %d", a.User(), i)
		}
		out = append(out, move)
		if i == len(opponent) {
			return out
		}
		prev := opponent[i]
		last = &prev
	}
}

func TestTraces(t *testing.T) {
	C, D := ipd.Cooperate, ipd.Defect
	for _, test := range []struct {
		agent    ipd.Agent
		opponent []ipd.Move
		expected []ipd.Move
	}{
		{MakeCooperator(), []ipd.Move{D, D, C}, []ipd.Move{C, C, C, C}},
		{MakeDefector(), []ipd.Move{C, C, C}, []ipd.Move{D, D, D, D}},
		{MakeTitForTat(), []ipd.Move{C, D, C, D}, []ipd.Move{C, C, D, C, D}},
		{MakeGrudger(), []ipd.Move{C, D, C, C}, []ipd.Move{C, C, D, D, D}},
		{MakePavlov(), []ipd.Move{C, D, D, C}, []ipd.Move{C, C, D, C, C}},
	} {
		got := trace(t, test.agent, test.opponent)
		if len(got) != len(test.expected) {
			t.Fatalf("%s made %d moves, expected %d",
				test.agent.User(), len(got), len(test.expected))
		}
		for i, move := range got {
			if move != test.expected[i] {
				t.Errorf("%s played %v in round %d, expected %v",
					test.agent.User(), move, i, test.expected[i])
			}
		}
	}
}

func TestFreshInstances(t *testing.T) {
	// Spawning must produce independent strategy instances: a
	// grudge held in one match may not leak into the next.
	a := MakeGrudger()
	D := []ipd.Move{ipd.Defect}

	first := trace(t, a, D)
	if first[1] != ipd.Defect {
		t.Fatal("Grudger did not pick up the grudge")
	}
	second := trace(t, a, []ipd.Move{ipd.Cooperate})
	if second[1] != ipd.Cooperate {
		t.Error("A fresh grudger instance inherited an old grudge")
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{
		"cooperator", "defector", "tit-for-tat",
		"grudger", "random", "pavlov",
	} {
		a, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q) failed: %s", name, err)
			continue
		}
		if a.User().Name != name {
			t.Errorf("Lookup(%q) returned %q", name, a.User().Name)
		}
	}

	if _, err := Lookup("no-such-strategy"); err == nil {
		t.Error("Lookup of an unknown name did not fail")
	}
}
