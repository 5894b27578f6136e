// Tournament Tests
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

package tourn

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-ipd"
	"go-ipd/strat"
)

func roster() []ipd.Agent {
	return []ipd.Agent{
		strat.MakeCooperator(),
		strat.MakeDefector(),
		strat.MakeGrudger(),
		strat.MakeTitForTat(),
	}
}

func TestGrid(t *testing.T) {
	players := roster()
	tn := New(players, 10, nil)

	n := len(players)
	if got := len(tn.Matches()); got != n*(n-1)/2 {
		t.Errorf("Built %d matches, expected %d", got, n*(n-1)/2)
	}

	// Every pair is stored once, higher index first
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m, err := tn.Match(i, j)
			if 0 <= j && j < i {
				if err != nil {
					t.Errorf("Match(%d, %d) failed: %s", i, j, err)
				} else if m.Player(ipd.SideA) != players[i].User() ||
					m.Player(ipd.SideB) != players[j].User() {
					t.Errorf("Match(%d, %d) seats the wrong players", i, j)
				}
			} else if !errors.Is(err, ErrBadPair) {
				t.Errorf("Match(%d, %d) returned %v, expected ErrBadPair",
					i, j, err)
			}
		}
	}

	// Out of range indices are usage errors
	if _, err := tn.Match(n, 0); !errors.Is(err, ErrBadPair) {
		t.Errorf("Match(%d, 0) returned %v, expected ErrBadPair", n, err)
	}
	if _, err := tn.Match(-1, -2); !errors.Is(err, ErrBadPair) {
		t.Errorf("Match(-1, -2) returned %v, expected ErrBadPair", err)
	}
}

func TestScoreBeforePlay(t *testing.T) {
	tn := New(roster(), 10, nil)

	// Nothing has been played, all aggregates read zero
	for i := 0; i < tn.Size(); i++ {
		score, err := tn.Score(i)
		if err != nil {
			t.Errorf("Score(%d) failed: %s", i, err)
		} else if score != 0 {
			t.Errorf("Score(%d) = %d before any round", i, score)
		}
	}

	if _, err := tn.Score(tn.Size()); !errors.Is(err, ErrBadPair) {
		t.Errorf("Score out of range returned %v, expected ErrBadPair", err)
	}
}

func TestRun(t *testing.T) {
	var limit uint = 10
	players := []ipd.Agent{
		strat.MakeCooperator(),
		strat.MakeDefector(),
		strat.MakeGrudger(),
	}
	tn := New(players, limit, nil)
	if err := tn.Run(context.Background(), 2, 0); err != nil {
		t.Fatal(err)
	}

	for _, m := range tn.Matches() {
		if !m.Done() {
			t.Errorf("Match %s is not done after Run", m)
		}
	}

	// All matches are deterministic here:
	//   defector   vs cooperator: 5N - 0
	//   grudger    vs cooperator: 3N - 3N
	//   grudger    vs defector:   (N-1) - (5 + N-1)
	expect := []uint{
		0 + 3*limit,               // cooperator
		5*limit + 5 + (limit - 1), // defector
		3*limit + (limit - 1),     // grudger
	}
	for i, want := range expect {
		got, err := tn.Score(i)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("Score(%d) = %d, expected %d (%s)",
				i, got, want, players[i].User())
		}
	}
}

func TestPrintResults(t *testing.T) {
	tn := New(roster(), 5, nil)
	if err := tn.Run(context.Background(), 0, 0); err != nil {
		t.Fatal(err)
	}

	var report strings.Builder
	tn.PrintResults(&report)
	out := report.String()
	for _, want := range []string{".TS", ".TE", "cooperator", "defector"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report does not mention %q", want)
		}
	}
}
