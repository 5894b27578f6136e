// Match record database tests
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

package db

import (
	"context"
	"testing"

	"go-ipd"
	"go-ipd/match"
	"go-ipd/strat"
)

func memory(t *testing.T) *db {
	t.Helper()
	db, err := open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.write.Close()
		db.read.Close()
	})
	return db
}

func TestRecordMatch(t *testing.T) {
	var (
		rec        = memory(t)
		limit uint = 5
		ctx        = context.Background()
	)

	m, err := match.Play(ctx,
		strat.MakeGrudger(), strat.MakeDefector(),
		limit, rec)
	if err != nil {
		t.Fatal(err)
	}

	got := rec.QueryMatch(ctx, m.Id())
	if got == nil {
		t.Fatal("Played match was not recorded")
	}
	if got.A != "grudger" || got.B != "defector" {
		t.Errorf("Recorded players are %q and %q", got.A, got.B)
	}
	sa, sb := m.Scores()
	if got.ScoreA != sa || got.ScoreB != sb {
		t.Errorf("Recorded scores are (%d, %d), expected (%d, %d)",
			got.ScoreA, got.ScoreB, sa, sb)
	}
	if !got.Done || got.Round != limit {
		t.Errorf("Recorded as done=%v after %d rounds",
			got.Done, got.Round)
	}
	if got.ForfeitA || got.ForfeitB {
		t.Error("Recorded a forfeit in a clean match")
	}

	// Every seat moved once per round
	c := make(chan *ipd.MoveRecord)
	go rec.QueryMoves(ctx, m.Id(), c)
	var moves uint
	for mv := range c {
		if mv.Round >= limit {
			t.Errorf("Recorded move in round %d of %d", mv.Round, limit)
		}
		moves++
	}
	if moves != 2*limit {
		t.Errorf("Recorded %d moves, expected %d", moves, 2*limit)
	}
}

func TestRecordForfeit(t *testing.T) {
	var (
		rec = memory(t)
		ctx = context.Background()
	)

	bad := &badagent{}
	m, err := match.Play(ctx, strat.MakeCooperator(), bad, 4, rec)
	if err != nil {
		t.Fatal(err)
	}

	got := rec.QueryMatch(ctx, m.Id())
	if got == nil {
		t.Fatal("Forfeited match was not recorded")
	}
	if got.ForfeitA || !got.ForfeitB {
		t.Error("Expected seat B and only seat B to be recorded as forfeited")
	}
	if got.ScoreA != 5*4 || got.ScoreB != 0 {
		t.Errorf("Recorded scores are (%d, %d), expected (20, 0)",
			got.ScoreA, got.ScoreB)
	}
}

func TestStandings(t *testing.T) {
	var (
		rec        = memory(t)
		limit uint = 10
		ctx        = context.Background()
	)

	_, err := match.Play(ctx,
		strat.MakeDefector(), strat.MakeCooperator(),
		limit, rec)
	if err != nil {
		t.Fatal(err)
	}

	all := rec.QueryStandings(ctx)
	if len(all) != 2 {
		t.Fatalf("Standings list %d players, expected 2", len(all))
	}
	if all[0].Name != "defector" || all[0].Score != 5*limit {
		t.Errorf("First standing is %q with %d points",
			all[0].Name, all[0].Score)
	}
	if all[1].Name != "cooperator" || all[1].Score != 0 {
		t.Errorf("Second standing is %q with %d points",
			all[1].Name, all[1].Score)
	}
}

// badagent makes an illegal move on its first round.
type badagent struct{}

func (*badagent) Spawn() (ipd.Strategy, error) { return badstrat{}, nil }
func (*badagent) User() *ipd.User              { return &ipd.User{Name: "bad"} }

type badstrat struct{}

func (badstrat) Resume(context.Context, *ipd.Move) (ipd.Move, error) {
	return ipd.Move(42), nil
}
