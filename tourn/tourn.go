// Pairwise Tournament Grid
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
	"errors"
	"fmt"

	"go-ipd"
	"go-ipd/match"
)

// An index pair into the match grid was out of range or in the wrong
// order
var ErrBadPair = errors.New("no such pairing")

// A Tournament holds one match per unordered pair of roster entries,
// in a lower-triangular grid: the match of pair {i, j} with j < i is
// stored once, with roster[i] in seat A and roster[j] in seat B.
// All matches are constructed eagerly; the tournament itself holds
// no score state of its own, aggregates are always read from the
// live matches.
type Tournament struct {
	roster []ipd.Agent
	limit  uint
	grid   [][]*match.Match
}

// New eagerly pairs every two distinct roster entries for a match
// over limit rounds.
func New(roster []ipd.Agent, limit uint, obs ipd.Observer) *Tournament {
	t := &Tournament{
		roster: roster,
		limit:  limit,
		grid:   make([][]*match.Match, len(roster)),
	}
	for i := range roster {
		t.grid[i] = make([]*match.Match, i)
		for j := 0; j < i; j++ {
			t.grid[i][j] = match.New(roster[i], roster[j], limit, obs)
		}
	}
	return t
}

// Size returns the number of roster entries.
func (t *Tournament) Size() int { return len(t.roster) }

// Player returns the metadata of roster entry i.
func (t *Tournament) Player(i int) *ipd.User {
	return t.roster[i].User()
}

// Match returns the match of the pair {i, j}.  The triangular
// convention is part of the interface: the pair must be requested
// with the higher index first, 0 <= j < i < Size.
func (t *Tournament) Match(i, j int) (*match.Match, error) {
	if j < 0 || i <= j || i >= len(t.roster) {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrBadPair, i, j)
	}
	return t.grid[i][j], nil
}

// Score sums the score attributable to roster entry i across every
// match it is involved in, reading whatever the matches have
// accumulated so far.
func (t *Tournament) Score(i int) (uint, error) {
	if i < 0 || i >= len(t.roster) {
		return 0, fmt.Errorf("%w: player %d", ErrBadPair, i)
	}

	var sum uint
	for j := 0; j < i; j++ {
		sum += t.grid[i][j].Score(ipd.SideA)
	}
	for k := i + 1; k < len(t.roster); k++ {
		sum += t.grid[k][i].Score(ipd.SideB)
	}
	return sum, nil
}

// Matches returns all matches of the tournament in a flat list.
func (t *Tournament) Matches() []*match.Match {
	var all []*match.Match
	for i := range t.grid {
		all = append(all, t.grid[i]...)
	}
	return all
}
