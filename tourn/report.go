// Tournament Report
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
	"fmt"
	"io"
	"sort"

	"go-ipd"
)

// PrintResults writes a result report in troff with ms macros, ready
// to be piped through groff.
func (t *Tournament) PrintResults(w io.Writer) {
	fmt.Fprintln(w, `.TL`)
	fmt.Fprintln(w, `Iterated Prisoner's Dilemma Tournament`)
	fmt.Fprintln(w, `.NH 1`)
	fmt.Fprintln(w, `Standings`)
	if t.Size() == 0 {
		fmt.Fprintln(w, `.LP`)
		fmt.Fprintln(w, `No games took place.`)
		return
	}
	fmt.Fprintln(w, `.LP`)
	fmt.Fprintf(w, "%d players, %d matches of %d rounds each.\n",
		t.Size(), len(t.Matches()), t.limit)

	// Order players by their total score
	order := make([]int, t.Size())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, _ := t.Score(order[a])
		sb, _ := t.Score(order[b])
		return sa > sb
	})

	fmt.Fprintln(w, `.TS`)
	fmt.Fprintln(w, `tab(/) box center;`)
	fmt.Fprintln(w, `c | c c`)
	fmt.Fprintln(w, `---`)
	fmt.Fprintln(w, `l | n n`)
	fmt.Fprintln(w, `.`)
	fmt.Fprintln(w, `Player/Matches/Score`)

	for _, i := range order {
		score, _ := t.Score(i)
		fmt.Fprintf(w, "%s/%d/%d\n",
			t.Player(i), t.Size()-1, score)
	}
	fmt.Fprintln(w, `.TE`)

	fmt.Fprintln(w, `.NH 1`)
	fmt.Fprintln(w, "Match Log")

	fmt.Fprintln(w, `.TS H`)
	fmt.Fprintln(w, `tab(/) box center;`)
	fmt.Fprintln(w, `c | c c | c c c`)
	fmt.Fprintln(w, `------`)
	fmt.Fprintln(w, `n | l l | n n l`)
	fmt.Fprintln(w, `.`)
	fmt.Fprintln(w, `.TH`)
	fmt.Fprintln(w, `Nr./Seat A/Seat B/A/B/Note`)

	for i, m := range t.Matches() {
		var note string
		switch {
		case m.Forfeited(ipd.SideA) && m.Forfeited(ipd.SideB):
			note = "double forfeit"
		case m.Forfeited(ipd.SideA):
			note = "A forfeited"
		case m.Forfeited(ipd.SideB):
			note = "B forfeited"
		case !m.Done():
			note = "unfinished"
		}
		sa, sb := m.Scores()
		fmt.Fprintf(w, "%d/%s/%s/%d/%d/%s\n", i+1,
			m.Player(ipd.SideA), m.Player(ipd.SideB),
			sa, sb, note)
	}
	fmt.Fprintln(w, `.TE`)
}
