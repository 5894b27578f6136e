// Round Robin Scheduler
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
	"log"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"go-ipd"
	"go-ipd/cmd"
	"go-ipd/match"
)

// Run plays every match of the tournament to completion, workers
// matches at a time (one per CPU if workers is not positive).
// Distinct matches share no state, so the only coordination needed
// is the work queue itself.  The match order is shuffled so that no
// player has all its matches scheduled back to back.  A positive
// timeout bounds each round-advance; a strategy that overruns it
// forfeits.
func (t *Tournament) Run(ctx context.Context, workers int, timeout time.Duration) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	matches := t.Matches()
	rand.Shuffle(len(matches), func(i, j int) {
		matches[i], matches[j] = matches[j], matches[i]
	})
	queue := make(chan *match.Match, len(matches))
	for _, m := range matches {
		queue <- m
	}
	close(queue)
	ipd.Debug.Println("Starting round robin with", len(matches), "matches")

	var (
		wait sync.WaitGroup
		lock sync.Mutex
		done uint
	)
	wait.Add(len(matches))
	for i := 0; i < workers; i++ {
		go func() {
			for m := range queue {
				if err := play(ctx, m, timeout); err != nil {
					log.Print(err)
				}

				lock.Lock()
				done++
				sa, sb := m.Scores()
				log.Printf("%d/%d (%s) -> %d-%d",
					done, len(matches), m, sa, sb)
				lock.Unlock()

				wait.Done()
			}
		}()
	}

	wait.Wait()
	ipd.Debug.Println("Completed round robin")
	return ctx.Err()
}

// play drives one match to completion, bounding every round-advance
// by the deadline if one is configured.
func play(ctx context.Context, m *match.Match, timeout time.Duration) error {
	if timeout <= 0 {
		return m.Play(ctx)
	}
	for !m.Done() {
		rctx, cancel := context.WithTimeout(ctx, timeout)
		err := m.PlayRound(rctx)
		cancel()
		if errors.Is(err, match.ErrAlreadyDone) {
			break
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// scheduler adapts Run to the manager lifecycle, so the tournament
// CLI can register the round robin next to the database and web
// managers.
type scheduler struct {
	t    *Tournament
	wait sync.WaitGroup
}

func (s *scheduler) String() string { return "Round Robin" }

func (s *scheduler) Start(st *cmd.State, conf *cmd.Conf) {
	s.wait.Add(1)
	defer s.wait.Done()

	err := s.t.Run(st.Context, int(conf.Game.Workers), conf.Game.Timeout)
	if err != nil {
		log.Print(err)
	}

	// The tournament is over, take the process down with it
	st.Kill()
}

func (s *scheduler) Shutdown() {
	s.wait.Wait()
}

// MakeScheduler wraps a tournament into a round robin manager.
func MakeScheduler(t *Tournament) cmd.Manager {
	return &scheduler{t: t}
}
