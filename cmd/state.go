// Shared State
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

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"go-ipd"

	"github.com/google/uuid"
)

// A Manager is a component with a process-long lifecycle.  Start
// blocks for as long as the component is live; Shutdown requests and
// awaits an orderly stop.
type Manager interface {
	fmt.Stringer
	Start(*State, *Conf)
	Shutdown()
}

// A Database records engine history and serves it back.
type Database interface {
	Manager

	QueryMatches(context.Context, chan<- *ipd.MatchRecord, int)
	QueryMatch(context.Context, uuid.UUID) *ipd.MatchRecord
	QueryMoves(context.Context, uuid.UUID, chan<- *ipd.MoveRecord)
	QueryStandings(context.Context) []*ipd.Standing
}

type State struct {
	Context context.Context
	Kill    context.CancelFunc
	Running bool

	Database Database
	Managers []Manager
}

func MakeState() *State {
	ctx, kill := context.WithCancel(context.Background())
	return &State{
		Context: ctx,
		Kill:    kill,
	}
}

func (st *State) Register(m Manager) {
	if st.Running {
		panic(fmt.Sprintf("Late register: %#v", m))
	}

	if db, ok := m.(Database); ok {
		st.Database = db
	}

	st.Managers = append(st.Managers, m)
}

func (st *State) Start(c *Conf) {
	// Start the services
	for _, m := range st.Managers {
		ipd.Debug.Printf("Starting %s", m)
		go m.Start(st, c)
	}
	st.Running = true

	// Catch an interrupt request...
	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	select {
	case <-intr:
		log.Println("Caught interrupt")
	case <-st.Context.Done():
		log.Println("Requested shutdown")
	}

	done := make(chan struct{})
	go func() {
		// ...and request all managers to shut down.
		ipd.Debug.Println("Waiting for managers to shutdown...")
		for i := len(st.Managers) - 1; i >= 0; i-- {
			m := st.Managers[i]
			ipd.Debug.Printf("Shutting %s down", m)
			m.Shutdown()
		}
		done <- struct{}{}
	}()

	select {
	case <-intr:
		log.Println("Forced shutdown")
	case <-done:
		log.Println("Shutting down regularly")
	}
}
