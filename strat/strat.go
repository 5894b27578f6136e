// Built-in Strategies
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
	"fmt"
	"math/rand"

	"go-ipd"
)

// An agent pairs roster metadata with a stateless spawn function.
type agent struct {
	user  ipd.User
	spawn func() ipd.Strategy
}

func (a *agent) Spawn() (ipd.Strategy, error) { return a.spawn(), nil }
func (a *agent) User() *ipd.User              { return &a.user }
func (a *agent) String() string               { return a.user.Name }

// resumefn adapts a plain function into a Strategy.
type resumefn func(last *ipd.Move) ipd.Move

func (f resumefn) Resume(_ context.Context, last *ipd.Move) (ipd.Move, error) {
	return f(last), nil
}

// MakeCooperator returns an agent that always cooperates.
func MakeCooperator() ipd.Agent {
	return &agent{
		user: ipd.User{
			Name:  "cooperator",
			Descr: "Cooperates unconditionally",
		},
		spawn: func() ipd.Strategy {
			return resumefn(func(*ipd.Move) ipd.Move {
				return ipd.Cooperate
			})
		},
	}
}

// MakeDefector returns an agent that always defects.
func MakeDefector() ipd.Agent {
	return &agent{
		user: ipd.User{
			Name:  "defector",
			Descr: "Defects unconditionally",
		},
		spawn: func() ipd.Strategy {
			return resumefn(func(*ipd.Move) ipd.Move {
				return ipd.Defect
			})
		},
	}
}

// MakeTitForTat returns an agent that opens cooperatively and then
// mirrors whatever the opponent did last round.
func MakeTitForTat() ipd.Agent {
	return &agent{
		user: ipd.User{
			Name:  "tit-for-tat",
			Descr: "Cooperates first, then repeats the opponent's last move",
		},
		spawn: func() ipd.Strategy {
			return resumefn(func(last *ipd.Move) ipd.Move {
				if last == nil {
					return ipd.Cooperate
				}
				return *last
			})
		},
	}
}

// MakeGrudger returns an agent that cooperates until the opponent
// defects once, and defects forever after.
func MakeGrudger() ipd.Agent {
	return &agent{
		user: ipd.User{
			Name:  "grudger",
			Descr: "Cooperates until betrayed once, then defects forever",
		},
		spawn: func() ipd.Strategy {
			var betrayed bool
			return resumefn(func(last *ipd.Move) ipd.Move {
				if last != nil && *last == ipd.Defect {
					betrayed = true
				}
				if betrayed {
					return ipd.Defect
				}
				return ipd.Cooperate
			})
		},
	}
}

// MakeRandom returns an agent that flips a coin every round.
func MakeRandom() ipd.Agent {
	return &agent{
		user: ipd.User{
			Name:  "random",
			Descr: "Plays an unbiased coin flip every round",
		},
		spawn: func() ipd.Strategy {
			return resumefn(func(*ipd.Move) ipd.Move {
				if rand.Intn(2) == 0 {
					return ipd.Cooperate
				}
				return ipd.Defect
			})
		},
	}
}

// MakePavlov returns an agent playing win-stay, lose-shift: it
// repeats its previous move after a good round (reward or
// temptation) and switches after a bad one.
func MakePavlov() ipd.Agent {
	return &agent{
		user: ipd.User{
			Name:  "pavlov",
			Descr: "Win-stay, lose-shift",
		},
		spawn: func() ipd.Strategy {
			mine := ipd.Cooperate
			return resumefn(func(last *ipd.Move) ipd.Move {
				if last == nil {
					return mine
				}
				// A round went well iff the opponent
				// cooperated; otherwise switch.
				if *last == ipd.Defect {
					if mine == ipd.Cooperate {
						mine = ipd.Defect
					} else {
						mine = ipd.Cooperate
					}
				}
				return mine
			})
		},
	}
}

var registry = map[string]func() ipd.Agent{
	"cooperator":  MakeCooperator,
	"defector":    MakeDefector,
	"tit-for-tat": MakeTitForTat,
	"grudger":     MakeGrudger,
	"random":      MakeRandom,
	"pavlov":      MakePavlov,
}

// Lookup resolves a strategy name from the registry.
func Lookup(name string) (ipd.Agent, error) {
	make, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
	return make(), nil
}

// All returns one agent per registered strategy.
func All() []ipd.Agent {
	all := []ipd.Agent{
		MakeCooperator(),
		MakeDefector(),
		MakeTitForTat(),
		MakeGrudger(),
		MakeRandom(),
		MakePavlov(),
	}
	return all
}
