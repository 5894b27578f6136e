// Engine telemetry
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

package web

import (
	"go-ipd"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ipd",
		Name:      "matches_started_total",
		Help:      "Number of matches constructed",
	})
	matchesEnded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ipd",
		Name:      "matches_ended_total",
		Help:      "Number of matches that reached their terminal state",
	})
	roundsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ipd",
		Name:      "rounds_total",
		Help:      "Number of round-advances started",
	})
	movesMade = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ipd",
		Name:      "moves_total",
		Help:      "Number of legal moves made, by move",
	}, []string{"move"})
	forfeits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ipd",
		Name:      "forfeits_total",
		Help:      "Number of seats that forfeited a match",
	})
)

// metrics counts engine events for the /metrics endpoint.
type metrics struct{}

func (metrics) MatchStarted(uuid.UUID, *ipd.User, *ipd.User, uint) {
	matchesStarted.Inc()
}

func (metrics) RoundStarted(uuid.UUID, uint) {
	roundsStarted.Inc()
}

func (metrics) MoveMade(_ uuid.UUID, _ uint, _ ipd.Side, move ipd.Move, _ uint) {
	movesMade.WithLabelValues(move.String()).Inc()
}

func (metrics) Forfeited(uuid.UUID, uint, ipd.Side, error) {
	forfeits.Inc()
}

func (metrics) MatchEnded(uuid.UUID, uint, uint, uint) {
	matchesEnded.Inc()
}
