// Recorded engine history
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

import (
	"time"

	"github.com/google/uuid"
)

// A MatchRecord is the recorded view of one match, as stored by the
// recorder and served by the web interface.
type MatchRecord struct {
	Id       uuid.UUID
	A, B     string
	Limit    uint
	Round    uint
	ScoreA   uint
	ScoreB   uint
	Done     bool
	ForfeitA bool
	ForfeitB bool
	Start    time.Time
}

// A MoveRecord is one recorded move of one seat in one round.
type MoveRecord struct {
	Match uuid.UUID
	Round uint
	Side  Side
	Move  Move
	Delta uint
	Stamp time.Time
}

// A Standing is the recorded total of one player across all its
// matches.
type Standing struct {
	Name    string
	Matches uint
	Score   uint
}
