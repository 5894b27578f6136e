// Web request handlers
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
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path"
	"strconv"
	"time"

	"go-ipd"

	"github.com/google/uuid"
)

const DB_TIMEOUT = 20 * time.Second // arbitrary choice

// Custom template functions
var funcs = template.FuncMap{
	"inc": func(i int) int {
		return i + 1
	},
	"dec": func(i int) int {
		return i - 1
	},
	"timefmt": func(t time.Time) string {
		s := time.Since(t).Round(time.Second)
		switch {
		case s < time.Second*5:
			return "now"
		case s < time.Minute:
			return fmt.Sprintf("%.0fs ago", s.Seconds())
		default:
			return t.Format(time.Stamp)
		}
	},
	"now": func() string {
		return time.Now().Format(time.RFC3339)
	},
	"result": func(m *ipd.MatchRecord) template.HTML {
		var msg string
		switch {
		case m.ForfeitA && m.ForfeitB:
			msg = `<span class="forfeit">Double forfeit</span>`
		case m.ForfeitA:
			msg = fmt.Sprintf(`<span class="forfeit">%s forfeited</span>`,
				template.HTMLEscapeString(m.A))
		case m.ForfeitB:
			msg = fmt.Sprintf(`<span class="forfeit">%s forfeited</span>`,
				template.HTMLEscapeString(m.B))
		case !m.Done:
			msg = "Ongoing"
		case m.ScoreA > m.ScoreB:
			msg = fmt.Sprintf("%s won", template.HTMLEscapeString(m.A))
		case m.ScoreB > m.ScoreA:
			msg = fmt.Sprintf("%s won", template.HTMLEscapeString(m.B))
		default:
			msg = "Draw"
		}
		return template.HTML(msg)
	},
}

// Generate the standings page
func (s *web) index(w http.ResponseWriter, r *http.Request) {
	bg := context.Background()
	ctx, cancel := context.WithTimeout(bg, DB_TIMEOUT)
	defer cancel()

	w.Header().Add("Content-Type", "text/html")
	w.Header().Add("Cache-Control", "max-age=10")
	err := tmpl.ExecuteTemplate(w, "index.tmpl", struct {
		Standings []*ipd.Standing
	}{s.st.Database.QueryStandings(ctx)})
	if err != nil {
		log.Print(err)
	}
}

// Generate the about page
func (s *web) about(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "text/html")
	tmpl.ExecuteTemplate(w, "header.tmpl", nil)
	tmpl.ExecuteTemplate(w, "about.tmpl", struct{}{})
	tmpl.ExecuteTemplate(w, "footer.tmpl", nil)
}

// Generate a website to display the match list
func (s *web) showMatches(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}

	bg := context.Background()
	ctx, cancel := context.WithTimeout(bg, DB_TIMEOUT)
	defer cancel()

	c := make(chan *ipd.MatchRecord)
	go s.st.Database.QueryMatches(ctx, c, page-1)

	w.Header().Add("Content-Type", "text/html")
	err = tmpl.ExecuteTemplate(w, "list-matches.tmpl", struct {
		Matches chan *ipd.MatchRecord
		Page    int
	}{c, page})
	if err != nil {
		log.Print(err)
	}
}

// Generate a website to display a single match
func (s *web) showMatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(path.Base(r.URL.Path))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	bg := context.Background()
	ctx, cancel := context.WithTimeout(bg, DB_TIMEOUT)
	defer cancel()

	rec := s.st.Database.QueryMatch(ctx, id)
	if rec == nil {
		msg := fmt.Sprintf("No match found with the id %q", id)
		http.Error(w, msg, http.StatusNotFound)
		return
	}

	mc := make(chan *ipd.MoveRecord, 4) // arbitrary
	go s.st.Database.QueryMoves(ctx, id, mc)

	w.Header().Add("Content-Type", "text/html")
	err = tmpl.ExecuteTemplate(w, "show-match.tmpl", struct {
		Match *ipd.MatchRecord
		Moves chan *ipd.MoveRecord
	}{rec, mc})
	if err != nil {
		log.Print(err)
	}
}
