// Web interface manager
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
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"

	"go-ipd"
	"go-ipd/cmd"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const about = `<p>This server hosts an iterated prisoner's dilemma tournament.</p>`

//go:embed static
var static embed.FS

//go:embed *.tmpl
var html embed.FS

// Template manager
var tmpl *template.Template

type web struct {
	conf *cmd.Conf
	st   *cmd.State
	mux  *http.ServeMux
	hub  *hub
}

func (s *web) listen() {
	addr := fmt.Sprintf(":%d", s.conf.Web.Port)
	log.Printf("Listening via HTTP on %s", addr)

	err := http.ListenAndServe(addr, s.mux)
	if err != nil {
		log.Print(err)
	}
}

func (s *web) Start(st *cmd.State, conf *cmd.Conf) {
	s.st = st

	// Prepare HTTP Multiplexer
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/about", s.about)
	s.mux.HandleFunc("/matches", s.showMatches)
	s.mux.HandleFunc("/match/", s.showMatch)
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /")
	})
	s.mux.Handle("/static/", http.FileServer(http.FS(static)))
	s.mux.HandleFunc("/", s.index)

	// Install the WebSocket handler
	if s.conf.Web.WebSocket {
		log.Print("Accepting websocket connections on /socket")
		s.mux.HandleFunc("/socket", s.hub.upgrader())
	}

	// Parse templates
	tmpl = template.Must(template.New("").Funcs(funcs).ParseFS(html, "*.tmpl"))
	var aboutpage string
	if s.conf.Web.About != "" {
		contents, err := os.ReadFile(s.conf.Web.About)
		if err != nil && os.IsNotExist(err) {
			log.Fatal(err)
		}
		aboutpage = string(contents)
	}
	if aboutpage == "" {
		aboutpage = about
	}
	_, err := tmpl.New("about.tmpl").Parse(aboutpage)
	if err != nil {
		log.Fatal(err)
	}

	s.listen()
}

// The web server can shut down immediately
func (*web) Shutdown() {}

func (*web) String() string { return "Web Server" }

// Register initialises the web manager, if enabled, and returns the
// observer end feeding the live socket and the metrics.
func Register(st *cmd.State, conf *cmd.Conf) ipd.Observer {
	if !conf.Web.Enabled {
		return ipd.Silent{}
	}

	w := &web{conf: conf, hub: makeHub()}
	st.Register(w)
	return ipd.Observers{w.hub, metrics{}}
}
