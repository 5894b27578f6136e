// Entry point
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

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path"

	"go-ipd"
	"go-ipd/cmd"
	"go-ipd/db"
	"go-ipd/strat"
	"go-ipd/tourn"
	"go-ipd/web"
)

func main() {
	result := flag.String("result", "", "File to write the result report to")

	flag.Parse()
	if flag.NArg() != 0 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Too many arguments passed to %s.\nUsage:\n",
			os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Create the server state and load configuration
	conf := cmd.LoadConf()
	st := cmd.MakeState()

	// Resolve the roster; an empty configuration pits every
	// built-in strategy against every other
	var roster []ipd.Agent
	if len(conf.Game.Roster) == 0 {
		roster = strat.All()
	} else {
		for _, name := range conf.Game.Roster {
			a, err := strat.Lookup(name)
			if err != nil {
				log.Fatal(err)
			}
			roster = append(roster, a)
		}
	}

	// Load components.  The engine reports into the recorder, the
	// live web feed and the log alike.
	obs := ipd.Observers{
		ipd.Logger(),
		db.Register(st, conf),
		web.Register(st, conf),
	}
	t := tourn.New(roster, conf.Game.Rounds, obs)
	st.Register(tourn.MakeScheduler(t))

	// Prepare the report destination
	var (
		groff *exec.Cmd
		out   io.Writer = os.Stdout
	)
	if *result != "" {
		ipd.Debug.Println("Writing results to", *result)
		file, err := os.Create(*result)
		if err != nil {
			log.Fatal(err)
		}
		defer file.Close()
		out = file

		var dev string
		switch path.Ext(*result) {
		case ".pdf":
			dev = "-Tpdf"
		case ".ps":
			dev = "-Tps"
		case ".html":
			dev = "-Txhtml"
		case ".txt":
			dev = "-Tutf8"
		}
		if dev != "" {
			ipd.Debug.Println("Preparing groff with", dev)
			groff = exec.Command("groff", dev, "-ms", "-t")
			groff.Stdout = file
			out, err = groff.StdinPipe()
			if err != nil {
				log.Fatal(err)
			}
		}
	}

	// Run the tournament
	st.Start(conf)

	// Print results
	if groff != nil {
		groff.Start()
	}
	t.PrintResults(out)
	if groff != nil {
		if c, ok := out.(io.Closer); ok {
			c.Close()
		}
		groff.Wait()
	}
}
