// Single match driver
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
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go-ipd"
	"go-ipd/match"
	"go-ipd/strat"
)

func main() {
	rounds := flag.Uint("rounds", 100, "Number of rounds to play")
	debug := flag.Bool("debug", false, "Enable debug output")

	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] STRATEGY STRATEGY\n",
			os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *debug {
		ipd.Debug.SetOutput(os.Stderr)
	}
	if *rounds == 0 {
		log.Fatal("Round count must be positive")
	}

	a, err := strat.Lookup(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	b, err := strat.Lookup(flag.Arg(1))
	if err != nil {
		log.Fatal(err)
	}

	m, err := match.Play(context.Background(), a, b, *rounds, ipd.Logger())
	if err != nil {
		log.Fatal(err)
	}

	sa, sb := m.Scores()
	fmt.Printf("%s: %d\n%s: %d\n",
		m.Player(ipd.SideA), sa,
		m.Player(ipd.SideB), sb)
}
