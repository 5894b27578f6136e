// Configuration
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
	"flag"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"go-ipd"

	"github.com/BurntSushi/toml"
)

const defconf = "go-ipd.toml"

func init() {
	def := &defaultConfig

	flag.UintVar(&def.Game.Rounds, "rounds", def.Game.Rounds,
		"Number of rounds per match")
	flag.DurationVar(&def.Game.Timeout, "timeout", def.Game.Timeout,
		"Per-round deadline for the strategies (0 disables)")
	flag.UintVar(&def.Game.Workers, "workers", def.Game.Workers,
		"Number of matches to play concurrently")

	flag.StringVar(&def.Database.File, "db", def.Database.File,
		"File to use for the match record database")

	flag.BoolVar(&def.Web.Enabled, "www", def.Web.Enabled,
		"Enable the web interface")
	flag.UintVar(&def.Web.Port, "wwwport", def.Web.Port,
		"Port to use for the HTTP server")
	flag.BoolVar(&def.Web.WebSocket, "websocket", def.Web.WebSocket,
		"Enable the live WebSocket event feed")
	flag.StringVar(&def.Web.About, "about", def.Web.About,
		"File to use for the about template")

	flag.BoolVar(&debug, "debug", debug, "Enable debug output")
	flag.BoolVar(&silent, "silent", silent, "Disable verbose output")
	flag.BoolVar(&dump, "dump-config", dump, "Dump configuration to standard output")
	flag.StringVar(&cfile, "conf", cfile, "Path to configuration file")
}

type GameConf struct {
	Rounds  uint          `toml:"rounds"`
	Timeout time.Duration `toml:"timeout"`
	Workers uint          `toml:"workers"`
	Roster  []string      `toml:"roster"`
}

type DatabaseConf struct {
	File string `toml:"file"`
}

type WebConf struct {
	Enabled   bool   `toml:"enabled"`
	Port      uint   `toml:"port"`
	WebSocket bool   `toml:"websocket"`
	About     string `toml:"about,omitempty"`
}

// Internal representation
type Conf struct {
	Game     GameConf     `toml:"game"`
	Database DatabaseConf `toml:"database"`
	Web      WebConf      `toml:"web"`
}

// Configuration object used by default
var defaultConfig = Conf{
	Game: GameConf{
		Rounds:  100,
		Workers: uint(runtime.NumCPU()),
	},
	Database: DatabaseConf{
		// Nothing outlives the process unless requested
		File: ":memory:",
	},
	Web: WebConf{
		Enabled:   true,
		WebSocket: true,
		Port:      8080,
	},
}

var (
	debug  = false
	silent = false
	dump   = false
	cfile  = defconf
)

// Open a configuration file and return it
func LoadConf() *Conf {
	c := defaultConfig
	file, err := os.Open(cfile)
	if err != nil {
		if !os.IsNotExist(err) || cfile != defconf {
			log.Fatal(err)
		}
	} else {
		defer file.Close()
		_, err := toml.NewDecoder(file).Decode(&c)
		if err != nil {
			log.Print(err)
			c = defaultConfig
		}
	}

	switch {
	case debug:
		ipd.Debug.SetOutput(os.Stderr)
		log.Default().SetFlags(log.LstdFlags | log.Lshortfile)
		ipd.Debug.Println("Debug logging has been enabled")
	case silent:
		log.Default().SetOutput(io.Discard)
	}

	// Dump the configuration onto the disk if requested
	if dump {
		err = c.Dump(os.Stdout)
		if err != nil {
			log.Fatalln("Failed to dump default configuration:", err)
		}
		os.Exit(0)
	}

	return &c
}

// Serialise the configuration into a writer
func (c *Conf) Dump(wr io.Writer) error {
	return toml.NewEncoder(wr).Encode(c)
}
