// Match record database
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

package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"io/fs"
	"log"
	"path"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-ipd"
	"go-ipd/cmd"

	"github.com/google/uuid"
)

//go:embed *.sql
var sql_dir embed.FS

// The recorder keeps every match and move of the current run in
// sqlite, which the web interface reads back out.  It listens on the
// engine event side channel; by default the database lives in
// memory, so the record dies with the process.
type db struct {
	// The database connections
	read  *sql.DB
	write *sql.DB

	// The SQL queries are stored in *.sql files, and they are
	// loaded by the database manager.  QUERIES are the commands
	// handled by READ, and COMMANDS are the queries handled by
	// WRITE.
	queries  map[string]*sql.Stmt
	commands map[string]*sql.Stmt
}

// Observer interface

func (db *db) MatchStarted(id uuid.UUID, a, b *ipd.User, limit uint) {
	_, err := db.commands["insert-match"].Exec(
		id.String(), a.String(), b.String(), limit)
	if err != nil {
		log.Print(err)
	}
}

func (db *db) RoundStarted(id uuid.UUID, round uint) {}

func (db *db) MoveMade(id uuid.UUID, round uint, side ipd.Side, move ipd.Move, delta uint) {
	_, err := db.commands["insert-move"].Exec(
		id.String(), round, side == ipd.SideB, move, delta)
	if err != nil {
		log.Print(err)
	}

	var da, dbb uint
	if side == ipd.SideA {
		da = delta
	} else {
		dbb = delta
	}
	_, err = db.commands["update-scores"].Exec(round+1, da, dbb, id.String())
	if err != nil {
		log.Print(err)
	}
}

func (db *db) Forfeited(id uuid.UUID, round uint, side ipd.Side, reason error) {
	stmt := "update-forfeit-a"
	if side == ipd.SideB {
		stmt = "update-forfeit-b"
	}
	_, err := db.commands[stmt].Exec(id.String())
	if err != nil {
		log.Print(err)
	}
}

func (db *db) MatchEnded(id uuid.UUID, round uint, scoreA, scoreB uint) {
	_, err := db.commands["update-done"].Exec(
		round, scoreA, scoreB, id.String())
	if err != nil {
		log.Print(err)
	}
}

// Query interface

func (db *db) scanMatch(scan func(dest ...interface{}) error) (*ipd.MatchRecord, error) {
	var (
		rec     ipd.MatchRecord
		id      string
		started int64
	)
	err := scan(&id, &rec.A, &rec.B, &rec.Limit, &rec.Round,
		&rec.ScoreA, &rec.ScoreB, &rec.Done,
		&rec.ForfeitA, &rec.ForfeitB, &started)
	if err != nil {
		return nil, err
	}
	rec.Id, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	rec.Start = time.Unix(started, 0)
	return &rec, nil
}

func (db *db) QueryMatches(ctx context.Context, c chan<- *ipd.MatchRecord, page int) {
	defer close(c)
	if page < 0 {
		page = 0
	}

	rows, err := db.queries["select-matches"].QueryContext(ctx, page*50)
	if err != nil {
		log.Print(err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := db.scanMatch(rows.Scan)
		if err != nil {
			log.Print(err)
			return
		}
		select {
		case c <- rec:
		case <-ctx.Done():
			return
		}
	}
	if err = rows.Err(); err != nil {
		log.Print(err)
	}
}

func (db *db) QueryMatch(ctx context.Context, id uuid.UUID) *ipd.MatchRecord {
	row := db.queries["select-match"].QueryRowContext(ctx, id.String())
	rec, err := db.scanMatch(row.Scan)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Print(err)
		}
		return nil
	}
	return rec
}

func (db *db) QueryMoves(ctx context.Context, id uuid.UUID, c chan<- *ipd.MoveRecord) {
	defer close(c)

	rows, err := db.queries["select-moves"].QueryContext(ctx, id.String())
	if err != nil {
		log.Print(err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec    ipd.MoveRecord
			second bool
			played int64
		)
		err = rows.Scan(&rec.Round, &second, &rec.Move, &rec.Delta, &played)
		if err != nil {
			log.Print(err)
			return
		}
		rec.Match = id
		rec.Side = ipd.Side(second)
		rec.Stamp = time.Unix(played, 0)
		select {
		case c <- &rec:
		case <-ctx.Done():
			return
		}
	}
	if err = rows.Err(); err != nil {
		log.Print(err)
	}
}

func (db *db) QueryStandings(ctx context.Context) []*ipd.Standing {
	rows, err := db.queries["select-standings"].QueryContext(ctx)
	if err != nil {
		log.Print(err)
		return nil
	}
	defer rows.Close()

	var all []*ipd.Standing
	for rows.Next() {
		var s ipd.Standing
		if err = rows.Scan(&s.Name, &s.Matches, &s.Score); err != nil {
			log.Print(err)
			return nil
		}
		all = append(all, &s)
	}
	if err = rows.Err(); err != nil {
		log.Print(err)
	}
	return all
}

// Manager interface

func (db *db) Start(st *cmd.State, conf *cmd.Conf) {
	tick := time.NewTicker(6 * time.Hour)
	defer tick.Stop()
	for {
		select {
		case <-st.Context.Done():
			return
		case <-tick.C:
			// https://www.sqlite.org/pragma.html#pragma_optimize
			if _, err := db.write.Exec("PRAGMA optimize;"); err != nil {
				log.Print(err)
			}
		}
	}
}

func (db *db) Shutdown() {
	var err error

	// https://www.sqlite.org/pragma.html#pragma_optimize
	_, err = db.write.Exec("PRAGMA optimize;")
	if err != nil {
		log.Print(err)
	}

	err = db.write.Close()
	if err != nil {
		log.Print(err)
	}

	err = db.read.Close()
	if err != nil {
		log.Print(err)
	}
}

func (*db) String() string { return "Database Manager" }

// open prepares both connections and loads the statement files.
func open(file string) (*db, error) {
	if file == ":memory:" {
		// Both connections have to see the same in-memory
		// database, but independent opens must not collide
		file = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	}

	read, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	read.SetConnMaxLifetime(0)
	read.SetMaxIdleConns(1)

	write, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	write.SetConnMaxLifetime(0)
	write.SetMaxIdleConns(1)
	write.SetMaxOpenConns(1)

	db := &db{
		queries:  make(map[string]*sql.Stmt),
		commands: make(map[string]*sql.Stmt),
		write:    write,
		read:     read,
	}

	for _, pragma := range []string{
		// https://www.sqlite.org/pragma.html#pragma_journal_mode
		"journal_mode = WAL",
		// https://www.sqlite.org/pragma.html#pragma_synchronous
		"synchronous = normal",
		// https://www.sqlite.org/pragma.html#pragma_foreign_keys
		"foreign_keys = on",
	} {
		ipd.Debug.Printf("Run PRAGMA %v", pragma)
		_, err = db.write.Exec("PRAGMA " + pragma + ";")
		if err != nil {
			return nil, err
		}
	}

	entries, err := sql_dir.ReadDir(".")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		base := path.Base(entry.Name())
		data, err := fs.ReadFile(sql_dir, entry.Name())
		if err != nil {
			return nil, err
		}

		name := strings.TrimSuffix(base, ".sql")
		switch {
		case strings.HasPrefix(base, "create-"):
			_, err = db.write.Exec(string(data))
			ipd.Debug.Printf("Executed query %v", base)
		case strings.HasPrefix(base, "select-"):
			db.queries[name], err = db.read.Prepare(string(data))
			ipd.Debug.Printf("Registered query %v", name)
		default:
			db.commands[name], err = db.write.Prepare(string(data))
			ipd.Debug.Printf("Registered command %v", name)
		}
		if err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Register initialises the database manager and returns the observer
// end the engine reports into.
func Register(st *cmd.State, conf *cmd.Conf) ipd.Observer {
	db, err := open(conf.Database.File)
	if err != nil {
		log.Fatal(err, ": ", conf.Database.File)
	}
	st.Register(db)
	return db
}
