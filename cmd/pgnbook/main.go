// Command pgnbook ingests PGN archives into PolyGlot opening books and
// probes them back out, mirroring the "book" and "find" verbs of the
// reference command-line tool this package is modeled on.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "book":
		err = runBook(os.Args[2:], log)
	case "find":
		err = runFind(os.Args[2:], log)
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pgnbook book <pgn-path> [full]")
	fmt.Fprintln(os.Stderr, "       pgnbook find <book-path> [limit N] [skip N] [--config file] [--verify pgn-path] <fen...>")
}
