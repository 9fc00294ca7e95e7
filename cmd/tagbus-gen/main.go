// Command tagbus-gen expands //tagbus: directives into tag sets, unions,
// message categories and the Master aggregate.
//
// Directives are line comments in any Go file of the package:
//
//	//tagbus:set A Y Z
//	//tagbus:union AB A B
//	//tagbus:message MyMessage MyMessageEnum A B
//	//tagbus:master Master
//
// A union or message may only reference sets and unions declared above it.
// The master aggregates every message of the file. The output for foo.go is
// written to foo.tagbus.go next to it.
package main

import (
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
)

const generatedSuffix = ".tagbus.go"

var (
	log    zerolog.Logger
	osExit = os.Exit
)

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	log = zerolog.New(output).With().Timestamp().Logger()

	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: slog.LevelInfo}),
	))
}

func main() {
	path := flag.String("path", ".", "Go file or directory to process")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	err := filepath.WalkDir(*path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Error().Err(err).Str("path", p).Msg("Error accessing path")
			return err
		}
		if d.IsDir() || !isSource(p) {
			return nil
		}
		return processGoFile(p)
	})
	if err != nil {
		osExit(1)
	}
}

func isSource(path string) bool {
	return strings.HasSuffix(path, ".go") &&
		!strings.HasSuffix(path, "_test.go") &&
		!strings.HasSuffix(path, generatedSuffix)
}

func outputPath(path string) string {
	return strings.TrimSuffix(path, ".go") + generatedSuffix
}
