// Command h1dump reads raw HTTP/1.x requests from files or stdin and prints either every
// parse event as a JSON line, or the requests themselves with normalized framing.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/indigo-web/reqstream/config"
	"go.uber.org/zap"
)

func main() {
	var (
		pieceSize = flag.Int("piece", 4096, "size of the pieces the input is fed by")
		maxURL    = flag.Int("max-url", 0, "max URL length, 0 keeps the default")
		maxField  = flag.Int("max-field", 0, "max header field/value length, 0 keeps the default")
		maxBody   = flag.Uint64("max-body", 0, "max body length, 0 keeps the default")
		format    = flag.String("format", formatJSON, "output format: json or raw")
		verbose   = flag.Bool("v", false, "verbose logging")
	)

	flag.Parse()

	if *pieceSize <= 0 {
		fmt.Fprintln(os.Stderr, "h1dump: piece size must be positive")
		os.Exit(2)
	}

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "h1dump:", err)
		os.Exit(1)
	}

	defer func() {
		_ = log.Sync()
	}()

	cfg := config.Default()
	limits := cfg.Limits()
	if *maxURL > 0 {
		limits.MaxURLSize = *maxURL
	}

	if *maxField > 0 {
		limits.MaxFieldSize = *maxField
	}

	if *maxBody > 0 {
		limits.MaxBodySize = *maxBody
	}

	cfg.SetLimits(limits)

	if flag.NArg() == 0 {
		if dump(os.Stdin, os.Stdout, cfg, *format, *pieceSize, log.Named("stdin")) != nil {
			os.Exit(1)
		}

		return
	}

	var failed bool

	for _, path := range flag.Args() {
		if err = dumpFile(path, cfg, *format, *pieceSize, log.Named(path)); err != nil {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func dumpFile(path string, cfg *config.Config, format string, pieceSize int, log *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		log.Error("cannot open file", zap.Error(err))
		return err
	}

	defer func(file io.Closer) {
		_ = file.Close()
	}(file)

	return dump(file, os.Stdout, cfg, format, pieceSize, log)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
