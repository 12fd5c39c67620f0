// Command history exports and imports the QR history database.
//
//	history export [-o file]
//	history import file
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"solpay/internal/config"
	"solpay/internal/logger"
	"solpay/internal/repositories"
	"solpay/internal/services/history"
)

const (
	exitOK = iota
	exitFailure
	exitUsage
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	os.Exit(run(context.Background(), cfg, log, os.Args[1:], os.Stdin, os.Stdout))
}

// run executes one sub-command and returns the process exit code. The
// database is closed before it returns on every path.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, args []string, stdin io.Reader, stdout io.Writer) int {
	if len(args) < 1 || (args[0] != "export" && args[0] != "import") {
		return usage()
	}
	if args[0] == "import" && len(args) < 2 {
		return usage()
	}

	db, err := repositories.OpenHistoryDB(cfg.HistoryDriver, cfg.HistoryDSN)
	if err != nil {
		log.Error().Err(err).Msg("failed to open history database")
		return exitFailure
	}
	defer func() {
		if err := repositories.CloseDB(db); err != nil {
			log.Warn().Err(err).Msg("failed to close history database")
		}
	}()

	svc := history.NewService(repositories.NewHistoryRepository(db), nil, log)

	switch args[0] {
	case "export":
		fs := flag.NewFlagSet("export", flag.ContinueOnError)
		out := fs.String("o", "", "write to file instead of stdout")
		if err := fs.Parse(args[1:]); err != nil {
			return exitUsage
		}

		data, err := svc.Export(ctx)
		if err != nil {
			log.Error().Err(err).Msg("export failed")
			return exitFailure
		}
		if *out == "" {
			_, _ = stdout.Write(append(data, '\n'))
			return exitOK
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			log.Error().Err(err).Str("file", *out).Msg("failed to write export")
			return exitFailure
		}
		log.Info().Str("file", *out).Msg("history exported")

	case "import":
		data, err := readInput(args[1], stdin)
		if err != nil {
			log.Error().Err(err).Msg("failed to read import")
			return exitFailure
		}
		res, err := svc.Import(ctx, data)
		if err != nil {
			log.Error().Err(err).Msg("import failed")
			return exitFailure
		}
		fmt.Fprintf(stdout, "imported %d, skipped %d\n", res.Imported, res.Errors)
	}
	return exitOK
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func usage() int {
	fmt.Fprintln(os.Stderr, "usage: history export [-o file] | history import <file|->")
	return exitUsage
}
