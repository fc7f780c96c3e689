package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/govalues/fixed/internal/calc"
	"github.com/govalues/fixed/internal/history"
	"github.com/govalues/fixed/internal/lockstep"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Eval struct {
		Expr []string `arg:"" name:"expr" help:"Expression in prefix notation, such as '* 10 + 1.23 4.56'."`
	} `cmd:"" help:"Evaluate a fixed-point expression."`

	Run struct {
		DB        string   `help:"SQLite database to record digests in and check them against." type:"path"`
		Scenarios []string `arg:"" name:"scenarios" help:"Scenario files to replay." type:"existingfile"`
	} `cmd:"" help:"Replay lockstep scenarios and print their digests."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func evalCommand(expr []string) error {
	d, err := calc.EvaluateTokens(expr)
	if err != nil {
		return err
	}
	fmt.Println(d)
	return nil
}

func runCommand(ctx context.Context, paths []string, dbPath string) (err error) {
	var store *history.Store
	if dbPath != "" {
		store, err = history.Open(dbPath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := store.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %v: %w", dbPath, cerr)
			}
		}()
	}

	failed := 0
	for _, path := range paths {
		s, err := lockstep.Load(path)
		if err != nil {
			return err
		}
		res, err := lockstep.Run(ctx, log.Logger, s)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("scenario failed")
			failed++
			continue
		}
		if store != nil {
			err = store.Check(res)
			if err != nil {
				log.Error().Err(err).Str("path", path).Msg("scenario diverged from history")
				failed++
				continue
			}
			run, err := store.Record(res)
			if err != nil {
				return err
			}
			log.Debug().Uint("run", run.ID).Str("scenario", res.Name).Msg("recorded run")
		}
		fmt.Printf("%s %s\n", res.DigestHex(), res.Name)
	}
	if failed > 0 {
		return fmt.Errorf("%v of %v scenario(s) failed", failed, len(paths))
	}
	return nil
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("fixed"),
		kong.Description("deterministic fixed-point arithmetic"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "eval <expr>":
		err := evalCommand(CLI.Eval.Expr)
		if err != nil {
			writeError(err)
		}
	case "run <scenarios>":
		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := runCommand(sigCtx, CLI.Run.Scenarios, CLI.Run.DB)
		stop()
		if err != nil {
			writeError(err)
		}
	}
}
