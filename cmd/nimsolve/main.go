// Command nimsolve computes the Sprague-Grundy nimber of the initial
// position of a Chomp, Cram or Grundy's-game board, using one of the
// solver's recursion strategies.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/beling/impartial-games/internal/cache"
	"github.com/beling/impartial-games/internal/config"
	"github.com/beling/impartial-games/internal/game/chomp"
	"github.com/beling/impartial-games/internal/game/cram"
	"github.com/beling/impartial-games/internal/game/grundy"
	"github.com/beling/impartial-games/internal/obslog"
	"github.com/beling/impartial-games/internal/solver"
)

// openRegistry opens the artifact registry a run's config names, if any.
// A run with no registry_path set keeps no record of what it computed.
func openRegistry(cfg config.Config) (*cache.Registry, error) {
	if cfg.RegistryPath == "" {
		return nil, nil
	}
	return cache.OpenRegistry(cfg.RegistryPath)
}

func main() {
	app := &cli.App{
		Name:  "nimsolve",
		Usage: "compute the Sprague-Grundy nimber of a Chomp, Cram or Grundy's game position",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "game", Value: "chomp", Usage: "chomp, cram or grundy"},
			&cli.IntFlag{Name: "rows", Value: 3},
			&cli.IntFlag{Name: "cols", Value: 3},
			&cli.IntFlag{Name: "heap", Value: 7, Usage: "starting heap size, for -game grundy"},
			&cli.StringFlag{Name: "method", Value: string(config.MethodLVB), Usage: "def, lvb, br or br-aspset"},
			&cli.StringFlag{Name: "config", Usage: "path to a TOML config file overriding defaults"},
			&cli.BoolFlag{Name: "verbose", Usage: "log to stderr in development format"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.IsSet("method") {
		cfg.Method = config.Method(c.String("method"))
	}

	logger, err := buildLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}

	registry, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	if registry != nil {
		defer registry.Close()
	}

	gameName := c.String("game")
	start := time.Now()
	nimber, err := solveGame(gameName, c, cfg, logger)
	if err != nil {
		return err
	}
	fmt.Printf("nimber = %d\n", nimber)

	if registry != nil {
		artifact := fmt.Sprintf("%s-%s", gameName, cfg.Method)
		if err := registry.Record(artifact, cache.ArtifactInfo{BuiltAt: start}); err != nil {
			logger.Warn("could not record registry artifact", zap.Error(err))
		}
	}
	return nil
}

func buildLogger(verbose bool) (obslog.Logger, error) {
	if !verbose {
		return obslog.NulLogger{}, nil
	}
	return obslog.NewDevelopment()
}

func solveGame(gameName string, c *cli.Context, cfg config.Config, logger obslog.Logger) (uint8, error) {
	start := time.Now()
	logger.BeginSearch(gameName, string(cfg.Method))
	var nimber uint8
	switch gameName {
	case "chomp":
		g := chomp.New(uint8(c.Int("cols")), uint8(c.Int("rows")))
		s := solver.NewSimple[uint64](g, cache.NewMapCache[uint64](), nil, nil, nil)
		nimber = solveSimple(s, cfg.Method)
	case "cram":
		g := cram.New(uint8(c.Int("cols")), uint8(c.Int("rows")))
		s := solver.NewSimple[cram.Bitboard](g, cache.NewMapCache[cram.Bitboard](), nil, nil, nil)
		nimber = solveSimple(s, cfg.Method)
	case "grundy":
		g := grundy.New(uint16(c.Int("heap")))
		s := solver.NewDecomposable[uint16, grundy.DecomposablePosition](g, cache.NewMapCache[uint16](), nil, nil, nil)
		nimber = solveDecomposable(s, cfg.Method)
	default:
		return 0, fmt.Errorf("nimsolve: unknown game %q (want chomp, cram or grundy)", gameName)
	}
	logger.EndSearch(nimber, time.Since(start).Seconds())
	return nimber, nil
}

func solveSimple[P comparable](s *solver.Simple[P], method config.Method) uint8 {
	switch method {
	case config.MethodDEF:
		return s.NimberOfInitialDEF()
	case config.MethodBR:
		return s.NimberOfInitialBR()
	case config.MethodBRAsp:
		return s.NimberOfInitialBRAspSet()
	default:
		return s.NimberOfInitialLVB()
	}
}

func solveDecomposable[P comparable, DP any](s *solver.Decomposable[P, DP], method config.Method) uint8 {
	switch method {
	case config.MethodDEF:
		return s.NimberOfInitialDEF()
	case config.MethodBR:
		return s.NimberOfInitialBR()
	case config.MethodBRAsp:
		return s.NimberOfInitialBRAspSet()
	default:
		return s.NimberOfInitialLVB()
	}
}
