// Command octsolve computes the nimber sequence of an octal game up to a
// given position, using one of Naive, RC or RC2.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/beling/impartial-games/internal/cache"
	"github.com/beling/impartial-games/internal/config"
	"github.com/beling/impartial-games/internal/octal"
)

func main() {
	app := &cli.App{
		Name:      "octsolve",
		Usage:     "compute nimbers of an octal game such as \"0.07\" or \"4.007\"",
		ArgsUsage: "RULESTRING",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "method", Usage: "naive, rc, rc-dynamic, rc2 or rc2-dynamic"},
			&cli.IntFlag{Name: "position", Aliases: []string{"n"}, Value: 10000, Usage: "the last position which nimber should be found"},
			&cli.BoolFlag{Name: "print-nimbers", Aliases: []string{"p"}, Usage: "print every computed nimber"},
			&cli.UintFlag{Name: "rebuild-threshold", Usage: "rebuild threshold for rc-dynamic/rc2-dynamic"},
			&cli.StringFlag{Name: "config", Usage: "path to a TOML config file overriding defaults"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("octsolve: expected exactly one rule string argument, e.g. \"0.07\"")
	}
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	method := string(cfg.Octal.Method)
	if c.IsSet("method") {
		method = c.String("method")
	}
	threshold := cfg.Octal.RebuildThreshold
	if c.IsSet("rebuild-threshold") {
		threshold = uint32(c.Uint("rebuild-threshold"))
	}

	registry, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	if registry != nil {
		defer registry.Close()
	}

	ruleString := c.Args().Get(0)
	game, err := octal.ParseRules(ruleString)
	if err != nil {
		return err
	}

	solver, err := newSolver(game, method, threshold)
	if err != nil {
		return err
	}

	position := c.Int("position")
	printNimbers := c.Bool("print-nimbers")
	if printNimbers {
		fmt.Print("Nimbers:")
	}
	var last uint16
	for i := 0; i <= position; i++ {
		last = solver.Next()
		if printNimbers {
			fmt.Printf(" %d", last)
		}
	}
	if printNimbers {
		fmt.Println()
	}

	checksum := octal.Checksum(solver.Nimbers())
	fmt.Printf("Nimber of %d: %d, checksum: %X\n", position, last, checksum)

	if pre, period, ok := game.Period(solver.Nimbers()); ok {
		fmt.Printf("Period: preperiod=%d period=%d\n", pre, period)
	}

	if registry != nil {
		artifact := fmt.Sprintf("octal-%s-%s", ruleString, method)
		if err := registry.Record(artifact, cache.ArtifactInfo{SizeBytes: int64(len(solver.Nimbers())) * 2, BuiltAt: time.Now()}); err != nil {
			fmt.Fprintf(os.Stderr, "octsolve: could not record registry artifact: %v\n", err)
		}
	}
	return nil
}

// openRegistry opens the artifact registry a run's config names, if any.
func openRegistry(cfg config.Config) (*cache.Registry, error) {
	if cfg.RegistryPath == "" {
		return nil, nil
	}
	return cache.OpenRegistry(cfg.RegistryPath)
}

func newSolver(game *octal.Game, method string, threshold uint32) (octal.Solver, error) {
	switch method {
	case "naive":
		return octal.NewNaiveSolver(game), nil
	case "rc":
		return octal.NewRCSolver(game), nil
	case "rc-dynamic":
		return octal.NewDynamicRCSolver(game, threshold), nil
	case "rc2":
		return octal.NewRC2Solver(game), nil
	case "rc2-dynamic":
		return octal.NewDynamicRC2Solver(game, threshold), nil
	default:
		return nil, fmt.Errorf("octsolve: unknown method %q (want naive, rc, rc-dynamic, rc2 or rc2-dynamic)", method)
	}
}
