package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/AndrewKvalheim/little-a-map/internal/logging"
	"github.com/AndrewKvalheim/little-a-map/internal/pipeline"
)

func main() {
	app := &cli.App{
		Name:      "little-a-map",
		Usage:     "render a Minecraft world save's held maps into a static slippy-map website",
		ArgsUsage: "SAVE_DIR OUTPUT_DIR",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "ignore the incremental cache and re-render everything"},
			&cli.BoolFlag{Name: "quiet", Usage: "suppress progress output"},
			&cli.BoolFlag{Name: "v", Usage: "enable verbose (debug) logging"},
		},
		Action: run,
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			return cli.Exit(err, 2)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "little-a-map:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logging.Configure(c.Bool("v"))

	if c.NArg() != 2 {
		return cli.Exit("expected SAVE_DIR and OUTPUT_DIR arguments", 2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := pipeline.Options{
		SaveDir:   c.Args().Get(0),
		OutputDir: c.Args().Get(1),
		Force:     c.Bool("force"),
		Quiet:     c.Bool("quiet"),
	}

	discovery, render, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d map items across %d block regions, %d entity regions, and %d players in %.2fs\n",
		discovery.MapItems, discovery.BlockRegions, discovery.EntityRegions, discovery.Players, discovery.Elapsed.Seconds())
	fmt.Printf("Rendered %d tiles and %d maps and pruned %d tiles and %d maps in %.2fs\n",
		render.TilesRendered, render.MapsRendered, render.TilesPruned, render.MapsPruned, render.Elapsed.Seconds())

	return nil
}
