package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/common"
	"github.com/spf13/cobra"
)

type options struct {
	debug     bool
	prefabDir string
	watch     bool
	tps       int
	physicsHz int
	trace     string
}

func main() {
	opts := options{}

	rootCmd := &cobra.Command{
		Use:   "topdown",
		Short: "top-down movement sandbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "draw the debug overlay")
	rootCmd.Flags().StringVar(&opts.prefabDir, "prefabs", "prefabs", "directory checked for prefab overrides before the embedded copies")
	rootCmd.Flags().BoolVar(&opts.watch, "watch", false, "reload player movement settings when prefab files change")
	rootCmd.Flags().IntVar(&opts.tps, "tps", common.DefaultTPS, "game ticks per second")
	rootCmd.Flags().IntVar(&opts.physicsHz, "physics-hz", common.DefaultPhysicsHz, "fixed physics steps per second")
	rootCmd.Flags().StringVar(&opts.trace, "trace", "", "write a per-step movement trace to this CSV file")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	game, err := NewGame(opts)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetTPS(game.tps)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("topdown")

	return ebiten.RunGame(game)
}
