package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/marben/live_mandel/present"
	"github.com/marben/live_mandel/render"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [file]",
	Short: "render one frame to a png, jpeg, bmp or tiff file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd, false)
		if err != nil {
			return err
		}
		path := "mandel.png"
		if len(args) == 1 {
			path = args[0]
		}

		pool := render.NewPool(cfg.Workers)
		defer pool.Close()

		start := time.Now()
		f := newCompositor(cfg, pool).Render(cfg.Viewport(), cfg.Dims(), cfg.MaxIter)
		elapsed := time.Since(start)
		if err := present.Save(path, f); err != nil {
			return err
		}
		logger.Info("snapshot saved", "path", path, "width", f.Width, "height", f.Height, "render", elapsed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}
