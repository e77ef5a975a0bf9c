package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/marben/live_mandel/config"
	"github.com/marben/live_mandel/render"
)

var benchFrames int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "time frame renders against the fps budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd, false)
		if err != nil {
			return err
		}
		bench(cmd.OutOrStdout(), cfg, benchFrames)
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVarP(&benchFrames, "frames", "n", 20, "frames to render")
	rootCmd.AddCommand(benchCmd)
}

type benchResult struct {
	frames         int
	mean, min, max time.Duration
	budget         time.Duration
}

func (r benchResult) withinBudget() bool {
	return r.mean <= r.budget
}

// bench renders frames frames of the configured view and reports timings to w.
func bench(w io.Writer, cfg config.Config, frames int) benchResult {
	if frames < 1 {
		frames = 1
	}
	pool := render.NewPool(cfg.Workers)
	defer pool.Close()
	comp := newCompositor(cfg, pool)
	v, d := cfg.Viewport(), cfg.Dims()

	res := benchResult{frames: frames, budget: time.Second / time.Duration(cfg.FPS)}
	var total time.Duration
	for i := 0; i < frames; i++ {
		start := time.Now()
		comp.Render(v, d, cfg.MaxIter)
		el := time.Since(start)
		total += el
		if i == 0 || el < res.min {
			res.min = el
		}
		res.max = max(res.max, el)
	}
	res.mean = total / time.Duration(frames)

	verdict := "within"
	if !res.withinBudget() {
		verdict = "over"
	}
	fmt.Fprintf(w, "%dx%d max_iter=%d workers=%d frames=%d\n", d.Width, d.Height, cfg.MaxIter, pool.Workers(), frames)
	fmt.Fprintf(w, "mean %v  min %v  max %v\n", res.mean, res.min, res.max)
	fmt.Fprintf(w, "%s the %v budget for %d fps\n", verdict, res.budget, cfg.FPS)
	return res
}
