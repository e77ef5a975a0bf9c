package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	mandel "github.com/marben/live_mandel"
	"github.com/marben/live_mandel/config"
	"github.com/marben/live_mandel/present"
	"github.com/marben/live_mandel/render"
	"github.com/marben/live_mandel/view"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "explore the set in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd, true)
		if err != nil {
			return err
		}
		screen, err := tcell.NewScreen()
		if err != nil {
			return errors.WrapPrefix(err, "open terminal", 0)
		}
		if err := screen.Init(); err != nil {
			return errors.WrapPrefix(err, "init terminal", 0)
		}
		defer screen.Fini()
		return termLoop(screen, cfg)
	},
}

func init() {
	rootCmd.AddCommand(termCmd)
}

// termLoop redraws whenever a key changes the view or the terminal is resized.
// It returns when the user quits or the screen is finalized.
func termLoop(screen tcell.Screen, cfg config.Config) error {
	pool := render.NewPool(cfg.Workers)
	defer pool.Close()
	comp := newCompositor(cfg, pool)
	ctrl := view.NewController(cfg.Viewport())
	out := present.NewTerminal(screen)

	draw := func() error {
		d := out.Dims()
		if d.Empty() {
			return errors.New("terminal too small")
		}
		v := ctrl.Viewport()
		start := time.Now()
		f := comp.Render(v, d, cfg.MaxIter)
		out.Draw(f, statusLine(v, time.Since(start)))
		return nil
	}
	if err := draw(); err != nil {
		return err
	}

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			if err := draw(); err != nil {
				return err
			}
		case *tcell.EventKey:
			a := present.Action(ev)
			if a == view.Quit {
				return nil
			}
			if ctrl.Apply(a) {
				if err := draw(); err != nil {
					return err
				}
			}
		}
	}
}

func statusLine(v mandel.Viewport, elapsed time.Duration) string {
	return fmt.Sprintf(" scale %.4g  center %+.6f%+.6fi  %v  arrows pan, z/x zoom, r reset, esc quit",
		v.Scale, v.OffsetX, v.OffsetY, elapsed.Round(time.Millisecond))
}
