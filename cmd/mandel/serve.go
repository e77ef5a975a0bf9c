package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marben/live_mandel/config"
	"github.com/marben/live_mandel/render"
	"github.com/marben/live_mandel/view"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the viewer to browsers over websocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd, false)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
		}
		return serve(cmd.Context(), cfg)
	},
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// serve runs the http server and one session per websocket connection until ctx ends.
func serve(ctx context.Context, cfg config.Config) error {
	pool := render.NewPool(cfg.Workers)
	defer pool.Close()

	l, srv := webServer(ctx, cfg.Addr)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", "url", "http://"+displayAddr(cfg.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return errors.WrapPrefix(err, "http server", 0)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		l.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return acceptSessions(ctx, l, func(conn net.Conn) *session {
			return newSession(conn, cfg, pool)
		})
	})
	return g.Wait()
}

func newSession(conn net.Conn, cfg config.Config, pool *render.Pool) *session {
	return &session{
		conn:     conn,
		ctrl:     view.NewController(cfg.Viewport()),
		comp:     newCompositor(cfg, pool),
		dims:     cfg.Dims(),
		maxIter:  cfg.MaxIter,
		interval: time.Second / time.Duration(cfg.FPS),
	}
}

// acceptSessions runs a session for every accepted connection.
// It returns nil once the listener is closed.
func acceptSessions(ctx context.Context, l net.Listener, newSession func(net.Conn) *session) error {
	var sessions errgroup.Group
	defer sessions.Wait()
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return errors.WrapPrefix(err, "accept", 0)
		}
		s := newSession(conn)
		sessions.Go(func() error {
			logger.Info("session started", "remote", conn.RemoteAddr())
			if err := s.run(ctx); err != nil {
				logger.Warn("session ended", "remote", conn.RemoteAddr(), "err", err)
				return nil
			}
			logger.Info("session ended", "remote", conn.RemoteAddr())
			return nil
		})
	}
}

// displayAddr fills in localhost for listen addresses without a host.
func displayAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host != "" {
		return addr
	}
	return net.JoinHostPort("localhost", port)
}
