package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"showdown-tracker/client"
	"showdown-tracker/config"
	"showdown-tracker/metrics"
	"showdown-tracker/parser"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <room>",
		Short: "Follow a live battle room",
		Long:  "Joins a battle room on the Showdown server and narrates events as they arrive until the battle ends.",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	roomID, err := client.RoomID(args[0])
	if err != nil {
		return err
	}
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	logger = logger.With("room", roomID)

	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, reg, logger)
		defer srv.Shutdown(context.Background())
	}

	out := cmd.OutOrStdout()
	var p *parser.Parser
	for attempt := 1; ; attempt++ {
		// Joining a room replays its full log, so every connection starts
		// from an empty battle.
		p = parser.New(
			parser.WithLogger(logger),
			parser.WithObserver(rec),
			parser.WithNarrationSink(narrationPrinter(out, cfg.Narration.TurnPrefix)),
		)
		err = follow(ctx, cfg, logger, roomID, p)
		if err == nil || errors.Is(err, context.Canceled) {
			break
		}
		if attempt >= cfg.Server.ReconnectAttempts {
			return fmt.Errorf("following %s: %w", roomID, err)
		}
		logger.Warn("connection lost, reconnecting", "attempt", attempt+1, "max", cfg.Server.ReconnectAttempts, "error", err)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(cfg.Server.ReconnectDelay):
		}
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, parser.RenderBattleState(p.State()))
	return nil
}

func follow(ctx context.Context, cfg *config.Config, logger *slog.Logger, roomID string, p *parser.Parser) error {
	sc, err := client.NewShowdownClient(ctx, cfg.Server.URL, logger)
	if err != nil {
		return err
	}
	defer sc.Close()

	if err := sc.JoinRoom(roomID); err != nil {
		return fmt.Errorf("joining room: %w", err)
	}
	logger.Info("joined room")

	return sc.ReadLines(ctx, func(line string) bool {
		p.ProcessLine(line)
		return !p.Finished() && !strings.HasPrefix(line, "|tie")
	})
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return srv
}
