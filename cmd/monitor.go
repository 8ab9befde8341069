package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/daemon"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/db"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/discovery"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/logger"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/monitor"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/notify"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/pipeline"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/repository"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/sink"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	monitorDirs    []string
	monitorOutput  string
	monitorMaxDirs int
	monitorStore   bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor log directories for file events",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Explicit --dirs bypass both discovery and the cap.
		if len(monitorDirs) > 0 {
			return runMonitor(monitorDirs)
		}

		maxDirs := cfg.MaxDirs
		if cmd.Flags().Changed("max-dirs") {
			maxDirs = monitorMaxDirs
		}

		fmt.Println("discovering log directories...")
		dirs := discovery.New(logger.Log).Discover(cfg.IncludeUserDirs)
		sort.Strings(dirs)

		return runMonitor(capDirs(dirs, maxDirs))
	},
}

func capDirs(dirs []string, maxDirs int) []string {
	if len(dirs) <= maxDirs {
		return dirs
	}

	logger.Log.Warn("capping monitored directories",
		zap.Int("discovered", len(dirs)),
		zap.Int("max", maxDirs))

	return dirs[:maxDirs]
}

func runMonitor(dirs []string) error {
	defer logger.Sync()

	notifier, err := notify.New(cfg.PollTimeout)
	if err != nil {
		return fmt.Errorf("failed to open notification backend: %w", err)
	}

	registry := monitor.NewRegistry(notifier, logger.Log)

	added := 0
	for _, dir := range dirs {
		result, err := registry.AddDirectory(dir)
		if err != nil {
			if monitor.IsPermission(err) {
				logger.Log.Warn("permission denied",
					zap.String("dir", dir))
			} else {
				logger.Log.Warn("skipping directory",
					zap.String("dir", dir),
					zap.Error(err))
			}
			continue
		}
		if result == monitor.Added {
			added++
		}
	}

	if added == 0 {
		_ = notifier.Close()
		return errors.New("no directories could be subscribed")
	}

	fmt.Printf("monitoring %d directories\n", added)

	sinks := []sink.Sink{sink.NewConsole(os.Stdout, verbose)}

	output := monitorOutput
	if output == "" {
		output = cfg.Output
	}
	if output != "" {
		sinks = append(sinks, sink.NewFile(output))
	}

	var repo *repository.EventRepository
	if monitorStore {
		if err := db.Init(cfg.DBPath); err != nil {
			_ = notifier.Close()
			return err
		}
		repo = repository.NewEventRepository()
		sinks = append(sinks, sink.NewHistory(repo))
	}

	mon := monitor.New(registry, monitor.NewTranslator(registry), notifier,
		sinks, pipeline.NewFilter(cfg.IgnoreList), logger.Log)

	srv := daemon.NewServer(mon, repo, cfg.StatusPort, logger.Log)
	srv.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Log.Info("shutting down",
				zap.String("signal", sig.String()))
			cancel()
		case <-srv.StopCh():
			logger.Log.Info("stop requested via API")
			cancel()
		case <-ctx.Done():
		}
	}()

	runErr := mon.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Log.Warn("status server shutdown failed", zap.Error(err))
	}

	return runErr
}

func init() {
	monitorCmd.Flags().StringSliceVar(&monitorDirs, "dirs", nil, "explicit directories to monitor (bypasses discovery)")
	monitorCmd.Flags().StringVar(&monitorOutput, "output", "", "append events to this file as JSON lines")
	monitorCmd.Flags().IntVar(&monitorMaxDirs, "max-dirs", 50, "maximum number of discovered directories to monitor")
	monitorCmd.Flags().BoolVar(&monitorStore, "store", false, "persist events to the history store")
	rootCmd.AddCommand(monitorCmd)
}
