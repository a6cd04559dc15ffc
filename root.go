package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"picturereel/internal/config"
	"picturereel/internal/discovery"
	"picturereel/internal/domain"
	"picturereel/internal/eventbus"
	"picturereel/internal/ui"
)

type rootOptions struct {
	dir        string
	configPath string
	logFile    string
	noWatch    bool
	noMouse    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "picturereel [dir]",
		Short:         "Browse the pictures in a directory as a swipeable carousel",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.dir == "" && len(args) > 0 {
				opts.dir = args[0]
			}
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.dir, "dir", "d", "", "Directory to browse (default: current directory)")
	f.StringVarP(&opts.configPath, "config", "c", "", "Config file (default: <dir>/"+config.FileName+")")
	f.StringVar(&opts.logFile, "log-file", "picturereel.log", "Log file")
	f.BoolVar(&opts.noWatch, "no-watch", false, "Do not rescan when pictures are added or removed")
	f.BoolVar(&opts.noMouse, "no-mouse", false, "Disable mouse input and swiping")

	return cmd
}

func run(ctx context.Context, opts *rootOptions) error {
	targetDir := opts.dir
	if targetDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get current directory: %w", err)
		}
		targetDir = wd
	}
	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", targetDir, err)
	}

	var out io.Writer = io.Discard
	if logFile, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err == nil {
		defer logFile.Close()
		out = logFile
	}
	logger := pslog.NewWithOptions(out, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.DebugLevel,
	})
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	bus := eventbus.New()
	defer bus.Close()

	configPath := opts.configPath
	if configPath == "" {
		configPath = filepath.Join(absDir, config.FileName)
	}
	configSvc := config.NewConfigServiceForPath(configPath, bus)
	cfg, err := loadOrCreateConfig(ctx, configSvc, config.NewConfigServiceWithBus(bus), absDir)
	if err != nil {
		return err
	}

	set, err := initialPictures(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("pictures loaded", "base_dir", cfg.BaseDir, "count", set.Len())

	discoverySvc := discovery.NewDiscoveryService(bus)
	defer discoverySvc.StopScan()

	if cfg.Watch && !opts.noWatch && len(cfg.Pictures) == 0 {
		watcher := discovery.NewWatcher(bus, cfg.BaseDir, discovery.DefaultDebounce)
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("watcher disabled", "err", err)
		} else {
			defer watcher.Stop()
		}
	}

	uiModel, err := ui.NewModel(cfg, bus, set, logger)
	if err != nil {
		return err
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !opts.noMouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(uiModel, progOpts...)
	uiModel.SetProgram(p)

	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logger.Warn("event channel full, dropping event", "type", e.Type())
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventPicturesDiscovered,
		eventbus.EventScanStarted,
		eventbus.EventScanCompleted,
		eventbus.EventError,
	} {
		bus.Subscribe(t, forwardEvent)
	}

	bus.Subscribe(eventbus.EventPageChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PageChangedEvent); ok {
			logger.Debug("page changed", "from", event.From.CurrentIndex, "to", event.To.CurrentIndex, "direction", event.To.Direction)
		}
	})
	bus.Subscribe(eventbus.EventGestureCommitted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.GestureCommittedEvent); ok {
			logger.Info("swipe", "delta", event.Delta, "power", event.Power)
		}
	})

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-stop:
				return
			}
		}
	}()

	logger.Info("starting UI", "mouse", !opts.noMouse)
	_, runErr := p.Run()
	close(stop)
	<-done

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		logger.Error("program failed", "err", runErr)
		return fmt.Errorf("run program: %w", runErr)
	}
	logger.Info("UI exited normally")
	return nil
}

// loadOrCreateConfig loads the config file, writing a default one for dir
// when none exists yet. The new file takes its settings from userSvc when the
// user-wide config exists.
func loadOrCreateConfig(ctx context.Context, svc, userSvc config.ConfigService, dir string) (*config.Config, error) {
	logger := pslog.Ctx(ctx)

	_, statErr := os.Stat(svc.Path())
	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if errors.Is(statErr, os.ErrNotExist) {
		cfg.BaseDir = dir
		if user := userDefaults(ctx, userSvc); user != nil {
			cfg.Watch = user.Watch
			cfg.UI = user.UI
		}
		if err := svc.Save(cfg); err != nil {
			logger.Warn("failed to save config", "path", svc.Path(), "err", err)
		} else {
			logger.Info("config created", "path", svc.Path())
		}
		return cfg, nil
	}

	switch {
	case cfg.BaseDir == "":
		cfg.BaseDir = dir
	case !filepath.IsAbs(cfg.BaseDir):
		cfg.BaseDir = filepath.Join(filepath.Dir(svc.Path()), cfg.BaseDir)
	}
	logger.Info("config loaded", "path", svc.Path(), "pictures", len(cfg.Pictures))
	return cfg, nil
}

// userDefaults returns the user-wide config, or nil when there is none
func userDefaults(ctx context.Context, userSvc config.ConfigService) *config.Config {
	if userSvc == nil {
		return nil
	}
	if _, err := os.Stat(userSvc.Path()); err != nil {
		return nil
	}
	user, err := userSvc.Load()
	if err != nil {
		pslog.Ctx(ctx).Warn("ignoring user config", "path", userSvc.Path(), "err", err)
		return nil
	}
	return user
}

// initialPictures returns the configured pictures or, without any, scans the
// base directory once before the UI starts
func initialPictures(ctx context.Context, cfg *config.Config) (domain.PictureSet, error) {
	if len(cfg.Pictures) > 0 {
		set, err := cfg.PictureSet()
		if err != nil {
			return domain.PictureSet{}, fmt.Errorf("config pictures: %w", err)
		}
		return set, nil
	}

	pictures, err := discovery.Scan(ctx, cfg.BaseDir)
	if err != nil {
		return domain.PictureSet{}, fmt.Errorf("scan %s: %w", cfg.BaseDir, err)
	}
	set, err := domain.NewPictureSet(pictures)
	if err != nil {
		return domain.PictureSet{}, fmt.Errorf("no pictures found in %s: %w", cfg.BaseDir, err)
	}
	return set, nil
}
