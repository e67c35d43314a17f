package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/animtodo/internal/config"
	"github.com/sandeepkv93/animtodo/internal/logging"
	"github.com/sandeepkv93/animtodo/internal/notify"
	"github.com/sandeepkv93/animtodo/internal/storage"
	"github.com/sandeepkv93/animtodo/internal/tasklist"
	"github.com/sandeepkv93/animtodo/internal/theme"
	"github.com/sandeepkv93/animtodo/internal/update"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (default $"+config.EnvConfigPath+")")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "animtodo failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Close()

	slots, err := storage.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	defer slots.Close()

	ctx := context.Background()
	inbox := notify.NewRecorder()
	notifiers := notify.Fanout{inbox}
	if cfg.DesktopNotifications {
		desktop := notify.NewDesktop("Animated Todo List")
		desktop.OnError = func(err error) { logger.Debug("desktop notification failed", "err", err) }
		notifiers = append(notifiers, desktop)
		defer desktop.Wait()
	}

	svc := tasklist.NewService(slots, tasklist.Options{
		Key:      cfg.TasksKey,
		Notifier: notifiers,
		Logger:   logger.Logger,
	})
	svc.Hydrate(ctx)

	pref := theme.NewPreference(slots, cfg.ThemeKey, cfg.DefaultTheme)
	if _, err := pref.Load(ctx); err != nil {
		logger.Warn("theme preference unreadable, using default", "theme", cfg.DefaultTheme, "err", err)
	}

	logger.Info("starting", "backend", cfg.Backend, "data_dir", cfg.DataDir, "tasks", len(svc.List()))
	m := update.NewModel(update.Deps{
		Service:       svc,
		Theme:         pref,
		Notifications: inbox,
		Logger:        logger.Logger,
		ToastDuration: cfg.ToastDuration(),
		SystemDark:    lipgloss.HasDarkBackground(),
		Context:       ctx,
	})

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
