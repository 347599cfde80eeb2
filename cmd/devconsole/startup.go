package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"devconsole/internal/binds"
	"devconsole/internal/commands/builtin"
	"devconsole/internal/config"
	"devconsole/internal/console"
	"devconsole/internal/logger"
	"devconsole/internal/panel"
	"devconsole/internal/shell"
	"devconsole/internal/version"
)

// app holds the wired console and its presentation.
type app struct {
	cfg     *config.Config
	console *console.Console
	panel   *panel.Panel
	binds   *binds.Store
}

// start builds the process-wide console, registers the built-ins and
// attaches a panel writing to out.
func start(cfg *config.Config, out io.Writer) (*app, error) {
	if err := version.Validate(); err != nil {
		return nil, err
	}
	if err := panel.CheckTheme(cfg.Theme); err != nil {
		return nil, err
	}

	store := binds.NewStore()
	if cfg.BindsFile != "" {
		loaded, err := binds.Load(cfg.BindsFile)
		if err != nil {
			return nil, fmt.Errorf("load binds: %w", err)
		}
		store = loaded
	}

	c, err := console.Init(console.Options{
		Host:   logger.NewHostLog(nil),
		Binder: store,
	})
	if err != nil {
		return nil, err
	}

	p := panel.New(out, c, panel.Options{Theme: cfg.Theme, Width: cfg.Width})
	p.Attach()

	if _, ok := builtin.Register(c, builtin.Options{
		Binds:    store,
		GetWidth: p.Width,
		SetWidth: p.SetWidth,
	}); !ok {
		logger.Warn("Some built-in entries were not registered")
	}

	values, commands := c.Registry().Len()
	logger.Debug("Console ready", "values", values, "commands", commands, "binds", store.Path())

	return &app{cfg: cfg, console: c, panel: p, binds: store}, nil
}

func (a *app) shell(banner bool) {
	opts := shell.Options{
		Prompt: a.panel.Prompt(a.cfg.Prompt),
		Banner: banner,
	}
	if !a.cfg.TestMode {
		if dir, err := config.UserConfigDir(); err == nil && os.MkdirAll(dir, 0o700) == nil {
			opts.HistoryPath = filepath.Join(dir, "history")
		}
	}
	shell.New(a.console, a.console.Registry(), opts).Run()
}

func (a *app) close() {
	a.panel.Detach()
	console.Shutdown()
}
