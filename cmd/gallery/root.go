package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/henri123lemoine/gallery/internal/app"
	"github.com/henri123lemoine/gallery/internal/cache"
	"github.com/henri123lemoine/gallery/internal/catalog"
	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/config"
	"github.com/henri123lemoine/gallery/internal/debug"
	"github.com/henri123lemoine/gallery/internal/imageloader"
)

type rootFlags struct {
	demo       string
	configPath string
	debugFile  string
	theme      string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "gallery",
		Short:         "gallery mounts one demo of a terminal widget catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.demo, "demo", "d", "", "Demo to mount (see `gallery demos`)")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file (default "+config.ConfigPath()+")")
	cmd.PersistentFlags().StringVar(&flags.debugFile, "debug", "", "Write debug logs to this file")
	cmd.PersistentFlags().StringVar(&flags.theme, "theme", "", "Color theme: auto, dark or light")

	cmd.AddCommand(newDemosCmd())
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// loadConfig reads the config file and applies flag overrides. Validation
// warnings go to errOut.
func loadConfig(flags *rootFlags, errOut io.Writer) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(flags.configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flags.demo != "" {
		cfg.General.Demo = flags.demo
	}
	if flags.theme != "" {
		cfg.UI.Theme = flags.theme
	}
	if flags.debugFile != "" {
		cfg.Debug.File = flags.debugFile
	}

	for _, w := range cfg.Validate() {
		fmt.Fprintf(errOut, "Warning: %s\n", w)
	}

	if _, err := catalog.Lookup(demoOrDefault(cfg)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func demoOrDefault(cfg *config.Config) string {
	if cfg.General.Demo == "" {
		return catalog.DefaultID
	}
	return cfg.General.Demo
}

func enableDebug(cfg *config.Config) error {
	if cfg.Debug.File == "" {
		return nil
	}
	return debug.Enable(cfg.Debug.File, debug.Options{
		Level:     cfg.Debug.Level,
		MaxSizeMB: cfg.Debug.MaxSizeMB,
	})
}

func newLoader(cfg *config.Config) imageloader.Loader {
	cacheDir := cfg.Image.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(cache.DefaultDir(), "images")
	}
	return imageloader.NewHTTPLoader(imageloader.Options{
		Timeout:  cfg.ImageTimeout(),
		CacheDir: cacheDir,
		MaxBytes: cfg.Image.MaxBytes,
		NoCache:  cfg.Image.NoCache,
		Logger:   debug.Logger("image"),
	})
}

// loadSnapshot reads saveable state from a previous run. A missing or
// unreadable file starts fresh.
func loadSnapshot(cfg *config.Config, errOut io.Writer) compose.Snapshot {
	if !cfg.State.Persist {
		return nil
	}
	var snap compose.Snapshot
	if err := cache.LoadJSON(cfg.StatePath(), &snap); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(errOut, "Warning: ignoring saved state: %v\n", err)
		}
		return nil
	}
	return snap
}

func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := enableDebug(cfg); err != nil {
		return fmt.Errorf("enabling debug log: %w", err)
	}
	defer debug.Close()

	model, err := app.New(cfg, app.Deps{
		Loader:   newLoader(cfg),
		Snapshot: loadSnapshot(cfg, cmd.ErrOrStderr()),
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
