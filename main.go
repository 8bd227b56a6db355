package main

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/davazp/rile/color"
	"github.com/davazp/rile/config"
	"github.com/davazp/rile/editor"
	"github.com/davazp/rile/logger"
	"github.com/davazp/rile/term"
)

var (
	// Version info (set by ldflags)
	version   = "dev"
	gitCommit = ""

	// Flags
	configPath string
	debug      bool
)

func versionString() string {
	c := gitCommit
	if c == "" {
		c = "unknown"
	}
	return fmt.Sprintf("%s (git: %.8s)", version, c)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rile [file]",
		Short: "A minimalist terminal text editor",
		Long: `rile is a small modeless text editor for the terminal, with the
usual Emacs movement and editing keys. It edits a single file at a
time; run it with no argument to start on an empty scratch buffer.

Quit with C-x C-c.`,
		Args:    cobra.MaximumNArgs(1),
		Version: versionString(),
		RunE:    run,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/rile/config.yaml)")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	if err := logger.Init(cfg.Log.File, level); err != nil {
		return err
	}
	defer logger.Close()

	if !term.IsTTY(os.Stdin) || !term.IsTTY(os.Stdout) {
		return errors.New("standard input and output must be a terminal")
	}

	theme, err := themeFromConfig(cfg.UI.Theme)
	if err != nil {
		return err
	}

	var filename string
	if len(args) == 1 {
		filename = args[0]
	}

	resized := new(atomic.Bool)
	stop := term.NotifyResize(resized)
	defer stop()

	ed := editor.New(editor.Options{
		Filename:    filename,
		LineNumbers: cfg.UI.LineNumbers,
		Theme:       theme,
		Resized:     resized,
	})

	t := term.New(os.Stdin, os.Stdout)
	if err := t.EnterRawMode(); err != nil {
		return err
	}
	defer t.Restore()

	t.EnterAlternateScreen()
	defer func() {
		t.ExitAlternateScreen()
		t.ShowCursor()
		_ = t.Flush()
	}()

	logger.Info("session started", "version", versionString(), "file", filename)
	if err := ed.Run(t); err != nil {
		logger.Error("session failed", "err", err)
		return err
	}
	logger.Info("session ended")
	return nil
}

// themeFromConfig resolves the configured color names into a theme.
func themeFromConfig(tc config.ThemeConfig) (editor.Theme, error) {
	var theme editor.Theme
	for _, c := range []struct {
		dst  *color.Color
		spec string
	}{
		{&theme.ModelineFg, tc.ModelineFg},
		{&theme.ModelineBg, tc.ModelineBg},
		{&theme.GutterFg, tc.GutterFg},
		{&theme.HighlightFg, tc.HighlightFg},
		{&theme.HighlightBg, tc.HighlightBg},
	} {
		parsed, err := color.Parse(c.spec)
		if err != nil {
			return editor.Theme{}, err
		}
		*c.dst = parsed
	}
	return theme, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
