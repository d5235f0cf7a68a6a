package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dhamidi/closuredoc/config"
)

type globalOptions struct {
	configPath     string
	lang           string
	noDescriptions bool
	color          string
}

func (o *globalOptions) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "configuration file (default: nearest "+config.FileName+")")
	flags.StringVar(&o.lang, "lang", "", "language mode (es3, es5, es6)")
	flags.BoolVar(&o.noDescriptions, "no-descriptions", false, "drop descriptions from parsed records")
	flags.StringVar(&o.color, "color", "auto", "colorize output (auto, always, never)")
}

// loadConfig reads the configuration file and applies flag overrides.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, _, err = config.Discover(".")
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.lang == "" && !o.noDescriptions {
		return cfg, nil
	}

	cfg = cfg.Clone()
	if o.lang != "" {
		mode, err := config.ParseLanguageMode(o.lang)
		if err != nil {
			return nil, fmt.Errorf("--lang: %w", err)
		}
		cfg.LanguageMode = mode
	}
	if o.noDescriptions {
		cfg.PreserveDescriptions = false
	}
	return cfg.Freeze(), nil
}

// useColor decides whether output written to w is colored.
func (o *globalOptions) useColor(w io.Writer) bool {
	switch o.color {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// summaryColor returns the color used for the final status line.
func summaryColor(failed, enabled bool) *color.Color {
	c := color.New(color.FgGreen, color.Bold)
	if failed {
		c = color.New(color.FgRed, color.Bold)
	}
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// readInput returns the contents of a file, or of stdin for "-".
func readInput(cmd *cobra.Command, name string) (string, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
	}
	return string(data), nil
}

func displayName(name string) string {
	if name == "-" {
		return "<stdin>"
	}
	return name
}
