package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/enikolados/sitemetrics/internal/core"
	"github.com/enikolados/sitemetrics/internal/providers"
	"github.com/enikolados/sitemetrics/internal/providers/demo"
	"github.com/enikolados/sitemetrics/internal/providers/github"
	"github.com/enikolados/sitemetrics/internal/render"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Render the GitHub contribution heatmap as light/dark SVGs",
	Long: `Fetches the contribution calendar for a user over the GitHub GraphQL
API, buckets daily counts into five intensity levels and writes one SVG
heatmap per theme into the output directory. Requires GITHUB_TOKEN (or
GH_TOKEN) unless --demo is given.`,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().String("login", "", "GitHub login to fetch (env LOGIN)")
	calendarCmd.Flags().String("out", "", "output directory (env OUT_DIR)")
	calendarCmd.Flags().String("light", "", "light SVG filename")
	calendarCmd.Flags().String("dark", "", "dark SVG filename")
	calendarCmd.Flags().String("title", "", "title rendered above the heatmap")
	calendarCmd.Flags().String("policy", "", "bucketing policy: fixed or quantile")
	calendarCmd.Flags().Bool("demo", false, "use a synthetic offline calendar instead of the API")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	overrideString(cmd, "login", &cfg.Login)
	overrideString(cmd, "out", &cfg.OutDir)
	overrideString(cmd, "light", &cfg.LightFile)
	overrideString(cmd, "dark", &cfg.DarkFile)
	overrideString(cmd, "title", &cfg.Title)
	overrideString(cmd, "policy", &cfg.Policy)
	useDemo, _ := cmd.Flags().GetBool("demo")

	if err := cfg.Validate(); err != nil {
		return err
	}

	var source providers.CalendarSource
	if useDemo {
		source = demo.New()
	} else {
		if cfg.Token == "" {
			return fmt.Errorf("missing access token: set GITHUB_TOKEN or GH_TOKEN")
		}
		if cfg.Login == "" {
			return fmt.Errorf("missing login: pass --login or set LOGIN")
		}
		source = github.New(cfg.Token)
	}

	logger.Infow("fetching contribution calendar", "source", source.Name(), "login", cfg.Login)

	cal, err := source.Fetch(context.Background(), cfg.Login)
	if err != nil {
		return fmt.Errorf("source %s failed: %w", source.Name(), err)
	}

	leveler, err := core.ForPolicy(cfg.Policy, cal.Counts())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", cfg.OutDir, err)
	}

	outputs := []struct {
		theme string
		file  string
	}{
		{"light", cfg.LightFile},
		{"dark", cfg.DarkFile},
	}

	for _, out := range outputs {
		theme, err := cfg.Theme(out.theme)
		if err != nil {
			return err
		}

		svg, err := render.Calendar(cal, leveler, theme, cfg.Title)
		if err != nil {
			return fmt.Errorf("render %s: %w", out.theme, err)
		}

		path := filepath.Join(cfg.OutDir, out.file)
		if err := os.WriteFile(path, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Infow("wrote calendar SVG", "theme", out.theme, "path", path)
	}

	fmt.Printf("sitemetrics: rendered %d contributions across %d weeks (%s policy) into %s\n",
		cal.Total, len(cal.Weeks), leveler.Name(), cfg.OutDir)
	return nil
}

// overrideString copies the flag value into dst only when the flag was
// set on the command line, preserving config/env values otherwise.
func overrideString(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		*dst = v
	}
}
