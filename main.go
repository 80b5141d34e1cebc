package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CrestNiraj12/cardfeed/infra/auth"
	"github.com/CrestNiraj12/cardfeed/infra/config"
	"github.com/CrestNiraj12/cardfeed/infra/logging"
	"github.com/CrestNiraj12/cardfeed/infra/wordpress"
	"github.com/CrestNiraj12/cardfeed/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// flagKeys maps command-line flags to their config keys.
var flagKeys = map[string]string{
	"base-url":  "base_url",
	"category":  "category",
	"page-size": "page_size",
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
	cmd := &cobra.Command{
		Use:           "cardfeed",
		Short:         "Browse a WordPress blog as an endlessly scrolling card grid",
		Version:       v,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, cfgFile)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("cardfeed {{.Version}}\ncommit: %s\nbuilt: %s\n", c, d))

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.config/cardfeed/config.yaml)")
	flags.String("base-url", "", "WordPress REST root, e.g. https://example.com/wp-json/wp/v2")
	flags.Int("category", 0, "only show posts in this category ID")
	flags.Int("page-size", 0, "posts requested per page (default 10)")
	return cmd
}

// bindFlags lets explicitly set flags override env and file values.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, k := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(k, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// startCategory picks the category the feed opens with: an explicit flag
// wins, then the last category chosen in the UI, then configuration.
func startCategory(cfg config.Config, flagSet bool, st config.UIState) int {
	if flagSet {
		return cfg.Category
	}
	if st.Category > 0 {
		return st.Category
	}
	return cfg.Category
}

func credentials(cfg config.Config) auth.CredentialProvider {
	if cfg.TokenPath == "" {
		return auth.Anonymous{}
	}
	return auth.NewFileCredentials(cfg.TokenPath)
}

// loadDotEnv reads .env (or the given files) into the environment. A
// missing file is fine; a malformed one is not.
func loadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading .env: %w", err)
}

func run(cmd *cobra.Command, cfgFile string) error {
	// 1. Load config from .env, environment, file and flags.
	if err := loadDotEnv(); err != nil {
		return err
	}

	v, err := config.NewViper(cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logs, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer logs.Close()

	// 2. Build infrastructure.
	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		slog.Warn("main: ignoring unreadable ui state", "path", cfg.UIStatePath, "err", err)
	}
	category := startCategory(cfg, cmd.Flags().Changed("category"), uiState)

	client := wordpress.NewClient(cfg.BaseURL, credentials(cfg), cfg.Timeout)
	source := wordpress.NewPostService(client, category)
	slog.Info("main: starting", "base_url", cfg.BaseURL, "category", category, "page_size", cfg.PageSize)

	// 3. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Source:    source,
		PageSize:  cfg.PageSize,
		Category:  category,
		StatePath: cfg.UIStatePath,
	})

	// 4. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cardfeed: %v\n", err)
		os.Exit(1)
	}
}
