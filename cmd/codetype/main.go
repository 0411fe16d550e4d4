// Package main provides the CLI entrypoint for codetype.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/codetype/internal/config"
	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/samples"
	"github.com/verte-zerg/codetype/internal/store"
	"github.com/verte-zerg/codetype/internal/tui"
)

var (
	practiceSamplesDir string
	practiceSample     string
	practiceTheme      string
	practiceWatch      bool

	samplesDir string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codetype",
		Short:         "Typing trainer for source code",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceSamplesDir, "samples-dir", "", "directory with practice texts (default: $XDG_CONFIG_HOME/codetype/samples)")
	rootCmd.Flags().StringVar(&practiceSample, "sample", "", "start practice on this sample id")
	rootCmd.Flags().StringVar(&practiceTheme, "theme", "", "color theme: light or dark")
	rootCmd.Flags().BoolVar(&practiceWatch, "watch", false, "reload samples when the directory changes")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSamplesCmd())
	rootCmd.AddCommand(newThemeCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "samples-dir", &practiceSamplesDir, fileCfg.Practice.SamplesDir)
	applyStringConfig(cmd, "sample", &practiceSample, fileCfg.Practice.Sample)
	applyBoolConfig(cmd, "watch", &practiceWatch, fileCfg.Practice.Watch)

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("codetype needs an interactive terminal")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	storedTheme, hasStored, err := st.Theme(ctx)
	if err != nil {
		logErrf("failed to load theme: %v\n", err)
	}
	theme, err := resolveTheme(cmd.Flags().Changed("theme"), practiceTheme, storedTheme, hasStored, fileCfg.Practice.Theme)
	if err != nil {
		return err
	}

	cfg := model.Config{
		SamplesDir: resolveSamplesDir(practiceSamplesDir),
		Sample:     practiceSample,
		Theme:      theme,
		Watch:      practiceWatch,
	}

	lastSample, _, err := st.LastSample(ctx)
	if err != nil {
		logErrf("failed to load last sample: %v\n", err)
	}

	provider := samples.NewDirProvider(cfg.SamplesDir)
	opts := tui.Options{
		Theme:       cfg.Theme,
		Sample:      cfg.Sample,
		LastSample:  lastSample,
		Preferences: st,
	}
	if cfg.Watch {
		if err := os.MkdirAll(cfg.SamplesDir, 0o755); err != nil {
			return fmt.Errorf("failed to create samples directory: %w", err)
		}
		watcher, err := samples.NewWatcher(cfg.SamplesDir)
		if err != nil {
			logErrf("failed to watch samples: %v\n", err)
		} else {
			watcher.Start()
			defer func() {
				if werr := watcher.Stop(); werr != nil {
					logErrf("failed to stop watcher: %v\n", werr)
				}
			}()
			opts.Watcher = watcher
		}
	}

	m := tui.NewModel(provider, opts)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newSamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "List available practice samples",
		Args:  cobra.NoArgs,
		RunE:  runSamplesCmd,
	}
	cmd.Flags().StringVar(&samplesDir, "samples-dir", "", "directory with practice texts")
	return cmd
}

func runSamplesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "samples-dir", &samplesDir, fileCfg.Practice.SamplesDir)
	dir := resolveSamplesDir(samplesDir)

	result := samples.Load(cmd.Context(), samples.NewDirProvider(dir))
	if result.State == samples.StateUnavailable {
		return fmt.Errorf("failed to load samples from %s: %w", dir, result.Err)
	}
	if result.Catalog.Len() == 0 {
		logErrf("Add files to %s\n", dir)
		return fmt.Errorf("%s: %w", dir, samples.ErrNoSamples)
	}
	for _, id := range result.Catalog.IDs() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the saved color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(model.ThemeLight), string(model.ThemeDark)},
		RunE:      runThemeCmd,
	}
}

func runThemeCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if len(args) == 0 {
		theme, ok, err := st.Theme(ctx)
		if err != nil {
			return fmt.Errorf("failed to load theme: %w", err)
		}
		if !ok {
			theme = model.ThemeDark
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), theme); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	theme, err := model.ParseTheme(args[0])
	if err != nil {
		return err
	}
	if err := st.SetTheme(ctx, theme); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveTheme picks the theme from the flag, then the saved preference,
// then the config file, and falls back to dark.
func resolveTheme(flagSet bool, flagValue string, stored model.Theme, hasStored bool, cfgValue *string) (model.Theme, error) {
	if flagSet {
		theme, err := model.ParseTheme(flagValue)
		if err != nil {
			return "", fmt.Errorf("invalid --theme value: %w", err)
		}
		return theme, nil
	}
	if hasStored {
		return stored, nil
	}
	if cfgValue != nil {
		theme, err := model.ParseTheme(*cfgValue)
		if err != nil {
			return "", fmt.Errorf("invalid theme in config: %w", err)
		}
		return theme, nil
	}
	return model.ThemeDark, nil
}

func resolveSamplesDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return config.DefaultSamplesDir()
	}
	if strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, dir[2:])
		}
	}
	return dir
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# codetype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# samples-dir = %q   # Directory with practice texts
# sample = "main.go"       # Start practice on this sample id
# theme = "dark"           # light or dark; a theme saved with ctrl+t wins
# watch = false            # Reload samples when the directory changes
`,
		config.DefaultSamplesDir(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
