package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"segbox/internal/config"
	"segbox/internal/debug"
	"segbox/internal/store"
	"segbox/internal/ui"
	"segbox/internal/ui/theme"
	"segbox/internal/valuecfg"
)

// demoFieldID is the field the demo form attaches its searchbox to.
const demoFieldID = "q"

//go:embed demo.yaml
var demoDocument []byte

type rootOptions struct {
	configs []string
	value   string
	theme   string
	dbPath  string
	resume  bool
	debug   bool
	noColor bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "segbox",
		Short: "Segmented searchbox: autocomplete values into chips",
		Long: "segbox runs a form with a segmented searchbox. Typed text is matched against the\n" +
			"configured values; accepted values become chips and the field value is their\n" +
			"data joined by spaces.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd.Flags(), opts)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			debug.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForm(cmd.Context(), opts, newProgram)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&opts.debug, "debug", false, "Write a debug log to ~/.segbox/debug.log")
	pf.BoolVar(&opts.noColor, "no-color", false, "Disable colors")
	pf.StringVar(&opts.dbPath, "db-path", "", "Path to the submission history database")

	f := cmd.Flags()
	f.StringArrayVar(&opts.configs, "config", nil, "Value configuration locator (file or URL); repeatable")
	f.StringVar(&opts.value, "value", "", "Initial plain value of the field")
	f.StringVar(&opts.theme, "theme", "", "Theme name ("+strings.Join(theme.Available(), ", ")+")")
	f.BoolVar(&opts.resume, "resume", false, "Start from the last submitted value")

	cmd.AddCommand(
		newValidateCmd(),
		newHistoryCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return cmd
}

// setup loads configuration, applies explicitly set flags as overrides and
// initializes logging and color output.
func setup(flags *pflag.FlagSet, opts *rootOptions) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}

	overrides := map[string]any{}
	if flags.Changed("debug") {
		overrides[config.KeyDebug] = opts.debug
	}
	if flags.Changed("db-path") {
		overrides[config.KeyDatabasePath] = strings.TrimSpace(opts.dbPath)
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		overrides[config.KeyTheme] = strings.TrimSpace(opts.theme)
	}
	if flags.Lookup("config") != nil && flags.Changed("config") {
		overrides[config.KeySource] = opts.configs
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}

	if err := debug.Init(config.GetBool(config.KeyDebug)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log unavailable: %v\n", err)
	}
	if opts.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return nil
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(tea.Model) programRunner

// newProgram is swapped in tests.
var newProgram programFactory = newTeaProgram

func newTeaProgram(m tea.Model) programRunner {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
}

// runForm builds the demo form and runs it until the user quits.
func runForm(ctx context.Context, opts *rootOptions, factory programFactory) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if name := config.GetString(config.KeyTheme); name != "" && !theme.SetTheme(name) {
		fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using %s\n", name, theme.CurrentName())
	}

	dbPath, err := config.DatabasePath()
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = st.Close()
	}()

	initial := strings.TrimSpace(opts.value)
	if opts.resume && initial == "" {
		last, ok, err := st.Last(ctx, demoFieldID)
		if err != nil {
			return err
		}
		if ok {
			initial = last.Value
		}
	}

	form, err := buildForm(ctx, st, initial)
	if err != nil {
		return err
	}

	prog := factory(form)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

func buildForm(ctx context.Context, st *store.Store, initial string) (*ui.Form, error) {
	src, err := formSource()
	if err != nil {
		return nil, err
	}

	field := ui.NewField(demoFieldID, ui.KindInput, initial)
	field.Label = "Search"

	reg := ui.NewRegistry()
	_, err = reg.Register(field, src,
		ui.WithWidth(config.GetInt(config.KeySearchboxWidth)),
		ui.WithMaxVisible(config.GetInt(config.KeySearchboxMaxVisible)),
		ui.WithPlaceholder(config.GetString(config.KeySearchboxPlaceholder)),
		ui.WithFetcher(valuecfg.NewFetcher(valuecfg.WithTimeout(config.GetDuration(config.KeyFetchTimeout)))),
	)
	if err != nil {
		return nil, err
	}

	return ui.NewForm(reg, ui.FormOptions{
		Title:      "segbox",
		HelpFormat: config.GetString(config.KeyHelpFormat),
		SaveTheme:  config.SaveTheme,
		OnSubmit: func(m ui.SubmitMsg) error {
			sub, err := st.Save(ctx, m.FieldID, m.Value)
			if err == nil {
				debug.Log("submission stored", "id", sub.ID, "field", sub.FieldID)
			}
			return err
		},
	}), nil
}

// formSource uses the configured locators, or the built-in demo values
// when none are configured.
func formSource() (ui.Source, error) {
	if locators := config.GetStringSlice(config.KeySource); len(locators) > 0 {
		return ui.LocatorSource(locators...), nil
	}
	cfg, err := valuecfg.Decode(demoDocument, valuecfg.FormatYAML)
	if err != nil {
		return ui.Source{}, fmt.Errorf("decode demo values: %w", err)
	}
	return ui.InlineSource(cfg), nil
}
