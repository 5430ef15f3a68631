// Package cmd holds the command line surface: the editor window by default,
// plus headless document commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"richtext/internal/config"
	applog "richtext/internal/log"
	"richtext/internal/markdown"
	"richtext/pkg/rtdoc"
)

// EditorParams is everything the window host needs to start.
type EditorParams struct {
	Config   config.Config
	Text     *rtdoc.Text
	FilePath string
	Password string
	Logger   *slog.Logger
}

// Launcher opens the editor window and blocks until it closes.
type Launcher func(EditorParams) error

// NewRoot builds the command tree. launch runs when no subcommand is given.
func NewRoot(launch Launcher) *cobra.Command {
	root := &cobra.Command{
		Use:   "richtext",
		Short: "Styled text editor",
		Long:  "Edit styled text with a formatting toolbar, and convert markdown into .rtdoc documents",
		Example: `
# Open an empty editor
richtext

# Start from a markdown file
richtext --markdown notes.md

# Open an encrypted document
richtext --open notes.rtdoc --password secret

# Convert markdown without opening a window
richtext convert notes.md notes.rtdoc --compress
  `,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer applog.Close()
			params := EditorParams{Config: cfg, Logger: log}
			params.Password, _ = cmd.Flags().GetString("password")

			mdPath, _ := cmd.Flags().GetString("markdown")
			openPath, _ := cmd.Flags().GetString("open")
			switch {
			case openPath != "" && mdPath != "":
				return fmt.Errorf("--open and --markdown are exclusive")
			case openPath != "":
				t, err := rtdoc.LoadWithOptions(openPath, rtdoc.LoadOptions{Password: params.Password})
				if err != nil {
					return fmt.Errorf("open %s: %w", openPath, err)
				}
				params.Text, params.FilePath = t, openPath
			case mdPath != "":
				src, err := os.ReadFile(mdPath)
				if err != nil {
					return err
				}
				params.Text = markdown.FromMarkdownWith(string(src), cfg.Editor.MarkdownOptions())
			}
			log.Info("starting editor", slog.String("file", params.FilePath), slog.Bool("markdown", mdPath != ""))
			return launch(params)
		},
	}
	root.PersistentFlags().String("config", "", "config file (default is the per-user config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().String("password", "", "password for encrypted documents")
	root.Flags().String("markdown", "", "seed the editor from a markdown file")
	root.Flags().String("open", "", "open an .rtdoc document")

	root.AddCommand(newConvertCmd(), newInspectCmd())
	return root
}

// setup loads the config and initializes logging from it. Flags override
// the file and the environment.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); strings.TrimSpace(lvl) != "" {
		cfg.Logging.Level = strings.ToLower(lvl)
	}
	opts := cfg.Logging.Options()
	opts.Writer = cmd.ErrOrStderr()
	return cfg, applog.Init(opts), nil
}

func Execute(launch Launcher) {
	if err := NewRoot(launch).Execute(); err != nil {
		os.Exit(1)
	}
}
