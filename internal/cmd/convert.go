package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	applog "richtext/internal/log"
	"richtext/internal/markdown"
	"richtext/pkg/rtdoc"
)

func newConvertCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "convert INPUT.md OUTPUT.rtdoc",
		Short: "Convert a markdown file into an .rtdoc document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer applog.Close()
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			t, err := markdown.Bootstrap(string(src), cfg.Editor.MarkdownOptions())
			if err != nil {
				return fmt.Errorf("convert %s: %w", args[0], err)
			}
			compress, _ := cmd.Flags().GetBool("compress")
			password, _ := cmd.Flags().GetString("password")
			opts := rtdoc.SaveOptions{
				Compression: compress,
				Encryption:  rtdoc.EncryptionOptions{Enabled: password != "", Password: password},
			}
			if err := rtdoc.SaveWithOptions(args[1], t, opts); err != nil {
				return err
			}
			log.Debug("converted", slog.String("in", args[0]), slog.String("out", args[1]), slog.Int("runs", len(t.Runs())))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d paragraphs, %d runs\n", args[1], t.ParagraphCount(), len(t.Runs()))
			return nil
		},
	}
	c.Flags().Bool("compress", false, "compress the document")
	return c
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE.rtdoc",
		Short: "Print the envelope and run table of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := setup(cmd); err != nil {
				return err
			}
			defer applog.Close()
			env, err := rtdoc.InspectEnvelope(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "compressed=%t encrypted=%t\n", env.Compressed, env.Encrypted)
			password, _ := cmd.Flags().GetString("password")
			t, err := rtdoc.LoadWithOptions(args[0], rtdoc.LoadOptions{Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d runes, %d paragraphs\n", t.Len(), t.ParagraphCount())
			for _, r := range t.Runs() {
				f := r.Attr.Font.Resolve()
				fmt.Fprintf(out, "%d-%d %s %gpt bold=%t italic=%t offset=%g %q\n",
					r.Start, r.End, f.Family, f.Size, f.IsBold(), f.IsItalic(), r.Attr.BaselineOffset,
					t.Slice(r.Range()))
			}
			return nil
		},
	}
}
