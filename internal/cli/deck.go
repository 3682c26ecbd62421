package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/podium/pkg/document"
	perrors "github.com/matzehuels/podium/pkg/errors"
)

// deckOpts holds the command-line flags for the deck command.
type deckOpts struct {
	output string // PDF path; derived from the input when empty
	demo   bool   // export the built-in demo deck
}

// deckCommand creates the deck command, which turns a Markdown deck into a
// PDF that podium can present.
func (c *CLI) deckCommand() *cobra.Command {
	var opts deckOpts

	cmd := &cobra.Command{
		Use:   "deck [slides.md]",
		Short: "Convert a Markdown deck to PDF",
		Long: `Convert a Markdown deck to PDF.

Slides are separated by "---". A level-1 heading opens a chapter, a level-2
heading titles the slide, and a paragraph starting with "Notes:" begins the
speaker notes. Decks with notes are laid out two-up, slide on the left and
notes on the right, for presenting in split mode.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if input == "" && !opts.demo {
				return fmt.Errorf("no deck given (pass a file or --demo)")
			}
			return c.runDeck(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PDF (default: input name with .pdf)")
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "export the built-in demo deck")

	return cmd
}

// deckOutput derives the PDF path for input.
func deckOutput(output, input string) string {
	if output != "" {
		return output
	}
	if input == "" {
		return "podium-demo.pdf"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
}

func (c *CLI) runDeck(ctx context.Context, input string, opts *deckOpts) error {
	var deck *document.Deck
	var err error
	if input == "" {
		deck = document.NewDemo()
	} else if deck, err = document.OpenDeck(input); err != nil {
		return err
	}

	path := deckOutput(opts.output, input)
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Typesetting %d slides...", deck.PageCount()))
	spinner.Start()

	f, err := os.Create(path)
	if err != nil {
		spinner.Stop()
		return perrors.Wrap(perrors.ErrCodeInvalidPath, err, "create %s", path)
	}
	err = deck.WritePDF(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	spinner.Stop()
	if err != nil {
		os.Remove(path)
		return err
	}

	prog.done(fmt.Sprintf("Wrote %d slides", deck.PageCount()))
	printFile(path)
	if deck.SplitHint() {
		printDetail("Deck has speaker notes: present with split mode (ctrl+s)")
	}
	if n := len(deck.Chapters()); n > 0 {
		printDetail("%d chapters", n)
	}
	printNextStep("Present it", "podium present "+path)
	return nil
}
