package main

import (
	"encoding/json"
	"fmt"
	"os"

	"pressops/internal/book"
	"pressops/internal/httpx"

	"github.com/spf13/cobra"
)

// validateCmd checks a book metadata JSON file against the catalog rules
var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a book metadata JSON file",
	Long: `Validate a flat book metadata JSON file against the same rules the
API enforces, before anything is typed into the KDP upload form.

The file holds one object:

  {
    "title": "...",
    "puzzle_type": "crossword",
    "difficulty": "easy",
    "trim_size": "8.5x11",
    "page_count": 110,
    "paper_type": "white",
    "list_price_cents": 899
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

type metadataFile struct {
	Slug           string   `json:"slug" validate:"omitempty,slug,max=100"`
	Title          string   `json:"title" validate:"required,min=1,max=200"`
	Subtitle       string   `json:"subtitle" validate:"max=200"`
	PuzzleType     string   `json:"puzzle_type" validate:"required,oneof=crossword sudoku word_search mixed"`
	Difficulty     string   `json:"difficulty" validate:"required,oneof=easy medium hard mixed"`
	TrimSize       string   `json:"trim_size" validate:"required,trim_size"`
	PageCount      int      `json:"page_count" validate:"required,gte=24,lte=828"`
	PaperType      string   `json:"paper_type" validate:"required,oneof=white cream premium_color"`
	ListPriceCents int      `json:"list_price_cents" validate:"required,gte=99"`
	Description    string   `json:"description" validate:"max=4000"`
	Keywords       []string `json:"keywords" validate:"max=7,dive,max=50"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var meta metadataFile
	if err := json.Unmarshal(data, &meta); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}

	details := httpx.ValidateStruct(meta)
	for _, d := range details {
		fmt.Fprintf(os.Stderr, "invalid: %s: %s\n", d.Field, d.Message)
	}
	if len(details) > 0 {
		return fmt.Errorf("%d validation error(s)", len(details))
	}

	royalty, err := book.RoyaltyCents(meta.ListPriceCents, meta.PageCount)
	if err != nil {
		return err
	}
	if royalty == 0 {
		fmt.Fprintln(os.Stderr, "warning: royalty is zero at this price and page count")
	}

	spine, err := book.SpineWidthInches(meta.PageCount, meta.PaperType)
	if err != nil {
		return err
	}

	fmt.Printf("ok: %q\nspine: %.4f in\nroyalty: $%.2f\n", meta.Title, spine, float64(royalty)/100)
	return nil
}
