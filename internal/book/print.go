package book

import (
	"errors"
	"fmt"
	"math"
)

// Paper types and their KDP spine multipliers, inches per page.
const (
	PaperWhite        = "white"
	PaperCream        = "cream"
	PaperPremiumColor = "premium_color"
)

var spinePerPage = map[string]float64{
	PaperWhite:        0.002252,
	PaperCream:        0.0025,
	PaperPremiumColor: 0.002347,
}

// KDP paperback page-count bounds.
const (
	MinPageCount = 24
	MaxPageCount = 828
)

var (
	ErrUnknownPaperType = errors.New("unknown paper type")
	// ErrPageCountRange is returned when the page count falls outside
	// what KDP will print.
	ErrPageCountRange = fmt.Errorf("page count must be between %d and %d", MinPageCount, MaxPageCount)
)

// US b/w paperback printing cost: fixed charge plus a per-page charge,
// both in cents.
const (
	printFixedCents   = 85.0
	printPerPageCents = 1.2
)

// Royalty rate for the 60% KDP paperback plan.
const royaltyRate = 0.60

// PrintSpec carries the derived print numbers for a title.
type PrintSpec struct {
	SpineWidthInches  float64 `json:"spine_width_inches"`
	PrintingCostCents int     `json:"printing_cost_cents"`
	RoyaltyCents      int     `json:"royalty_cents"`
}

// SpineWidthInches computes the cover spine width for a page count and
// paper type, rounded to four decimal places.
func SpineWidthInches(pageCount int, paperType string) (float64, error) {
	factor, ok := spinePerPage[paperType]
	if !ok {
		return 0, ErrUnknownPaperType
	}
	if pageCount < MinPageCount || pageCount > MaxPageCount {
		return 0, ErrPageCountRange
	}
	return math.Round(float64(pageCount)*factor*10000) / 10000, nil
}

// PrintingCostCents computes the per-unit printing cost in cents.
func PrintingCostCents(pageCount int) (int, error) {
	if pageCount < MinPageCount || pageCount > MaxPageCount {
		return 0, ErrPageCountRange
	}
	return int(math.Round(printFixedCents + printPerPageCents*float64(pageCount))), nil
}

// RoyaltyCents computes the per-unit royalty in cents: the royalty rate
// applied to the list price, minus printing cost, floored at zero.
func RoyaltyCents(listPriceCents, pageCount int) (int, error) {
	printing, err := PrintingCostCents(pageCount)
	if err != nil {
		return 0, err
	}
	royalty := int(math.Round(royaltyRate*float64(listPriceCents))) - printing
	if royalty < 0 {
		royalty = 0
	}
	return royalty, nil
}

// PrintSpecFor bundles the derived numbers for a book.
func PrintSpecFor(b Book) (PrintSpec, error) {
	spine, err := SpineWidthInches(b.PageCount, b.PaperType)
	if err != nil {
		return PrintSpec{}, err
	}
	printing, err := PrintingCostCents(b.PageCount)
	if err != nil {
		return PrintSpec{}, err
	}
	royalty, err := RoyaltyCents(b.ListPriceCents, b.PageCount)
	if err != nil {
		return PrintSpec{}, err
	}
	return PrintSpec{
		SpineWidthInches:  spine,
		PrintingCostCents: printing,
		RoyaltyCents:      royalty,
	}, nil
}
