package main

import (
	"fmt"

	"pressops/internal/book"

	"github.com/spf13/cobra"
)

var (
	spinePages int
	spinePaper string
)

// spineCmd computes the cover spine width for a page count
var spineCmd = &cobra.Command{
	Use:   "spine",
	Short: "Compute cover spine width",
	Long: `Compute the spine width for a paperback cover from the page count
and paper type. Hand the result to the cover template before exporting
the full-wrap PDF.`,
	RunE: runSpine,
}

var (
	pricingPages     int
	pricingListPrice float64
)

// pricingCmd computes printing cost and royalty
var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Compute printing cost and royalty",
	Long: `Compute the per-unit printing cost and the 60%-plan royalty for a
page count and list price. The royalty must stay positive or KDP will
reject the price.`,
	RunE: runPricing,
}

func init() {
	spineCmd.Flags().IntVar(&spinePages, "pages", 0, "interior page count")
	spineCmd.Flags().StringVar(&spinePaper, "paper", book.PaperWhite, "paper type: white, cream, premium_color")
	_ = spineCmd.MarkFlagRequired("pages")

	pricingCmd.Flags().IntVar(&pricingPages, "pages", 0, "interior page count")
	pricingCmd.Flags().Float64Var(&pricingListPrice, "list-price", 0, "list price in USD, e.g. 8.99")
	_ = pricingCmd.MarkFlagRequired("pages")
	_ = pricingCmd.MarkFlagRequired("list-price")

	rootCmd.AddCommand(spineCmd)
	rootCmd.AddCommand(pricingCmd)
}

func runSpine(cmd *cobra.Command, args []string) error {
	width, err := book.SpineWidthInches(spinePages, spinePaper)
	if err != nil {
		return err
	}
	fmt.Printf("pages: %d\npaper: %s\nspine: %.4f in\n", spinePages, spinePaper, width)
	return nil
}

func runPricing(cmd *cobra.Command, args []string) error {
	listCents := int(pricingListPrice*100 + 0.5)

	printing, err := book.PrintingCostCents(pricingPages)
	if err != nil {
		return err
	}
	royalty, err := book.RoyaltyCents(listCents, pricingPages)
	if err != nil {
		return err
	}

	fmt.Printf("pages:         %d\n", pricingPages)
	fmt.Printf("list price:    $%.2f\n", float64(listCents)/100)
	fmt.Printf("printing cost: $%.2f\n", float64(printing)/100)
	fmt.Printf("royalty:       $%.2f\n", float64(royalty)/100)
	if royalty == 0 {
		fmt.Println("warning: royalty is zero, raise the list price or cut pages")
	}
	return nil
}
