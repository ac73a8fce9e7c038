package main

import (
	"fmt"
	"os"

	"pressops/internal/checklist"

	"github.com/spf13/cobra"
)

var checklistTemplateDir string

// checklistCmd is the parent command for checklist template inspection
var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Inspect launch checklist templates",
}

// checklistListCmd lists the registered templates
var checklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available checklist templates",
	RunE:  runChecklistList,
}

// checklistShowCmd prints one template's items
var checklistShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a checklist template",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runChecklistShow,
}

func init() {
	checklistCmd.PersistentFlags().StringVar(&checklistTemplateDir, "template-dir", os.Getenv("CHECKLIST_TEMPLATE_DIR"), "directory of override templates")
	checklistCmd.AddCommand(checklistListCmd)
	checklistCmd.AddCommand(checklistShowCmd)
	rootCmd.AddCommand(checklistCmd)
}

func runChecklistList(cmd *cobra.Command, args []string) error {
	registry, err := checklist.LoadRegistry(checklistTemplateDir)
	if err != nil {
		return err
	}
	for _, name := range registry.Names() {
		fmt.Println(name)
	}
	return nil
}

func runChecklistShow(cmd *cobra.Command, args []string) error {
	registry, err := checklist.LoadRegistry(checklistTemplateDir)
	if err != nil {
		return err
	}

	name := "kdp-paperback-launch"
	if len(args) > 0 {
		name = args[0]
	}

	tmpl, ok := registry.Get(name)
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	fmt.Printf("%s\n", tmpl.Name)
	for i, item := range tmpl.Items {
		fmt.Printf("%2d. [%s] %s\n", i+1, item.Key, item.Title)
		if item.Details != "" {
			fmt.Printf("      %s\n", item.Details)
		}
	}
	return nil
}
