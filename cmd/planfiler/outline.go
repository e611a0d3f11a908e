package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotandev/planfiler/internal/parser"
	"github.com/dotandev/planfiler/internal/plandoc"
	"github.com/spf13/cobra"
)

func newOutlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outline <plan-file>",
		Short: "Show a plan document's sections and entry counts",
		Args:  cobra.ExactArgs(1),
		RunE:  runOutline,
	}
}

func runOutline(cmd *cobra.Command, args []string) error {
	path := args[0]
	filename := filepath.Base(path)

	p, err := parser.ForFile(filename)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plan: %w", err)
	}
	tree, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return fmt.Errorf("parse plan: %w", err)
	}

	fmt.Printf("%s\n", tree.Title)
	printOutline(plandoc.Outline(tree), 1)
	return nil
}

func printOutline(items []plandoc.OutlineItem, depth int) {
	for _, item := range items {
		title := item.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s%s", strings.Repeat("  ", depth), title)
		if item.Entries > 0 {
			fmt.Printf("  [%d entries]", item.Entries)
		}
		fmt.Println()
		printOutline(item.Children, depth+1)
	}
}
