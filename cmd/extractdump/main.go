// Command extractdump decodes an extraction JSON file and prints its item
// inventory, for checking extractor output without launching the viewer.
package main

import (
	"flag"
	"fmt"
	"os"

	"snyfter/internal/extract"
)

func main() {
	jsonPath := flag.String("json", "", "Path to extraction JSON file")
	page := flag.Int("page", 0, "Only dump this page (0 = all pages)")
	verbose := flag.Bool("v", false, "Print item content and bounding boxes")
	flag.Parse()

	if *jsonPath == "" {
		fmt.Println("Usage: extractdump -json <path> [-page N] [-v]")
		os.Exit(1)
	}

	doc, err := extract.LoadDocument(*jsonPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load document: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Source: %s\n", doc.SourceFile)
	fmt.Printf("Pages: %d, items: %d\n", doc.PageCount(), doc.ItemCount())

	for _, p := range doc.Pages {
		if *page != 0 && p.Number != *page {
			continue
		}
		items := doc.Items(p.Number)
		fmt.Printf("\nPage %d (%.0fx%.0f): %d items", p.Number, p.Size.Width, p.Size.Height, len(items))
		if p.ColumnCount > 1 {
			fmt.Printf(", %d columns", p.ColumnCount)
		}
		fmt.Println()

		if !*verbose {
			continue
		}
		for _, it := range items {
			content := it.Content
			if len(content) > 60 {
				content = content[:60] + "..."
			}
			fmt.Printf("  %-40s %-10s (%.1f,%.1f %gx%g) %q\n",
				it.ID, it.Type, it.BBox.Left, it.BBox.Top, it.BBox.Width, it.BBox.Height, content)
		}
	}
}
