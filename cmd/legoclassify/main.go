package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/classify"
	_ "github.com/dshills/legoclassify/pkg/classify/classifiers"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/hints"
	"github.com/dshills/legoclassify/pkg/report"
)

const version = "1.0.0"

// CLI flags
var (
	pagesPath  = flag.String("pages", "", "Path to a JSON file containing the extracted pages (required)")
	configPath = flag.String("config", "", "Path to YAML solver configuration file (required)")
	outputDir  = flag.String("output", ".", "Output directory for generated reports")
	format     = flag.String("format", "json", "Export format: json, svg, or all")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("legoclassify version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}

	if *pagesPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -pages flag is required")
		printUsage()
		os.Exit(1)
	}
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config flag is required")
		printUsage()
		os.Exit(1)
	}

	validFormats := map[string]bool{"json": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, svg, all\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// pageFile is the on-disk shape of the pages file: a "pages" list
// whose entries use PageData's own fields, since block.PageData
// already carries the json tags the extractor's output is expected to
// match.
type pageFile struct {
	Pages []block.PageData `json:"pages"`
}

func run() error {
	ctx := context.Background()

	if *verbose {
		fmt.Printf("Loading solver config from %s\n", *configPath)
	}
	cfg, err := constraint.LoadSolverConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load solver config: %w", err)
	}

	if *verbose {
		fmt.Printf("Loading pages from %s\n", *pagesPath)
	}
	pages, err := loadPages(*pagesPath)
	if err != nil {
		return fmt.Errorf("failed to load pages: %w", err)
	}
	if *verbose {
		fmt.Printf("Loaded %d page(s)\n", len(pages))
	}

	docHints := hints.Build(pages)

	pipeline, err := classify.NewPipeline(classify.All(), cfg)
	if err != nil {
		return fmt.Errorf("failed to construct pipeline: %w", err)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	start := time.Now()
	for _, pd := range pages {
		if *verbose {
			fmt.Printf("Classifying page %d\n", pd.PageIndex)
		}

		page, result, err := pipeline.RunPage(ctx, pd, docHints)
		if err != nil {
			return fmt.Errorf("page %d: classification failed: %w", pd.PageIndex, err)
		}

		rep := report.Build(pd, result, page)
		baseName := fmt.Sprintf("page_%04d", pd.PageIndex)

		if *format == "json" || *format == "all" {
			if err := exportJSON(&rep, baseName); err != nil {
				return err
			}
		}
		if *format == "svg" || *format == "all" {
			if err := exportSVG(pd, &rep, baseName); err != nil {
				return err
			}
		}

		if *verbose && len(rep.Warnings) > 0 {
			fmt.Printf("  %d warning(s):\n", len(rep.Warnings))
			for _, w := range rep.Warnings {
				fmt.Printf("    - %s\n", w)
			}
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("Successfully classified %d page(s) in %v\n", len(pages), elapsed)
	return nil
}

// loadPages reads a JSON document of pages and freezes each one.
func loadPages(path string) ([]*block.PageData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc pageFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing pages JSON: %w", err)
	}

	out := make([]*block.PageData, 0, len(doc.Pages))
	for i := range doc.Pages {
		pd := &doc.Pages[i]
		if dropped, err := pd.Freeze(); err != nil {
			return nil, fmt.Errorf("page %d: %w", pd.PageIndex, err)
		} else if len(dropped) > 0 && *verbose {
			fmt.Printf("page %d: dropped %d invalid block(s): %v\n", pd.PageIndex, len(dropped), dropped)
		}
		out = append(out, pd)
	}
	return out, nil
}

func exportJSON(rep *report.ClassificationReport, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	if *verbose {
		fmt.Printf("  Exporting JSON to %s\n", filename)
	}
	if err := report.SaveJSONToFile(rep, filename); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	return nil
}

func exportSVG(pd *block.PageData, rep *report.ClassificationReport, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	if *verbose {
		fmt.Printf("  Exporting SVG to %s\n", filename)
	}
	opts := report.DefaultSVGOptions()
	opts.Title = fmt.Sprintf("Page %d", pd.PageIndex)
	if err := report.SaveSVGToFile(pd, rep, filename, opts); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: legoclassify -pages <pages.json> -config <solver.yaml> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'legoclassify -help' for detailed help")
}

func printHelp() {
	fmt.Printf("legoclassify version %s\n\n", version)
	fmt.Println("Classifies layout-extracted LEGO assembly instruction pages into a")
	fmt.Println("structured hierarchical model (steps, parts lists, parts, diagrams).")
	fmt.Println("\nUsage:")
	fmt.Println("  legoclassify -pages <pages.json> -config <solver.yaml> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -pages string")
	fmt.Println("        Path to a JSON file containing the extracted pages")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML solver configuration file")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated reports (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Export format: json, svg, or all (default: json)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Classify pages with default JSON export")
	fmt.Println("  legoclassify -pages pages.json -config solver.yaml")
	fmt.Println("\n  # Classify with both JSON and SVG diagnostic output")
	fmt.Println("  legoclassify -pages pages.json -config solver.yaml -format all -output ./out -verbose")
}
