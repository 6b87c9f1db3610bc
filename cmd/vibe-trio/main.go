// Package main provides the vibe-trio command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-trio/internal/filter"
	"github.com/inodb/vibe-trio/internal/genedb"
	"github.com/inodb/vibe-trio/internal/output"
	"github.com/inodb/vibe-trio/internal/ped"
	"github.com/inodb/vibe-trio/internal/regiondb"
	"github.com/inodb/vibe-trio/internal/triage"
	"github.com/inodb/vibe-trio/internal/vcf"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("vibe-trio version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "triage":
		return runTriage(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `vibe-trio - Trio variant triage for developmental disorders

Usage:
  vibe-trio [options] <command> [arguments]

Commands:
  triage      Filter and classify trio variants against known genes
  config      Show, get or set configuration values
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Triage all families in a pedigree, writing a tab report
  vibe-trio triage --ped families.ped --known-genes ddg2p.tsv

  # Include syndrome region evidence and export filtered VCFs
  vibe-trio triage --ped families.ped --known-genes ddg2p.tsv \
      --regions syndromes.tsv -f vcf -o results/

For more information on a command, use:
  vibe-trio <command> --help
`)
}

func runTriage(args []string) int {
	fs := flag.NewFlagSet("triage", flag.ExitOnError)

	var (
		pedPath      string
		genesPath    string
		genesDBPath  string
		curationDate string
		regionsPath  string
		altIDsPath   string
		maxAF        float64
		outputFormat string
		outputPath   string
		workers      int
	)

	fs.StringVar(&pedPath, "ped", "", "Pedigree file with per-individual VCF paths (required)")
	fs.StringVar(&genesPath, "known-genes", "", "Curated known-gene TSV (gene, inheritance, status, mechanism)")
	fs.StringVar(&genesDBPath, "genes-db", "", "DuckDB path for the known-gene table (default: in-memory)")
	fs.StringVar(&curationDate, "curation-date", "", "Provenance tag for the known-gene table")
	fs.StringVar(&regionsPath, "regions", "", "Syndrome region TSV (chrom, start, end, name, direction)")
	fs.StringVar(&altIDsPath, "alt-ids", "", "Two-column TSV remapping individual IDs for reporting")
	fs.Float64Var(&maxAF, "max-af", viper.GetFloat64("filter.max_af"), "Maximum population allele frequency")
	fs.StringVar(&outputFormat, "f", "tab", "Output format: tab, vcf")
	fs.StringVar(&outputFormat, "output-format", "tab", "Output format: tab, vcf")
	fs.StringVar(&outputPath, "o", "", "Output file, or directory for vcf format (default: stdout)")
	fs.StringVar(&outputPath, "output", "", "Output file, or directory for vcf format (default: stdout)")
	fs.IntVar(&workers, "workers", 0, "Families processed in parallel (default: number of CPUs)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Filter trio variant calls and classify them against known inheritance modes.

Usage:
  vibe-trio triage [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  vibe-trio triage --ped families.ped --known-genes ddg2p.tsv
  vibe-trio triage --ped families.ped --known-genes ddg2p.tsv --max-af 0.005
  vibe-trio triage --ped families.ped -f vcf -o filtered/
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if pedPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --ped argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	families, err := ped.ParseFile(pedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(os.Stderr, "Loaded %d families\n", len(families))

	// Reference databases: a load failure is fatal, the run cannot
	// proceed with a partially loaded authoritative table.
	var genes *genedb.Store
	if genesPath != "" {
		genes, err = genedb.Open(genesDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening known-gene store: %v\n", err)
			return ExitError
		}
		defer genes.Close()
		if err := genes.Load(genesPath, curationDate); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading known-gene table: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(os.Stderr, "Loaded %d known genes\n", genes.GeneCount())
	}

	var regions *regiondb.Index
	if regionsPath != "" {
		regions, err = regiondb.LoadFile(regionsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading syndrome regions: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(os.Stderr, "Loaded %d syndrome regions\n", regions.RegionCount())
	}

	cfg := filter.DefaultConfig()
	if maxAF > 0 {
		cfg.MaxAlleleFreq = maxAF
	}
	if extra := viper.GetStringSlice("filter.consequences"); len(extra) > 0 {
		for _, cq := range extra {
			cfg.Consequences[cq] = true
		}
	}

	pipeline := triage.NewPipeline(genes, regions, cfg)
	pipeline.SetLogger(logger)

	if altIDsPath != "" {
		altIDs, err := loadAltIDs(altIDsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading alternate IDs: %v\n", err)
			return ExitError
		}
		pipeline.SetAltIDs(altIDs)
	}

	if err := runFamilies(pipeline, families, outputFormat, outputPath, workers, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	return ExitSuccess
}

// runFamilies streams families through the pipeline worker pool and
// renders results in submission order.
func runFamilies(pipeline *triage.Pipeline, families []*ped.Family, format, outputPath string, workers int, logger *zap.Logger) error {
	items := make(chan triage.WorkItem, 1)
	var loadErr error

	go func() {
		defer close(items)
		for seq, fam := range families {
			item, err := loadFamily(fam, logger)
			if err != nil {
				loadErr = fmt.Errorf("family %s: %w", fam.ID, err)
				return
			}
			item.Seq = seq
			items <- item
		}
	}()

	results := pipeline.RunFamilies(items, workers)

	var collectErr error
	switch format {
	case "tab":
		collectErr = collectTab(results, outputPath)
	case "vcf":
		collectErr = collectVCF(results, outputPath)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if collectErr != nil {
		return collectErr
	}
	return loadErr
}

// loadFamily materializes every present individual's call stream.
// A parent named in the pedigree without a VCF path is simply absent:
// classification degrades, processing continues.
func loadFamily(fam *ped.Family, logger *zap.Logger) (triage.WorkItem, error) {
	item := triage.WorkItem{Family: fam}

	if fam.Child.VCFPath == "" {
		return item, fmt.Errorf("child %s has no VCF path", fam.Child.ID)
	}

	var err error
	item.Child, item.Header, err = loadCalls(fam.Child.VCFPath, logger)
	if err != nil {
		return item, err
	}
	if fam.Mother != nil && fam.Mother.VCFPath != "" {
		if item.Mother, _, err = loadCalls(fam.Mother.VCFPath, logger); err != nil {
			return item, err
		}
	}
	if fam.Father != nil && fam.Father.VCFPath != "" {
		if item.Father, _, err = loadCalls(fam.Father.VCFPath, logger); err != nil {
			return item, err
		}
	}
	return item, nil
}

func loadCalls(path string, logger *zap.Logger) ([]*vcf.VariantCall, []string, error) {
	parser, err := vcf.NewParser(path)
	if err != nil {
		return nil, nil, err
	}
	defer parser.Close()

	calls, err := vcf.ReadAll(parser, logger)
	if err != nil {
		return nil, nil, err
	}
	return calls, parser.Header(), nil
}

// collectTab writes one tab report across all families.
func collectTab(results <-chan triage.WorkResult, outputPath string) error {
	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	writer := output.NewTabWriter(out)
	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := triage.OrderedCollect(results, func(r triage.WorkResult) error {
		for _, cand := range r.Candidates {
			if err := writer.Write(r.Family, cand); err != nil {
				return fmt.Errorf("write candidate: %w", err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	return writer.Flush()
}

// collectVCF writes one filtered VCF per family into a directory.
func collectVCF(results <-chan triage.WorkResult, outputDir string) error {
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	return triage.OrderedCollect(results, func(r triage.WorkResult) error {
		path := filepath.Join(outputDir, r.Family.Child.ID+".triage.vcf")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()

		writer := output.NewVCFWriter(f, r.Header)
		if err := writer.WriteHeader(); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for _, cand := range r.Candidates {
			if err := writer.Write(r.Family, cand); err != nil {
				return fmt.Errorf("write candidate: %w", err)
			}
		}
		return writer.Flush()
	})
}

// loadAltIDs reads a two-column TSV mapping individual IDs to
// reporting IDs. Pass-through metadata only.
func loadAltIDs(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open alt-id file: %w", err)
	}

	ids := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("alt-id line %q: expected 2 columns", line)
		}
		ids[fields[0]] = fields[1]
	}
	return ids, nil
}
