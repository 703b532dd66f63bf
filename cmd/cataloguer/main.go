// Command cataloguer is the minimal entry point wiring configuration,
// the Catalogue Store, and the engine's library functions together,
// dispatching on os.Args[1] for a single linear log.Printf-driven run
// rather than a flag-heavy CLI framework. Argument parsing here is
// intentionally plain: one flag.NewFlagSet per subcommand is enough.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/llehouerou/waves/internal/catalogue"
	"github.com/llehouerou/waves/internal/cataloguecli"
	"github.com/llehouerou/waves/internal/catalogueconfig"
	"github.com/llehouerou/waves/internal/extractor"
	"github.com/llehouerou/waves/internal/scanner"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		log.Println("usage: cataloguer <scan|compat|compat-export|playlist|import-mik|import-rekordbox|import-traktor|summary> [flags]")
		return cataloguecli.ExitError
	}

	cfg, err := catalogueconfig.Load("")
	if err != nil {
		log.Printf("load config: %v", err)
		return cataloguecli.ExitError
	}
	dataPath, err := cfg.DataPath()
	if err != nil {
		log.Printf("resolve data path: %v", err)
		return cataloguecli.ExitError
	}
	cat, err := catalogue.Open(dataPath, cfg.PoolSize)
	if err != nil {
		log.Printf("open catalogue: %v", err)
		return cataloguecli.ExitError
	}
	defer cat.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "scan":
		return runScan(ctx, cat, cfg, args[1:])
	case "compat":
		return runCompat(cat, args[1:])
	case "compat-export":
		return runCompatExport(cat, args[1:])
	case "playlist":
		return runPlaylist(cat, cfg, args[1:])
	case "import-mik":
		return runImportMIK(cat, args[1:])
	case "import-rekordbox":
		return runImportRekordbox(cat, args[1:])
	case "import-traktor":
		return runImportTraktor(cat, args[1:])
	case "summary":
		return runSummary(cat, args[1:])
	default:
		log.Printf("unknown command %q", args[0])
		return cataloguecli.ExitError
	}
}

func runScan(ctx context.Context, cat *catalogue.Catalogue, cfg catalogueconfig.Config, args []string) int {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	mode := fs.String("mode", "smart", "full|incremental|smart")
	batchSize := fs.Int("batch-size", cfg.Scan.BatchSize, "rows per commit batch")
	workers := fs.Int("workers", 0, "extraction worker count (0 = default)")
	if err := fs.Parse(args); err != nil || fs.NArg() < 1 {
		log.Println("usage: cataloguer scan <root> [--mode full|incremental|smart] [--batch-size N] [--workers N]")
		return cataloguecli.ExitError
	}

	outcome, err := cataloguecli.Scan(ctx, cat, extractor.TagsOnly{}, cataloguecli.ScanParams{
		Root:                fs.Arg(0),
		Mode:                *mode,
		BatchSize:           *batchSize,
		Workers:             *workers,
		ValidatePermissions: cfg.Scan.ValidatePerms,
		MemoryLimitMB:       float64(cfg.Scan.MemoryLimitMB),
	}, func(p scanner.Progress) {
		log.Printf("discovered=%d processed=%d cached=%d analyzed=%d errors=%d rate=%.1f/s current=%s",
			p.Discovered, p.Processed, p.Cached, p.Analyzed, p.Errors, p.FilesPerSec, p.CurrentPath)
		if p.MemoryWarning {
			log.Printf("warning: memory high-water mark %.1f MB crosses configured limit %d MB", p.MemoryMB, cfg.Scan.MemoryLimitMB)
		}
	})
	if err != nil {
		log.Printf("scan: %v", err)
		return cataloguecli.ExitCode(err)
	}
	log.Printf("scan complete: %+v", outcome.Counters)
	return cataloguecli.ExitOK
}

func runCompat(cat *catalogue.Catalogue, args []string) int {
	fs := flag.NewFlagSet("compat", flag.ContinueOnError)
	path := fs.String("path", "", "seed track path")
	top := fs.Int("top", 20, "max results")
	if err := fs.Parse(args); err != nil || *path == "" {
		log.Println("usage: cataloguer compat --path P [--top N]")
		return cataloguecli.ExitError
	}

	results, err := cataloguecli.Compat(cat, cataloguecli.CompatParams{Path: *path, Top: *top})
	if err != nil {
		log.Printf("compat: %v", err)
		return cataloguecli.ExitCode(err)
	}
	for _, r := range results {
		fmt.Println(cataloguecli.FormatCompatLine(r))
	}
	return cataloguecli.ExitOK
}

func runCompatExport(cat *catalogue.Catalogue, args []string) int {
	fs := flag.NewFlagSet("compat-export", flag.ContinueOnError)
	path := fs.String("path", "", "seed track path")
	out := fs.String("out", "", "output CSV path")
	top := fs.Int("top", 20, "max results")
	preferRelative := fs.Bool("prefer-relative", false, "prefer relative-key transitions")
	if err := fs.Parse(args); err != nil || *path == "" || *out == "" {
		log.Println("usage: cataloguer compat-export --path P --out F [--top N] [--prefer-relative]")
		return cataloguecli.ExitError
	}

	err := cataloguecli.CompatExport(cat, cataloguecli.CompatExportParams{
		CompatParams: cataloguecli.CompatParams{Path: *path, Top: *top, PreferRelative: *preferRelative},
		Out:          *out,
	})
	if err != nil {
		log.Printf("compat-export: %v", err)
		return cataloguecli.ExitCode(err)
	}
	return cataloguecli.ExitOK
}

func runPlaylist(cat *catalogue.Catalogue, cfg catalogueconfig.Config, args []string) int {
	if len(args) == 0 || args[0] != "generate" {
		log.Println("usage: cataloguer playlist generate --seed P [--length L] [--curve ascending|descending|flat] [--bpm-tol PCT] [--prefer-relative] [--out F]")
		return cataloguecli.ExitError
	}

	fs := flag.NewFlagSet("playlist generate", flag.ContinueOnError)
	seed := fs.String("seed", "", "seed track path")
	length := fs.Int("length", cfg.Sequencer.DefaultLength, "playlist length")
	curve := fs.String("curve", cfg.Sequencer.DefaultCurve, "ascending|descending|flat")
	bpmTol := fs.Float64("bpm-tol", cfg.Sequencer.BPMTolerance, "initial bpm tolerance fraction")
	preferRelative := fs.Bool("prefer-relative", cfg.Sequencer.PreferRelative, "prefer relative-key transitions")
	out := fs.String("out", "", "output M3U or CSV path")
	if err := fs.Parse(args[1:]); err != nil || *seed == "" {
		log.Println("usage: cataloguer playlist generate --seed P [--length L] [--curve ascending|descending|flat] [--bpm-tol PCT] [--prefer-relative] [--out F]")
		return cataloguecli.ExitError
	}

	result, err := cataloguecli.PlaylistGenerate(cat, cataloguecli.PlaylistGenerateParams{
		Seed:           *seed,
		Length:         *length,
		Curve:          *curve,
		BPMTolerance:   *bpmTol,
		PreferRelative: *preferRelative,
		Out:            *out,
	})
	if err != nil {
		log.Printf("playlist generate: %v", err)
		return cataloguecli.ExitCode(err)
	}
	log.Printf("generated %d tracks, compliance=%.2f%%", len(result.Plan), result.Validation.ComplianceRate*100)
	return cataloguecli.ExitOK
}

func runImportMIK(cat *catalogue.Catalogue, args []string) int {
	fs := flag.NewFlagSet("import-mik", flag.ContinueOnError)
	csvPath := fs.String("csv", "", "MixedInKey CSV export path")
	root := fs.String("root", "", "root relative paths resolve against")
	if err := fs.Parse(args); err != nil || *csvPath == "" {
		log.Println("usage: cataloguer import-mik --csv F [--root R]")
		return cataloguecli.ExitError
	}
	report, err := cataloguecli.ImportMIK(cat, cataloguecli.ImportParams{File: *csvPath, Root: *root})
	return reportImport(report, err)
}

func runImportRekordbox(cat *catalogue.Catalogue, args []string) int {
	fs := flag.NewFlagSet("import-rekordbox", flag.ContinueOnError)
	xmlPath := fs.String("xml", "", "Rekordbox collection XML path")
	root := fs.String("root", "", "root relative paths resolve against")
	if err := fs.Parse(args); err != nil || *xmlPath == "" {
		log.Println("usage: cataloguer import-rekordbox --xml F [--root R]")
		return cataloguecli.ExitError
	}
	report, err := cataloguecli.ImportRekordbox(cat, cataloguecli.ImportParams{File: *xmlPath, Root: *root})
	return reportImport(report, err)
}

func runImportTraktor(cat *catalogue.Catalogue, args []string) int {
	fs := flag.NewFlagSet("import-traktor", flag.ContinueOnError)
	nmlPath := fs.String("nml", "", "Traktor collection NML path")
	root := fs.String("root", "", "root relative paths resolve against")
	if err := fs.Parse(args); err != nil || *nmlPath == "" {
		log.Println("usage: cataloguer import-traktor --nml F [--root R]")
		return cataloguecli.ExitError
	}
	report, err := cataloguecli.ImportTraktor(cat, cataloguecli.ImportParams{File: *nmlPath, Root: *root})
	return reportImport(report, err)
}

func reportImport(report *cataloguecli.ImportReport, err error) int {
	if err != nil {
		log.Printf("import: %v", err)
		return cataloguecli.ExitCode(err)
	}
	log.Printf("import complete: parsed=%d merged=%d skipped=%d", report.Parsed, report.Merged, report.Skipped)
	return cataloguecli.ExitOK
}

func runSummary(cat *catalogue.Catalogue, args []string) int {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	csvPath := fs.String("csv", "", "optional CSV output path")
	if err := fs.Parse(args); err != nil {
		log.Println("usage: cataloguer summary [--csv F]")
		return cataloguecli.ExitError
	}
	stats, err := cataloguecli.Summary(cat, cataloguecli.SummaryParams{CSV: *csvPath})
	if err != nil {
		log.Printf("summary: %v", err)
		return cataloguecli.ExitCode(err)
	}
	fmt.Printf("tracks: %d active, %d missing, %d analyzed, avg bpm %.1f\n",
		stats.ActiveTracks, stats.MissingTracks, stats.AnalyzedTracks, stats.AverageBPM)
	for _, gc := range stats.TopGenres {
		fmt.Printf("  %s: %d\n", gc.Genre, gc.Count)
	}
	return cataloguecli.ExitOK
}
