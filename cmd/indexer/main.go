// Command indexer builds an inverted index over a WARC/ZIP web archive
// under a hard memory ceiling.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gcbaptista/webwarcindex/config"
	"github.com/gcbaptista/webwarcindex/internal/build"
	"github.com/gcbaptista/webwarcindex/internal/memguard"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	var (
		help      = flag.Bool("help", false, "Show help message")
		version   = flag.Bool("version", false, "Show version information")
		memoryMB  = flag.Int("m", 0, "Memory ceiling in megabytes (required)")
		outputDir = flag.String("o", "index_data", "Output directory for final/ and cache/")
		resume    = flag.Bool("resume", false, "Resume a build over non-empty staging directories")
		plaintext = flag.Bool("plaintext", false, "Treat archive bodies as plaintext, skipping HTML extraction")
	)
	flag.Parse()

	if *help {
		printHelp()
		return
	}
	if *version {
		fmt.Println("webwarcindex-indexer v1.0.0")
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "exactly one archive path is required")
		os.Exit(1)
	}

	settings := config.DefaultBuildSettings(args[0], *outputDir, *memoryMB)
	settings.Resume = *resume
	settings.Plaintext = *plaintext

	if problems := settings.Validate(); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, "config error:", p)
		}
		os.Exit(1)
	}

	stop := memguard.Enforce(*memoryMB)
	defer stop()

	log.Printf("building index from %s into %s (ceiling=%dMB, plaintext=%v, resume=%v)",
		settings.ArchivePath, settings.OutputDir, settings.MemoryCeilingMB, settings.Plaintext, settings.Resume)

	orchestrator := build.NewOrchestrator(settings)
	if err := orchestrator.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}

	log.Println("build complete")
}

func printHelp() {
	fmt.Printf("webwarcindex-indexer - builds an inverted index over a WARC/ZIP web archive\n\n")
	fmt.Printf("Usage: %s -m <MB> [options] <archive.zip>\n\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
	fmt.Printf("\nExamples:\n")
	fmt.Printf("  %s -m 2048 corpus.zip                  # build with a 2GB ceiling\n", os.Args[0])
	fmt.Printf("  %s -m 512 -plaintext corpus.zip         # skip HTML extraction\n", os.Args[0])
	fmt.Printf("  %s -m 2048 -resume corpus.zip           # continue a prior build\n", os.Args[0])
}
