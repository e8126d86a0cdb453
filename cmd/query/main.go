// Command query answers a file of queries against a previously built
// index, one result set per line, under a selectable ranking function.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gcbaptista/webwarcindex/config"
	"github.com/gcbaptista/webwarcindex/internal/ranking"
	"github.com/gcbaptista/webwarcindex/internal/searchengine"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	var (
		help        = flag.Bool("help", false, "Show help message")
		version     = flag.Bool("version", false, "Show version information")
		indexPath   = flag.String("i", "", "Path to the final index file (its directory must also hold count and url_index)")
		queryPath   = flag.String("q", "", "Query file, one query per line")
		rankingFlag = flag.String("r", "TFIDF", "Ranking function: TFIDF or BM25")
	)
	flag.Parse()

	if *help {
		printHelp()
		return
	}
	if *version {
		fmt.Println("webwarcindex-query v1.0.0")
		return
	}

	if *indexPath == "" {
		fmt.Fprintln(os.Stderr, "config error: -i is required")
		os.Exit(1)
	}

	settings := config.QuerySettings{IndexDir: filepath.Dir(*indexPath), Ranking: ranking.Function(*rankingFlag)}
	if problems := settings.Validate(); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, "config error:", p)
		}
		os.Exit(1)
	}
	if *queryPath == "" {
		fmt.Fprintln(os.Stderr, "config error: -q is required")
		os.Exit(1)
	}

	engine, err := searchengine.Open(
		*indexPath,
		filepath.Join(settings.IndexDir, "count"),
		filepath.Join(settings.IndexDir, "url_index"),
		filepath.Join(settings.IndexDir, "termdir.gob"),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open index: %v\n", err)
		os.Exit(1)
	}

	queryFile, err := os.Open(*queryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open query file: %v\n", err)
		os.Exit(1)
	}
	defer queryFile.Close()

	scanner := bufio.NewScanner(queryFile)
	for scanner.Scan() {
		q := scanner.Text()
		if q == "" {
			continue
		}

		start := time.Now()
		results, err := engine.Search(q, settings.Ranking)
		elapsed := time.Since(start)

		if err != nil {
			log.Printf("query %q failed: %v", q, err)
			continue
		}

		fmt.Printf("query: %q\n", q)
		for _, r := range results {
			fmt.Printf("  %d\t%.6f\t%s\n", r.DocID, r.Score, r.URL)
		}
		log.Printf("query %q answered in %v (%d results)", q, elapsed, len(results))
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read query file: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Printf("webwarcindex-query - answers queries against a built index\n\n")
	fmt.Printf("Usage: %s -i <final/index path> -q <query_file> [-r TFIDF|BM25]\n\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}
