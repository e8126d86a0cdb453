// Command queryserver is an optional long-lived HTTP front-end over the
// same query pipeline cmd/query uses in batch mode: it loads the term
// directory once at startup and serves GET /search?q=...&r=BM25
// requests against it, the teacher's own persistent-server shape
// re-pointed at this domain instead of a JSON document API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gcbaptista/webwarcindex/internal/ranking"
	"github.com/gcbaptista/webwarcindex/internal/searchengine"
)

type searchResponse struct {
	RequestID string                `json:"request_id"`
	Query     string                `json:"query"`
	Ranking   string                `json:"ranking"`
	Results   []searchengine.Result `json:"results"`
	ElapsedMS float64               `json:"elapsed_ms"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	var (
		help      = flag.Bool("help", false, "Show help message")
		version   = flag.Bool("version", false, "Show version information")
		port      = flag.String("port", "8080", "Port to run the server on")
		indexPath = flag.String("i", "", "Path to the final index file (required)")
	)
	flag.Parse()

	if *help {
		printHelp()
		return
	}
	if *version {
		fmt.Println("webwarcindex-queryserver v1.0.0")
		return
	}
	if *indexPath == "" {
		fmt.Fprintln(os.Stderr, "config error: -i is required")
		os.Exit(1)
	}

	indexDir := filepath.Dir(*indexPath)
	engine, err := searchengine.Open(
		*indexPath,
		filepath.Join(indexDir, "count"),
		filepath.Join(indexDir, "url_index"),
		filepath.Join(indexDir, "termdir.gob"),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open index: %v\n", err)
		os.Exit(1)
	}

	router := gin.Default()
	router.GET("/search", searchHandler(engine))

	srv := &http.Server{
		Addr:           ":" + *port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("query server listening on port %s", *port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down query server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	log.Println("query server exited")
}

// searchRequest binds and validates /search's query parameters via
// gin's validator-backed binding, instead of hand-checking each one.
type searchRequest struct {
	Query   string `form:"q" binding:"required"`
	Ranking string `form:"r" binding:"omitempty,oneof=TFIDF BM25"`
}

func searchHandler(engine *searchengine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req searchRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fn := ranking.Function(req.Ranking)
		if fn == "" {
			fn = ranking.TFIDF
		}

		requestID := uuid.New().String()
		start := time.Now()
		results, err := engine.Search(req.Query, fn)
		elapsed := time.Since(start)

		if err != nil {
			log.Printf("request %s: query %q failed: %v", requestID, req.Query, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed", "request_id": requestID})
			return
		}

		log.Printf("request %s: query %q answered in %v (%d results)", requestID, req.Query, elapsed, len(results))
		c.JSON(http.StatusOK, searchResponse{
			RequestID: requestID,
			Query:     req.Query,
			Ranking:   string(fn),
			Results:   results,
			ElapsedMS: float64(elapsed.Microseconds()) / 1000.0,
		})
	}
}

func printHelp() {
	fmt.Printf("webwarcindex-queryserver - HTTP front-end over a built index\n\n")
	fmt.Printf("Usage: %s -i <final/index path> [options]\n\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
	fmt.Printf("\nExample:\n")
	fmt.Printf("  %s -i index_data/final/index -port 9000\n", os.Args[0])
	fmt.Printf("  curl 'http://localhost:9000/search?q=gato&r=BM25'\n")
}
