// Package countfile reads and writes per-document term-count files
// (C3): a header line giving the document's total raw token count,
// followed by one "term: count" line per distinct term, in ascending
// term order.
package countfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gcbaptista/webwarcindex/internal/textpipeline"
)

// Write creates path and writes the header line followed by one line
// per term count. counts must already be sorted ascending by term.
func Write(path string, totalTokens int, counts []textpipeline.TermCount) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("countfile: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "%d\n", totalTokens); err != nil {
		return fmt.Errorf("countfile: writing header to %s: %w", path, err)
	}
	for _, tc := range counts {
		if _, err := fmt.Fprintf(w, "%s: %d\n", tc.Term, tc.Count); err != nil {
			return fmt.Errorf("countfile: writing term line to %s: %w", path, err)
		}
	}
	return w.Flush()
}

// Read parses a per-document count file back into its header total and
// its term counts.
func Read(path string) (totalTokens int, counts []textpipeline.TermCount, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	if !scanner.Scan() {
		return 0, nil, fmt.Errorf("countfile: %s: missing header line", path)
	}
	totalTokens, err = strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return 0, nil, fmt.Errorf("countfile: %s: invalid header %q: %w", path, scanner.Text(), err)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		term, count, parseErr := parseTermLine(line)
		if parseErr != nil {
			return 0, nil, fmt.Errorf("countfile: %s: %w", path, parseErr)
		}
		counts = append(counts, textpipeline.TermCount{Term: term, Count: count})
	}
	if err := scanner.Err(); err != nil {
		return 0, nil, fmt.Errorf("countfile: reading %s: %w", path, err)
	}

	return totalTokens, counts, nil
}

func parseTermLine(line string) (term string, count int, err error) {
	idx := strings.LastIndex(line, ": ")
	if idx < 0 {
		return "", 0, fmt.Errorf("malformed term line %q", line)
	}
	term = line[:idx]
	count, err = strconv.Atoi(line[idx+2:])
	if err != nil {
		return "", 0, fmt.Errorf("malformed count in line %q: %w", line, err)
	}
	return term, count, nil
}
