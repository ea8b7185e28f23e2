// Package loader bulk-loads newline-delimited integer keys into an index
// structure. Each line is parsed as a key inserted with itself as the
// value; malformed lines are logged and skipped, while a missing input file
// is an error for the whole load.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"keydex/pkg/logging"
)

// Inserter is the piece of an index structure the loader needs. Both the
// B+ tree (instantiated over int64) and the extendible hash table satisfy
// it.
type Inserter interface {
	Insert(key, value int64) bool
}

// Result summarizes one load run.
type Result struct {
	Processed  int // non-empty lines seen
	Inserted   int // keys newly inserted
	Duplicates int // keys rejected as already present
	Skipped    int // malformed lines
}

// LoadFile reads path line by line and inserts every parsed key into
// target. The returned Result is valid even when an error is returned.
func LoadFile(path string, target Inserter) (*Result, error) {
	result := &Result{}

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("opening input file %q: %w", path, err)
	}
	defer file.Close()

	log := logging.WithComponent("loader")
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result.Processed++

		key, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			log.Warn("skipping malformed line", "file", path, "line", lineNum, "text", line)
			result.Skipped++
			continue
		}

		if target.Insert(key, key) {
			result.Inserted++
		} else {
			result.Duplicates++
		}

		if result.Processed%10000 == 0 {
			log.Debug("load progress", "file", path, "processed", result.Processed)
		}
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("reading input file %q: %w", path, err)
	}

	log.Info("load finished", "file", path,
		"processed", result.Processed,
		"inserted", result.Inserted,
		"duplicates", result.Duplicates,
		"skipped", result.Skipped)

	return result, nil
}
