// Package order loads the canonical sheet-name ranking.
package order

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// RankMap maps a sheet name to its 1-based rank in the order list.
type RankMap map[string]int

// Rank returns the rank of name and whether it is ranked at all.
func (m RankMap) Rank(name string) (int, bool) {
	r, ok := m[name]
	return r, ok
}

// DuplicateSheetNameError reports sheet names listed more than once in an order file.
type DuplicateSheetNameError struct {
	// Path is the order file the names were read from.
	Path string
	// Names holds every repeated name once, in first-duplicate-encountered order.
	Names []string
}

func (e *DuplicateSheetNameError) Error() string {
	return fmt.Sprintf("duplicate sheet names in order file %s: [%s]", e.Path, strings.Join(e.Names, ","))
}

// Load builds a RankMap from lines. source names the origin of lines in errors.
func Load(source string, lines []string) (RankMap, error) {
	seen := make(map[string]struct{}, len(lines))
	for _, name := range lines {
		seen[name] = struct{}{}
	}
	if len(seen) != len(lines) {
		return nil, &DuplicateSheetNameError{Path: source, Names: duplicates(lines)}
	}

	ranks := make(RankMap, len(lines))
	for i, name := range lines {
		ranks[name] = i + 1
	}
	return ranks, nil
}

// duplicates returns names appearing more than once, each reported at its second occurrence.
func duplicates(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	reported := make(map[string]struct{})
	var dups []string
	for _, name := range lines {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			continue
		}
		if _, ok := reported[name]; ok {
			continue
		}
		reported[name] = struct{}{}
		dups = append(dups, name)
	}
	return dups
}

// ReadLines reads a UTF-8 order file, one sheet name per line.
// A leading byte order mark is stripped, CRLF line endings are accepted and
// blank lines are ignored since a sheet name is never empty.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read order file %s: %w", path, err)
	}
	return lines, nil
}

// LoadFile reads path and builds its RankMap.
func LoadFile(path string) (RankMap, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	return Load(path, lines)
}
