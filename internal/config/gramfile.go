package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadGrammarLines opens path and yields its trimmed, blank-free lines -- the
// sequence form the grammar parser consumes. A failure to open the file is
// an input-surface error.
func ReadGrammarLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grammar file %q: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read grammar file %q: %w", path, err)
	}
	return lines, nil
}
