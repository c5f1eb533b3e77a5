package eval

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"pdfpilot/internal/log"
)

// Item is one question/expected-answer pair of an evaluation set.
type Item struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// maxLineBytes caps a single JSONL record.
const maxLineBytes = 1 << 20

// LoadSet reads an evaluation set from a JSONL file, one record per line.
// Malformed lines are skipped with a warning; the returned items keep file
// order.
func LoadSet(path string) ([]Item, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open eval set: %w", err)
	}
	defer file.Close()

	var items []Item
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Warnf("skipping malformed line %d of %s: %v", lineNo, path, err)
			continue
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read eval set: %w", err)
	}
	log.Infof("loaded %d questions from %s", len(items), path)
	return items, nil
}
