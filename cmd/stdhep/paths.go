package main

import (
	"os"
	"path/filepath"
	"strings"
)

// resolveDumpOut returns the cleaned output path for dump, creating its
// directory. An empty flag or "-" selects stdout and yields "".
func resolveDumpOut(outFlag string) (string, error) {
	outFlag = strings.TrimSpace(outFlag)
	if outFlag == "" || outFlag == "-" {
		return "", nil
	}
	outPath := filepath.Clean(outFlag)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	return outPath, nil
}
