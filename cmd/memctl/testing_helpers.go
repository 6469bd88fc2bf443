package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// withFlags sets the memory sizing and output flags for one test and restores
// the previous values afterwards.
func withFlags(t *testing.T, size uint64, nodes int, asJSON bool) {
	t.Helper()
	prevSize, prevNodes, prevJSON, prevQuiet, prevColor := totalSize, nodeCap, jsonOut, quiet, noColor
	totalSize, nodeCap, jsonOut, quiet, noColor = size, nodes, asJSON, false, true
	t.Cleanup(func() {
		totalSize, nodeCap, jsonOut, quiet, noColor = prevSize, prevNodes, prevJSON, prevQuiet, prevColor
	})
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// decodeJSON checks that output is valid JSON and decodes it into v
func decodeJSON(t *testing.T, output string, v interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
