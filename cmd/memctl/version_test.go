package main

import "testing"

func TestVersionCommand(t *testing.T) {
	withFlags(t, 4096, 0, false)

	output, err := captureOutput(t, runVersion)
	if err != nil {
		t.Fatalf("runVersion: %v", err)
	}
	assertContains(t, output, []string{"memctl dev", "commit: none"})
}
