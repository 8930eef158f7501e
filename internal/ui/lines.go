// Package ui holds the viewer overlay.
package ui

import (
	"fmt"

	"gol-miner/internal/loop"
)

// Lines formats a tick report for display.
func Lines(r loop.Report) []string {
	return []string{
		fmt.Sprintf("tick        %d", r.Tick),
		fmt.Sprintf("generation  %d", r.Generation),
		fmt.Sprintf("alive       %d", r.Alive),
		fmt.Sprintf("shapes      %d", r.Occurrences),
		fmt.Sprintf("clusters    %d", r.Clusters),
		fmt.Sprintf("saved       %d", len(r.Saved)),
	}
}
