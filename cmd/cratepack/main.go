// Cratepack — container loading planner.
//
// Packs a box-type manifest into shipping containers using the Z-First,
// LAFF, Simple-Index, or Guided algorithms, and reports the resulting
// layout as a row/cell grid.
//
// Build:
//
//	go build -o cratepack ./cmd/cratepack
package main

import (
	"fmt"
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("cratepack failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
