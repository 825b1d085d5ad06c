//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "mad-fusion: this binary was built without the window (ebiten tag).")
	fmt.Fprintln(os.Stderr, "  window:   go run -tags ebiten ./cmd/fusion")
	fmt.Fprintln(os.Stderr, "  terminal: go run ./cmd/fusion-term")
	fmt.Fprintln(os.Stderr, "  headless: go run ./cmd/fusion-sweep")
	os.Exit(2)
}
