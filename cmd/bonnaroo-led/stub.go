//go:build !tinygo

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "bonnaroo-led is a firmware image; build it with tinygo:")
	fmt.Fprintln(os.Stderr, "  tinygo flash -target=teensy40 ./cmd/bonnaroo-led")
	fmt.Fprintln(os.Stderr, "For a desktop build, run bonnaroo-sim instead.")
	os.Exit(1)
}
