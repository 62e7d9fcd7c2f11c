// Command ltfountain is a demonstration CLI around the lt fountain codec:
// it chunks an input file into source blocks, runs them through an
// Encoder and a loss-simulating channel into a Decoder, and reports
// whether and how fast the original was recovered. The chunking and
// loss-simulation performed here are explicitly outside the core lt
// package (spec.md §1 scopes "any file chunker" to an external
// collaborator) — this command is that collaborator.
package main

import (
	"fmt"
	"os"

	"github.com/fountaincodec/lt/cmd/ltfountain/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
