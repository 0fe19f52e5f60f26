// Package main provides the CLI entrypoint for deepgraph.
//
// deepgraph is a reflective deep-clone and structural equality engine. The
// CLI covers its static side:
//   - scan: reads //deepgraph: directives and infers immutable types into a manifest
//   - check: validates a manifest and an engine config file
//   - config: prints the default engine config
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
