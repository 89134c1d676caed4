// Command cart generates product keys, validates catalogs and runs cart
// scenarios.
//
// Usage:
//
//	cart key ipad-case color=red
//	cart validate ./catalog
//	cart run ./scenarios/merge_quantities.yaml
//	cart test ./scenarios --golden ./golden
package main

import (
	"fmt"
	"os"

	"github.com/roach88/cartstate/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
