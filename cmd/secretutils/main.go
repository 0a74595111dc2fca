// Command secretutils is a small CLI for exercising the transparent
// encryption layer against a running Secret Network node: generating
// encryption identities, managing known networks, and running one-off
// encrypted smart queries from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/scrt-labs/secret-sdk-go/cmd/secretutils/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
