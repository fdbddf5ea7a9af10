// Command mfctl is the admin tool for a muscleforge database: it applies the
// schema, creates accounts and serves one account's data to MCP clients over stdio.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
