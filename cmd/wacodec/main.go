// Command wacodec converts WeakAuras import/export strings to and from
// pretty-printed JSON.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wacodec",
		Short:         "Converts WeakAuras-compatible strings to JSON and vice versa",
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newEncodeCmd())
	return root
}
