package main

import (
	"bytes"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/wa-tools/wacodec"
)

func newDecodeCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "decode <input file>",
		Short: "Converts a WA-compatible string to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(args[0])
			if err != nil {
				return err
			}

			v, err := wacodec.Decode(string(raw))
			if err != nil {
				return err
			}

			var compact []byte
			if v == nil {
				compact = []byte("null")
			} else if compact, err = wacodec.ToJSON(v); err != nil {
				return err
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, compact, "", "  "); err != nil {
				return err
			}
			pretty.WriteByte('\n')

			return writeOutput(outputFile, pretty.Bytes())
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Sets the output file to use (default stdout)")
	return cmd
}
