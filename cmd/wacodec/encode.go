package main

import (
	"github.com/spf13/cobra"

	"github.com/wa-tools/wacodec"
	"github.com/wa-tools/wacodec/internal/errs"
)

func newEncodeCmd() *cobra.Command {
	var outputFile string
	var waVersion string

	cmd := &cobra.Command{
		Use:   "encode <input file>",
		Short: "Converts a JSON string to a WA-compatible one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseWAVersion(waVersion)
			if err != nil {
				return err
			}

			raw, err := readInput(args[0])
			if err != nil {
				return err
			}

			v, err := wacodec.FromJSON(raw)
			if err != nil {
				return err
			}

			out, err := wacodec.Encode(v, version)
			if err != nil {
				return err
			}

			return writeOutput(outputFile, []byte(out))
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Sets the output file to use (default stdout)")
	cmd.Flags().StringVarP(&waVersion, "wa_version", "v", "1",
		"Sets the version of a WA-compatible format (1 - the first version that uses FLATE compression, "+
			"2 - the first version that uses a binary serialization algorithm instead of AceSerializer)")
	return cmd
}

func parseWAVersion(s string) (wacodec.StringVersion, error) {
	switch s {
	case "1":
		return wacodec.Deflate, nil
	case "2":
		return wacodec.BinarySerialization, nil
	default:
		return 0, errs.Newf(errs.UnsupportedVersion, "invalid --wa_version %q, expected 1 or 2", s)
	}
}
