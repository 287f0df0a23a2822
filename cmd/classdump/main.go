package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/Karim632/diploma/classfile"
	"github.com/Karim632/diploma/format"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("classdump")

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:   "classdump",
		Short: "Decode and dump JVM class files",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newParseCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newParseCmd() *cobra.Command {
	var outputFormat string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "parse <classfile>",
		Short: "Parse a class file and dump the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			log.Infof("parsing %s", filename)
			class, err := classfile.ParseFile(filename)
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}

			var out io.Writer = os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(out)
			case "text":
				encoder = format.NewTextEncoder(out)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(class); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (json, text)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write output to file instead of stdout")

	return cmd
}
