package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/olekukonko/tablewriter"
	"github.com/sliverarmory/shlibs"
	"github.com/spf13/cobra"
)

var (
	showSegments bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:          "shlibs",
	Short:        "List the shared libraries mapped into this process, with load bias and GNU build id",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.NewNopLogger()
		if verbose {
			logger = level.NewFilter(
				log.NewLogfmtLogger(log.NewSyncWriter(cmd.ErrOrStderr())),
				level.AllowDebug(),
			)
		}

		libs, err := shlibs.Libraries()
		if err != nil {
			return err
		}
		level.Debug(logger).Log("msg", "enumerated mapped objects", "count", len(libs))

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Library", "Bias", "Build ID", "Segments", "Code"})
		for _, lib := range libs {
			var code uint64
			for _, seg := range lib.Segments {
				if seg.IsCode {
					code += uint64(seg.Len)
				}
				level.Debug(logger).Log(
					"lib", lib.Name,
					"segment", seg.Name,
					"svma", fmt.Sprintf("%#x", uintptr(seg.SVMA)),
					"len", seg.Len,
					"code", seg.IsCode,
				)
			}
			table.Append([]string{
				lib.Name,
				fmt.Sprintf("%#x", int(lib.Bias)),
				lib.BuildID.String(),
				fmt.Sprintf("%d", len(lib.Segments)),
				humanize.Bytes(code),
			})
		}
		table.Render()

		if showSegments {
			for _, lib := range libs {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", lib.Name)
				segTable := tablewriter.NewWriter(cmd.OutOrStdout())
				segTable.SetHeader([]string{"Segment", "SVMA", "Length", "Code"})
				for _, seg := range lib.Segments {
					segTable.Append([]string{
						seg.Name,
						fmt.Sprintf("%#x", uintptr(seg.SVMA)),
						humanize.Bytes(uint64(seg.Len)),
						fmt.Sprintf("%t", seg.IsCode),
					})
				}
				segTable.Render()
			}
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVar(&showSegments, "segments", false, "Print the full segment table for every mapped object")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-segment details to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
