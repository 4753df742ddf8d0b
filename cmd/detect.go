package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var detData dataFlags

var detectCmd = &cobra.Command{
	Use:   "detect <file> <x> [y]",
	Short: "Pick a chart kind (histogram|bar|scatter|boxlike) for one or two columns",
	Example: `  plotease detect mtcars.csv mpg
  plotease detect mtcars.csv mpg cyl`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := openWorkbench(args[0], &detData, "")
		if err != nil {
			return err
		}
		y := ""
		if len(args) == 3 {
			y = args[2]
		}
		kind, err := wb.DetectPlotType(args[1], y)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), kind)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detData.bind(detectCmd)
}
