package cmd

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	txkvCmd.AddCommand(
		&cobra.Command{
			Use:   "config",
			Short: "List the config variables, where each was set, and their values",
			Run: func(cmd *cobra.Command, args []string) {
				tw := tablewriter.NewWriter(os.Stdout)
				tw.SetAutoFormatHeaders(false)
				tw.SetHeader([]string{"name", "by", "value"})
				cfg.List(
					func(name, by, val string) {
						tw.Append([]string{name, by, val})
					})
				tw.Render()
			},
		})
}
