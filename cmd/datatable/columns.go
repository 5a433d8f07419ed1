package main

import (
	"github.com/spf13/cobra"

	"github.com/matst80/slask-table/pkg/render"
	"github.com/matst80/slask-table/pkg/types"
)

func newColumnsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List the column descriptors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl := render.NewPlainTable(cmd.OutOrStdout())
			tbl.SetHeader([]string{"ID", "HEADER", "WIDGET", "FILTER", "AGGREGATE"})
			for _, c := range types.DefaultColumns() {
				aggregate := string(c.Aggregate)
				if aggregate == "" {
					aggregate = "-"
				}
				tbl.Append([]string{c.Id, c.Header, string(c.Filter), c.FilterType, aggregate})
			}
			tbl.Render()
			return nil
		},
	}
}
