package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matst80/slask-table/pkg/render"
	"github.com/matst80/slask-table/pkg/types"
)

func newRenderCmd(opts *options) *cobra.Command {
	var html bool
	cmd := &cobra.Command{
		Use:   "render [QUERY]",
		Short: "Print one table page for a query string",
		Long:  "Print one table page, e.g. datatable render 'q=lamp&sort=price:desc&size=20'",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cfg.Log.Level = "warn"
			defer setupLogging(cfg)()

			tbl, err := loadTable(cfg)
			if err != nil {
				return err
			}
			state, err := types.TableStateFromQueryString(strings.Join(args, "&"))
			if err != nil {
				return err
			}
			result := tbl.Apply(cmd.Context(), state)
			if html {
				return render.HTML(cmd.OutOrStdout(), tbl, result)
			}
			return render.Text(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "print the html page instead of text")
	return cmd
}
