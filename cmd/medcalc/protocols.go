package main

import (
	"github.com/spf13/cobra"
)

func newProtocolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "protocols",
		Short: "List the available scoring protocols",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderer().RenderCatalog(cmd.OutOrStdout(), a.engine.Registry().List())
		},
	}
}
