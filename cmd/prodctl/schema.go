package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Produccion-api/internal/infrastructure/postgres"
)

func newSchemaCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Aplicar las migraciones de esquema pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := e.openPool(cmd.Context())
			if err != nil {
				return err
			}
			n, err := postgres.Migrate(cmd.Context(), pool, e.logger().Component("schema"))
			if err != nil {
				return err
			}
			if n == 0 {
				pterm.Info.Println("Esquema al día")
				return nil
			}
			pterm.Success.Printfln("%d migraciones aplicadas", n)
			return nil
		},
	}
}
