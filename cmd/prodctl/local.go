package main

import (
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newLocalCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Inspeccionar el almacén local SQLite",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "Listar las claves guardadas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openLocal()
			if err != nil {
				return err
			}
			entries, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				pterm.Info.Println("Almacén local vacío")
				return nil
			}
			data := pterm.TableData{{"Clave", "Bytes", "Actualizado"}}
			for _, en := range entries {
				data = append(data, []string{en.Key, strconv.Itoa(en.Size), en.UpdatedAt.Local().Format(time.DateTime)})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	})
	return cmd
}
