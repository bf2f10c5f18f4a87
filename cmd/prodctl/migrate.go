package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Produccion-api/internal/domain"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrar la instantánea local de productos a PostgreSQL",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Registros locales y remotos, y si hace falta migrar",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := e.migrator(cmd.Context(), true)
				if err != nil {
					return err
				}
				st, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				return pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
					{"Campo", "Valor"},
					{"Registros locales", strconv.Itoa(st.LocalRecords)},
					{"Registros remotos", strconv.Itoa(st.RemoteRecords)},
					{"Respaldo", yesNo(st.HasBackup)},
					{"Requiere migración", yesNo(st.NeedsMigration)},
				}).Render()
			},
		},
		&cobra.Command{
			Use:   "run",
			Short: "Ejecutar la migración (solo si el remoto está vacío)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := e.migrator(cmd.Context(), true)
				if err != nil {
					return err
				}
				spinner, _ := pterm.DefaultSpinner.Start("Migrando productos...")
				rec, err := m.Migrate(cmd.Context())
				if errors.Is(err, domain.ErrGuardViolation) {
					spinner.Warning("El remoto ya tiene productos; no se migró nada")
					return nil
				}
				if err != nil {
					spinner.Fail(err.Error())
					return err
				}
				if rec.Success {
					spinner.Success(fmt.Sprintf("%d productos migrados", rec.MigratedCount))
					return nil
				}
				spinner.Warning(fmt.Sprintf("%d productos migrados, %d errores", rec.MigratedCount, len(rec.Errors)))
				for _, msg := range rec.Errors {
					pterm.Error.Println(msg)
				}
				return fmt.Errorf("migración incompleta")
			},
		},
		&cobra.Command{
			Use:   "restore",
			Short: "Sobrescribir la instantánea local con el último respaldo",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := e.migrator(cmd.Context(), false)
				if err != nil {
					return err
				}
				ok, err := m.RestoreFromBackup(cmd.Context())
				if err != nil {
					return err
				}
				if !ok {
					pterm.Warning.Println("No hay respaldo")
					return nil
				}
				pterm.Success.Println("Instantánea restaurada desde el respaldo")
				return nil
			},
		},
		&cobra.Command{
			Use:   "import <archivo.json>",
			Short: "Cargar un export JSON de la aplicación anterior en el almacén local",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				blob, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				m, err := e.migrator(cmd.Context(), false)
				if err != nil {
					return err
				}
				n, err := m.Import(cmd.Context(), blob)
				if err != nil {
					return err
				}
				pterm.Success.Printfln("%d registros importados de %s", n, args[0])
				return nil
			},
		},
	)
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}
