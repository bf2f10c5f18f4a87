// prodctl herramienta de operación: migración de la instantánea local heredada
// hacia PostgreSQL y mantenimiento del esquema.
package main

import (
	"os"

	"github.com/pterm/pterm"
)

func main() {
	root, closeEnv := newRootCmd()
	err := root.Execute()
	closeEnv()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
