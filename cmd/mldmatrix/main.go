// Command mldmatrix runs the many-to-many MLD engine against a JSON
// fixture — developer/demo tooling around the core, not a routing
// service: no map loading, no phantom snapping, no result persistence.
package main

import (
	"os"

	"golang.org/x/exp/slog"

	"github.com/ttpr0/mldmatrix/app"
)

func main() {
	slog.SetDefault(slog.New(app.NewLogHandler(os.Stderr, nil)))
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
