package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	_ "github.com/tbourn/vehicle-insurance-api/docs"
	"github.com/tbourn/vehicle-insurance-api/internal/sysutil"
)

// Version is stamped at build time with -ldflags "-X main.Version=...".
var Version = ""

// @title           Vehicle Insurance API
// @version         1.0
// @description     Back office for customer bills, vehicle insurance quotes and driver history lookups.

// @contact.name   API Support

// @license.name  MIT

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func version() string {
	return sysutil.FirstNonEmpty(Version, os.Getenv("APP_VERSION"), "dev")
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vehicle-insurance-api",
		Short:         "Vehicle insurance back office API",
		Version:       version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Without a subcommand the binary serves.
	serve := serveCmd()
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve)
	root.AddCommand(migrateCmd())
	return root
}
