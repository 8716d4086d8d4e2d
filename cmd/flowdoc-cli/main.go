// Flowdoc CLI — инструмент командной строки для управления
// спецификациями, версиями и графами через HTTP API.
//
// Использование:
//
//	flowdoc [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	spec     Управление спецификациями
//	version  Управление версиями (форк, статус, дифф, импорт)
//	user     Управление пользователями
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Flowdoc/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "flowdoc",
		Short:         "Flowdoc CLI — specification authoring tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewSpecCmd(clientFn, outputFn),
		cli.NewVersionCmd(clientFn, outputFn),
		cli.NewUserCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
