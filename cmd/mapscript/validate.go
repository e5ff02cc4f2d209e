package main

import (
	"context"
	"fmt"
	"os"

	"github.com/osmkit/mapscript"
	"github.com/spf13/cobra"
)

// validateCmd parses a script without executing it
var validateCmd = &cobra.Command{
	Use:   "validate SCRIPT",
	Short: "Parse a script and report grammar errors without executing it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		location := args[0]
		srv := mapscript.New()
		script, err := srv.Runtime().LoadScript(context.Background(), location)
		if err != nil {
			fmt.Printf("invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("ok: %s (%d directives)\n", script.Name, len(script.Directives))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
