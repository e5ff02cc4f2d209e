package main

import (
	"fmt"

	"github.com/osmkit/mapscript"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mapscript",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mapscript version %s\n", mapscript.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
