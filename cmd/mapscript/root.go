package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mapscript",
	Short: "Mapscript applies declarative map-styling scripts",
	Long:  `Mapscript interprets map-styling scripts: ordered name key=value directives that configure a rendering session, load map data sources and invoke external tooling.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path of a YAML configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
