package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/osmkit/mapscript"
	"github.com/osmkit/mapscript/internal/logging"
	"github.com/osmkit/mapscript/policy"
	"github.com/osmkit/mapscript/runtime/session"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run SCRIPT",
	Short: "Apply a map-styling script to a fresh session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		location := args[0]
		workDir, _ := cmd.Flags().GetString("work-dir")
		jsonMode, _ := cmd.Flags().GetBool("json")
		deny, _ := cmd.Flags().GetBool("no-exec")
		verbose, _ := cmd.Flags().GetBool("verbose")
		configURL, _ := cmd.Flags().GetString("config")

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := logging.New(level)
		slog.SetDefault(logger)

		ctx := context.Background()
		srv, err := newService(ctx, configURL, deny)
		if err != nil {
			logger.Error("failed to initialise", "err", err)
			os.Exit(1)
		}

		var sessionOptions []session.Option
		if workDir != "" {
			sessionOptions = append(sessionOptions, session.WithWorkDir(workDir))
		}
		report, sess, err := srv.Runtime().RunScript(ctx, location, sessionOptions...)
		if report != nil && jsonMode {
			encoded, _ := json.MarshalIndent(report, "", "  ")
			fmt.Println(string(encoded))
		}
		if err != nil {
			logger.Error("script failed", "script", location, "err", err)
			os.Exit(1)
		}
		logger.Info("script completed",
			"script", location,
			"directives", len(report.Outcomes),
			"layers", len(sess.Layers()),
			"durationMs", report.DurationMs)
	},
}

func newService(ctx context.Context, configURL string, deny bool) (*mapscript.Service, error) {
	var options []mapscript.Option
	if deny {
		options = append(options, mapscript.WithPolicy(&policy.Policy{Mode: policy.ModeDeny}))
	}
	if configURL == "" {
		return mapscript.New(options...), nil
	}
	config, err := mapscript.LoadConfig(ctx, configURL)
	if err != nil {
		return nil, err
	}
	return mapscript.NewFromConfig(config, options...)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("work-dir", "", "Initial session working directory")
	runCmd.Flags().Bool("json", false, "Print the run report as JSON")
	runCmd.Flags().Bool("no-exec", false, "Deny directives that invoke external programs")
}
