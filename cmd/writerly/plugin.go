package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPluginCmd(flags *globalFlags) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Work analyzer plugins"}
	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			plugins, err := app.PluginCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			results, err := app.PluginCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var commandPluginName string
	commandsCmd := &cobra.Command{
		Use:   "commands --plugin <name>",
		Short: "List commands exposed by a plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(commandPluginName) == "" {
				return fmt.Errorf("--plugin is required")
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			commands, err := app.PluginCLI.ListCommands(context.Background(), commandPluginName)
			if err != nil {
				return err
			}
			if len(commands) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no commands")
				return nil
			}
			for _, item := range commands {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s timeout_ms=%d title=%q\n", item.ID, item.TimeoutMS, item.Title)
			}
			return nil
		},
	}
	commandsCmd.Flags().StringVar(&commandPluginName, "plugin", "", "plugin name")
	plugin.AddCommand(commandsCmd)

	var analyzePluginName, analyzeCommandID string
	analyzeCmd := &cobra.Command{
		Use:   "analyze <work-id> --plugin <name> --command <id>",
		Short: "Run an analyzer over a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(analyzePluginName) == "" || strings.TrimSpace(analyzeCommandID) == "" {
				return fmt.Errorf("--plugin and --command are required")
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.PluginCLI.Analyze(context.Background(), analyzePluginName, analyzeCommandID, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plugin=%s command=%s work=%q exit=%d\n", out.PluginName, out.CommandID, out.WorkTitle, out.ExitCode)
			if strings.TrimSpace(out.Stdout) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Stdout)
			}
			if strings.TrimSpace(out.Stderr) != "" {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), out.Stderr)
			}
			if strings.TrimSpace(out.OutputJSON) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OutputJSON)
			}
			return nil
		},
	}
	analyzeCmd.Flags().StringVar(&analyzePluginName, "plugin", "", "plugin name")
	analyzeCmd.Flags().StringVar(&analyzeCommandID, "command", "", "command id")
	plugin.AddCommand(analyzeCmd)

	return plugin
}
