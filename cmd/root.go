package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khrees2412/cvblue/internal/app"
	"github.com/spf13/cobra"
)

// application is kept outside the command context so Execute can close it
var application *app.App

var rootCmd = &cobra.Command{
	Use:   "cvblue",
	Short: "Build, preview and export CVs from the terminal",
	Long: `CV Blue keeps several named CVs on your machine, lets you edit their
personal info, experience, education, skills, languages and projects,
renders them in a classic or modern layout and exports them as JSON, XML or PDF.`,
	Version:       "0.1.0",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize app with all dependencies
		a, err := app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		application = a

		// Store app in command context
		cmd.SetContext(app.WithApp(cmd.Context(), a))

		if a.Store.Degraded() {
			fmt.Fprintln(os.Stderr, warnStyle.Render("⚠ Storage is unavailable; changes will not be saved."))
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	// Cleanup: flush pending edits and close app resources
	if application != nil {
		if cerr := application.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save CVs: %v\n", cerr)
		}
	}

	if err != nil {
		if app.IsSoft(err) {
			fmt.Fprintln(os.Stderr, warnStyle.Render("⚠ "+app.Notify(err)))
			return
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+app.Notify(err)))
		stop()
		os.Exit(1)
	}
}

// getApp returns the App stored by PersistentPreRunE
func getApp(cmd *cobra.Command) *app.App {
	return app.FromContext(cmd.Context())
}

func init() {
	rootCmd.PersistentFlags().String("cv", "", "CV to operate on (id, id prefix or name); defaults to the active CV")
}
