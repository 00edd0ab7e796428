package cmd

import (
	"fmt"
	"os"

	"github.com/khrees2412/cvblue/internal/app"
	"github.com/khrees2412/cvblue/internal/database"
	"github.com/khrees2412/cvblue/internal/transfer"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active CV (or --cv) as JSON or XML",
	Example: `  cvblue export
  cvblue export --format xml --out ./backups`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := requireTarget(cmd)
		if err != nil {
			return err
		}
		format, err := exportFormat(cmd, a)
		if err != nil {
			return err
		}
		res, err := exporter(cmd, a).ExportCV(cv.Content, format, cv.Name)
		if err != nil {
			return err
		}
		a.RecordExport(cmd.Context(), res.FileName, res.Path, string(res.Format), res.Count)
		fmt.Printf("✓ Exported %s to %s\n", cv.Name, res.Path)
		return nil
	},
}

var exportCollectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Export several CVs into one file",
	Example: `  cvblue export collection
  cvblue export collection --select "Backend Dev" --select 3f2a --format xml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		format, err := exportFormat(cmd, a)
		if err != nil {
			return err
		}

		var selected []string
		if cmd.Flags().Changed("select") {
			refs, _ := cmd.Flags().GetStringArray("select")
			selected = []string{}
			for _, ref := range refs {
				id, err := resolveCV(a.Store, ref)
				if err != nil {
					return err
				}
				selected = append(selected, id)
			}
		}

		res, err := exporter(cmd, a).ExportCollection(a.Store.CVs(), format, selected)
		if err != nil {
			return err
		}
		a.RecordExport(cmd.Context(), res.FileName, res.Path, string(res.Format), res.Count)
		fmt.Printf("✓ Exported %d CV(s) to %s\n", res.Count, res.Path)
		return nil
	},
}

var exportHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		limit, _ := cmd.Flags().GetInt("limit")
		records, err := database.GetRecentExports(cmd.Context(), a.DB, limit)
		if err != nil {
			return fmt.Errorf("fetch export history: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("Nothing exported yet.")
			return nil
		}

		fmt.Println(titleStyle.Render("Recent Exports"))
		for _, r := range records {
			fmt.Printf("%s  %-4s  %d CV(s)  %s\n",
				labelStyle.Render(r.ExportedAt.Local().Format("Jan 2 15:04")), r.Format, r.CVCount, r.Path)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a single-CV JSON or XML file",
	Long: `Replace the content of the active CV (or --cv) with an exported file.
With --new, or when there are no CVs yet, a new CV is created instead.`,
	Args: cobra.ExactArgs(1),
	Example: `  cvblue import ./backend-dev-acme-2024-03-02.json
  cvblue import ./cv.xml --new --name "From backup"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		asNew, _ := cmd.Flags().GetBool("new")
		ref, _ := cmd.Flags().GetString("cv")
		if !asNew && ref == "" && a.Store.ActiveCVID() == "" {
			asNew = true
		}

		if asNew {
			content, err := transfer.ImportCV(f)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			id := a.Store.AddCV(name, content)
			cv, _ := a.Store.CV(id)
			fmt.Printf("✓ Imported into new CV %s (ID: %s)\n", cv.Name, shortID(id))
			return nil
		}

		id, err := targetCV(cmd, a.Store)
		if err != nil {
			return targetError(err)
		}
		if err := a.ImportInto(id, f); err != nil {
			return err
		}
		cv, _ := a.Store.CV(id)
		fmt.Printf("✓ Imported data into %s\n", cv.Name)
		return nil
	},
}

var importCollectionCmd = &cobra.Command{
	Use:   "collection <file>",
	Short: "Import every CV of a collection file as new CVs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		ids, err := a.ImportCollection(f)
		if err != nil {
			return err
		}
		suffix := ""
		if len(ids) != 1 {
			suffix = "s"
		}
		fmt.Printf("✓ Successfully imported %d CV%s!\n", len(ids), suffix)
		return nil
	},
}

func exportFormat(cmd *cobra.Command, a *app.App) (transfer.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	if name == "" {
		name = a.Config.ExportFormat
	}
	return transfer.ParseFormat(name)
}

// exporter honours --out for this invocation
func exporter(cmd *cobra.Command, a *app.App) *transfer.Exporter {
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		return transfer.NewExporter(out)
	}
	return a.Exporter
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	exportCmd.AddCommand(exportCollectionCmd)
	exportCmd.AddCommand(exportHistoryCmd)
	importCmd.AddCommand(importCollectionCmd)

	for _, c := range []*cobra.Command{exportCmd, exportCollectionCmd} {
		c.Flags().StringP("format", "f", "", "json or xml (defaults to config export_format)")
		c.Flags().StringP("out", "o", "", "Output directory (defaults to config output_dir)")
	}
	exportCollectionCmd.Flags().StringArray("select", nil, "CV to include (repeatable); all CVs when omitted")
	exportHistoryCmd.Flags().Int("limit", 10, "Number of entries to show")

	importCmd.Flags().Bool("new", false, "Create a new CV instead of replacing the target")
	importCmd.Flags().String("name", "", "Name for the new CV")
}
