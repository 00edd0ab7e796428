package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/khrees2412/cvblue/internal/pdf"
	"github.com/khrees2412/cvblue/internal/render"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Preview a CV or generate its PDF",
	Long: `Render the active CV (or --cv) in the classic or modern layout.
Without --pdf the document outline is printed to the terminal.`,
	Example: `  cvblue render --layout modern
  cvblue render --pdf --out ~/Documents
  cvblue render --pdf --all --layout classic`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		layoutName, _ := cmd.Flags().GetString("layout")
		if layoutName == "" {
			layoutName = a.Config.DefaultLayout
		}
		layout, err := render.ParseLayout(layoutName)
		if err != nil {
			return err
		}

		asPDF, _ := cmd.Flags().GetBool("pdf")
		all, _ := cmd.Flags().GetBool("all")
		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = a.Config.OutputDir
		}

		if all {
			cvs := a.Store.CVs()
			if len(cvs) == 0 {
				fmt.Println("No CVs found. Create one with 'cvblue cv add <name>'")
				return nil
			}
			fmt.Printf("Generating %d PDFs...\n", len(cvs))
			results, err := pdf.GenerateAll(cmd.Context(), a.PDF, cvs, layout, outDir, runtime.NumCPU())
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Printf("✓ %s\n", r.Path)
				a.RecordExport(cmd.Context(), filepath.Base(r.Path), r.Path, "pdf", 1)
			}
			return nil
		}

		_, cv, err := requireTarget(cmd)
		if err != nil {
			return err
		}
		doc, err := render.Render(cv, layout)
		if err != nil {
			return err
		}

		if !asPDF {
			return render.WriteOutline(os.Stdout, doc)
		}

		fmt.Printf("Generating PDF for %s (%s)...\n", cv.Name, layout)
		job := pdf.Start(cmd.Context(), a.PDF, doc)
		if err := job.Wait(cmd.Context()); err != nil {
			return fmt.Errorf("generate PDF: %w", err)
		}
		name, _ := cmd.Flags().GetString("name")
		path, err := job.Download(outDir, name)
		if err != nil {
			return err
		}
		a.RecordExport(cmd.Context(), filepath.Base(path), path, "pdf", 1)
		fmt.Printf("✓ PDF saved to %s\n", path)
		return nil
	},
}

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List available layouts",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(titleStyle.Render("Layouts"))
		for _, l := range render.Layouts() {
			fmt.Printf("  • %s\n", l)
		}
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.AddCommand(layoutsCmd)

	renderCmd.Flags().StringP("layout", "l", "", "Layout: classic or modern (defaults to config default_layout)")
	renderCmd.Flags().Bool("pdf", false, "Generate a PDF instead of printing the outline")
	renderCmd.Flags().Bool("all", false, "Generate PDFs for every CV")
	renderCmd.Flags().StringP("out", "o", "", "Output directory (defaults to config output_dir)")
	renderCmd.Flags().String("name", "", "PDF file name (defaults to <cv-name>-<layout>.pdf)")
}
