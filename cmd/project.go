package cmd

import (
	"fmt"
	"strings"

	"github.com/khrees2412/cvblue/internal/app"
	"github.com/khrees2412/cvblue/internal/media"
	"github.com/khrees2412/cvblue/internal/render"
	"github.com/khrees2412/cvblue/internal/store"
	"github.com/khrees2412/cvblue/pkg/models"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage portfolio projects",
	Long:  "Add, list, update and remove projects and their images",
}

var addProjectCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a project",
	Args:  cobra.ExactArgs(1),
	Example: `  cvblue project add "CV Blue" --role Author --date 2024-03 --tech Go --tech SQLite \
      --link https://github.com/jane/cvblue --image ./screenshot.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}

		p := models.Project{Name: args[0]}
		p.Description, _ = cmd.Flags().GetString("description")
		p.Role, _ = cmd.Flags().GetString("role")
		p.Link, _ = cmd.Flags().GetString("link")
		p.Date, _ = cmd.Flags().GetString("date")
		p.Technologies, _ = cmd.Flags().GetStringArray("tech")
		if err := checkMonths(p.Date); err != nil {
			return err
		}

		paths, _ := cmd.Flags().GetStringArray("image")
		if p.Images, err = loadImages(nil, paths); err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}

		id, err := a.Store.AddProjectToCV(cv.ID, p)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Added project: %s (ID: %s)\n", p.Name, shortID(id))
		return nil
	},
}

var listProjectsCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		if len(cv.Projects) == 0 {
			fmt.Println("No projects found. Add one with 'cvblue project add <name>'")
			return nil
		}

		fmt.Println(titleStyle.Render("Projects"))
		for i, p := range cv.Projects {
			fmt.Printf("\n%d. %s", i+1, p.Name)
			if p.Role != "" {
				fmt.Printf(" (%s)", p.Role)
			}
			fmt.Println()
			fmt.Printf("   %s %s\n", labelStyle.Render("ID:"), shortID(p.ID))
			if p.Date != "" {
				fmt.Printf("   %s %s\n", labelStyle.Render("Date:"), render.FormatMonth(p.Date))
			}
			if len(p.Technologies) > 0 {
				fmt.Printf("   %s %s\n", labelStyle.Render("Tech:"), strings.Join(p.Technologies, ", "))
			}
			if p.Link != "" {
				fmt.Printf("   %s %s\n", labelStyle.Render("Link:"), p.Link)
			}
			if len(p.Images) > 0 {
				fmt.Printf("   %s %d/%d\n", labelStyle.Render("Images:"), len(p.Images), models.MaxProjectImages)
			}
		}
		return nil
	},
}

var updateProjectCmd = &cobra.Command{
	Use:   "update <project>",
	Short: "Update fields of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		id, err := resolveItem(projectIDs(cv), args[0])
		if err != nil {
			return err
		}

		patch := store.ProjectPatch{
			Name:        changedString(cmd, "name"),
			Description: changedString(cmd, "description"),
			Role:        changedString(cmd, "role"),
			Link:        changedString(cmd, "link"),
			Date:        changedString(cmd, "date"),
		}
		if cmd.Flags().Changed("tech") {
			v, _ := cmd.Flags().GetStringArray("tech")
			patch.Technologies = &v
		}
		if err := checkMonths(deref(patch.Date)); err != nil {
			return err
		}

		if err := a.Store.UpdateProjectInCV(cv.ID, id, patch); err != nil {
			return err
		}
		fmt.Println("✓ Project updated")
		return nil
	},
}

var removeProjectCmd = &cobra.Command{
	Use:   "remove <project>",
	Short: "Remove a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		id, err := resolveItem(projectIDs(cv), args[0])
		if err != nil {
			return err
		}
		if err := a.Store.RemoveProjectFromCV(cv.ID, id); err != nil {
			return err
		}
		fmt.Printf("✓ Removed project (ID: %s)\n", shortID(id))
		return nil
	},
}

var projectImageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage project images",
}

var addProjectImageCmd = &cobra.Command{
	Use:   "add <project> <file>...",
	Short: "Attach images (at most 5 per project, each under 2MB)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		p, err := findProject(cv, args[0])
		if err != nil {
			return err
		}
		images, err := loadImages(p.Images, args[1:])
		if err != nil {
			return err
		}
		if err := a.Store.UpdateProjectInCV(cv.ID, p.ID, store.ProjectPatch{Images: &images}); err != nil {
			return err
		}
		fmt.Printf("✓ %s now has %d/%d images\n", p.Name, len(images), models.MaxProjectImages)
		return nil
	},
}

var removeProjectImageCmd = &cobra.Command{
	Use:   "remove <project> <position>",
	Short: "Remove an image by position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		p, err := findProject(cv, args[0])
		if err != nil {
			return err
		}
		var pos int
		if _, err := fmt.Sscanf(args[1], "%d", &pos); err != nil || pos < 1 || pos > len(p.Images) {
			return fmt.Errorf("%w: image %s", app.ErrInvalidArgument, args[1])
		}
		images := append([]string{}, p.Images[:pos-1]...)
		images = append(images, p.Images[pos:]...)
		if err := a.Store.UpdateProjectInCV(cv.ID, p.ID, store.ProjectPatch{Images: &images}); err != nil {
			return err
		}
		fmt.Println("✓ Image removed")
		return nil
	},
}

func loadImages(existing []string, paths []string) ([]string, error) {
	images := existing
	for _, path := range paths {
		uri, err := media.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if images, err = media.Append(images, uri); err != nil {
			return nil, err
		}
	}
	return images, nil
}

func findProject(cv *models.CV, ref string) (*models.Project, error) {
	id, err := resolveItem(projectIDs(cv), ref)
	if err != nil {
		return nil, err
	}
	for i := range cv.Projects {
		if cv.Projects[i].ID == id {
			return &cv.Projects[i], nil
		}
	}
	return nil, store.ErrItemNotFound
}

func projectIDs(cv *models.CV) []string {
	ids := make([]string, len(cv.Projects))
	for i, p := range cv.Projects {
		ids[i] = p.ID
	}
	return ids
}

func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("role", "", "Your role")
	cmd.Flags().String("link", "", "Project URL")
	cmd.Flags().String("date", "", "Month (YYYY-MM)")
	cmd.Flags().StringArray("tech", nil, "Technology used (repeatable)")
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(addProjectCmd)
	projectCmd.AddCommand(listProjectsCmd)
	projectCmd.AddCommand(updateProjectCmd)
	projectCmd.AddCommand(removeProjectCmd)
	projectCmd.AddCommand(projectImageCmd)
	projectImageCmd.AddCommand(addProjectImageCmd)
	projectImageCmd.AddCommand(removeProjectImageCmd)

	addProjectFlags(addProjectCmd)
	addProjectCmd.Flags().StringArray("image", nil, "Image file to attach (repeatable)")
	addProjectFlags(updateProjectCmd)
	updateProjectCmd.Flags().String("name", "", "Project name")
}
