package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/khrees2412/cvblue/internal/app"
	"github.com/khrees2412/cvblue/internal/matcher"
	"github.com/khrees2412/cvblue/internal/store"
	"github.com/khrees2412/cvblue/internal/transfer"
	"github.com/khrees2412/cvblue/pkg/models"
	"github.com/spf13/cobra"
)

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Manage CVs",
	Long:  "Create, list, rename, duplicate, remove and select CVs",
}

var addCVCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a new CV and make it active",
	Args:  cobra.MaximumNArgs(1),
	Example: `  cvblue cv add "Backend Dev @ Acme"
  cvblue cv add --from ./backend.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		name := ""
		if len(args) == 1 {
			name = args[0]
		}

		var seed *models.Content
		if from, _ := cmd.Flags().GetString("from"); from != "" {
			f, err := os.Open(from)
			if err != nil {
				return fmt.Errorf("open %s: %w", from, err)
			}
			defer f.Close()
			if seed, err = transfer.ImportCV(f); err != nil {
				return err
			}
		}

		id := a.Store.AddCV(name, seed)
		cv, err := a.Store.CV(id)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Created CV: %s (ID: %s)\n", cv.Name, shortID(cv.ID))
		return nil
	},
}

var listCVsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all CVs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		printCVList(a.Store.CVs(), a.Store.ActiveCVID())
		return nil
	},
}

var showCVCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a summary of the active CV (or --cv)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		fmt.Println(titleStyle.Render(cv.Name))
		fmt.Printf("%s %s\n", labelStyle.Render("ID:"), cv.ID)
		printPersonal(cv.PersonalInfo)
		fmt.Printf("%s %s\n", labelStyle.Render("Contents:"), summary(cv))
		fmt.Printf("%s %s\n", labelStyle.Render("Created:"), cv.CreatedAt.Local().Format("Jan 2, 2006 15:04"))
		fmt.Printf("%s %s\n", labelStyle.Render("Updated:"), cv.UpdatedAt.Local().Format("Jan 2, 2006 15:04"))
		return nil
	},
}

var removeCVCmd = &cobra.Command{
	Use:   "remove <cv>",
	Short: "Remove a CV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		id, err := resolveCV(a.Store, args[0])
		if err != nil {
			return err
		}
		if err := a.Store.RemoveCV(id); err != nil {
			return err
		}
		fmt.Printf("✓ Removed CV (ID: %s)\n", shortID(id))
		if active := a.Store.ActiveCVID(); active != "" {
			cv, _ := a.Store.CV(active)
			fmt.Printf("  Active CV is now %s\n", cv.Name)
		}
		return nil
	},
}

var renameCVCmd = &cobra.Command{
	Use:   "rename <cv> <new-name>",
	Short: "Rename a CV",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		id, err := resolveCV(a.Store, args[0])
		if err != nil {
			return err
		}
		name := strings.TrimSpace(args[1])
		if name == "" {
			return fmt.Errorf("%w: name must not be empty", app.ErrInvalidArgument)
		}
		if err := a.Store.UpdateCV(id, store.CVPatch{Name: &name}); err != nil {
			return err
		}
		fmt.Printf("✓ Renamed CV to %s\n", name)
		return nil
	},
}

var duplicateCVCmd = &cobra.Command{
	Use:   "duplicate <cv>",
	Short: "Copy a CV with all of its content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		id, err := resolveCV(a.Store, args[0])
		if err != nil {
			return err
		}
		newID, err := a.Store.DuplicateCV(id)
		if err != nil {
			return err
		}
		cv, _ := a.Store.CV(newID)
		fmt.Printf("✓ Created %s (ID: %s)\n", cv.Name, shortID(newID))
		return nil
	},
}

var useCVCmd = &cobra.Command{
	Use:   "use <cv>",
	Short: "Make a CV the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		id, err := resolveCV(a.Store, args[0])
		if err != nil {
			return err
		}
		a.Store.SetActiveCV(id)
		cv, _ := a.Store.CV(id)
		fmt.Printf("✓ Active CV: %s\n", cv.Name)
		return nil
	},
}

var searchCVsCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find CVs by name, owner or title",
	Args:  cobra.ExactArgs(1),
	Example: `  cvblue cv search acme
  cvblue cv search "backend engineer" --rank`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		rank, _ := cmd.Flags().GetBool("rank")

		var found []models.CV
		if rank {
			found = matcher.Rank(a.Store.CVs(), args[0])
		} else {
			found = matcher.Filter(a.Store.CVs(), args[0])
		}
		if len(found) == 0 {
			fmt.Printf("No CVs match %q\n", args[0])
			return nil
		}
		printCVList(found, a.Store.ActiveCVID())
		return nil
	},
}

func printCVList(cvs []models.CV, activeID string) {
	if len(cvs) == 0 {
		fmt.Println("No CVs found. Create one with 'cvblue cv add <name>'")
		return
	}

	fmt.Println(titleStyle.Render("Your CVs"))
	for i, cv := range cvs {
		activeMarker := ""
		if cv.ID == activeID {
			activeMarker = " [ACTIVE]"
		}
		fmt.Printf("\n%d. %s%s\n", i+1, cv.Name, activeMarker)
		fmt.Printf("   %s %s\n", labelStyle.Render("ID:"), shortID(cv.ID))
		if cv.PersonalInfo.Name != "" || cv.PersonalInfo.Title != "" {
			fmt.Printf("   %s %s\n", labelStyle.Render("Owner:"),
				strings.TrimSpace(strings.Join([]string{cv.PersonalInfo.Name, cv.PersonalInfo.Title}, " · ")))
		}
		fmt.Printf("   %s %s\n", labelStyle.Render("Contents:"), summary(&cv))
		fmt.Printf("   %s %s\n", labelStyle.Render("Updated:"), cv.UpdatedAt.Local().Format("Jan 2, 2006"))
	}
}

func summary(cv *models.CV) string {
	return fmt.Sprintf("%d experiences, %d educations, %d skills, %d languages, %d projects",
		len(cv.Experiences), len(cv.Educations), len(cv.Skills), len(cv.Languages), len(cv.Projects))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveCV finds a CV by id, unique id prefix or exact name
func resolveCV(s *store.Store, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	cvs := s.CVs()
	var matches []string
	for _, cv := range cvs {
		if cv.ID == ref {
			return cv.ID, nil
		}
		if strings.HasPrefix(cv.ID, ref) || cv.Name == ref {
			matches = append(matches, cv.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", store.ErrCVNotFound, ref)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("%w: %q matches %d CVs", app.ErrInvalidArgument, ref, len(matches))
}

// targetCV returns the CV selected with --cv, falling back to the active CV
func targetCV(cmd *cobra.Command, s *store.Store) (string, error) {
	if ref, _ := cmd.Flags().GetString("cv"); ref != "" {
		return resolveCV(s, ref)
	}
	id := s.ActiveCVID()
	if id == "" {
		return "", store.ErrNoActiveCV
	}
	return id, nil
}

// loadTarget returns the app and a copy of the targeted CV
func loadTarget(cmd *cobra.Command) (*app.App, *models.CV, error) {
	a := getApp(cmd)
	id, err := targetCV(cmd, a.Store)
	if err != nil {
		return nil, nil, err
	}
	cv, err := a.Store.CV(id)
	if err != nil {
		return nil, nil, err
	}
	return a, cv, nil
}

// requireTarget is loadTarget for actions that cannot proceed without a
// CV. A missing active CV becomes app.ErrNoTarget, which is never soft.
func requireTarget(cmd *cobra.Command) (*app.App, *models.CV, error) {
	a, cv, err := loadTarget(cmd)
	if err != nil {
		return nil, nil, targetError(err)
	}
	return a, cv, nil
}

func targetError(err error) error {
	if errors.Is(err, store.ErrNoActiveCV) {
		return fmt.Errorf("%w: select one with 'cvblue cv use' or --cv", app.ErrNoTarget)
	}
	return err
}

// resolveItem accepts a 1-based list position, an id or a unique id prefix
func resolveItem(ids []string, ref string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(ids) {
		return ids[n-1], nil
	}
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return "", fmt.Errorf("%w: %s", store.ErrItemNotFound, ref)
}

func init() {
	rootCmd.AddCommand(cvCmd)
	cvCmd.AddCommand(addCVCmd)
	cvCmd.AddCommand(listCVsCmd)
	cvCmd.AddCommand(showCVCmd)
	cvCmd.AddCommand(removeCVCmd)
	cvCmd.AddCommand(renameCVCmd)
	cvCmd.AddCommand(duplicateCVCmd)
	cvCmd.AddCommand(useCVCmd)
	cvCmd.AddCommand(searchCVsCmd)

	addCVCmd.Flags().String("from", "", "Seed the new CV from a JSON or XML export")
	searchCVsCmd.Flags().Bool("rank", false, "Order results by match quality")
}
