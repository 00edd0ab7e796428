package cmd

import (
	"fmt"

	"github.com/khrees2412/cvblue/internal/app"
	"github.com/khrees2412/cvblue/internal/render"
	"github.com/khrees2412/cvblue/internal/store"
	"github.com/khrees2412/cvblue/pkg/models"
	"github.com/spf13/cobra"
)

var educationCmd = &cobra.Command{
	Use:   "education",
	Short: "Manage education",
	Long:  "Add, list, update and remove education entries",
}

var addEducationCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an education entry",
	Example: `  cvblue education add --institution "MIT" --degree BSc --field "Computer Science" --start 2014-09 --end 2018-06 --gpa 3.7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}

		edu := models.Education{}
		edu.Institution, _ = cmd.Flags().GetString("institution")
		edu.Degree, _ = cmd.Flags().GetString("degree")
		edu.Field, _ = cmd.Flags().GetString("field")
		edu.StartDate, _ = cmd.Flags().GetString("start")
		edu.EndDate, _ = cmd.Flags().GetString("end")
		edu.Current, _ = cmd.Flags().GetBool("current")
		edu.GPA, _ = cmd.Flags().GetString("gpa")
		edu.Description, _ = cmd.Flags().GetString("description")

		if edu.Institution == "" || edu.Degree == "" {
			return fmt.Errorf("%w: institution and degree are required", app.ErrInvalidArgument)
		}
		if err := checkMonths(edu.StartDate, edu.EndDate); err != nil {
			return err
		}
		if err := edu.Validate(); err != nil {
			return fmt.Errorf("%w: %v", app.ErrInvalidArgument, err)
		}

		id, err := a.Store.AddEducationToCV(cv.ID, edu)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Added education: %s at %s (ID: %s)\n", edu.Degree, edu.Institution, shortID(id))
		return nil
	},
}

var listEducationCmd = &cobra.Command{
	Use:   "list",
	Short: "List education entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		if len(cv.Educations) == 0 {
			fmt.Println("No education found. Add an entry with 'cvblue education add'")
			return nil
		}

		fmt.Println(titleStyle.Render("Education"))
		for i, edu := range cv.Educations {
			heading := edu.Degree
			if edu.Field != "" {
				heading += " in " + edu.Field
			}
			fmt.Printf("\n%d. %s, %s\n", i+1, heading, edu.Institution)
			fmt.Printf("   %s %s\n", labelStyle.Render("ID:"), shortID(edu.ID))
			if r := render.DateRange(edu.StartDate, edu.EndDate, edu.Current); r != "" {
				fmt.Printf("   %s\n", r)
			}
			if edu.GPA != "" {
				fmt.Printf("   %s %s\n", labelStyle.Render("GPA:"), edu.GPA)
			}
		}
		return nil
	},
}

var updateEducationCmd = &cobra.Command{
	Use:   "update <education>",
	Short: "Update fields of an education entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		id, err := resolveItem(educationIDs(cv), args[0])
		if err != nil {
			return err
		}

		patch := store.EducationPatch{
			Institution: changedString(cmd, "institution"),
			Degree:      changedString(cmd, "degree"),
			Field:       changedString(cmd, "field"),
			StartDate:   changedString(cmd, "start"),
			EndDate:     changedString(cmd, "end"),
			GPA:         changedString(cmd, "gpa"),
			Description: changedString(cmd, "description"),
		}
		if cmd.Flags().Changed("current") {
			v, _ := cmd.Flags().GetBool("current")
			patch.Current = &v
		}
		if err := checkMonths(deref(patch.StartDate), deref(patch.EndDate)); err != nil {
			return err
		}
		if patch.GPA != nil {
			candidate := models.Education{GPA: *patch.GPA}
			if err := candidate.Validate(); err != nil {
				return fmt.Errorf("%w: %v", app.ErrInvalidArgument, err)
			}
		}

		if err := a.Store.UpdateEducationInCV(cv.ID, id, patch); err != nil {
			return err
		}
		fmt.Println("✓ Education updated")
		return nil
	},
}

var removeEducationCmd = &cobra.Command{
	Use:   "remove <education>",
	Short: "Remove an education entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		id, err := resolveItem(educationIDs(cv), args[0])
		if err != nil {
			return err
		}
		if err := a.Store.RemoveEducationFromCV(cv.ID, id); err != nil {
			return err
		}
		fmt.Printf("✓ Removed education (ID: %s)\n", shortID(id))
		return nil
	},
}

func educationIDs(cv *models.CV) []string {
	ids := make([]string, len(cv.Educations))
	for i, e := range cv.Educations {
		ids[i] = e.ID
	}
	return ids
}

func addEducationFlags(cmd *cobra.Command) {
	cmd.Flags().String("institution", "", "School or university")
	cmd.Flags().String("degree", "", "Degree")
	cmd.Flags().String("field", "", "Field of study")
	cmd.Flags().String("start", "", "Start month (YYYY-MM)")
	cmd.Flags().String("end", "", "End month (YYYY-MM)")
	cmd.Flags().Bool("current", false, "Still studying here")
	cmd.Flags().String("gpa", "", "GPA on a 0-4 scale")
	cmd.Flags().String("description", "", "Description")
}

func init() {
	rootCmd.AddCommand(educationCmd)
	educationCmd.AddCommand(addEducationCmd)
	educationCmd.AddCommand(listEducationCmd)
	educationCmd.AddCommand(updateEducationCmd)
	educationCmd.AddCommand(removeEducationCmd)

	addEducationFlags(addEducationCmd)
	addEducationFlags(updateEducationCmd)
}
