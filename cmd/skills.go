package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/khrees2412/cvblue/internal/app"
	"github.com/khrees2412/cvblue/internal/render"
	"github.com/khrees2412/cvblue/internal/store"
	"github.com/khrees2412/cvblue/pkg/models"
	"github.com/spf13/cobra"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage skills",
	Long: `Add, list, and remove skills. Use "Category: a, b" to group skills
in the modern layout; skills without a category are listed under Other.`,
}

var addSkillCmd = &cobra.Command{
	Use:   "add <skill>...",
	Short: "Add one or more skills",
	Args:  cobra.MinimumNArgs(1),
	Example: `  cvblue skill add Go
  cvblue skill add "Frontend: React, Vue" Git`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		skills := append(append([]string{}, cv.Skills...), args...)
		if err := a.Store.UpdateSkillsInCV(cv.ID, skills); err != nil {
			return err
		}
		fmt.Printf("✓ Added %d skill(s)\n", len(args))
		return nil
	},
}

var setSkillsCmd = &cobra.Command{
	Use:   "set <skill>...",
	Short: "Replace the whole skill list",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		if err := a.Store.UpdateSkillsInCV(cv.ID, args); err != nil {
			return err
		}
		fmt.Println("✓ Skills updated")
		return nil
	},
}

var listSkillsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		if len(cv.Skills) == 0 {
			fmt.Println("No skills found. Add skills with 'cvblue skill add <skill>'")
			return nil
		}

		fmt.Println(titleStyle.Render("Skills"))
		for i, skill := range cv.Skills {
			fmt.Printf("%d. %s\n", i+1, skill)
		}
		if grouped, _ := cmd.Flags().GetBool("grouped"); grouped {
			fmt.Println()
			for _, g := range render.GroupSkills(cv.Skills) {
				fmt.Printf("%s %s\n", labelStyle.Render(g.Title+":"), strings.Join(g.Items, ", "))
			}
		}
		return nil
	},
}

var removeSkillCmd = &cobra.Command{
	Use:   "remove <skill-or-position>",
	Short: "Remove a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		target, err := resolveItem(cv.Skills, args[0])
		if err != nil {
			return err
		}
		kept := make([]string, 0, len(cv.Skills))
		for _, s := range cv.Skills {
			if s != target {
				kept = append(kept, s)
			}
		}
		if err := a.Store.UpdateSkillsInCV(cv.ID, kept); err != nil {
			return err
		}
		fmt.Printf("✓ Removed skill: %s\n", target)
		return nil
	},
}

var experienceCmd = &cobra.Command{
	Use:   "experience",
	Short: "Manage work experience",
	Long:  "Add, list, update and remove work experience entries",
}

var addExperienceCmd = &cobra.Command{
	Use:   "add",
	Short: "Add work experience",
	Example: `  cvblue experience add --company "Acme Inc" --position "Software Engineer" --start 2020-01 --current
  cvblue experience add --company Initech --position Intern --start 2018-06 --end 2019-01 \
      --responsibility "Fixed TPS reports" --achievement "Employee of the month"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}

		exp := models.Experience{}
		exp.Company, _ = cmd.Flags().GetString("company")
		exp.Position, _ = cmd.Flags().GetString("position")
		exp.StartDate, _ = cmd.Flags().GetString("start")
		exp.EndDate, _ = cmd.Flags().GetString("end")
		exp.Current, _ = cmd.Flags().GetBool("current")
		exp.Description, _ = cmd.Flags().GetString("description")
		exp.Responsibilities, _ = cmd.Flags().GetStringArray("responsibility")
		exp.Achievements, _ = cmd.Flags().GetStringArray("achievement")

		if exp.Company == "" || exp.Position == "" || exp.StartDate == "" {
			return fmt.Errorf("%w: company, position and start date are required", app.ErrInvalidArgument)
		}
		if err := checkMonths(exp.StartDate, exp.EndDate); err != nil {
			return err
		}

		id, err := a.Store.AddExperienceToCV(cv.ID, exp)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Added experience: %s at %s (ID: %s)\n", exp.Position, exp.Company, shortID(id))
		return nil
	},
}

var listExperiencesCmd = &cobra.Command{
	Use:   "list",
	Short: "List work experience, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		if len(cv.Experiences) == 0 {
			fmt.Println("No experience found. Add experience with 'cvblue experience add'")
			return nil
		}

		fmt.Println(titleStyle.Render("Experience"))
		for i, exp := range cv.Experiences {
			fmt.Printf("\n%d. %s at %s\n", i+1, exp.Position, exp.Company)
			fmt.Printf("   %s %s\n", labelStyle.Render("ID:"), shortID(exp.ID))
			fmt.Printf("   %s\n", render.DateRange(exp.StartDate, exp.EndDate, exp.Current))
			if exp.Description != "" {
				fmt.Printf("   %s\n", exp.Description)
			}
			for _, r := range exp.Responsibilities {
				fmt.Printf("   • %s\n", r)
			}
			for _, r := range exp.Achievements {
				fmt.Printf("   ★ %s\n", r)
			}
		}
		return nil
	},
}

var updateExperienceCmd = &cobra.Command{
	Use:   "update <experience>",
	Short: "Update fields of a work experience entry",
	Args:  cobra.ExactArgs(1),
	Example: `  cvblue experience update 1 --end 2024-02 --current=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		id, err := resolveItem(experienceIDs(cv), args[0])
		if err != nil {
			return err
		}

		f := cmd.Flags()
		patch := store.ExperiencePatch{
			Company:     changedString(cmd, "company"),
			Position:    changedString(cmd, "position"),
			StartDate:   changedString(cmd, "start"),
			EndDate:     changedString(cmd, "end"),
			Description: changedString(cmd, "description"),
		}
		if f.Changed("current") {
			v, _ := f.GetBool("current")
			patch.Current = &v
		}
		if f.Changed("responsibility") {
			v, _ := f.GetStringArray("responsibility")
			patch.Responsibilities = &v
		}
		if f.Changed("achievement") {
			v, _ := f.GetStringArray("achievement")
			patch.Achievements = &v
		}
		if err := checkMonths(deref(patch.StartDate), deref(patch.EndDate)); err != nil {
			return err
		}

		if err := a.Store.UpdateExperienceInCV(cv.ID, id, patch); err != nil {
			return err
		}
		fmt.Println("✓ Experience updated")
		return nil
	},
}

var removeExperienceCmd = &cobra.Command{
	Use:   "remove <experience>",
	Short: "Remove work experience",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		id, err := resolveItem(experienceIDs(cv), args[0])
		if err != nil {
			return err
		}
		if err := a.Store.RemoveExperienceFromCV(cv.ID, id); err != nil {
			return err
		}
		fmt.Printf("✓ Removed experience (ID: %s)\n", shortID(id))
		return nil
	},
}

func experienceIDs(cv *models.CV) []string {
	ids := make([]string, len(cv.Experiences))
	for i, e := range cv.Experiences {
		ids[i] = e.ID
	}
	return ids
}

// checkMonths rejects dates not in YYYY-MM form; empty dates are allowed
func checkMonths(dates ...string) error {
	for _, d := range dates {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01", d); err != nil {
			return fmt.Errorf("%w: invalid date %q, use YYYY-MM", app.ErrInvalidArgument, d)
		}
	}
	return nil
}

// changedString returns the flag value when it was set on the command line
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func addExperienceFlags(cmd *cobra.Command) {
	cmd.Flags().String("company", "", "Company name")
	cmd.Flags().String("position", "", "Position held")
	cmd.Flags().String("start", "", "Start month (YYYY-MM)")
	cmd.Flags().String("end", "", "End month (YYYY-MM)")
	cmd.Flags().Bool("current", false, "Still working here; the end date is cleared")
	cmd.Flags().String("description", "", "Description, one bullet per line")
	cmd.Flags().StringArray("responsibility", nil, "Responsibility (repeatable)")
	cmd.Flags().StringArray("achievement", nil, "Achievement (repeatable)")
}

func init() {
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(experienceCmd)

	skillCmd.AddCommand(addSkillCmd)
	skillCmd.AddCommand(setSkillsCmd)
	skillCmd.AddCommand(listSkillsCmd)
	skillCmd.AddCommand(removeSkillCmd)

	experienceCmd.AddCommand(addExperienceCmd)
	experienceCmd.AddCommand(listExperiencesCmd)
	experienceCmd.AddCommand(updateExperienceCmd)
	experienceCmd.AddCommand(removeExperienceCmd)

	listSkillsCmd.Flags().Bool("grouped", false, "Also show skills grouped by category")

	addExperienceFlags(addExperienceCmd)
	addExperienceFlags(updateExperienceCmd)
}
