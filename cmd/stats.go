package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/khrees2412/cvblue/internal/database"
	"github.com/khrees2412/cvblue/internal/render"
	"github.com/khrees2412/cvblue/pkg/models"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View totals across your CVs",
	Long:  "Display counts of CVs and their entries, the most used skills and recent exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp(cmd)
		cvs := a.Store.CVs()
		if len(cvs) == 0 {
			fmt.Println("No CVs yet. Create one with 'cvblue cv add <name>'")
			return nil
		}

		stats := calculateStats(cvs)

		fmt.Println(titleStyle.Render("CV Statistics"))

		fmt.Printf("\n%s\n", labelStyle.Render("Overview"))
		fmt.Printf("  CVs: %d\n", stats.CVs)
		fmt.Printf("  Experiences: %d (%d current)\n", stats.Experiences, stats.CurrentRoles)
		fmt.Printf("  Educations: %d\n", stats.Educations)
		fmt.Printf("  Skills: %d (%d distinct)\n", stats.Skills, len(stats.SkillUsage))
		fmt.Printf("  Languages: %d\n", stats.Languages)
		fmt.Printf("  Projects: %d (%d images)\n", stats.Projects, stats.Images)

		if len(stats.TopSkills) > 0 {
			fmt.Printf("\n%s\n", labelStyle.Render("Most Used Skills"))
			for _, s := range stats.TopSkills {
				fmt.Printf("  %s: %d\n", s.Name, s.Count)
			}
		}

		if !stats.LastUpdated.IsZero() {
			fmt.Printf("\n%s %s (%s)\n", labelStyle.Render("Last Edited:"),
				stats.LastUpdatedName, stats.LastUpdated.Local().Format("Jan 2, 2006 15:04"))
		}

		records, err := database.GetRecentExports(cmd.Context(), a.DB, 5)
		if err == nil && len(records) > 0 {
			fmt.Printf("\n%s\n", labelStyle.Render("Recent Exports"))
			for _, r := range records {
				fmt.Printf("  %s: %s\n", r.ExportedAt.Local().Format("Jan 2"), r.FileName)
			}
		}
		return nil
	},
}

type Stats struct {
	CVs             int
	Experiences     int
	CurrentRoles    int
	Educations      int
	Skills          int
	Languages       int
	Projects        int
	Images          int
	SkillUsage      map[string]int
	TopSkills       []SkillCount
	LastUpdated     time.Time
	LastUpdatedName string
}

type SkillCount struct {
	Name  string
	Count int
}

func calculateStats(cvs []models.CV) Stats {
	stats := Stats{
		CVs:        len(cvs),
		SkillUsage: make(map[string]int),
	}

	for _, cv := range cvs {
		stats.Experiences += len(cv.Experiences)
		for _, e := range cv.Experiences {
			if e.Current {
				stats.CurrentRoles++
			}
		}
		stats.Educations += len(cv.Educations)
		stats.Skills += len(cv.Skills)
		stats.Languages += len(cv.Languages)
		stats.Projects += len(cv.Projects)
		for _, p := range cv.Projects {
			stats.Images += len(p.Images)
		}

		// skills are counted once per CV they appear in
		for _, g := range render.GroupSkills(cv.Skills) {
			for _, item := range g.Items {
				stats.SkillUsage[item]++
			}
		}

		if cv.UpdatedAt.After(stats.LastUpdated) {
			stats.LastUpdated = cv.UpdatedAt
			stats.LastUpdatedName = cv.Name
		}
	}

	for name, count := range stats.SkillUsage {
		stats.TopSkills = append(stats.TopSkills, SkillCount{Name: name, Count: count})
	}
	sort.Slice(stats.TopSkills, func(i, j int) bool {
		if stats.TopSkills[i].Count != stats.TopSkills[j].Count {
			return stats.TopSkills[i].Count > stats.TopSkills[j].Count
		}
		return stats.TopSkills[i].Name < stats.TopSkills[j].Name
	})
	if len(stats.TopSkills) > 5 {
		stats.TopSkills = stats.TopSkills[:5]
	}

	return stats
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
