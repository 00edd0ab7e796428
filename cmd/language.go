package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/khrees2412/cvblue/internal/app"
	"github.com/khrees2412/cvblue/pkg/models"
	"github.com/spf13/cobra"
)

var languageCmd = &cobra.Command{
	Use:   "language",
	Short: "Manage spoken languages",
	Long:  "Levels: 1 Beginner, 2 Intermediate, 3 Advanced, 4 Native, 5 Fluent",
}

var addLanguageCmd = &cobra.Command{
	Use:   "add <name> <level>",
	Short: "Add a language",
	Args:  cobra.ExactArgs(2),
	Example: `  cvblue language add English 5
  cvblue language add French intermediate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		level, err := parseLevel(args[1])
		if err != nil {
			return err
		}
		lang := models.Language{Name: args[0], Level: level}
		if err := lang.Validate(); err != nil {
			return err
		}

		langs := append(append([]models.Language{}, cv.Languages...), lang)
		if err := a.Store.UpdateLanguagesInCV(cv.ID, langs); err != nil {
			return err
		}
		fmt.Printf("✓ Added language: %s (%s)\n", lang.Name, models.LevelLabel(level))
		return nil
	},
}

var listLanguagesCmd = &cobra.Command{
	Use:   "list",
	Short: "List languages, strongest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		if len(cv.Languages) == 0 {
			fmt.Println("No languages found. Add one with 'cvblue language add <name> <level>'")
			return nil
		}

		fmt.Println(titleStyle.Render("Languages"))
		for i, l := range models.SortLanguages(cv.Languages) {
			fmt.Printf("%d. %s %s\n", i+1, l.Name, valueStyle.Render("("+models.LevelLabel(l.Level)+")"))
		}
		return nil
	},
}

var setLanguageLevelCmd = &cobra.Command{
	Use:   "level <name> <level>",
	Short: "Change the level of a language",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		level, err := parseLevel(args[1])
		if err != nil {
			return err
		}

		langs := append([]models.Language{}, cv.Languages...)
		i := indexLanguage(langs, args[0])
		if i < 0 {
			return fmt.Errorf("%w: %s", errLanguageNotFound, args[0])
		}
		langs[i].Level = level
		if err := a.Store.UpdateLanguagesInCV(cv.ID, langs); err != nil {
			return err
		}
		fmt.Printf("✓ %s is now %s\n", langs[i].Name, models.LevelLabel(level))
		return nil
	},
}

var removeLanguageCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		i := indexLanguage(cv.Languages, args[0])
		if i < 0 {
			return fmt.Errorf("%w: %s", errLanguageNotFound, args[0])
		}
		langs := append([]models.Language{}, cv.Languages[:i]...)
		langs = append(langs, cv.Languages[i+1:]...)
		if err := a.Store.UpdateLanguagesInCV(cv.ID, langs); err != nil {
			return err
		}
		fmt.Printf("✓ Removed language: %s\n", args[0])
		return nil
	},
}

var errLanguageNotFound = fmt.Errorf("%w: language not found", app.ErrInvalidArgument)

// parseLevel accepts 1-5 or a level label
func parseLevel(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 5 {
			return 0, fmt.Errorf("%w: level must be between 1 and 5", app.ErrInvalidArgument)
		}
		return n, nil
	}
	for level := 1; level <= 5; level++ {
		if strings.EqualFold(models.LevelLabel(level), s) {
			return level, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown level %q", app.ErrInvalidArgument, s)
}

func indexLanguage(langs []models.Language, name string) int {
	for i, l := range langs {
		if strings.EqualFold(l.Name, name) {
			return i
		}
	}
	return -1
}

func init() {
	rootCmd.AddCommand(languageCmd)
	languageCmd.AddCommand(addLanguageCmd)
	languageCmd.AddCommand(listLanguagesCmd)
	languageCmd.AddCommand(setLanguageLevelCmd)
	languageCmd.AddCommand(removeLanguageCmd)
}
