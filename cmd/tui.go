package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/khrees2412/cvblue/internal/app"
	"github.com/khrees2412/cvblue/internal/render"
	"github.com/khrees2412/cvblue/internal/store"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI",
	Long:  "Launch the interactive terminal browser for picking, previewing and editing CVs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(getApp(cmd), bufio.NewReader(os.Stdin))
	},
}

func runTUI(a *app.App, reader *bufio.Reader) error {
	for {
		cvs := a.Store.CVs()
		active := a.Store.ActiveCVID()

		fmt.Println(titleStyle.Render("CV Browser"))
		fmt.Println("Enter a CV number to open it, 'n' for a new CV, or 'q' to quit")
		fmt.Println()
		if len(cvs) == 0 {
			fmt.Println("  (no CVs yet)")
		}
		for i, cv := range cvs {
			marker := " "
			if cv.ID == active {
				marker = "*"
			}
			fmt.Printf("%s %d. %s\n", marker, i+1, summary(&cv))
		}

		fmt.Print("\n> ")
		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if err != nil && input == "" {
			return nil
		}

		switch strings.ToLower(input) {
		case "q":
			return nil
		case "n":
			name := prompt(reader, "Name: ")
			id := a.Store.AddCV(name, nil)
			fmt.Printf("✓ Created CV (ID: %s)\n", shortID(id))
			continue
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(cvs) {
			fmt.Println("Invalid selection")
			continue
		}

		a.Store.SetActiveCV(cvs[n-1].ID)
		if err := browseActive(a, reader); err != nil {
			return err
		}
	}
}

// browseActive edits the active CV through the store's active-CV operations
func browseActive(a *app.App, reader *bufio.Reader) error {
	for {
		view := a.Store.View()
		if view.ActiveCV == nil {
			return nil
		}

		fmt.Println("\n" + strings.Repeat("=", 60))
		fmt.Println(titleStyle.Render(view.ActiveCV.Name))
		printPersonal(view.PersonalInfo)
		fmt.Printf("%s %d experiences, %d educations, %d skills, %d languages, %d projects\n",
			labelStyle.Render("Content:"), len(view.Experiences), len(view.Educations),
			len(view.Skills), len(view.Languages), len(view.Projects))

		fmt.Println("\nOptions:")
		fmt.Println("  [c] Preview classic layout")
		fmt.Println("  [m] Preview modern layout")
		fmt.Println("  [s] Add a skill")
		fmt.Println("  [t] Edit About Me")
		fmt.Println("  [b] Back to list")
		fmt.Print("\n> ")

		choice, err := reader.ReadString('\n')
		choice = strings.TrimSpace(strings.ToLower(choice))
		if err != nil && choice == "" {
			return nil
		}

		switch choice {
		case "c", "m":
			layout := render.Classic
			if choice == "m" {
				layout = render.Modern
			}
			doc, err := render.Render(view.ActiveCV, layout)
			if err != nil {
				return err
			}
			fmt.Println()
			if err := render.WriteOutline(os.Stdout, doc); err != nil {
				return err
			}
		case "s":
			skill := prompt(reader, "Skill (e.g. 'Languages: Go, SQL'): ")
			if skill == "" {
				continue
			}
			skills := append(append([]string{}, view.Skills...), skill)
			if err := a.Store.UpdateSkills(skills); err != nil {
				fmt.Println(app.Notify(err))
				continue
			}
			fmt.Println("✓ Skill added")
		case "t":
			about := prompt(reader, "About Me: ")
			if err := a.Store.UpdatePersonalInfo(store.PersonalInfoPatch{AboutMe: &about}); err != nil {
				fmt.Println(app.Notify(err))
				continue
			}
			fmt.Println("✓ About Me updated")
		case "b":
			return nil
		default:
			fmt.Println("Invalid choice")
		}
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	s, _ := reader.ReadString('\n')
	return strings.TrimSpace(s)
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
