package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/khrees2412/cvblue/internal/store"
	"github.com/khrees2412/cvblue/pkg/models"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

var personalCmd = &cobra.Command{
	Use:   "personal",
	Short: "Manage personal info",
	Long:  "View and update the name, contact details, links and summary of a CV",
}

var showPersonalCmd = &cobra.Command{
	Use:   "show",
	Short: "Display personal info",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		fmt.Println(titleStyle.Render("Personal Info · " + cv.Name))
		printPersonal(cv.PersonalInfo)
		if about := strings.TrimSpace(cv.PersonalInfo.AboutMe); about != "" {
			fmt.Println(labelStyle.Render("\nAbout Me:"))
			fmt.Println(about)
		}
		return nil
	},
}

var setPersonalCmd = &cobra.Command{
	Use:   "set",
	Short: "Update personal info fields",
	Example: `  cvblue personal set --name "Jane Roe" --title "Backend Engineer"
  cvblue personal set --email jane@example.com --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}

		patch := store.PersonalInfoPatch{}
		flags := map[string]**string{
			"name":     &patch.Name,
			"title":    &patch.Title,
			"email":    &patch.Email,
			"phone":    &patch.Phone,
			"location": &patch.Location,
			"linkedin": &patch.LinkedIn,
			"about":    &patch.AboutMe,
		}
		updated := false
		for flag, dst := range flags {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*dst = &v
				updated = true
			}
		}
		if !updated {
			fmt.Println("No fields to update. Use flags like --name, --email, etc.")
			return nil
		}

		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			merged := cv.PersonalInfo
			mergePersonal(&merged, patch)
			if err := merged.Validate(); err != nil {
				return err
			}
		}

		if err := a.Store.UpdatePersonalInfoInCV(cv.ID, patch); err != nil {
			return err
		}
		fmt.Println("✓ Personal info updated")
		return nil
	},
}

var editPersonalCmd = &cobra.Command{
	Use:   "edit",
	Short: "Interactively edit personal info",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render("Edit Personal Info"))
		fmt.Println("Press Enter to keep current value, or type a new value")

		reader := bufio.NewReader(os.Stdin)
		info := cv.PersonalInfo
		fields := []struct {
			key   string
			label string
			value *string
		}{
			{"name", "Full Name", &info.Name},
			{"title", "Professional Title", &info.Title},
			{"email", "Email", &info.Email},
			{"phone", "Phone", &info.Phone},
			{"location", "Location", &info.Location},
			{"linkedin", "LinkedIn URL", &info.LinkedIn},
			{"about", "About Me", &info.AboutMe},
		}

		for _, f := range fields {
			fmt.Printf("%s [%s]: ", labelStyle.Render(f.label), *f.value)
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			*f.value = input

			// each field is written after the debounce delay; a later edit
			// of the same field replaces the pending one
			value, cvID := input, cv.ID
			patch := personalFieldPatch(f.key, &value)
			a.Pending.Schedule("personal."+f.key, func() {
				_ = a.Store.UpdatePersonalInfoInCV(cvID, patch)
			})
		}

		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			if err := info.Validate(); err != nil {
				a.Pending.Cancel()
				return err
			}
		}

		a.Pending.Flush()
		fmt.Println("\n✓ Personal info updated")
		return nil
	},
}

var addLinkCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a link to the header",
	Args:  cobra.ExactArgs(1),
	Example: `  cvblue personal link add https://github.com/jane --title GitHub`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")

		// fill the default blank link before appending
		links := append([]models.Link{}, cv.PersonalInfo.Links...)
		link := models.Link{URL: args[0], Title: title}
		if len(links) == 1 && links[0].URL == "" && links[0].Title == "" {
			links[0] = link
		} else {
			links = append(links, link)
		}
		if err := a.Store.UpdatePersonalInfoInCV(cv.ID, store.PersonalInfoPatch{Links: &links}); err != nil {
			return err
		}
		fmt.Printf("✓ Added link: %s\n", args[0])
		return nil
	},
}

var removeLinkCmd = &cobra.Command{
	Use:   "remove <position>",
	Short: "Remove a link by its position in 'personal show'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cv, err := loadTarget(cmd)
		if err != nil {
			return err
		}
		var pos int
		if _, err := fmt.Sscanf(args[0], "%d", &pos); err != nil || pos < 1 || pos > len(cv.PersonalInfo.Links) {
			return fmt.Errorf("%w: %s", store.ErrItemNotFound, args[0])
		}
		links := append([]models.Link{}, cv.PersonalInfo.Links[:pos-1]...)
		links = append(links, cv.PersonalInfo.Links[pos:]...)
		if err := a.Store.UpdatePersonalInfoInCV(cv.ID, store.PersonalInfoPatch{Links: &links}); err != nil {
			return err
		}
		fmt.Println("✓ Link removed")
		return nil
	},
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage header links",
}

func printPersonal(p models.PersonalInfo) {
	rows := []struct{ label, value string }{
		{"Name:", p.Name},
		{"Title:", p.Title},
		{"Email:", p.Email},
		{"Phone:", p.Phone},
		{"Location:", p.Location},
		{"LinkedIn:", p.LinkedIn},
	}
	for _, r := range rows {
		if r.value != "" {
			fmt.Printf("%s %s\n", labelStyle.Render(r.label), valueStyle.Render(r.value))
		}
	}
	for i, l := range p.Links {
		if l.URL == "" && l.Title == "" {
			continue
		}
		fmt.Printf("%s %s %s\n", labelStyle.Render(fmt.Sprintf("Link %d:", i+1)), l.Title, valueStyle.Render(l.URL))
	}
}

func personalFieldPatch(key string, v *string) store.PersonalInfoPatch {
	switch key {
	case "name":
		return store.PersonalInfoPatch{Name: v}
	case "title":
		return store.PersonalInfoPatch{Title: v}
	case "email":
		return store.PersonalInfoPatch{Email: v}
	case "phone":
		return store.PersonalInfoPatch{Phone: v}
	case "location":
		return store.PersonalInfoPatch{Location: v}
	case "linkedin":
		return store.PersonalInfoPatch{LinkedIn: v}
	}
	return store.PersonalInfoPatch{AboutMe: v}
}

func mergePersonal(info *models.PersonalInfo, p store.PersonalInfoPatch) {
	for _, f := range []struct {
		dst *string
		src *string
	}{
		{&info.Name, p.Name}, {&info.Title, p.Title}, {&info.Email, p.Email},
		{&info.Phone, p.Phone}, {&info.Location, p.Location},
		{&info.LinkedIn, p.LinkedIn}, {&info.AboutMe, p.AboutMe},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
}

func init() {
	rootCmd.AddCommand(personalCmd)
	personalCmd.AddCommand(showPersonalCmd)
	personalCmd.AddCommand(setPersonalCmd)
	personalCmd.AddCommand(editPersonalCmd)
	personalCmd.AddCommand(linkCmd)
	linkCmd.AddCommand(addLinkCmd)
	linkCmd.AddCommand(removeLinkCmd)

	// Flags for set command
	setPersonalCmd.Flags().String("name", "", "Full name")
	setPersonalCmd.Flags().String("title", "", "Professional title")
	setPersonalCmd.Flags().String("email", "", "Email address")
	setPersonalCmd.Flags().String("phone", "", "Phone number")
	setPersonalCmd.Flags().String("location", "", "Location")
	setPersonalCmd.Flags().String("linkedin", "", "LinkedIn URL")
	setPersonalCmd.Flags().String("about", "", "About me / summary")
	setPersonalCmd.Flags().Bool("strict", false, "Require name, title and a valid email")
	editPersonalCmd.Flags().Bool("strict", false, "Require name, title and a valid email")

	addLinkCmd.Flags().String("title", "", "Link label; defaults to the URL")
}
