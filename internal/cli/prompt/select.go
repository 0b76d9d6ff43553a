package prompt

import (
	"github.com/manifoldco/promptui"
	"github.com/target/dirsearch/internal/domain/directory"
)

// Action is what the operator picked from the results menu.
type Action int

const (
	ActionSelect Action = iota + 1
	ActionNextPage
	ActionPrevPage
	ActionNewSearch
	ActionLogout
	ActionQuit
)

// SelectOption represents an item in a selection list.
type SelectOption struct {
	Label  string
	Action Action
	// Index is the zero-based position on the page for ActionSelect.
	Index int
}

// Choice is the outcome of a results menu.
type Choice struct {
	Action Action
	Index  int
}

// selectTemplates returns the standard templates for selection prompts.
func selectTemplates() *promptui.SelectTemplates {
	return &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "* {{ .Label | green }}",
	}
}

// ResultsMenu lists the page's entries followed by the navigation actions
// that apply to it. Next and Previous only appear when the page allows them.
func ResultsMenu(page directory.Page) []SelectOption {
	lines := page.Lines()
	options := make([]SelectOption, 0, len(lines)+5)
	for i, line := range lines {
		options = append(options, SelectOption{Label: line, Action: ActionSelect, Index: i})
	}
	if page.HasNext {
		options = append(options, SelectOption{Label: "Next page >", Action: ActionNextPage})
	}
	if page.HasPrev {
		options = append(options, SelectOption{Label: "< Previous page", Action: ActionPrevPage})
	}
	options = append(options,
		SelectOption{Label: "New search", Action: ActionNewSearch},
		SelectOption{Label: "Log out", Action: ActionLogout},
		SelectOption{Label: "Quit", Action: ActionQuit},
	)
	return options
}

// SelectResult shows the results menu for page.
func SelectResult(page directory.Page) (Choice, error) {
	options := ResultsMenu(page)
	label := page.Label()
	if page.Total > 0 {
		label += "  |  " + page.TotalLabel()
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     options,
		Templates: selectTemplates(),
		Size:      len(options),
		HideHelp:  true,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return Choice{}, wrapError(err)
	}
	return Choice{Action: options[i].Action, Index: options[i].Index}, nil
}
