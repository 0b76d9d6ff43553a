package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// Confirm prompts the user for yes/no confirmation.
// Returns ErrAborted if the user presses Ctrl+C.
func Confirm(label string, defaultYes bool) (bool, error) {
	defaultStr := "y/N"
	if defaultYes {
		defaultStr = "Y/n"
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", label, defaultStr),
		IsConfirm: true,
	}

	result, err := prompt.Run()
	return confirmResult(result, err, defaultYes)
}

// confirmResult maps promptui's confirm outcome to a decision. promptui
// reports "n" as ErrAbort and an empty answer as an error with no input.
func confirmResult(result string, err error, defaultYes bool) (bool, error) {
	if err != nil {
		switch {
		case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
			return false, ErrAborted
		case errors.Is(err, promptui.ErrAbort):
			if result == "" {
				return defaultYes, nil
			}
			return false, nil
		case result == "":
			return defaultYes, nil
		default:
			return false, err
		}
	}
	answer := strings.ToLower(strings.TrimSpace(result))
	return answer == "y" || answer == "yes", nil
}
