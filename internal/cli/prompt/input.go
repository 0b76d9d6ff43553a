// Package prompt provides the interactive terminal prompts used by the shell.
package prompt

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user aborts a prompt (Ctrl+C or Ctrl+D).
var ErrAborted = errors.New("aborted")

// IsAborted returns true if the error indicates the user aborted.
func IsAborted(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) ||
		errors.Is(err, promptui.ErrAbort) || errors.Is(err, ErrAborted)
}

// wrapError converts promptui interrupt/abort errors to ErrAborted for consistent handling.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if IsAborted(err) {
		return ErrAborted
	}
	return err
}

// Query prompts for a search term. placeholder is shown as the label hint;
// validation is left to the caller so the rejection message is consistent.
func Query(placeholder string) (string, error) {
	prompt := promptui.Prompt{
		Label: placeholder,
	}

	result, err := prompt.Run()
	return strings.TrimSpace(result), wrapError(err)
}
