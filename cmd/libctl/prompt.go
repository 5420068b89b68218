package main

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

var errAborted = errors.New("aborted")

// surveyConfirm asks a yes/no question on the terminal, defaulting to no.
func surveyConfirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var ok bool
	if err := survey.AskOne(&survey.Confirm{Message: prompt}, &ok); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, errAborted
		}
		return false, err
	}
	return ok, nil
}
