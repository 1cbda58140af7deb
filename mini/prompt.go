package mini

import (
	"github.com/AlecAivazis/survey/v2"
)

// prompter asks the user. Select returns the index of the chosen option.
type prompter interface {
	Select(message string, options []string) (int, error)
	Input(message string, suggest func(string) []string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Select(message string, options []string) (int, error) {
	var index int
	err := survey.AskOne(&survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}, &index)
	return index, err
}

func (surveyPrompter) Input(message string, suggest func(string) []string) (string, error) {
	var response string
	err := survey.AskOne(&survey.Input{
		Message: message,
		Suggest: suggest,
	}, &response, survey.WithValidator(survey.Required))
	return response, err
}
