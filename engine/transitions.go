package engine

import (
	"strconv"

	"github.com/Selaelo1/telemanBot/model"
	"github.com/Selaelo1/telemanBot/validate"
)

// transition describes one step of the form: how to check the user's
// input, where the value lands in the collected data, which step
// follows, and what to say either way.
type transition struct {
	valid       func(text string) bool
	assign      func(d *model.FormData, text string)
	next        model.Step
	final       bool
	prompt      string // sent after a successful non-final transition
	errorPrompt string // sent on validation failure; step unchanged
}

// minNameLen is the only rule applied to the free-text name steps.
const minNameLen = 2

func validName(text string) bool {
	return len([]rune(text)) >= minNameLen
}

var transitions = map[model.Step]transition{
	model.StepName: {
		valid:       validName,
		assign:      func(d *model.FormData, text string) { d.FirstName = text },
		next:        model.StepSurname,
		prompt:      stepSurnameMessage,
		errorPrompt: errFirstNameMessage,
	},
	model.StepSurname: {
		valid:       validName,
		assign:      func(d *model.FormData, text string) { d.LastName = text },
		next:        model.StepAge,
		prompt:      stepAgeMessage,
		errorPrompt: errLastNameMessage,
	},
	model.StepAge: {
		valid: validate.Age,
		assign: func(d *model.FormData, text string) {
			d.Age, _ = strconv.Atoi(text) // validated above
		},
		next:        model.StepDOB,
		prompt:      stepDOBMessage,
		errorPrompt: errAgeMessage,
	},
	model.StepDOB: {
		valid:       validate.DateOfBirth,
		assign:      func(d *model.FormData, text string) { d.DateOfBirth = text },
		next:        model.StepEmail,
		prompt:      stepEmailMessage,
		errorPrompt: errDOBMessage,
	},
	model.StepEmail: {
		valid:       validate.Email,
		assign:      func(d *model.FormData, text string) { d.Email = text },
		next:        model.StepCompleted,
		final:       true,
		errorPrompt: errEmailMessage,
	},
}
