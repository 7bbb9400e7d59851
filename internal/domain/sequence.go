package domain

import "fmt"

const (
	// FirstStep is issued for the first identifier of a day
	FirstStep = "a"
	// LastStep is the final single-letter step; nothing follows it
	LastStep = "z"
)

// NextStep returns the step after step. An empty step is followed by
// FirstStep. Multi-letter steps are accepted by the grammar but cannot be
// incremented.
func NextStep(step string) (string, error) {
	switch {
	case step == "":
		return FirstStep, nil
	case len(step) > 1:
		return "", ErrStepUnsupported
	case step == LastStep:
		return "", ErrStepExhausted
	}
	return string(step[0] + 1), nil
}

// NextIdentifier computes the identifier to issue given the latest issued
// identifiers and today's date token. latest must hold exactly one entry.
//
// When the latest identifier is from today its step is incremented; otherwise
// a new day starts at FirstStep under the same project.
func NextIdentifier(latest []string, today string) (Identifier, error) {
	if len(latest) != 1 {
		return Identifier{}, &HistoryError{Count: len(latest)}
	}
	if !IsDateToken(today) {
		return Identifier{}, &FormatError{Input: today, Reason: "today is not a YYMD date token"}
	}

	id, err := ParseIdentifier(latest[0])
	if err != nil {
		return Identifier{}, err
	}

	if id.Date != today {
		return Identifier{Project: id.Project, Date: today, Step: FirstStep}, nil
	}

	step, err := NextStep(id.Step)
	if err != nil {
		return Identifier{}, fmt.Errorf("after %s: %w", id, err)
	}
	return Identifier{Project: id.Project, Date: today, Step: step}, nil
}
