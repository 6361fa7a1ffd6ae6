// Package edit collects user corrections for tag sets. The prompt side
// sits behind Prompter so the merge and validation logic runs headless
// in tests.
package edit

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

var (
	// ErrCancelled is the user interrupting a prompt, which ends the
	// run without failure.
	ErrCancelled = errors.New("cancelled")
	// ErrInterrupted is the input source closing mid edit, which fails
	// the whole run.
	ErrInterrupted = errors.New("interrupted")
)

type Prompter interface {
	Input(label, def string, suggest func(prefix string) []string, validate func(string) error) (string, error)
	Confirm(message string) (bool, error)
}

// Session drives one edit pass over the album. It carries the word pool
// used for completion suggestions across all prompts.
type Session struct {
	prompter Prompter
	words    []string
}

func NewSession(prompter Prompter, sets ...map[string]string) *Session {
	seen := map[string]struct{}{}
	var words []string
	for _, set := range sets {
		for _, value := range set {
			for _, word := range strings.Fields(value) {
				if _, ok := seen[word]; ok {
					continue
				}
				seen[word] = struct{}{}
				words = append(words, word)
			}
		}
	}
	slices.Sort(words)
	return &Session{prompter: prompter, words: words}
}

// Edit prompts for every field in order, presenting the current value
// as the default, and merges the validated answers back into set.
func (s *Session) Edit(fields []string, set map[string]string) error {
	for _, field := range fields {
		value, err := s.prompter.Input(Label(field), set[field], s.suggest, ValidatorFor(field))
		if err != nil {
			return fmt.Errorf("edit %s: %w", field, err)
		}
		set[field] = value
	}
	return nil
}

func (s *Session) Confirm(message string) (bool, error) {
	return s.prompter.Confirm(message)
}

func (s *Session) suggest(prefix string) []string {
	var matches []string
	for _, w := range s.words {
		if strings.HasPrefix(strings.ToLower(w), strings.ToLower(prefix)) {
			matches = append(matches, w)
		}
	}
	return matches
}

func Label(field string) string {
	return strings.ToUpper(strings.ReplaceAll(field, "_", " "))
}

// ValidatorFor picks the validation rule for a field. Position and
// total fields take digits only, everything else just has to be
// non empty.
func ValidatorFor(field string) func(string) error {
	if strings.Contains(field, "number") || strings.Contains(field, "total") {
		return Numeric
	}
	return Required
}

func Required(value string) error {
	if value == "" {
		return errors.New("value is required")
	}
	return nil
}

func Numeric(value string) error {
	if err := Required(value); err != nil {
		return err
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return errors.New("accepts numeric characters only")
		}
	}
	return nil
}

// Terminal prompts on the controlling terminal via survey.
type Terminal struct{}

func (Terminal) Input(label, def string, suggest func(prefix string) []string, validate func(string) error) (string, error) {
	prompt := &survey.Input{
		Message: label,
		Default: def,
		Suggest: suggest,
	}
	var value string
	err := survey.AskOne(prompt, &value, survey.WithValidator(func(ans interface{}) error {
		s, _ := ans.(string)
		return validate(s)
	}))
	if err != nil {
		return "", promptErr(err)
	}
	return value, nil
}

func (Terminal) Confirm(message string) (bool, error) {
	var ok bool
	if err := survey.AskOne(&survey.Confirm{Message: message}, &ok); err != nil {
		return false, promptErr(err)
	}
	return ok, nil
}

func promptErr(err error) error {
	switch {
	case errors.Is(err, terminal.InterruptErr):
		return ErrCancelled
	case errors.Is(err, io.EOF):
		return ErrInterrupted
	}
	return err
}
