// SPDX-License-Identifier: MPL-2.0

package prompt

// Scripted is a Prompter that replays canned answers in order. It backs the
// workflow tests and the --yes non-interactive paths; an exhausted script
// behaves like the user dismissing the prompt.
type Scripted struct {
	// Answers are consumed front-to-back by QuickPick and Input.
	Answers []string
	// Confirms are consumed front-to-back by Confirm.
	Confirms []bool
}

var _ Prompter = (*Scripted)(nil)

// QuickPick implements Prompter.
func (s *Scripted) QuickPick(_ string, _ []string) (string, error) {
	return s.next()
}

// Input implements Prompter.
func (s *Scripted) Input(opts InputOptions) (string, error) {
	answer, err := s.next()
	if err != nil {
		return "", err
	}
	if answer == "" {
		answer = opts.Default
	}
	if opts.Validate != nil {
		if err := opts.Validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

// Confirm implements Prompter.
func (s *Scripted) Confirm(_ string) (bool, error) {
	if len(s.Confirms) == 0 {
		return false, ErrCancelled
	}
	answer := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return answer, nil
}

func (s *Scripted) next() (string, error) {
	if len(s.Answers) == 0 {
		return "", ErrCancelled
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}
