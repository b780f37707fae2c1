package reminder

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
)

// TerminalNotifier prints reminders to a terminal.
type TerminalNotifier struct {
	Out  io.Writer
	Bell bool
	Now  func() time.Time
}

func (t *TerminalNotifier) Notify(title, body string) error {
	out := t.Out
	if out == nil {
		out = color.Output
	}
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}

	if t.Bell {
		if _, err := fmt.Fprint(out, "\a"); err != nil {
			return err
		}
	}
	stamp := color.New(color.Faint)
	head := color.New(color.Bold, color.FgHiBlue)
	if _, err := stamp.Fprintf(out, "%s ", now().Format("15:04")); err != nil {
		return err
	}
	if _, err := head.Fprintln(out, title); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "      %s\n", body)
	return err
}

// PromptAuthorizer asks on the terminal before enabling reminders.
type PromptAuthorizer struct {
	Label string
}

func (p PromptAuthorizer) Authorize() (bool, error) {
	label := p.Label
	if label == "" {
		label = "Allow Sleep Diary to send you reminders"
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} ",
		Valid:   "{{ . | green }} ",
		Invalid: "{{ . | red }} ",
		Success: "{{ . | bold }} ",
	}

	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var (
	_ Notifier   = (*TerminalNotifier)(nil)
	_ Authorizer = PromptAuthorizer{}
)
