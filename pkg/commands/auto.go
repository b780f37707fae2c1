package commands

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// PromptNext lets the user pick a command from a menu, asks for its
// arguments and runs it. Commands with an --interactive flag are run with it
// set so they prompt for the rest.
func PromptNext(cmd *cobra.Command, args []string) error {
	subcommands := menu(cmd)
	if len(subcommands) == 0 {
		return cmd.Help()
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name }} {{ .Short | cyan }}",
		Inactive: "   {{ .Name }} {{ .Short | cyan }}",
		Selected: "➜  {{ .Name | bold }}",
		Details: `
--------- {{ .Name }} ----------
{{ .Long }}
`,
	}

	searcher := func(input string, index int) bool {
		subcommand := subcommands[index]
		name := strings.Replace(strings.ToLower(subcommand.Name()+subcommand.Short), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)

		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     cmd.Name(),
		Items:     subcommands,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return err
	}
	next := subcommands[i]

	if next.HasAvailableSubCommands() {
		return PromptNext(next, args)
	}

	argv, err := promptArgs(next)
	if err != nil {
		return err
	}
	if f := next.Flags().Lookup("interactive"); f != nil {
		if err := f.Value.Set("true"); err != nil {
			return err
		}
	}
	if next.Args != nil {
		if err := next.Args(next, argv); err != nil {
			return err
		}
	}
	switch {
	case next.RunE != nil:
		return next.RunE(next, argv)
	case next.Run != nil:
		next.Run(next, argv)
		return nil
	}
	return next.Help()
}

// menu lists the commands worth offering under cmd.
func menu(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() {
			continue
		}
		switch c.Name() {
		case "help", "completion", "ui":
			continue
		}
		out = append(out, c)
	}
	return out
}

var placeholderPattern = regexp.MustCompile(`<([^>]+)>`)

// placeholders returns the required positional arguments named in a Use
// line, for example "duration <start HH:MM> <end HH:MM>" gives both.
func placeholders(use string) []string {
	var out []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(use, -1) {
		out = append(out, m[1])
	}
	return out
}

func promptArgs(cmd *cobra.Command) ([]string, error) {
	var argv []string
	for _, name := range placeholders(cmd.Use) {
		clock := strings.Contains(name, "HH:MM")
		p := promptui.Prompt{
			Label:  name,
			Stdin:  io.NopCloser(cmd.InOrStdin()),
			Stdout: nopWriteCloser{cmd.OutOrStdout()},
			Validate: func(input string) error {
				return validateArg(input, clock)
			},
		}
		v, err := p.Run()
		if err != nil {
			return nil, err
		}
		argv = append(argv, strings.TrimSpace(v))
	}
	return argv, nil
}

func validateArg(input string, clock bool) error {
	v := strings.TrimSpace(input)
	if v == "" {
		return errors.New("required")
	}
	if clock {
		if _, err := timeutil.Canonicalize(v); err != nil {
			return fmt.Errorf("%q is not a time of day", v)
		}
	}
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
