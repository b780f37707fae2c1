package options

import (
	"github.com/spf13/cobra"
)

// NoteOptions holds the note form as flags.
type NoteOptions struct {
	Title   string
	Details string
	Start   string
	End     string
}

func AddNoteArgs(cmd *cobra.Command, o *NoteOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Title of the note.")
	cmd.Flags().StringVarP(&o.Details, "details", "d", "",
		"What happened during the night.")
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Bedtime start as HH:MM, example: --start=23:30.`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`Wake-up time as HH:MM, example: --end=07:00.`)
}

// Changed returns the flags the user actually passed, nil for the others.
func (o *NoteOptions) Changed(cmd *cobra.Command) (title, details, start, end *string) {
	pick := func(name string, v *string) *string {
		if cmd.Flags().Changed(name) {
			return v
		}
		return nil
	}
	return pick("title", &o.Title), pick("details", &o.Details), pick("start", &o.Start), pick("end", &o.End)
}
