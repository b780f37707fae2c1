package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/sleepdiary/pkg/app"
)

// OutputOptions switches results and errors to JSON.
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

type jsonError struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// HandleError prints err as JSON and swallows it when --json is set. A
// rejected form field is named in "field".
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := jsonError{Error: err.Error()}
		var fe *app.FieldError
		if errors.As(err, &fe) {
			out.Field = fe.Field
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
