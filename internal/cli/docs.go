package cli

import (
	"fmt"

	"listmerge/internal/docs"

	"github.com/spf13/cobra"
)

type docsTopics struct {
	Topics []string `json:"topics"`
}

func (d docsTopics) Text() string {
	out := ""
	for _, t := range d.Topics {
		out += t + "\n"
	}
	return out
}

type docsPage struct {
	Topic    string `json:"topic"`
	Markdown string `json:"markdown"`
}

func (d docsPage) Text() string { return d.Markdown }

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, docsTopics{Topics: docs.Topics()})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `listmerge docs` to list topics)", topic))
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}

			return writeOut(cmd, app, docsPage{Topic: topic, Markdown: body})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no envelope)")

	return cmd
}
