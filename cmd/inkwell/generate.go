package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/inkwell-labs/inkwell/pkg/client"
	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	var (
		prompt   string
		style    string
		stream   bool
		useWS    bool
		asHTML   bool
		provider string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate content from a prompt",
		Long: `Generate content from a prompt, printing fragments as they arrive.

Examples:
  inkwell generate --prompt "Write a tagline" --type ad
  inkwell generate --prompt "Launch post" --type blog --route openai --html
  inkwell generate --prompt "Write a tagline" --ws`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(prompt) == "" && len(args) > 0 {
				prompt = strings.Join(args, " ")
			}

			route := client.RouteAI
			switch provider {
			case "ai", "":
			case "openai":
				route = client.RouteOpenAI
			default:
				return fmt.Errorf("unknown route %q (want ai or openai)", provider)
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			live := stream && !asHTML
			emitter := client.EmitterFuncs{
				OnFragment: func(fragment string, _ client.Content) {
					if live {
						fmt.Fprint(out, fragment)
					}
				},
				OnError: func(_ client.Content, f *client.Failure) {
					printNotice(errOut, f)
				},
			}

			session := client.NewSession(client.New(serverURL, token), emitter)
			req := client.Request{Prompt: prompt, Type: style, Stream: stream || useWS}
			content, err := session.Submit(cmd.Context(), route, req, useWS)
			if err != nil {
				var f *client.Failure
				if errors.As(err, &f) {
					if live && content.Text != "" {
						fmt.Fprintln(out)
					}
					return fmt.Errorf("generation failed")
				}
				return err
			}

			switch {
			case asHTML:
				html, err := client.RenderHTML(content.Text)
				if err != nil {
					return err
				}
				fmt.Fprint(out, html)
			case live:
				fmt.Fprintln(out)
			default:
				fmt.Fprintln(out, content.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "prompt to generate from")
	cmd.Flags().StringVarP(&style, "type", "t", "content", "content type (content, blog, social, ad)")
	cmd.Flags().BoolVar(&stream, "stream", true, "stream fragments as they arrive")
	cmd.Flags().BoolVar(&useWS, "ws", false, "stream over a WebSocket instead of HTTP")
	cmd.Flags().BoolVar(&asHTML, "html", false, "render the final text as HTML")
	cmd.Flags().StringVar(&provider, "route", "ai", "generation route (ai, openai)")

	return cmd
}

// printNotice writes a failure notice the way the dashboard shows it
func printNotice(w io.Writer, f *client.Failure) {
	fmt.Fprintf(w, "error: %s (shown for %s)\n", f.Message, f.NoticeDuration())
	if f.HelpURL != "" {
		fmt.Fprintf(w, "  see %s\n", f.HelpURL)
	}
}
