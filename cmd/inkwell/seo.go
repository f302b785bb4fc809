package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inkwell-labs/inkwell/pkg/client"
	"github.com/spf13/cobra"
)

func seoCmd() *cobra.Command {
	var keyword, url string

	cmd := &cobra.Command{
		Use:   "seo",
		Short: "Look up SERP data for a keyword or describe a URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyword == "" && url == "" {
				return errors.New("one of --keyword or --url is required")
			}

			report, err := client.New(serverURL, token).SEO(cmd.Context(), keyword, url)
			if err != nil {
				var f *client.Failure
				if errors.As(err, &f) {
					printNotice(cmd.ErrOrStderr(), f)
					return fmt.Errorf("SEO lookup failed")
				}
				return err
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, report, "", "  "); err != nil {
				return fmt.Errorf("formatting report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "keyword to look up")
	cmd.Flags().StringVarP(&url, "url", "u", "", "URL to analyse")

	return cmd
}
