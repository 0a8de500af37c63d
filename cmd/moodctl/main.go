// moodctl is a small CLI for talking to a running Moodic API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/moodic-labs/moodic/pkg/client"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var baseURL string

	root := &cobra.Command{
		Use:          "moodctl",
		Short:        "Query a Moodic API for mood-based song recommendations",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&baseURL, "api", "http://localhost:8080", "base URL of the Moodic API")

	root.AddCommand(newRecommendCmd(&baseURL))
	root.AddCommand(newPingCmd(&baseURL))
	return root
}

func newRecommendCmd(baseURL *string) *cobra.Command {
	var genre string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "recommend <mood>",
		Short: "Get curated songs for a mood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(*baseURL, client.Options{
				OnStatus: func(msg string) {
					fmt.Fprintln(cmd.ErrOrStderr(), msg)
				},
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			set, err := c.Recommend(ctx, args[0], genre)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Mood: %s (%s)\n\n", set.Theme.MoodName, set.Theme.HexColor)
			if len(set.Recommendations) == 0 {
				fmt.Fprintln(out, "No recommendations found.")
				return nil
			}
			for i, rec := range set.Recommendations {
				fmt.Fprintf(out, "%2d. %s — %s\n", i+1, rec.Title, rec.Artist)
				fmt.Fprintf(out, "    %s\n", rec.Reason)
				fmt.Fprintf(out, "    %s\n", rec.Link)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&genre, "genre", "g", "", "preferred genre filter")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall request timeout")
	return cmd
}

func newPingCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(*baseURL, client.Options{})
			if err != nil {
				return err
			}
			if err := c.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
