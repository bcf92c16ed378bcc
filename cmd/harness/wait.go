package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventsqa/harness/pkg/apiclient"
)

func newWaitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Block until the API under test answers its metadata endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := apiclient.NewClient(a.cfg.API.BaseURL)
			if err := client.WaitForReady(cmd.Context(), a.cfg.API.ReadyTimeout); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "api at %s is ready\n", client.BaseURL)
			return nil
		},
	}

	cmd.Flags().Duration("timeout", 30*time.Second, "how long to wait for the API")
	mustBind(a.v, cmd.Flags(), map[string]string{"api.ready-timeout": "timeout"})
	return cmd
}
