package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	remitDI "github.com/fd1az/remit-aggregator/business/remit/di"
)

type providerSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Enabled     bool   `json:"enabled"`
}

func newProvidersCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List known remittance providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			mono, err := bootstrap(cmd.Context(), configPath)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(exitInvalidParameter)
			}
			defer mono.Close()

			registry := remitDI.GetRegistry(mono.Services())
			active := make(map[string]bool, len(registry.ActiveIDs(nil, nil)))
			for _, id := range registry.ActiveIDs(nil, nil) {
				active[id] = true
			}

			summaries := make([]providerSummary, 0, len(registry.ListIDs()))
			for _, id := range registry.ListIDs() {
				adapter, err := registry.Build(id)
				if err != nil {
					continue
				}
				summaries = append(summaries, providerSummary{
					ID:          adapter.ID(),
					DisplayName: adapter.DisplayName(),
					Enabled:     active[id],
				})
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(summaries); err != nil {
				return err
			}

			if len(summaries) == 0 {
				os.Exit(exitNoProvidersActive)
			}
			os.Exit(exitSuccess)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to configuration file")
	return cmd
}
