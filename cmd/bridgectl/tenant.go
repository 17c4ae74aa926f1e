package main

import (
	"fmt"

	"provider-bridge/config"
	"provider-bridge/pkg/aesecb"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func tenantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenant credentials",
	}
	cmd.AddCommand(tenantNewCmd())
	return cmd
}

func tenantNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <tenant_id>",
		Short: "Generate keys for a new tenant and print its config entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upstream, _ := cmd.Flags().GetString("upstream")
			fallbacks, _ := cmd.Flags().GetInt("fallbacks")
			if fallbacks < 0 {
				return fmt.Errorf("--fallbacks must be >= 0")
			}

			entry, err := newTenantEntry(args[0], upstream, fallbacks)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(map[string][]config.TenantConfig{"tenants": {entry}})
			if err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringP("upstream", "u", "", "upstream provider launch URL")
	cmd.Flags().IntP("fallbacks", "f", 0, "number of fallback keys to generate")
	return cmd
}

func newTenantEntry(tenantID, upstream string, fallbacks int) (config.TenantConfig, error) {
	entry := config.TenantConfig{TenantID: tenantID, UpstreamURL: upstream}

	secret, err := aesecb.GenerateKey()
	if err != nil {
		return entry, err
	}
	entry.Secret = secret

	for i := 0; i < fallbacks; i++ {
		k, err := aesecb.GenerateKey()
		if err != nil {
			return entry, err
		}
		entry.FallbackSecrets = append(entry.FallbackSecrets, k)
	}
	return entry, nil
}
