package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"provider-bridge/config"
	"provider-bridge/internal/core/domain"
	"provider-bridge/internal/envelope"
	"provider-bridge/internal/service"

	"github.com/spf13/cobra"
)

func sealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seal [file]",
		Short: "Encrypt a JSON payload into a provider envelope",
		Long: `Reads a JSON payload from file (or stdin) and prints the envelope
{tenant_id, timestamp, payload} sealed with the tenant's key.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tenant, _ := cmd.Flags().GetString("tenant")
			index, _ := cmd.Flags().GetInt("key")

			reg, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			keys := reg.Keys(tenant)
			if len(keys) == 0 {
				return fmt.Errorf("unknown tenant %q", tenant)
			}
			if index < 0 || index >= len(keys) {
				return fmt.Errorf("tenant %s has %d key(s), no key %d", tenant, len(keys), index)
			}

			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if !json.Valid(raw) {
				return errors.New("payload is not valid JSON")
			}

			env, err := envelope.Seal(json.RawMessage(raw), keys[index], time.Now())
			if err != nil {
				return err
			}
			return printJSON(cmd, env)
		},
	}
	cmd.Flags().StringP("tenant", "t", "", "tenant id")
	cmd.Flags().IntP("key", "k", 0, "key index: 0 is the primary, 1.. the fallbacks")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [file]",
		Short: "Decrypt a provider envelope with the tenant's keys",
		Long: `Reads an envelope from file (or stdin), tries the tenant's keys
primary first and prints the plaintext. The matching key goes to stderr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			var env domain.Envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				return fmt.Errorf("decode envelope: %w", err)
			}
			if missing := env.MissingFields(); len(missing) > 0 {
				return fmt.Errorf("envelope is missing %v", missing)
			}
			keys := reg.Keys(env.TenantID)
			if len(keys) == 0 {
				return fmt.Errorf("unknown tenant %q", env.TenantID)
			}

			cred, plain, err := envelope.Open(env.Payload, keys)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "opened with %s key %d\n", cred.Role, cred.Index)
			return printJSON(cmd, json.RawMessage(plain))
		},
	}
}

func loadRegistry(cmd *cobra.Command) (*service.KeyRegistry, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return service.NewKeyRegistry(cfg.Tenants)
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(cmd.InOrStdin())
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
