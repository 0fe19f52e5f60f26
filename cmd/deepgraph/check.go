package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deepgraph/declare"
	"deepgraph/options"
)

func newCheckCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check <manifest>",
		Short: "validate a declaration manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := declare.LoadManifest(args[0])
			if err != nil {
				return err
			}

			// Apply runs Validate first
			if err := m.Apply(declare.NewEmptyRegistry()); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries ok\n", args[0], len(m.Types))

			if configPath == "" {
				return nil
			}
			if _, err := options.LoadFile(configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", configPath)

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "engine config file to validate as well")

	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "print the default engine config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := options.Default()

			data, err := options.Marshal(&cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
}
