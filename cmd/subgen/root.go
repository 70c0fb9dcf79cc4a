package main

import (
	"github.com/spf13/cobra"

	"subgen/internal/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "subgen",
		Short:         "Batch subtitle generation for media trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newRunCommand(&configFlag))
	rootCmd.AddCommand(newDepsCommand(&configFlag))
	rootCmd.AddCommand(newConfigCommand(&configFlag))

	return rootCmd
}

func loadConfig(configFlag *string) (*config.Config, string, bool, error) {
	path := ""
	if configFlag != nil {
		path = *configFlag
	}
	return config.Load(path)
}
