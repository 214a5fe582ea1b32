package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/docxtrans/docxtrans/internal/cli"
	"github.com/docxtrans/docxtrans/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	cli.ApplyConfig(cmd, flags)

	if err := cli.ValidateLanguages(flags.Source, flags.Target); err != nil {
		return err
	}

	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}
	return proc.Run()
}
