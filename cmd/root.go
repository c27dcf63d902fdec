package cmd

import (
	"github.com/spf13/cobra"
)

func cmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use: "kubestrap",

		Short: "kubestrap",

		Long: `Provision Kubernetes and Helm client configurations from the platform default kubeconfig.`,

		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(cmdRun())
	cmd.AddCommand(cmdResolve())

	cmd.PersistentFlags().StringP("config", "c", "kubestrap.cue", "Configuration file")

	return cmd
}

func Execute() error {
	cmd := cmdRoot()

	return cmd.Execute()
}
