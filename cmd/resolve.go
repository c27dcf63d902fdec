package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/codozor/kubestrap/internal/config"
	"github.com/codozor/kubestrap/internal/platform"
	"github.com/codozor/kubestrap/internal/service"
)

func cmdResolve() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "resolve the kubeconfig path",
		Long:  `Classify the host and print the kubeconfig path both provider clients would receive.`,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFilename := cmd.Flag("config").Value.String()

			configuration, err := config.ReadConfiguration(cfgFilename)
			if errors.Is(err, fs.ErrNotExist) {
				configuration, err = config.Default()
			}
			if err != nil {
				return err
			}

			evaluation, err := service.Evaluate(cmd.Context(), configuration)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "classification: %s\n", evaluation.Classification)
			fmt.Fprintf(out, "kubeconfig:     %s\n", evaluation.ConfigPath)

			expanded, err := platform.ExpandPath(evaluation.ConfigPath)
			if err == nil {
				fmt.Fprintf(out, "expanded:       %s\n", expanded)
			}

			return nil
		},
	}

	return cmd
}
