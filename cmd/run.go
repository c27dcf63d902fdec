package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/samber/do/v2"

	"github.com/codozor/kubestrap/internal/bootstrap"
	"github.com/codozor/kubestrap/internal/config"
	"github.com/codozor/kubestrap/internal/service"
)

func cmdRun() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "run",
		Short: "run kubestrap",
		Long:  `Resolve the host kubeconfig path and materialize both provider clients from it.`,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFilename := cmd.Flag("config").Value.String()

			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return err
			}

			configuration, err := config.ReadConfiguration(cfgFilename)
			if err != nil {
				return err
			}

			injector := do.New()

			// Provide configuration and invocation options to the injector
			do.ProvideValue(injector, configuration)
			do.ProvideValue(injector, service.Options{ConfigFile: cfgFilename, DryRun: dryRun})

			// Bootstrap all dependencies
			bootstrap.Package(injector)

			runner, err := do.Invoke[*service.Runner](injector)
			if err != nil {
				return err
			}

			if err := runner.Start(); err != nil {
				return err
			}

			if !configuration.Watch {
				runner.Shutdown()
				return nil
			}

			injector.ShutdownOnSignals(os.Interrupt, os.Kill)

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Resolve and log provider configurations without touching a cluster")

	return cmd
}
