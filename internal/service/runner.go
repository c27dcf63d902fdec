package service

import (
	"context"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/samber/do/v2"

	"k8s.io/client-go/kubernetes"

	"github.com/codozor/kubestrap/internal/config"
	helminternal "github.com/codozor/kubestrap/internal/helm"
	kubeinternal "github.com/codozor/kubestrap/internal/kubernetes"
)

// Options carries the invocation details the configuration file cannot
// know about itself.
type Options struct {
	ConfigFile string
	DryRun     bool
}

// Runner orchestrates one evaluation: it logs the resolved provider
// configurations, materializes both clients unless running dry, and in
// watch mode re-runs the evaluation when the configuration file changes.
type Runner struct {
	configuration config.Configuration

	options Options

	logger zerolog.Logger

	evaluation *Evaluation

	injector do.Injector

	watcher *fsnotify.Watcher

	cancel context.CancelFunc

	wg sync.WaitGroup

	mu sync.Mutex
}

// Start runs the evaluation and, in watch mode, keeps refreshing it.
func (r *Runner) Start() error {
	ctx := r.logger.WithContext(context.Background())
	ctx, r.cancel = context.WithCancel(ctx)

	r.logEvaluation(ctx, r.evaluation)

	if !r.options.DryRun {
		if err := r.materialize(ctx); err != nil {
			return err
		}
	}

	if r.configuration.Watch {
		if err := r.startWatch(ctx); err != nil {
			return err
		}
	}

	return nil
}

// materialize builds both provider clients from the evaluation and
// proves each one works. Both come out of the same injector chain, so
// each loads from the one expanded path.
func (r *Runner) materialize(ctx context.Context) error {
	log := zerolog.Ctx(ctx)

	client, err := do.Invoke[kubernetes.Interface](r.injector)
	if err != nil {
		return err
	}

	result, err := kubeinternal.Check(ctx, client)
	if err != nil {
		return err
	}

	log.Info().
		Str("provider", r.evaluation.Kubernetes.Name).
		Str("server", result.ServerVersion).
		Int("namespaces", result.Namespaces).
		Msg("provider client ready")

	helmClient, err := do.Invoke[*helminternal.Client](r.injector)
	if err != nil {
		return err
	}

	releases, err := helmClient.ListReleases(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Str("provider", r.evaluation.Helm.Name).
		Str("namespace", helmClient.Namespace()).
		Int("releases", len(releases)).
		Msg("provider client ready")

	return nil
}

func (r *Runner) startWatch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(r.options.ConfigFile); err != nil {
		watcher.Close()
		return err
	}

	r.watcher = watcher

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.watchLoop(ctx)
	}()

	return nil
}

func (r *Runner) watchLoop(ctx context.Context) {
	log := zerolog.Ctx(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			r.refresh(ctx)

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("configuration watcher error")
		}
	}
}

// refresh re-reads the configuration and re-runs the evaluation. The
// provider clients built at startup keep their original path; a changed
// resolution only takes effect on restart, so it is called out loudly.
func (r *Runner) refresh(ctx context.Context) {
	log := zerolog.Ctx(ctx)

	cfg, err := config.ReadConfiguration(r.options.ConfigFile)
	if err != nil {
		log.Error().Err(err).Msg("configuration reload failed")
		return
	}

	evaluation, err := Evaluate(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("re-evaluation failed")
		return
	}

	r.mu.Lock()
	previous := r.evaluation
	r.evaluation = evaluation
	r.configuration = cfg
	r.mu.Unlock()

	if evaluation.ConfigPath != previous.ConfigPath {
		log.Warn().
			Str("old", previous.ConfigPath).
			Str("new", evaluation.ConfigPath).
			Msg("resolved kubeconfig path changed, restart to rebuild provider clients")
	}

	r.logEvaluation(ctx, evaluation)
}

func (r *Runner) logEvaluation(ctx context.Context, evaluation *Evaluation) {
	log := zerolog.Ctx(ctx)

	log.Info().
		Stringer("classification", evaluation.Classification).
		Str("kubeconfig", evaluation.ConfigPath).
		Msg("host classified")

	for _, pc := range evaluation.Providers() {
		log.Info().
			Str("provider", pc.Name).
			Str("config_path", pc.ConfigPath).
			Msg("provider configured")
	}
}

// Evaluation returns the most recent evaluation outcome.
func (r *Runner) Evaluation() *Evaluation {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.evaluation
}

// Shutdown stops the watch loop and waits for it to drain.
func (r *Runner) Shutdown() {
	log := r.logger

	if r.cancel != nil {
		r.cancel()
	}

	if r.watcher != nil {
		r.watcher.Close()
	}

	r.wg.Wait()

	log.Info().Msg(`kubestrap stopped`)
}
