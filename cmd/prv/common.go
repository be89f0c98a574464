package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prvhq/prv/internal/cass"
	"github.com/prvhq/prv/internal/config"
	"github.com/prvhq/prv/internal/link"
	"github.com/prvhq/prv/internal/logging"
	"github.com/prvhq/prv/internal/matcher"
	"github.com/prvhq/prv/internal/prverr"
	"github.com/prvhq/prv/internal/vcs"
)

// runtime bundles the pieces every subcommand needs: configuration, a
// logger carrying an invocation id, and an open git adapter rooted at
// the current working directory.
type runtime struct {
	cfg    *config.Config
	logger *logging.Logger
	ctx    context.Context
	vcs    *vcs.Adapter
}

func newRuntime(cmdName string) (*runtime, error) {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.NewLogger(loggingConfigFrom(cfg.Logging))
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	ctx := logging.WithInvocationID(context.Background(), uuid.NewString())
	logger.Debug(ctx, "starting command", zap.String("command", cmdName))

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	adapter, err := vcs.Open(wd)
	if err != nil {
		return nil, prverr.Wrap(prverr.NoRepository, "opening git repository", err)
	}

	return &runtime{cfg: cfg, logger: logger, ctx: ctx, vcs: adapter}, nil
}

// loggingConfigFrom bridges the ambient config.LoggingConfig into a
// full logging.Config, carrying defaults for everything the slimmer
// config type doesn't expose (caller info, stacktrace level, redaction).
func loggingConfigFrom(lc config.LoggingConfig) *logging.Config {
	logCfg := logging.NewDefaultConfig()
	if lc.Format != "" {
		logCfg.Format = lc.Format
	}
	if lc.Level != "" {
		if level, err := logging.LevelFromString(lc.Level); err == nil {
			logCfg.Level = level
		}
	}
	return logCfg
}

// openCatalogue opens the CASS session catalogue, wrapping failures
// with the taxonomy kind the CLI uses to pick an exit code.
func openCatalogue(cfg *config.Config) (*cass.Catalogue, error) {
	catalogue, err := cass.Open(cfg.Cass.DBPath)
	if err != nil {
		return nil, prverr.Wrap(prverr.CatalogueUnavailable, "opening session catalogue at "+cfg.Cass.DBPath, err)
	}
	return catalogue, nil
}

// buildPipeline wires the matcher pipeline together: the catalogue as
// both candidate gate and evidence source, the git adapter, and the
// durable link store/index rooted at the repository.
func buildPipeline(rt *runtime, catalogue *cass.Catalogue) (*matcher.Pipeline, error) {
	repoRoot := rt.vcs.Root()

	index, err := link.LoadIndex(repoRoot, rt.cfg.Store.Dir)
	if err != nil {
		return nil, prverr.Wrap(prverr.PersistenceError, "loading link index", err)
	}

	return &matcher.Pipeline{
		Gate:        catalogue,
		VCS:         rt.vcs,
		Evidence:    cass.NewEvidence(catalogue),
		Store:       link.NewStore(repoRoot, rt.cfg.Store.Dir),
		Index:       index,
		RepoPath:    repoRoot,
		IndexWindow: rt.cfg.Matcher.IndexWindow.Duration(),
	}, nil
}
