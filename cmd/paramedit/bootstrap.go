package main

import (
	"context"
	"fmt"
	"strings"

	"pkt.systems/pslog"

	"github.com/goliatone/go-paramedit/internal/appconfig"
	"github.com/goliatone/go-paramedit/internal/seed"
	"github.com/goliatone/go-paramedit/pkg/i18n"
	"github.com/goliatone/go-paramedit/pkg/state"
)

// appRuntime is the resolved configuration shared by the subcommands.
type appRuntime struct {
	cfg     appconfig.Config
	seed    state.State
	policy  state.IDPolicy
	catalog *i18n.Catalog
}

func (rt *appRuntime) newStore() *state.Store {
	return state.NewStore(state.WithIDPolicy(rt.policy))
}

// locale returns the configured locale matched against the loaded catalogs.
func (rt *appRuntime) locale() string {
	return rt.catalog.Match(rt.cfg.Editor.Locale)
}

func loadRuntime(ctx context.Context, flags *globalFlags) (*appRuntime, error) {
	if err := appconfig.LoadDotEnv(flags.envFiles...); err != nil {
		return nil, err
	}
	cfg, err := appconfig.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	seedPath := strings.TrimSpace(flags.seedPath)
	if seedPath == "" {
		seedPath = cfg.Editor.Seed
	}
	st, err := seed.Load(seedPath)
	if err != nil {
		return nil, err
	}
	policy, err := state.ParseIDPolicy(cfg.Editor.IDPolicy)
	if err != nil {
		return nil, fmt.Errorf("paramedit: %w", err)
	}
	catalog, err := i18n.Default()
	if err != nil {
		return nil, err
	}

	logger := pslog.Ctx(ctx)
	if seedPath == "" {
		logger.Debug("using built-in example seed")
	} else {
		logger.Info("seed loaded", "path", seedPath, "parameters", len(st.Registry))
	}
	if report := state.Drift(st); !report.Empty() {
		logger.Warn("seed registry and model out of sync", "missing", report.Missing, "orphaned", report.Orphaned, "duplicate_ids", report.DuplicateIDs)
	}

	return &appRuntime{cfg: cfg, seed: st, policy: policy, catalog: catalog}, nil
}
