package main

import (
	"github.com/spf13/cobra"

	"github.com/blocksolve/blocksolve/internal/catalogio"
	"github.com/blocksolve/blocksolve/internal/config"
	"github.com/blocksolve/blocksolve/internal/optimizer"
)

// loadRunContext loads the merged config, the catalog it points at, and the
// optimizer options derived from it. Shared by solve and plan so neither
// subcommand touches internal/optimizer's internals directly.
func loadRunContext(cmd *cobra.Command) (optimizer.Catalog, optimizer.Options, *config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return optimizer.Catalog{}, optimizer.Options{}, nil, err
	}

	catalog, err := catalogio.Load(cfg.Catalog)
	if err != nil {
		return optimizer.Catalog{}, optimizer.Options{}, nil, err
	}

	opts := optimizer.Options{
		BeamWidth: cfg.BeamWidth,
		Debug:     cfg.Debug,
		StartingResources: optimizer.ResourceCost{
			Money:  cfg.StartingResources.Money,
			Wood:   cfg.StartingResources.Wood,
			Cement: cfg.StartingResources.Cement,
			Steel:  cfg.StartingResources.Steel,
		},
	}

	return catalog, opts, cfg, nil
}
