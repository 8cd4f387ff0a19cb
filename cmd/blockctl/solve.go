package main

import (
	"github.com/spf13/cobra"

	"github.com/blocksolve/blocksolve/internal/optimizer"
)

func newSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Solve a single block",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, opts, cfg, err := loadRunContext(cmd)
			if err != nil {
				return err
			}

			result, err := optimizer.Optimize(catalog, cfg.Capacity, opts)
			if err != nil {
				return err
			}

			renderSingleBlock(result, cfg.Quiet, cfg.Output)
			return nil
		},
	}
}
