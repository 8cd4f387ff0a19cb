package main

import (
	"github.com/spf13/cobra"

	"github.com/blocksolve/blocksolve/internal/optimizer"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Solve a multi-block plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, opts, cfg, err := loadRunContext(cmd)
			if err != nil {
				return err
			}

			result, err := optimizer.OptimizeMultipleBlocks(catalog, cfg.Blocks, cfg.Capacity, opts)
			if err != nil {
				return err
			}

			renderMultiBlock(result, cfg.Quiet, cfg.Output)
			return nil
		},
	}
	cmd.Flags().IntP("blocks", "n", 1, "Number of blocks to plan")
	return cmd
}
