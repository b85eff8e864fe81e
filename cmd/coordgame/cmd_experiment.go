package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/coordgame/equilibrium"
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw and store reward instances and scenario sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			size, _ := cmd.Flags().GetInt("size")

			r, closeStore, err := openRunner(cmd)
			if err != nil {
				return err
			}
			defer closeStore()
			if cmd.Flags().Changed("seed") {
				r.Config.Sampling.Seed, _ = cmd.Flags().GetUint64("seed")
			}

			b, err := r.SampleRewards(cmd.Context(), size)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sampled n=%d: %d instances, %d solve scenarios, %d eval scenarios\n",
				size, len(b.NR1s), len(b.SolveScenarios), len(b.EvalScenarios))
			return nil
		},
	}
	cmd.Flags().Int("size", 0, "Network size key")
	cmd.Flags().Uint64("seed", 0, "Sampling seed (overrides sampling.seed)")
	cmd.MarkFlagRequired("size")

	return cmd
}

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one configuration, or sweep every configured one",
		Long: `Without --c, solve sweeps every configured instance, bonus and locality,
skipping configurations already stored. With --c, it solves the single
configuration given by --c, --locality and --instance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, _ := cmd.Flags().GetInt("size")

			r, closeStore, err := openRunner(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if !cmd.Flags().Changed("c") {
				n, err := r.SolveAll(cmd.Context(), size)
				fmt.Fprintf(cmd.OutOrStdout(), "solved %d configurations\n", n)
				return err
			}

			c, _ := cmd.Flags().GetFloat64("c")
			raw, _ := cmd.Flags().GetString("locality")
			L, err := equilibrium.ParseLocality(raw)
			if err != nil {
				return err
			}
			instance, _ := cmd.Flags().GetInt("instance")

			sol, err := r.SolveOne(cmd.Context(), size, c, L, instance)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s objective=%.6f run_time=%s run_id=%s\n",
				sol.Key, sol.Objective, sol.RunTime, sol.RunID)
			return nil
		},
	}
	cmd.Flags().Int("size", 0, "Network size key")
	cmd.Flags().Float64("c", 0, "Agreement bonus")
	cmd.Flags().String("locality", "full", `Ego-network radius, or "full"`)
	cmd.Flags().Int("instance", 0, "Period-1 instance index (0-based)")
	cmd.MarkFlagRequired("size")

	return cmd
}

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score stored solutions on the evaluation scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			size, _ := cmd.Flags().GetInt("size")

			r, closeStore, err := openRunner(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			instances := make([]int, 0, r.Config.Sampling.Instances)
			if cmd.Flags().Changed("instance") {
				i, _ := cmd.Flags().GetInt("instance")
				instances = append(instances, i)
			} else {
				for i := 0; i < r.Config.Sampling.Instances; i++ {
					instances = append(instances, i)
				}
			}

			total := 0
			for _, i := range instances {
				rows, err := r.EvaluateInstance(cmd.Context(), size, i)
				if err != nil {
					return err
				}
				total += len(rows)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "evaluated %d instances, %d payoff rows\n", len(instances), total)
			return nil
		},
	}
	cmd.Flags().Int("size", 0, "Network size key")
	cmd.Flags().Int("instance", 0, "Evaluate only this instance (0-based)")
	cmd.MarkFlagRequired("size")

	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the payoff table as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			size, _ := cmd.Flags().GetInt("size")
			out, _ := cmd.Flags().GetString("out")

			r, closeStore, err := openRunner(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return r.Export(cmd.Context(), size, w)
		},
	}
	cmd.Flags().Int("size", 0, "Network size key")
	cmd.Flags().String("out", "", "Output file (default stdout)")
	cmd.MarkFlagRequired("size")

	return cmd
}
