package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/adxyz/yieldplan/pkg/engine"
	"github.com/adxyz/yieldplan/pkg/log"
	"github.com/adxyz/yieldplan/pkg/plan"
)

var (
	planInput  string
	planOutput string
	planJSON   bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a plan from a JSON request file",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planInput, "input", "i", "", "Path to JSON plan request (required)")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "Write result to file instead of stdout")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Emit the full JSON response instead of the summary text")
	_ = planCmd.MarkFlagRequired("input")
}

func runPlan(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(planInput)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	var req plan.PlanRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}

	resp, err := engine.New(log.NoOp()).BuildPlan(&req)
	if err != nil {
		return err
	}

	var out []byte
	if planJSON {
		out, err = json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		out = append(out, '\n')
	} else {
		out = []byte(resp.Summary)
	}

	if planOutput != "" {
		if err := os.WriteFile(planOutput, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		color.Green("✅ Wrote plan for %s to %s", resp.AccountName, planOutput)
		return nil
	}

	if !planJSON {
		color.Cyan("── %s ──", resp.AccountName)
	}
	_, err = os.Stdout.Write(out)
	return err
}
