package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DeusData/viewcode/internal/config"
	"github.com/DeusData/viewcode/internal/store"
)

// addConfigFlags registers the per-invocation config overrides.
func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("syntax", "", "output syntax: snapkit, anchors or nslayoutconstraint")
	f.String("sort", "", "sibling order: none, top-to-bottom, left-to-right or distance")
	f.String("root-id", "", "generate from the widget with this id")
	f.String("container", "", "symbol the root view is added to")
	f.String("vc-ref", "", "expression owning the layout guides")
	f.Bool("skip-constraintless", true, "leave out views without constraints")
	f.Bool("summary", true, "print the hierarchy summary")
	f.Bool("verify", false, "parse the generated Swift and report syntax issues")
}

// loadConfig reads --config, or .viewcode.yaml in dir, and applies flag
// overrides. Boolean flags only override when given explicitly.
func loadConfig(cmd *cobra.Command, dir string) (*config.Config, error) {
	var base *config.Config
	var err error
	if configPath != "" {
		base, err = config.Load(configPath)
	} else {
		base, err = config.LoadDir(dir)
	}
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	var o config.Overrides
	o.OutputSyntax, _ = f.GetString("syntax")
	o.SortPolicy, _ = f.GetString("sort")
	o.RootID, _ = f.GetString("root-id")
	o.ContainerName, _ = f.GetString("container")
	o.ViewControllerRef, _ = f.GetString("vc-ref")
	o.SkipConstraintless = changedBool(cmd, "skip-constraintless")
	o.EmitHierarchySummary = changedBool(cmd, "summary")
	o.Verify = changedBool(cmd, "verify")

	cfg, err := base.With(o)
	if err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}

// openStore opens --db, or the default archive.
func openStore() (*store.Store, error) {
	if dbPath != "" {
		return store.OpenPath(dbPath)
	}
	return store.Open()
}
