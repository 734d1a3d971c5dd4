package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	var paths []string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and build scenarios without running them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.validate(paths, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringSliceVarP(&paths, "scenario", "s", nil, "scenario file, repeatable")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}

func (a *app) validate(paths []string, out io.Writer) error {
	worlds, err := a.loadWorlds(paths, "")
	if err != nil {
		return err
	}
	for i, w := range worlds {
		fmt.Fprintf(out, "%s: ok, %d agents, %d boundaries, %d obstacles, path %d points\n",
			paths[i], len(w.Entities), len(w.Boundaries), len(w.Obstacles()), w.Path.Len())
	}
	return nil
}
