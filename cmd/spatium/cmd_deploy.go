package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spatium-net/spatium/pkg/model"
)

func newDeployCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a topology from a JSON description",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var topo model.TopologyConfig
			if err := json.Unmarshal(raw, &topo); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}
			for i := range topo.Nodes {
				if topo.Nodes[i].Kind == "" {
					topo.Nodes[i].Kind = model.DefaultNodeKind
				}
			}

			svc, err := deployService()
			if err != nil {
				return err
			}

			fmt.Printf("Deploying %s (%d nodes, %d links)...\n", topo.Name, len(topo.Nodes), len(topo.Links))
			resp := svc.Deploy(cmd.Context(), &topo)
			if !resp.Success {
				return fmt.Errorf("%s", resp.Error)
			}

			fmt.Printf("%s Deployed %s\n", green("✓"), resp.TopologyName)
			fmt.Printf("  topology file: %s\n", resp.TopologyFile)
			if resp.Output != "" {
				fmt.Println(resp.Output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "topology description (JSON)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newDestroyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <name>",
		Short: "Destroy a deployed topology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := deployService()
			if err != nil {
				return err
			}

			resp := svc.Destroy(cmd.Context(), args[0])
			if !resp.Success {
				return fmt.Errorf("%s", resp.Error)
			}
			fmt.Printf("%s Destroyed %s\n", green("✓"), args[0])
			return nil
		},
	}
}
