package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spatium-net/spatium/pkg/cli"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <name>",
		Short: "Show a topology's deployment status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := deployService()
			if err != nil {
				return err
			}

			st := svc.TopologyStatus(cmd.Context(), args[0])
			if !st.Success {
				return fmt.Errorf("%s", st.Error)
			}

			if !st.Found {
				fmt.Printf("%s %s is not deployed\n", yellow("●"), args[0])
				return nil
			}

			fmt.Printf("%s %s is %s\n", green("●"), st.TopologyName, st.Status.Status)
			if len(st.Status.Containers) > 0 {
				t := cli.NewTable("CONTAINER", "DETAILS").WithPrefix("  ")
				for name, detail := range st.Status.Containers {
					t.Row(name, fmt.Sprintf("%v", detail))
				}
				t.Flush()
			}
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all deployments",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := deployService()
			if err != nil {
				return err
			}

			list := svc.ListDeployments(cmd.Context())
			if !list.Success {
				return fmt.Errorf("%s", list.Error)
			}
			if list.Count == 0 {
				fmt.Println("No deployments found")
				return nil
			}

			t := cli.NewTable("NAME", "STATUS", "PATH")
			for _, d := range list.Deployments {
				t.Row(d.Name, d.Status, d.LabPath)
			}
			t.Flush()
			return nil
		},
	}
}
