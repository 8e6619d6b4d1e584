package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spatium-net/spatium/pkg/cli"
)

func newFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "List generated topology files",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := deployService()
			if err != nil {
				return err
			}

			files := svc.ListTopologyFiles()
			if len(files) == 0 {
				fmt.Printf("No topology files in %s\n", svc.Workdir())
				return nil
			}

			t := cli.NewTable("FILE", "TOPOLOGY", "SIZE", "MODIFIED")
			for _, f := range files {
				name := f.Name
				if f.Error != "" {
					name = red(f.Name)
				}
				t.Row(f.Filename, name, fmt.Sprintf("%d", f.Size),
					time.Unix(f.Modified, 0).Format("2006-01-02 15:04"))
			}
			t.Flush()
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a topology file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := deployService()
			if err != nil {
				return err
			}
			if err := svc.DeleteTopologyFile(args[0]); err != nil {
				return err
			}
			fmt.Printf("%s Deleted %s.yaml\n", green("✓"), args[0])
			return nil
		},
	})

	return cmd
}
