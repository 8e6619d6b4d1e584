package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spatium-net/spatium/pkg/cli"
	"github.com/spatium-net/spatium/pkg/device"
	"github.com/spatium-net/spatium/pkg/model"
)

func newFetchCmd() *cobra.Command {
	var (
		user        string
		password    string
		keyPath     string
		port        int
		method      string
		deviceModel string
		restURL     string
		save        bool
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "fetch <host>...",
		Short: "Fetch device configurations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" && keyPath == "" {
				pw, err := promptPassword(user)
				if err != nil {
					return err
				}
				password = pw
			}

			devices := make([]model.Device, 0, len(args))
			for _, host := range args {
				devices = append(devices, model.Device{
					Host:       host,
					Username:   user,
					Password:   password,
					PrivateKey: keyPath,
					Port:       port,
					Method:     method,
					Model:      deviceModel,
					RestURL:    restURL,
				})
			}

			fetcher := device.NewFetcher(cfg.RestTimeout, cfg.FetchParallel)

			if save {
				if outputDir == "" {
					outputDir = cfg.OutputDir
				}
				results, err := fetcher.SaveConfigs(cmd.Context(), devices, outputDir)
				if err != nil {
					return err
				}
				for _, r := range results {
					if r.Error != "" {
						fmt.Printf("%s %s\n", cli.DotPad(r.Host, 24), red(r.Error))
					} else {
						fmt.Printf("%s %s\n", cli.DotPad(r.Host, 24), green(r.FilePath))
					}
				}
				return nil
			}

			failed := 0
			for _, r := range fetcher.FetchBulk(cmd.Context(), devices) {
				if r.Error != "" {
					failed++
					fmt.Printf("%s %s\n", cli.DotPad(r.Host, 24), red(r.Error))
					continue
				}
				fmt.Printf("=== %s (%s) ===\n%s\n", r.Host, r.Source, r.RunningConfig)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d device(s) failed", failed, len(devices))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "admin", "login username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "login password (prompted when empty)")
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "SSH private key file")
	cmd.Flags().IntVar(&port, "port", 0, "connection port (0 = method default)")
	cmd.Flags().StringVarP(&method, "method", "m", "ssh", "fetch method: ssh, rest, or configdb")
	cmd.Flags().StringVar(&deviceModel, "model", "", "device model (selects show command / REST endpoint)")
	cmd.Flags().StringVar(&restURL, "rest-url", "", "explicit config URL for the rest method")
	cmd.Flags().BoolVar(&save, "save", false, "write configs to the output directory")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for --save")
	return cmd
}

// promptPassword reads a password without echo. Fails when stdin is not a
// terminal, so scripts must pass -p or -k explicitly.
func promptPassword(user string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no password or key given and stdin is not a terminal")
	}
	fmt.Printf("Password for %s: ", user)
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
