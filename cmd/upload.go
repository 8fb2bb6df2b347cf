package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochronus/gocatbox/catbox"
	"github.com/spf13/cobra"
)

// clientFor returns the Catbox client for a command. Tests override it.
var clientFor = func(cmd *cobra.Command) (catbox.ClientAPI, error) {
	container, err := buildContainer(cmd)
	if err != nil {
		return nil, err
	}
	return container.CatboxClient, nil
}

func newUploadCmd() *cobra.Command {
	var stdinName string

	cmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload local files (use - to read from stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if countStdin(args) > 1 {
				return fmt.Errorf("stdin (-) can only be uploaded once per command")
			}

			client, err := clientFor(cmd)
			if err != nil {
				return err
			}

			var results []result
			defer func() { renderResults(cmd.OutOrStdout(), "FILE", results) }()

			for _, path := range args {
				var url string
				if path == "-" {
					url, err = client.UploadReader(cmd.Context(), cmd.InOrStdin(), stdinName)
				} else {
					url, err = uploadPath(cmd, client, path)
				}
				if err != nil {
					return fmt.Errorf("failed to upload %s: %w", path, err)
				}
				results = append(results, result{Input: path, Response: url})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&stdinName, "name", "stdin", "File name used when uploading from stdin")

	return cmd
}

func countStdin(args []string) int {
	n := 0
	for _, arg := range args {
		if arg == "-" {
			n++
		}
	}
	return n
}

func uploadPath(cmd *cobra.Command, client catbox.ClientAPI, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return client.UploadFile(cmd.Context(), data, filepath.Base(path))
}

func newUploadURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload-url URL...",
		Short: "Have Catbox fetch and host remote URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFor(cmd)
			if err != nil {
				return err
			}

			var results []result
			defer func() { renderResults(cmd.OutOrStdout(), "URL", results) }()

			for _, u := range args {
				url, err := client.UploadURL(cmd.Context(), u)
				if err != nil {
					return fmt.Errorf("failed to upload %s: %w", u, err)
				}
				results = append(results, result{Input: u, Response: url})
			}
			return nil
		},
	}
}

func newDeleteFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-files FILE_ID...",
		Short: "Delete files owned by your account",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFor(cmd)
			if err != nil {
				return err
			}

			body, err := client.DeleteFiles(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		},
	}
}
