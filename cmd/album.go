package main

import (
	"fmt"

	"github.com/ochronus/gocatbox/catbox"
	"github.com/spf13/cobra"
)

func newAlbumCmd() *cobra.Command {
	albumCmd := &cobra.Command{
		Use:   "album",
		Short: "Create and manage albums",
	}

	albumCmd.AddCommand(newAlbumCreateCmd())
	albumCmd.AddCommand(newAlbumEditCmd())
	albumCmd.AddCommand(newAlbumAddCmd())
	albumCmd.AddCommand(newAlbumRemoveCmd())
	albumCmd.AddCommand(newAlbumDeleteCmd())

	return albumCmd
}

// printResponse runs op against the configured client and prints its body.
func printResponse(cmd *cobra.Command, op func(client catbox.ClientAPI) (string, error)) error {
	client, err := clientFor(cmd)
	if err != nil {
		return err
	}

	body, err := op(client)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), body)
	return nil
}

func newAlbumCreateCmd() *cobra.Command {
	var title, desc string

	cmd := &cobra.Command{
		Use:   "create FILE_ID...",
		Short: "Create an album from uploaded files",
		Long:  "Create an album from uploaded files. Albums created without a userhash can never be edited or deleted. Catbox limits albums to 500 files.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := catbox.CreateAlbumOptions{
				Title: title,
				Files: args,
			}
			if cmd.Flags().Changed("desc") {
				opts.Description = &desc
			}

			return printResponse(cmd, func(client catbox.ClientAPI) (string, error) {
				if !client.Authenticated() {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: creating an anonymous album, it cannot be edited or deleted later")
				}
				return client.CreateAlbum(cmd.Context(), opts)
			})
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Album title")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Album description")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newAlbumEditCmd() *cobra.Command {
	var title, desc string

	cmd := &cobra.Command{
		Use:   "edit SHORT FILE_ID...",
		Short: "Replace the title, description and files of an album",
		Long:  "Replace the title, description and files of an album. The album ends up with exactly the files given, so pass the complete list.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := catbox.EditAlbumOptions{
				Short:       args[0],
				Title:       title,
				Description: desc,
				Files:       args[1:],
			}
			return printResponse(cmd, func(client catbox.ClientAPI) (string, error) {
				return client.EditAlbum(cmd.Context(), opts)
			})
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Album title")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Album description")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("desc")

	return cmd
}

func newAlbumAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add SHORT FILE_ID...",
		Short: "Add files to an album",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResponse(cmd, func(client catbox.ClientAPI) (string, error) {
				return client.AddToAlbum(cmd.Context(), args[0], args[1:])
			})
		},
	}
}

func newAlbumRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove SHORT FILE_ID...",
		Short: "Remove files from an album",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResponse(cmd, func(client catbox.ClientAPI) (string, error) {
				return client.RemoveFromAlbum(cmd.Context(), args[0], args[1:])
			})
		},
	}
}

func newAlbumDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete SHORT",
		Short: "Delete an album (its files are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResponse(cmd, func(client catbox.ClientAPI) (string, error) {
				return client.DeleteAlbum(cmd.Context(), args[0])
			})
		},
	}
}
