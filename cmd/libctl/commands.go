package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"library-admin/internal/page"
)

func (c *cli) listCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List records, optionally filtered by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := c.kind(args[0])
			if err != nil {
				return err
			}
			mountErr := k.Mount(cmd.Context())
			k.SetFilter(filter)
			if err := k.Print(cmd.OutOrStdout()); err != nil {
				return err
			}
			return mountErr
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "show only rows whose name contains this text")
	return cmd
}

func (c *cli) createCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:     "create <kind>",
		Short:   "Create a record from --set field=value pairs",
		Example: "  libctl create authors --set name='Orhan Pamuk' --set birthDate=1952-06-07 --set country=Turkey",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := c.kind(args[0])
			if err != nil {
				return err
			}
			// Load failures are printed; the submit below still reports
			// anything they break, such as a book that could not be resolved.
			_ = k.Mount(cmd.Context())
			if err := applySets(k, sets); err != nil {
				return err
			}
			return k.Submit(cmd.Context())
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value, repeatable")
	return cmd
}

func (c *cli) updateCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "update <kind> <id>",
		Short: "Update a record; fields left out keep their current value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := c.kind(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			_ = k.Mount(cmd.Context())
			if err := k.Edit(cmd.Context(), id); err != nil {
				return err
			}
			if err := applySets(k, sets); err != nil {
				return err
			}
			return k.Submit(cmd.Context())
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value, repeatable")
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := c.kind(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			confirm := c.confirm
			if yes {
				confirm = page.ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
			}

			err = k.Delete(cmd.Context(), id, confirm)
			if errors.Is(err, page.ErrDeclined) {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// applySets feeds field=value pairs into the draft in order.
func applySets(k kind, sets []string) error {
	for _, set := range sets {
		name, value, ok := strings.Cut(set, "=")
		if !ok {
			return fmt.Errorf("--set %q: want field=value", set)
		}
		if err := k.SetField(strings.TrimSpace(name), value); err != nil {
			return err
		}
	}
	return nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
