package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-budget-must-balance/internal/cli"
	"github.com/Veraticus/the-budget-must-balance/internal/ledger"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage income and expense categories",
		Long: `List, add, update, and delete the categories transactions are filed under.

New categories are income when their name mentions salary or bonus and
expense otherwise, unless --type is given.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			rows := [][]string{}
			for _, c := range s.tracker.Categories.List() {
				rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, string(c.Type), c.Icon, c.Color})
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable([]string{"ID", "Name", "Type", "Icon", "Color"}, rows))
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var in ledger.CategoryInput
	var typ string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			in.Name = args[0]
			var created model.Category
			if typ != "" {
				direction, err := parseDirection(typ)
				if err != nil {
					return err
				}
				created, err = s.tracker.Categories.CreateWithType(cmd.Context(), in, direction)
				if err != nil {
					return err
				}
			} else {
				created, err = s.tracker.Categories.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Created %s category %q (ID: %d)", created.Type, created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Icon, "icon", "fa-tag", "icon name")
	cmd.Flags().StringVar(&in.Color, "color", "#6c757d", "display color")
	cmd.Flags().StringVar(&typ, "type", "", "income or expense (inferred from the name when empty)")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var name, icon, color string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or restyle a category",
		Long:  `Update a category's name, icon or color. Its type never changes.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			current, ok := s.tracker.Categories.Get(id)
			if !ok {
				return notFound("category", id)
			}

			in := ledger.CategoryInput{Name: current.Name, Icon: current.Icon, Color: current.Color}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("icon") {
				in.Icon = icon
			}
			if cmd.Flags().Changed("color") {
				in.Color = color
			}

			if err := s.tracker.Categories.Update(cmd.Context(), id, in); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated category %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&icon, "icon", "", "new icon")
	cmd.Flags().StringVar(&color, "color", "", "new color")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category no transaction uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.tracker.Categories.Delete(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted category %d", id)))
			return nil
		},
	}
}
