package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSpecCmd создаёт группу команд для управления спецификациями.
func NewSpecCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Manage specs",
	}

	cmd.AddCommand(
		newSpecListCmd(clientFn, outputFn),
		newSpecCreateCmd(clientFn, outputFn),
		newSpecShowCmd(clientFn, outputFn),
		newSpecUpdateCmd(clientFn, outputFn),
		newSpecDeleteCmd(clientFn, outputFn),
		newSpecVersionsCmd(clientFn, outputFn),
	)

	return cmd
}

var specHeaders = []string{"ID", "NAME", "CURRENT VERSION", "CREATED"}

func specRow(s SpecResponse) []string {
	current := s.CurrentVersionID
	if current == "" {
		current = "-"
	}
	return []string{s.ID, s.Name, current, s.CreatedAt}
}

func newSpecListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all specs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			specs, err := client.ListSpecs()
			if err != nil {
				return err
			}

			rows := make([][]string, len(specs))
			for i, s := range specs {
				rows[i] = specRow(s)
			}

			out.Print(specHeaders, rows, specs)
			return nil
		},
	}
}

func newSpecCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new spec with an initial draft version",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			result, err := client.CreateSpec(CreateSpecRequest{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Spec created: %s (version 1: %s)",
				result.Spec.ID, result.InitialVersion.ID))
			out.Print(specHeaders, [][]string{specRow(result.Spec)}, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Spec name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Spec description")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newSpecShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show spec details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			spec, err := client.GetSpec(args[0])
			if err != nil {
				return err
			}

			out.Print(specHeaders, [][]string{specRow(*spec)}, spec)
			return nil
		},
	}
}

func newSpecUpdateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update spec name/description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			var req UpdateSpecRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}

			spec, err := client.UpdateSpec(args[0], req)
			if err != nil {
				return err
			}

			out.Success("Spec updated")
			out.Print(specHeaders, [][]string{specRow(*spec)}, spec)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New spec name")
	cmd.Flags().StringVar(&description, "description", "", "New spec description")

	return cmd
}

func newSpecDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a spec with all its versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.DeleteSpec(args[0]); err != nil {
				return err
			}

			out.Success("Spec deleted: " + args[0])
			return nil
		},
	}
}

func newSpecVersionsCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "versions ID",
		Short: "List versions of a spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			versions, err := client.ListVersions(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, len(versions))
			for i, v := range versions {
				rows[i] = versionRow(v)
			}

			out.Print(versionHeaders, rows, versions)
			return nil
		},
	}
}
