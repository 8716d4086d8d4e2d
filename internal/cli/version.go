package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewVersionCmd создаёт группу команд для управления версиями.
func NewVersionCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Manage spec versions",
	}

	cmd.AddCommand(
		newVersionShowCmd(clientFn, outputFn),
		newVersionForkCmd(clientFn, outputFn),
		newVersionStatusCmd(clientFn, outputFn),
		newVersionPublishCmd(clientFn, outputFn),
		newVersionDiffCmd(clientFn, outputFn),
		newVersionImportCmd(clientFn, outputFn),
	)

	return cmd
}

var versionHeaders = []string{"ID", "SPEC", "NUMBER", "STATUS", "BASED ON", "CREATED"}

func versionRow(v VersionResponse) []string {
	basedOn := v.BasedOnVersionID
	if basedOn == "" {
		basedOn = "-"
	}
	return []string{v.ID, v.SpecID, strconv.Itoa(v.Number), v.Status, basedOn, v.CreatedAt}
}

func newVersionShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show version details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			version, err := client.GetVersion(args[0])
			if err != nil {
				return err
			}

			out.Print(versionHeaders, [][]string{versionRow(*version)}, version)
			return nil
		},
	}
}

func newVersionForkCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "fork ID",
		Short: "Create a new version as a deep copy of an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			fork, err := client.ForkVersion(args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Version forked: %s (number %d)", fork.ID, fork.Number))
			out.Print(versionHeaders, [][]string{versionRow(*fork)}, fork)
			return nil
		},
	}
}

func newVersionStatusCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set version status (draft|in_review|approved|published|archived)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			version, err := client.SetVersionStatus(args[0], args[1])
			if err != nil {
				return err
			}

			out.Success("Status set: " + version.Status)
			out.Print(versionHeaders, [][]string{versionRow(*version)}, version)
			return nil
		},
	}
}

func newVersionPublishCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "publish ID",
		Short: "Publish a version (makes it the spec's current version)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			version, err := client.SetVersionStatus(args[0], "published")
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Version %d published", version.Number))
			out.Print(versionHeaders, [][]string{versionRow(*version)}, version)
			return nil
		},
	}
}

func newVersionDiffCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "diff FROM_ID TO_ID",
		Short: "Compare graphs of two versions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			d, err := client.DiffVersions(args[0], args[1])
			if err != nil {
				return err
			}

			headers := []string{"CATEGORY", "COUNT"}
			rows := [][]string{
				{"steps added", strconv.Itoa(len(d.Steps.Added))},
				{"steps removed", strconv.Itoa(len(d.Steps.Removed))},
				{"steps changed", strconv.Itoa(len(d.Steps.Changed))},
				{"transitions added", strconv.Itoa(len(d.Transitions.Added))},
				{"transitions removed", strconv.Itoa(len(d.Transitions.Removed))},
			}

			out.Print(headers, rows, d)
			return nil
		},
	}
}

func newVersionImportCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "import ID FILE.xlsx",
		Short: "Import a scenario table into the version's graph",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			graph, err := client.ImportGraph(args[0], args[1])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Imported %d steps, %d transitions",
				len(graph.Steps), len(graph.Transitions)))
			if out.jsonMode {
				out.JSON(graph)
			}
			return nil
		},
	}
}
