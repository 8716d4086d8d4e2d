package cli

import (
	"github.com/spf13/cobra"
)

// NewUserCmd создаёт группу команд для управления пользователями.
func NewUserCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(
		newUserListCmd(clientFn, outputFn),
		newUserCreateCmd(clientFn, outputFn),
	)

	return cmd
}

var userHeaders = []string{"ID", "NAME", "EMAIL", "CREATED"}

func newUserListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			users, err := client.ListUsers()
			if err != nil {
				return err
			}

			rows := make([][]string, len(users))
			for i, u := range users {
				rows[i] = []string{u.ID, u.Name, u.Email, u.CreatedAt}
			}

			out.Print(userHeaders, rows, users)
			return nil
		},
	}
}

func newUserCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			user, err := client.CreateUser(name, email)
			if err != nil {
				return err
			}

			out.Success("User created: " + user.ID)
			out.Print(userHeaders,
				[][]string{{user.ID, user.Name, user.Email, user.CreatedAt}},
				user,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "User name (required)")
	cmd.Flags().StringVar(&email, "email", "", "User email (required)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")

	return cmd
}
