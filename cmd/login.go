package cmd

import (
	"github.com/spf13/cobra"
)

var loginUser string

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Log in to pixiv (not implemented)",
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return client.Login(cmd.Context(), loginUser, "")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "pixiv ID or email")
}
