package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/clinic/internal/output"
	"github.com/marcus/clinic/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored login",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if err := a.auth.Logout(); err != nil {
				return err
			}
			fmt.Println("LOGGED OUT")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			sess, err := a.sessions.Active(time.Now())
			if errors.Is(err, session.ErrNoSession) {
				fmt.Println(output.Muted("not logged in"))
				return nil
			}
			if err != nil {
				return err
			}

			user := sess.User
			if user == "" {
				user = "(unknown)"
			}
			fmt.Printf("USER    %s\n", user)
			fmt.Printf("ROLE    %s\n", sess.Role)
			fmt.Printf("SESSION %s\n", sess.ID)
			fmt.Printf("SINCE   %s\n", sess.StartedAt.Local().Format(time.RFC1123))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
