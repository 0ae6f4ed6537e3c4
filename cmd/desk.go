package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/clinic/internal/models"
	"github.com/marcus/clinic/pkg/desk"
	"github.com/marcus/clinic/pkg/desk/modal"
	"github.com/marcus/clinic/pkg/desk/modals"
)

var errNoTerminal = errors.New("the desk needs an interactive terminal (try 'clinic doctors')")

var deskCmd = &cobra.Command{
	Use:   "desk",
	Short: "Open the front desk",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDesk("")
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Open the desk with a login form",
	Long:  "Open the desk with the login form for --role (patient, doctor or admin).",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		name, err := loginModalFor(role)
		if err != nil {
			return err
		}
		return runDesk(name)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Open the desk with the patient signup form",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDesk(modals.KindPatientSignup.Name())
	},
}

// loginModalFor maps a --role value to its login modal
func loginModalFor(role string) (modal.Name, error) {
	r := models.Role(role)
	if !models.IsValidRole(r) {
		return "", fmt.Errorf("invalid role %q: use patient, doctor or admin", role)
	}
	name, _ := desk.LoginModal(r)
	return name, nil
}

func runDesk(initial modal.Name) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	return withApp(func(a *app) error {
		m, err := desk.New(desk.Options{
			Directory:    a.directory,
			Auth:         a.auth,
			Sessions:     a.sessions,
			Doctors:      a.client,
			Offline:      a.cfg.Offline,
			InitialModal: initial,
		})
		if err != nil {
			return err
		}

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
		_, err = p.Run()
		return err
	})
}

func init() {
	loginCmd.Flags().String("role", string(models.RolePatient), "role to log in as: patient, doctor or admin")

	rootCmd.AddCommand(deskCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
}
