package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/clinic/internal/output"
	"github.com/marcus/clinic/internal/workdir"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "clinic",
	Short: "Clinic front desk terminal client",
	Long: `clinic - A terminal front desk for the clinic management backend.

Run without a subcommand to open the desk: browse the doctor directory, log in
as a patient, doctor or admin, sign up, and manage doctors.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDesk("")
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if name := firstNonFlagArg(os.Args[1:]); name != "" && !isCommand(name) {
			output.Error("unknown command %q, run 'clinic --help'", name)
		} else {
			output.Error("%v", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)
}

func initBaseDir() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
	baseDir = workdir.ResolveBaseDir(cwd)
}

// getBaseDir returns the directory holding .clinic state
func getBaseDir() string {
	return baseDir
}

// firstNonFlagArg returns the first argument that is not a flag
func firstNonFlagArg(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}

// isCommand reports whether name is a subcommand or alias of the root
func isCommand(name string) bool {
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}
