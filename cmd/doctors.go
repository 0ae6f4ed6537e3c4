package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/clinic/internal/directory"
	"github.com/marcus/clinic/internal/models"
	"github.com/marcus/clinic/internal/output"
)

var doctorsCmd = &cobra.Command{
	Use:     "doctors",
	Aliases: []string{"docs"},
	Short:   "List the doctor directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := doctorFilter(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		asTree, _ := cmd.Flags().GetBool("tree")

		return withApp(func(a *app) error {
			if a.cfg.Offline {
				f.Offline = true
			}
			listing, err := a.directory.List(context.Background(), f)
			if err != nil {
				return err
			}
			if listing.FromCache {
				output.Warning("showing cached directory (synced %s)", listing.SyncedAt.Local().Format("2006-01-02 15:04"))
			}

			switch {
			case asJSON:
				return writeDoctorsJSON(os.Stdout, listing.Doctors)
			case asTree:
				fmt.Println(output.RenderTree(output.DirectoryTree(listing.Doctors), output.TreeRenderOptions{ShowDetail: true}))
			default:
				writeDoctorsTable(os.Stdout, listing.Doctors)
			}
			return nil
		})
	},
}

// doctorFilter reads and checks the filter flags
func doctorFilter(cmd *cobra.Command) (directory.Filter, error) {
	var f directory.Filter
	f.Name, _ = cmd.Flags().GetString("name")
	f.Specialty, _ = cmd.Flags().GetString("specialty")
	f.Time, _ = cmd.Flags().GetString("time")
	f.Offline, _ = cmd.Flags().GetBool("offline")

	f.Time = strings.ToUpper(strings.TrimSpace(f.Time))
	if f.Time != "" && f.Time != "AM" && f.Time != "PM" {
		return f, fmt.Errorf("invalid --time %q: use AM or PM", f.Time)
	}
	return f, nil
}

func writeDoctorsTable(w io.Writer, doctors []models.Doctor) {
	if len(doctors) == 0 {
		fmt.Fprintln(w, output.Muted("No doctors found"))
		return
	}
	for _, d := range doctors {
		fmt.Fprintf(w, "%-5d %-24s %-18s %s\n", d.ID, d.Name, d.Specialty, output.FormatTimes(d.AvailableTimes))
	}
}

func writeDoctorsJSON(w io.Writer, doctors []models.Doctor) error {
	if doctors == nil {
		doctors = []models.Doctor{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doctors)
}

func init() {
	doctorsCmd.Flags().String("name", "", "filter by name")
	doctorsCmd.Flags().String("specialty", "", "filter by specialty")
	doctorsCmd.Flags().String("time", "", "filter by time of day: AM or PM")
	doctorsCmd.Flags().Bool("offline", false, "list from the local cache only")
	doctorsCmd.Flags().Bool("json", false, "print JSON")
	doctorsCmd.Flags().Bool("tree", false, "group by specialty")

	rootCmd.AddCommand(doctorsCmd)
}
