package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"scribe/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status <job_token>",
	Short: "Check a transcription job once and print its state",
	Long: `Performs a single status query against the transcription service and
prints the outcome. The command never waits; run it again to re-check.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		token := args[0]
		res, err := appInstance.Stateless.Status(cmd.Context(), token)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Field", "Value"})
		table.Append([]string{"Job Name", token})
		table.Append([]string{"Status", string(res.Classification)})
		switch res.Classification {
		case models.ClassCompleted:
			table.Append([]string{"Language", res.Language})
		case models.ClassFailed:
			table.Append([]string{"Failure Reason", res.FailureReason})
		}
		table.Render()

		if res.Classification == models.ClassCompleted {
			color.Green("✓ Transcript:")
			fmt.Println(res.Transcript)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
