package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio_file> [output_file]",
	Short: "Upload an audio file and block until its transcription finishes",
	Long: `Uploads the audio file to blob storage, starts a transcription job with
automatic language detection, waits for it to finish, and writes two files:
the formatted transcript (default transcription.txt) and the raw service
payload next to it with a _full.json suffix.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		audioPath := args[0]
		outputPath := "transcription.txt"
		if len(args) == 2 {
			outputPath = args[1]
		}

		color.Cyan("Transcribing %s ...", audioPath)

		result, err := appInstance.Sync.SubmitAndWait(cmd.Context(), audioPath, outputPath)
		if err != nil {
			return err
		}

		color.Green("✓ Completed | Detected language: %s", result.Language)
		fmt.Printf("Saved transcript: %s\n", result.OutputPath)
		fmt.Printf("Saved raw payload: %s\n\n", result.RawPath)
		fmt.Println(result.Summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
}
