package exercises

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/crucial707/fittrack/cmd/cli/config"
	"github.com/crucial707/fittrack/internal/models"
)

// ==========================
// CLI Command Init
// ==========================
func Init(rootCmd *cobra.Command) {
	exercisesCmd := &cobra.Command{
		Use:   "exercises",
		Short: "Record exercises",
	}

	exercisesCmd.AddCommand(addExerciseCmd())

	rootCmd.AddCommand(exercisesCmd)
}

// ==========================
// ADD
// ==========================
func addExerciseCmd() *cobra.Command {
	var (
		userID      string
		description string
		duration    int
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an exercise for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"userId":      userID,
				"description": description,
				"duration":    duration,
			}
			if date != "" {
				payload["date"] = date
			}
			body, _ := json.Marshal(payload)

			resp, err := http.Post(config.APIURL()+"/api/exercise/add", "application/json", bytes.NewReader(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			data, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("API error: %s", string(data))
			}

			var exercise models.Exercise
			if err := json.Unmarshal(data, &exercise); err != nil {
				return err
			}
			fmt.Printf("Recorded %q (%d min) on %s for user %s\n",
				exercise.Description, exercise.Duration, exercise.Date, exercise.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id (required)")
	cmd.Flags().StringVar(&description, "description", "", "Exercise description (required)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (required)")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD or free-form); defaults to today")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("description")
	cmd.MarkFlagRequired("duration")
	return cmd
}
