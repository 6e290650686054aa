package logs

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crucial707/fittrack/cmd/cli/config"
	"github.com/crucial707/fittrack/cmd/cli/output"
	"github.com/crucial707/fittrack/internal/models"
)

// ==========================
// CLI Command Init
// ==========================
func Init(rootCmd *cobra.Command) {
	rootCmd.AddCommand(showLogsCmd())
}

// ==========================
// SHOW
// ==========================
func showLogsCmd() *cobra.Command {
	var (
		from  string
		to    string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "logs <user-id>",
		Short: "Show a user's exercise log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if from != "" {
				q.Set("from", from)
			}
			if to != "" {
				q.Set("to", to)
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}

			endpoint := config.APIURL() + "/api/users/" + url.PathEscape(args[0]) + "/logs"
			if enc := q.Encode(); enc != "" {
				endpoint += "?" + enc
			}

			resp, err := http.Get(endpoint)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			data, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("API error: %s", string(data))
			}

			var result models.LogResult
			if err := json.Unmarshal(data, &result); err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				b, _ := json.MarshalIndent(result, "", "  ")
				fmt.Println(string(b))
				return nil
			}

			fmt.Printf("%s: %d exercise(s)\n", result.Username, result.Count)
			rows := make([][]interface{}, 0, len(result.Log))
			for _, e := range result.Log {
				rows = append(rows, []interface{}{e.Date.String(), e.Description, e.Duration})
			}
			output.RenderTable([]string{"DATE", "DESCRIPTION", "MINUTES"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Only entries on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Only entries on or before this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries")
	cmd.Flags().Bool("json", false, "Print raw JSON instead of a table")
	return cmd
}
