package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/crucial707/fittrack/cmd/cli/config"
	"github.com/crucial707/fittrack/cmd/cli/output"
	"github.com/crucial707/fittrack/internal/models"
)

// ==========================
// CLI Command Init
// ==========================
func Init(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	usersCmd.AddCommand(
		listUsersCmd(),
		createUserCmd(),
	)

	rootCmd.AddCommand(usersCmd)
}

// ==========================
// LIST
// ==========================
func listUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := http.Get(config.APIURL() + "/api/users")
			if err != nil {
				fmt.Println("Error:", err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				fmt.Printf("API error: %s\n", string(b))
				return
			}

			var users []models.User
			if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
				fmt.Println("Error decoding response:", err)
				return
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				b, _ := json.MarshalIndent(users, "", "  ")
				fmt.Println(string(b))
				return
			}

			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{u.ID, u.Username, u.Count})
			}
			output.RenderTable([]string{"ID", "USERNAME", "COUNT"}, rows)
		},
	}
	cmd.Flags().Bool("json", false, "Print raw JSON instead of a table")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createUserCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" && len(args) > 0 {
				username = args[0]
			}
			if username == "" {
				return fmt.Errorf("username is required (flag --username or first argument)")
			}

			body, _ := json.Marshal(map[string]string{"username": username})
			resp, err := http.Post(config.APIURL()+"/api/users", "application/json", bytes.NewReader(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			data, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("API error: %s", string(data))
			}

			var user models.User
			if err := json.Unmarshal(data, &user); err != nil {
				return err
			}
			fmt.Printf("Created user %q id=%s\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Username to register")
	return cmd
}
