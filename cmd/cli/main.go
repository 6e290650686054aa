package main

import (
	"fmt"
	"os"

	"github.com/crucial707/fittrack/cmd/cli/exercises"
	"github.com/crucial707/fittrack/cmd/cli/logs"
	"github.com/crucial707/fittrack/cmd/cli/root"
	"github.com/crucial707/fittrack/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	users.Init(rootCmd)
	exercises.Init(rootCmd)
	logs.Init(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
