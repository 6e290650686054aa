package config

import "os"

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the base URL for the fittrack API.
// It can be overridden with the FITTRACK_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("FITTRACK_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}
