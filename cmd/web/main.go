package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/crucial707/fittrack/internal/models"
)

//go:embed templates
var templatesFS embed.FS

const (
	defaultPort = "3000"
	defaultAPI  = "http://localhost:8080"
	envWebPort  = "FITTRACK_WEB_PORT"
	envAPIURL   = "FITTRACK_API_URL"
)

func main() {
	port := getEnv(envWebPort, defaultPort)
	apiBase := getEnv(envAPIURL, defaultAPI)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Get("/", index(apiBase))
	r.Post("/users", createUser(apiBase))
	r.Post("/exercises", addExercise(apiBase))
	r.Get("/users/{id}/logs", showLogs(apiBase))

	log.Printf("Web UI running on http://localhost:%s (API: %s)", port, apiBase)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// index renders the landing page: registration and exercise forms plus the user list.
func index(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, status, err := apiGet(apiBase, "/api/users")
		if err != nil {
			renderTemplate(w, "index.html", map[string]any{"Error": "Cannot reach API: " + err.Error()})
			return
		}
		if status != http.StatusOK {
			renderTemplate(w, "index.html", map[string]any{"Error": apiErrorMessage(data)})
			return
		}

		var users []models.User
		if err := json.Unmarshal(data, &users); err != nil {
			renderTemplate(w, "index.html", map[string]any{"Error": "Invalid API response"})
			return
		}

		renderTemplate(w, "index.html", map[string]any{
			"Users": users,
			"Flash": r.URL.Query().Get("flash"),
		})
	}
}

func createUser(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		username := strings.TrimSpace(r.FormValue("username"))
		if username == "" {
			redirectFlash(w, r, "Username is required")
			return
		}

		body, _ := json.Marshal(map[string]string{"username": username})
		data, status, err := apiPost(apiBase, "/api/users", body)
		if err != nil {
			redirectFlash(w, r, "Cannot reach API: "+err.Error())
			return
		}
		if status != http.StatusOK {
			redirectFlash(w, r, apiErrorMessage(data))
			return
		}
		redirectFlash(w, r, "User "+username+" registered")
	}
}

func addExercise(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		payload := map[string]any{
			"userId":      strings.TrimSpace(r.FormValue("userId")),
			"description": strings.TrimSpace(r.FormValue("description")),
		}
		if d := strings.TrimSpace(r.FormValue("duration")); d != "" {
			var n int
			if _, err := fmt.Sscanf(d, "%d", &n); err == nil {
				payload["duration"] = n
			}
		}
		if date := strings.TrimSpace(r.FormValue("date")); date != "" {
			payload["date"] = date
		}

		body, _ := json.Marshal(payload)
		data, status, err := apiPost(apiBase, "/api/exercise/add", body)
		if err != nil {
			redirectFlash(w, r, "Cannot reach API: "+err.Error())
			return
		}
		if status != http.StatusOK {
			redirectFlash(w, r, apiErrorMessage(data))
			return
		}
		redirectFlash(w, r, "Exercise recorded")
	}
}

func showLogs(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		q := url.Values{}
		for _, key := range []string{"from", "to", "limit"} {
			if v := r.URL.Query().Get(key); v != "" {
				q.Set(key, v)
			}
		}
		path := "/api/users/" + url.PathEscape(id) + "/logs"
		if enc := q.Encode(); enc != "" {
			path += "?" + enc
		}

		data, status, err := apiGet(apiBase, path)
		if err != nil {
			renderTemplate(w, "logs.html", map[string]any{"Error": "Cannot reach API: " + err.Error()})
			return
		}
		if status != http.StatusOK {
			renderTemplate(w, "logs.html", map[string]any{"Error": apiErrorMessage(data)})
			return
		}

		var result models.LogResult
		if err := json.Unmarshal(data, &result); err != nil {
			renderTemplate(w, "logs.html", map[string]any{"Error": "Invalid API response"})
			return
		}

		renderTemplate(w, "logs.html", map[string]any{
			"Result": result,
			"From":   r.URL.Query().Get("from"),
			"To":     r.URL.Query().Get("to"),
			"Limit":  r.URL.Query().Get("limit"),
		})
	}
}

func redirectFlash(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?flash="+url.QueryEscape(msg), http.StatusFound)
}

// apiErrorMessage extracts the "error" field from an API response body.
func apiErrorMessage(data []byte) string {
	var errResp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(data, &errResp)
	if errResp.Error != "" {
		return errResp.Error
	}
	return string(data)
}

// apiGet performs GET against the API.
func apiGet(apiBase, path string) ([]byte, int, error) {
	resp, err := http.Get(apiBase + path)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return data, resp.StatusCode, nil
}

// apiPost performs POST with a JSON body against the API.
func apiPost(apiBase, path string, body []byte) ([]byte, int, error) {
	resp, err := http.Post(apiBase+path, "application/json", strings.NewReader(string(body)))
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return data, resp.StatusCode, nil
}

func renderTemplate(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.ParseFS(templatesFS, "templates/"+name)
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}
