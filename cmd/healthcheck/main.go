package main

import (
	"net/http"
	"os"
	"time"
)

func main() {
	url := "http://localhost:3000/__admin/health"
	if v := os.Getenv("BLUEPRINTMOCK_HEALTH_URL"); v != "" {
		url = v
	}

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(url)
	if err != nil || resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
