// Package main is a diagnostic tool for testing database connectivity and
// inspecting live platform data. It connects to the database, queries the
// organization_requests and volunteers tables, and prints a summary to stdout.
// The binary exits with a non-zero code on any failure so it can be embedded
// in health checks or CI/CD pipeline steps to gate deployments on a reachable,
// populated database.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

func main() {
	dbPassword := os.Getenv("DATABASE_PASSWORD")
	if dbPassword == "" {
		dbPassword = "volunteerhub"
	}

	connStr := fmt.Sprintf("host=localhost port=5432 user=volunteerhub password=%s dbname=volunteerhub sslmode=disable", dbPassword)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	// Check pending organization requests
	fmt.Println("=== PENDING ORGANIZATION REQUESTS ===")
	rows, err := db.Query("SELECT id, name, email, created_at FROM organization_requests ORDER BY created_at ASC")
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name, email, createdAt string
		if err := rows.Scan(&id, &name, &email, &createdAt); err != nil {
			log.Printf("Warning: failed to scan request row: %v", err)
			continue
		}
		fmt.Printf("Request: %s <%s> since %s (ID: %s)\n", name, email, createdAt, id)
	}

	// Check volunteers
	fmt.Println("\n=== VOLUNTEERS ===")
	rows2, err := db.Query("SELECT id, name, email, description FROM volunteers")
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	defer rows2.Close()

	count := 0
	for rows2.Next() {
		var id, name, email string
		var description *string
		if err := rows2.Scan(&id, &name, &email, &description); err != nil {
			log.Printf("Warning: failed to scan volunteer row: %v", err)
			continue
		}
		hasDescription := "NO"
		if description != nil && *description != "" {
			hasDescription = fmt.Sprintf("YES (%d chars)", len(*description))
		}
		fmt.Printf("Volunteer: %s <%s> (ID: %s) - description: %s\n", name, email, id, hasDescription)
		count++
	}

	if count == 0 {
		fmt.Println("No volunteers found!")
	}
}
