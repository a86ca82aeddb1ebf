package main

import (
	"fmt"
	"os"

	"seodesk/backend/internal/complaint"
	"seodesk/backend/internal/logger"
	"seodesk/backend/internal/models"
	"seodesk/backend/internal/optimization"
	"seodesk/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Operator escape hatch for the complaint workflow. Runs the same
// services as the HTTP API with a synthetic super_admin actor, so every
// validation, state and blocking rule still applies.
func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Printf("failed to connect database: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewNop()
	// No redis: events are skipped for CLI mutations.
	storageSvc := storage.NewStorageService(db, nil, log)
	complaints := complaint.NewService(storageSvc, nil, log)
	optimizations := optimization.NewService(storageSvc, nil, log)

	operator := models.User{
		ID:   "admin-cli",
		Name: "admin CLI",
		Role: "super_admin",
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: resolve-complaint, close-optimization, list-open")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "resolve-complaint":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin resolve-complaint <complaint_id> <resolution_note>")
			os.Exit(1)
		}
		resolved, err := complaints.ResolveComplaint(operator, os.Args[2], os.Args[3], false)
		if err != nil {
			fmt.Printf("Error resolving complaint: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Complaint %s resolved (%.2f hours to resolution).\n",
			resolved.ID, *resolved.TimeToResolutionHours)

	case "close-optimization":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin close-optimization <optimization_id> [final_note]")
			os.Exit(1)
		}
		finalNote := ""
		if len(os.Args) > 3 {
			finalNote = os.Args[3]
		}
		closed, err := optimizations.CloseOptimization(operator, os.Args[2], finalNote)
		if err != nil {
			fmt.Printf("Error closing optimization: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Optimization %q closed.\n", closed.Title)

	case "list-open":
		open, err := storageSvc.ListOpenComplaints()
		if err != nil {
			fmt.Printf("Error listing complaints: %v\n", err)
			os.Exit(1)
		}
		if len(open) == 0 {
			fmt.Println("No open complaints.")
			return
		}
		for _, c := range open {
			fmt.Printf("%s  [%s/%s]  %s\n", c.ID, c.Priority, c.Status, c.Reason)
		}

	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}
