//go:build ignore
// +build ignore

// Helper script to seed a demo office into the database
// Run with: go run seed_demo_data.go

package main

import (
	"context"
	"log"
	"time"

	"github.com/juridesk/juridesk/internal/auth"
	"github.com/juridesk/juridesk/internal/board"
	"github.com/juridesk/juridesk/internal/config"
	"github.com/juridesk/juridesk/internal/database"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	result, err := db.ExecContext(ctx, "INSERT INTO units (name) VALUES ('Demo Office')")
	if err != nil {
		log.Fatalf("Failed to create unit: %v", err)
	}
	unitID64, _ := result.LastInsertId()
	unitID := int(unitID64)

	authSvc := auth.NewService(db, 72*time.Hour)
	userID, err := authSvc.CreateUser(ctx, unitID, "Demo User", "demo@juridesk.example", "demo")
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	log.Printf("Created user demo@juridesk.example / demo")

	svc := board.NewService(db)
	for _, name := range []string{"Intake", "In Progress", "Awaiting Court", "Done"} {
		col, err := svc.CreateColumn(ctx, unitID, board.CreateColumnRequest{Name: name})
		if err != nil {
			log.Fatalf("Failed to create column %s: %v", name, err)
		}
		log.Printf("Created column: %s", name)
		for _, title := range demoCards(name) {
			if _, err := svc.CreateCard(ctx, unitID, board.CreateCardRequest{
				ColumnID: col.ID, Title: title, ResponsibleID: userID,
			}); err != nil {
				log.Printf("Error creating card %q: %v", title, err)
			} else {
				log.Printf("Created card: %s", title)
			}
		}
	}
}

func demoCards(column string) []string {
	switch column {
	case "Intake":
		return []string{"Client interview: Silva", "Review retainer draft"}
	case "In Progress":
		return []string{"Draft initial petition", "Collect case documents"}
	case "Awaiting Court":
		return []string{"Hearing scheduling"}
	default:
		return nil
	}
}
