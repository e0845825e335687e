package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/config"
	"github.com/taskforge/taskforge-api/internal/database"
	"github.com/taskforge/taskforge-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type seedStatus struct {
	name  string
	color string
}

type seedProject struct {
	name        string
	description string
	dueDate     string
	creator     int
}

type seedTask struct {
	name        string
	description string
	startDate   string
	endDate     string
	project     int
	user        int
	status      int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Clearing existing data...")
	for _, table := range []string{"refresh_tokens", "tasks", "project_members", "invitations", "projects", "task_statuses", "users"} {
		if _, err := db.Pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("Failed to clear %s: %v", table, err)
		}
	}

	log.Println("Creating users...")
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := []struct {
		firstName string
		lastName  string
		email     string
		role      string
	}{
		{"John", "Doe", "test@gmail.com", models.RoleAdmin},
		{"Jane", "Smith", "test2@gmail.com", models.RoleMember},
	}

	userIDs := make([]uuid.UUID, len(users))
	for i, u := range users {
		err := db.Pool.QueryRow(ctx, `
			INSERT INTO users (first_name, last_name, email, password_hash, role)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, u.firstName, u.lastName, u.email, string(passwordHash), u.role).Scan(&userIDs[i])
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", u.email, err)
		}
		log.Printf("Created user: %s", u.email)
	}

	log.Println("Creating task statuses...")
	statuses := []seedStatus{
		{"To Do", "#6B7280"},
		{"In Progress", "#3B82F6"},
		{"In Review", "#F59E0B"},
		{"Done", "#10B981"},
	}

	statusIDs := make([]uuid.UUID, len(statuses))
	for i, s := range statuses {
		err := db.Pool.QueryRow(ctx, `
			INSERT INTO task_statuses (name, color)
			VALUES ($1, $2)
			RETURNING id
		`, s.name, s.color).Scan(&statusIDs[i])
		if err != nil {
			log.Fatalf("Failed to create status %s: %v", s.name, err)
		}
		log.Printf("Created status: %s", s.name)
	}

	log.Println("Creating projects...")
	projects := []seedProject{
		{"E-commerce Website", "Build a modern e-commerce platform with React and Node.js", "2024-03-15", 0},
		{"Mobile App Development", "Create a cross-platform mobile app using React Native", "2024-04-20", 0},
		{"Database Migration", "Migrate legacy database to PostgreSQL with improved schema", "2024-02-28", 1},
		{"API Documentation", "Create comprehensive API documentation using Swagger", "2024-03-10", 1},
	}

	projectIDs := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		dueDate := mustParseDate(p.dueDate)
		err := db.Pool.QueryRow(ctx, `
			INSERT INTO projects (name, description, due_date, creator_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, p.name, p.description, dueDate, userIDs[p.creator]).Scan(&projectIDs[i])
		if err != nil {
			log.Fatalf("Failed to create project %s: %v", p.name, err)
		}
		log.Printf("Created project: %s", p.name)
	}

	log.Println("Assigning users to projects...")
	memberships := []struct{ user, project int }{
		{0, 0}, {1, 0}, {0, 1}, {1, 2}, {0, 3},
	}
	for _, m := range memberships {
		_, err := db.Pool.Exec(ctx, `
			INSERT INTO project_members (project_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, projectIDs[m.project], userIDs[m.user])
		if err != nil {
			log.Fatalf("Failed to assign user to project: %v", err)
		}
	}

	log.Println("Creating tasks...")
	tasks := []seedTask{
		{"Design User Interface", "Create wireframes and mockups for the e-commerce website", "2024-01-15", "2024-01-25", 0, 0, 3},
		{"Setup Database Schema", "Design and implement the database schema for products, users, and orders", "2024-01-20", "2024-01-30", 0, 1, 1},
		{"Implement Authentication", "Add user registration, login, and JWT authentication", "2024-02-01", "2024-02-10", 0, 0, 0},
		{"Product Catalog API", "Create REST API endpoints for product management", "2024-02-05", "2024-02-15", 0, 1, 2},
		{"Setup React Native Project", "Initialize React Native project with necessary dependencies", "2024-02-01", "2024-02-05", 1, 0, 3},
		{"Implement Navigation", "Setup React Navigation for the mobile app", "2024-02-10", "2024-02-20", 1, 0, 1},
		{"User Authentication", "Implement login and registration screens", "2024-02-25", "2024-03-05", 1, 0, 0},
		{"Analyze Current Schema", "Document existing database structure and identify migration needs", "2024-01-10", "2024-01-20", 2, 1, 3},
		{"Create Migration Scripts", "Write SQL scripts to migrate data from old to new schema", "2024-01-25", "2024-02-10", 2, 1, 1},
		{"Test Migration Process", "Run migration on test environment and validate data integrity", "2024-02-15", "2024-02-25", 2, 1, 0},
		{"Setup Swagger Configuration", "Configure Swagger/OpenAPI for automatic documentation generation", "2024-02-01", "2024-02-05", 3, 0, 3},
		{"Document Authentication Endpoints", "Add comprehensive documentation for auth-related API endpoints", "2024-02-08", "2024-02-15", 3, 0, 2},
		{"Document Project Management APIs", "Document all project and task management endpoints", "2024-02-20", "2024-03-01", 3, 0, 0},
	}

	for _, t := range tasks {
		_, err := db.Pool.Exec(ctx, `
			INSERT INTO tasks (name, description, start_date, end_date, project_id, user_id, status_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, t.name, t.description, mustParseDate(t.startDate), mustParseDate(t.endDate),
			projectIDs[t.project], userIDs[t.user], statusIDs[t.status])
		if err != nil {
			log.Fatalf("Failed to create task %s: %v", t.name, err)
		}
		log.Printf("Created task: %s (%s)", t.name, statuses[t.status].name)
	}

	log.Println("Creating invitations...")
	invitations := []struct {
		sender, receiver, project int
		status                    string
	}{
		{0, 1, 0, models.InvitationStatusPending},
		{1, 0, 2, models.InvitationStatusApproved},
	}
	for _, inv := range invitations {
		_, err := db.Pool.Exec(ctx, `
			INSERT INTO invitations (project_id, sender_id, receiver_id, status)
			VALUES ($1, $2, $3, $4)
		`, projectIDs[inv.project], userIDs[inv.sender], userIDs[inv.receiver], inv.status)
		if err != nil {
			log.Fatalf("Failed to create invitation: %v", err)
		}
	}

	fmt.Println("Database seeding completed")
	fmt.Printf("- Users: %d\n", len(users))
	fmt.Printf("- Task Statuses: %d\n", len(statuses))
	fmt.Printf("- Projects: %d\n", len(projects))
	fmt.Printf("- Tasks: %d\n", len(tasks))
	fmt.Printf("- Invitations: %d\n", len(invitations))
}

func mustParseDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("Invalid date %q: %v", value, err)
	}
	return t
}
