package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"reviewbox/internal/config"
	"reviewbox/internal/db"
	"reviewbox/internal/model"
	"reviewbox/internal/repository"
	"reviewbox/internal/service"
)

const defaultSeedFile = "./seed/demo.json"

// SeedUser describes one demo account with its products.
type SeedUser struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Plan     string `json:"plan"`
	Products []struct {
		Name            string `json:"name"`
		Slug            string `json:"slug"`
		BackgroundColor string `json:"backgroundColor"`
	} `json:"products"`
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}, &model.Review{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	seedFile := defaultSeedFile
	if v := os.Getenv("SEED_FILE"); v != "" {
		seedFile = v
	}

	users, err := loadSeedFile(seedFile)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Printf("Loaded %d demo users from %s", len(users), seedFile)

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	created := 0
	skipped := 0
	for _, item := range users {
		if existing, err := userRepo.FindByEmail(ctx, item.Email); err == nil && existing != nil {
			log.Printf("Skipping existing user: %s", item.Email)
			skipped++
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(item.Password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", item.Email, err)
		}

		plan := model.PlanFree
		if item.Plan == string(model.PlanPremium) {
			plan = model.PlanPremium
		}

		user := &model.User{
			Email:        item.Email,
			Name:         item.Name,
			PasswordHash: string(hashed),
			Plan:         plan,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", item.Email, err)
		}

		for _, p := range item.Products {
			product := &model.Product{
				Name:            p.Name,
				Slug:            service.NormalizeSlug(p.Slug),
				BackgroundColor: p.BackgroundColor,
				UserID:          user.ID,
			}
			if err := productRepo.Create(ctx, product); err != nil {
				log.Fatalf("Failed to create product %s for %s: %v", p.Slug, item.Email, err)
			}
		}
		created++
	}

	log.Printf("Seed complete: %d users created, %d skipped", created, skipped)
}

func loadSeedFile(path string) ([]SeedUser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var users []SeedUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}
