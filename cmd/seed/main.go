package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"bazaar/internal/config"
	"bazaar/internal/domain/models"
	"bazaar/internal/repository/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed sample data")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if err := seedSampleData(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to seed sample data: %v", err)
	}
	log.Println("🎉 Seeding complete!")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	createAccounts := `
		CREATE TABLE IF NOT EXISTS ` + tables.Accounts + ` (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			account_type TEXT NOT NULL DEFAULT 'regular',
			subscription_status TEXT NOT NULL DEFAULT 'none',
			stripe_customer_id TEXT UNIQUE,
			subscription_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createAccounts); err != nil {
		return err
	}

	createListings := `
		CREATE TABLE IF NOT EXISTS ` + tables.Listings + ` (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES ` + tables.Accounts + `(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT 'draft',
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			feature_expiration TIMESTAMPTZ,
			published_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createListings); err != nil {
		return err
	}

	createComments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Comments + ` (
			id UUID PRIMARY KEY,
			listing_id UUID NOT NULL REFERENCES ` + tables.Listings + `(id) ON DELETE CASCADE,
			author_id UUID NOT NULL REFERENCES ` + tables.Accounts + `(id) ON DELETE CASCADE,
			body TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createComments); err != nil {
		return err
	}

	// Composite primary key makes a like a single conditional insert
	createCommentLikes := `
		CREATE TABLE IF NOT EXISTS ` + tables.CommentLikes + ` (
			comment_id UUID NOT NULL REFERENCES ` + tables.Comments + `(id) ON DELETE CASCADE,
			actor_id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (comment_id, actor_id)
		)
	`
	if _, err := pool.Exec(ctx, createCommentLikes); err != nil {
		return err
	}

	// One row per (session, listing): the dedup invariant lives in the key
	createContactClicks := `
		CREATE TABLE IF NOT EXISTS ` + tables.ContactClicks + ` (
			session_id TEXT NOT NULL,
			listing_id UUID NOT NULL REFERENCES ` + tables.Listings + `(id) ON DELETE CASCADE,
			click_type TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (session_id, listing_id)
		)
	`
	if _, err := pool.Exec(ctx, createContactClicks); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `listings_owner ON ` + tables.Listings + `(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `listings_browse ON ` + tables.Listings + `(type, state, published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `comments_listing ON ` + tables.Comments + `(listing_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `contact_clicks_listing ON ` + tables.ContactClicks + `(listing_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.ContactClicks,
		tables.CommentLikes,
		tables.Comments,
		tables.Listings,
		tables.Accounts,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// seedSampleData inserts one account of each type plus a couple of listings
// so a fresh environment has something to browse.
func seedSampleData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	log.Println("📝 Seeding sample accounts and listings...")

	accounts := []struct {
		id           string
		email        string
		accountType  models.AccountType
		subscription models.SubscriptionStatus
	}{
		{uuid.NewString(), "regular@example.com", models.AccountTypeRegular, models.SubscriptionNone},
		{uuid.NewString(), "provider@example.com", models.AccountTypeProvider, models.SubscriptionActive},
		{uuid.NewString(), "seller@example.com", models.AccountTypeProductSeller, models.SubscriptionTrial},
		{uuid.NewString(), "admin@example.com", models.AccountTypeAdmin, models.SubscriptionNone},
	}

	insertAccount := `
		INSERT INTO ` + tables.Accounts + ` (id, email, account_type, subscription_status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
	`
	for _, a := range accounts {
		if _, err := pool.Exec(ctx, insertAccount, a.id, a.email, a.accountType, a.subscription); err != nil {
			return err
		}
		log.Printf("  ✓ Account %s (%s)", a.email, a.accountType)
	}

	now := time.Now()
	provider := accounts[1]
	seller := accounts[2]

	listings := []struct {
		ownerID     string
		listingType models.ResourceType
		title       string
		body        string
		state       models.LifecycleState
	}{
		{provider.id, models.ResourceProviderProfile, "Pat's Plumbing", "Licensed plumber, 10 years of experience.", models.StatePublished},
		{provider.id, models.ResourceBlogPost, "Winterizing your pipes", "A short guide to avoiding frozen pipes.", models.StateDraft},
		{seller.id, models.ResourceProduct, "Hand-forged garden trowel", "Solid steel, oak handle.", models.StatePublished},
	}

	insertListing := `
		INSERT INTO ` + tables.Listings + ` (id, owner_id, type, title, body, state, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`
	for _, l := range listings {
		var publishedAt *time.Time
		if l.state == models.StatePublished {
			publishedAt = &now
		}
		if _, err := pool.Exec(ctx, insertListing, uuid.NewString(), l.ownerID, l.listingType, l.title, l.body, l.state, publishedAt, now); err != nil {
			return err
		}
		log.Printf("  ✓ Listing %q (%s, %s)", l.title, l.listingType, l.state)
	}

	return nil
}
