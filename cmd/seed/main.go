// cmd/seed/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newUserFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "user-id",
		Usage:   "Owner of the seeded rows",
		Value:   "demo-user",
		EnvVars: []string{"SEED_USER_ID"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *sql.DB {
	db, _ := c.Context.Value(dbKey).(*sql.DB)
	return db
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Create the schema and seed the database with demo data",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create tables if they do not exist",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runSchema,
			},
			{
				Name:  "catalog",
				Usage: "Seed categories and products from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newUserFlag(),
					&cli.StringFlag{
						Name:    "file",
						Usage:   "CSV file with product rows",
						Value:   "./data/seeds/products.csv",
						EnvVars: []string{"SEED_PRODUCTS_FILE"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runCatalogSeed,
			},
			{
				Name:  "orders",
				Usage: "Seed a demo order history",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newUserFlag(),
					&cli.IntFlag{
						Name:  "days",
						Usage: "How many days of history to generate",
						Value: 45,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runOrderSeed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
