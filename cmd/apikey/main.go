// Command apikey registers a bearer token for a tenant. Only the token's hash
// is stored.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/rpggio/coursegrid/internal/config"
	"github.com/rpggio/coursegrid/internal/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	tenant := flag.String("tenant", "", "tenant the token belongs to (required)")
	token := flag.String("token", "", "token to register; a random one is generated when empty")
	description := flag.String("description", "", "free-form note stored with the key")
	dbPath := flag.String("db", cfg.DB.Path, "database path")
	flag.Parse()

	if *tenant == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *token == "" {
		buf := make([]byte, 24)
		if _, err := rand.Read(buf); err != nil {
			fmt.Fprintf(os.Stderr, "generate token: %v\n", err)
			os.Exit(1)
		}
		*token = hex.EncodeToString(buf)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	if err := sqlite.NewAPIKeyRepository(db).Add(context.Background(), *token, *tenant, *description); err != nil {
		fmt.Fprintf(os.Stderr, "add key: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(*token)
}
