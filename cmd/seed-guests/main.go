// seed-guests создает демо-профили GuestBusiness и GuestCustomer и печатает их токены.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"coderr/db"
	"coderr/db/migrations"
	"coderr/internal/config"
	"coderr/internal/identity"
	"coderr/models"

	_ "github.com/lib/pq"
)

type guest struct {
	userID  int64
	profile models.UserProfile
}

var guests = []guest{
	{userID: 900001, profile: models.UserProfile{
		Username: models.GuestBusinessUsername, FirstName: "Guest", LastName: "Business",
		Email: "guest.business@example.com", Role: models.RoleBusiness,
	}},
	{userID: 900002, profile: models.UserProfile{
		Username: models.GuestCustomerUsername, FirstName: "Guest", LastName: "Customer",
		Email: "guest.customer@example.com", Role: models.RoleCustomer,
	}},
}

func main() {
	migrate := flag.Bool("migrate", false, "apply migrations before seeding")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.StorageDriver != config.DriverPostgres {
		log.Fatal("seed-guests requires STORAGE_DRIVER=postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.Connect(ctx, cfg.PostgresConn, db.PoolConfig{MaxOpenConns: 2, MaxIdleConns: 1, ConnMaxLifetime: time.Minute})
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}
	defer conn.Close()

	if *migrate {
		if err := migrations.Run(conn.DB); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	tokens, err := identity.NewTokens(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("cannot configure tokens: %v", err)
	}

	store := db.NewStorage(conn)
	for _, g := range guests {
		p := g.profile
		p.UserID = g.userID
		if err := store.UpsertProfile(ctx, &p); err != nil {
			log.Fatalf("cannot upsert %s: %v", p.Username, err)
		}

		token, err := tokens.Sign(identity.Identity{UserID: p.UserID, Username: p.Username})
		if err != nil {
			log.Fatalf("cannot sign token for %s: %v", p.Username, err)
		}
		fmt.Printf("%s\tprofile=%d\ttype=%s\ttoken=%s\n", p.Username, p.ID, p.Role, token)
	}
}
