// Command token issues a signed bearer token for a service desk actor.
// It reads JWT_SECRET and JWT_ISSUER the same way the API does.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"servicedesk/internal/config"
	"servicedesk/internal/domain/entities"
	"servicedesk/internal/infrastructure/identity"
)

func main() {
	var (
		actorID string
		role    string
		ttl     time.Duration
	)
	flag.StringVar(&actorID, "actor", "", "Actor id (token subject)")
	flag.StringVar(&role, "role", "", "Role: admin, reception or technician")
	flag.DurationVar(&ttl, "ttl", 0, "Validity (defaults to JWT_TTL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if ttl <= 0 {
		ttl = cfg.JWT.TTL
	}

	actor := entities.Actor{ID: actorID, Role: entities.Role(role)}
	if actor.ID == "" || !actor.Role.Valid() {
		fmt.Fprintln(os.Stderr, "Error: -actor and a valid -role are required")
		flag.Usage()
		os.Exit(2)
	}

	token, err := identity.NewJWTProvider(cfg.JWT.Secret, cfg.JWT.Issuer).IssueToken(actor, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "actor=%s role=%s expires=%s\n", actor.ID, actor.Role, time.Now().Add(ttl).Format(time.RFC3339))
	fmt.Println(token)
}
