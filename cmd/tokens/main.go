// Command tokens issues, lists and revokes API bearer tokens from the shell.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/shopadmin-backend/internal/apitokens"
	"github.com/angelmondragon/shopadmin-backend/pkg/config"
	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/env"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
	"github.com/angelmondragon/shopadmin-backend/pkg/pagination"
)

func main() {
	_ = godotenv.Load()

	cmd := flag.String("cmd", "issue", "token command: issue|list|revoke")
	userID := flag.Int64("user", 0, "owning user id (issue, list)")
	tokenID := flag.Int64("id", 0, "token id (revoke)")
	name := flag.String("name", "cli", "token name (issue)")
	scopes := flag.String("scopes", "", "comma separated scopes (issue)")
	ttl := flag.Duration("ttl", 0, "token lifetime, 0 for no expiry (issue)")
	flag.Parse()

	logg := logger.New(logger.Options{
		ServiceName: "tokens",
		Level:       logger.ParseLevel(env.Get(config.EnvLogLevel, "info")),
	})
	ctx := logg.WithFields(context.Background(), map[string]any{"cmd": *cmd})

	if err := run(ctx, logg, *cmd, *userID, *tokenID, *name, *scopes, *ttl); err != nil {
		logg.Error(ctx, "tokens.failed", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logg *logger.Logger, cmd string, userID, tokenID int64, name, scopes string, ttl time.Duration) error {
	dbCfg, err := config.LoadDB()
	if err != nil {
		return err
	}
	client, err := db.New(ctx, *dbCfg, logg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer client.Close()

	svc, err := apitokens.NewService(apitokens.NewRepository(client.DB()))
	if err != nil {
		return err
	}

	switch cmd {
	case "issue":
		if userID == 0 {
			return fmt.Errorf("missing -user for issue")
		}
		input := apitokens.IssueInput{Name: name, Scopes: splitScopes(scopes)}
		if ttl > 0 {
			expires := time.Now().Add(ttl)
			input.ExpiresAt = &expires
		}
		token, err := svc.Issue(ctx, userID, input)
		if err != nil {
			return err
		}
		return printJSON(token)
	case "list":
		if userID == 0 {
			return fmt.Errorf("missing -user for list")
		}
		page, err := svc.List(ctx, userID, pagination.Params{Page: 1, PerPage: 100})
		if err != nil {
			return err
		}
		return printJSON(page)
	case "revoke":
		if tokenID == 0 {
			return fmt.Errorf("missing -id for revoke")
		}
		if err := svc.Revoke(ctx, tokenID); err != nil {
			return err
		}
		fmt.Println("revoked token", tokenID)
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func splitScopes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
