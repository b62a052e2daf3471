// Command token mints a bearer token for a principal using the configured
// JWT secret.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"guesthouse/internal/config"
	jwtsvc "guesthouse/internal/pkg/jwt"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var principal string
	flagSet := pflag.NewFlagSet("token", pflag.ContinueOnError)
	flagSet.StringVarP(&principal, "principal", "p", "", "caller identity to embed in the token")
	ttl := flagSet.Duration("ttl", cfg.JWTTTL, "token lifetime")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if principal == "" {
		return errors.New("--principal is required")
	}

	token, err := jwtsvc.New(cfg.JWTSecret, *ttl).GenerateToken(principal)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
