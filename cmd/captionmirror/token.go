package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/randalmurphal/captionmirror/auth"
	"github.com/randalmurphal/captionmirror/config"
	cmerrors "github.com/randalmurphal/captionmirror/errors"
)

func tokenCmd(_ context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	scope := fs.String("scope", auth.ScopeControl, "token scope: read or control")
	ttl := fs.Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
	apiKey := fs.Bool("api-key", false, "generate an API key instead of a token")
	secret := fs.Bool("secret", false, "generate a server signing secret")
	save := fs.Bool("save", false, "store the generated key hash or secret in the global config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := e.settings(nil)
	if err != nil {
		return err
	}
	saver := config.NewAppSaveConfig()

	switch {
	case *secret:
		value, err := auth.GenerateSecret()
		if err != nil {
			return err
		}
		if *save {
			if err := saver.SaveGlobal(config.KeyServerSecret, value); err != nil {
				return err
			}
			fmt.Fprintln(e.stderr, "saved to", config.KeyServerSecret)
		}
		fmt.Fprintln(e.stdout, value)
		return nil

	case *apiKey:
		key, err := auth.GenerateAPIKey(auth.APIKeyConfig{})
		if err != nil {
			return err
		}
		if *save {
			hashes := append(s.ServerAPIKeys, key.Hash)
			if err := saver.SaveGlobal(config.KeyServerAPIKeys, strings.Join(hashes, ",")); err != nil {
				return err
			}
			fmt.Fprintln(e.stderr, "hash saved to", config.KeyServerAPIKeys)
		} else {
			fmt.Fprintf(e.stderr, "add this hash to %s: %s\n", config.KeyServerAPIKeys, key.Hash)
		}
		fmt.Fprintf(e.stderr, "key %s (shown once)\n", key.Prefix)
		fmt.Fprintln(e.stdout, key.Secret)
		return nil
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: captionmirror token [-scope s] [-ttl d] NAME")
	}
	if *scope != auth.ScopeRead && *scope != auth.ScopeControl {
		return fmt.Errorf("unknown scope %q", *scope)
	}
	if s.ServerSecret == "" {
		return cmerrors.NewInvalidConfigError(config.KeyServerSecret, fmt.Errorf("run \"captionmirror token -secret -save\" first"))
	}

	token, err := auth.GenerateToken(auth.JWTConfig{
		Secret: []byte(s.ServerSecret),
		Issuer: config.AppName,
		TTL:    *ttl,
	}, fs.Arg(0), *scope)
	if err != nil {
		return cmerrors.NewInvalidConfigError(config.KeyServerSecret, err)
	}
	fmt.Fprintf(e.stderr, "%s token for %s, expires %s\n", *scope, fs.Arg(0), time.Now().Add(*ttl).Format(time.RFC3339))
	fmt.Fprintln(e.stdout, token)
	return nil
}
