// Package auth authenticates requests to the control server.
//
// Two credentials are accepted:
//
//   - Control tokens: HS256 JWTs carrying scopes (read, control), issued by
//     "captionmirror token" and signed with the configured server secret.
//   - API keys: long-lived random keys. Only their SHA-256 hashes are kept
//     in the configuration file; KeyRing checks a presented key against
//     them.
//
// Tokens:
//
//	cfg := auth.JWTConfig{Secret: []byte(secret), Issuer: "captionmirror"}
//	token, err := auth.GenerateToken(cfg, "stream-deck", auth.ScopeControl)
//	claims, err := auth.ValidateToken(cfg, token)
//	if claims.HasScope(auth.ScopeRead) { ... }
//
// API keys:
//
//	key, err := auth.GenerateAPIKey(auth.APIKeyConfig{})
//	// show key.Secret once, store key.Hash
//	ring := auth.NewKeyRing(auth.APIKeyConfig{}, storedHashes...)
//	err = ring.Verify(presented)
package auth
