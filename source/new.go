package source

import (
	"fmt"
	"net/http"
	"strings"
)

// Kinds accepted by New.
const (
	KindFile    = "file"
	KindCommand = "command"
	KindHTTP    = "http"
	KindReplay  = "replay"
)

// Kinds lists the accepted source kinds.
func Kinds() []string {
	return []string{KindFile, KindCommand, KindHTTP, KindReplay}
}

// New builds a source of the given kind. target is a path, a command line
// or a URL depending on kind. token is only used by http sources.
func New(kind, target, token string) (Source, error) {
	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("source %q: target is required", kind)
	}

	switch strings.ToLower(kind) {
	case KindFile:
		return NewFileSource(target), nil
	case KindCommand:
		return NewCommandSource(target)
	case KindHTTP:
		return NewHTTPSource(target, token), nil
	case KindReplay:
		return LoadReplay(target)
	default:
		return nil, fmt.Errorf("unknown source kind %q (want one of %s)", kind, strings.Join(Kinds(), ", "))
	}
}

func bearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
