// Package inspect serves read-only diagnostics over HTTP: the registrations
// of each scope and the subscriber counts of the host channels.
//
//	GET /healthz
//	GET /scopes/{scope}   scope is "global" or "local"
//	GET /channels
package inspect

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/container"
	gohttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/framework/routing"
)

// ChannelCounter reports the number of subscribers per channel.
// *host.Scene implements it.
type ChannelCounter interface {
	SubscriberCounts() map[string]int
}

// Entry is the JSON form of one registration.
type Entry struct {
	Type     string `json:"type"`
	Tag      string `json:"tag,omitempty"`
	Lifetime string `json:"lifetime"`
	Cached   bool   `json:"cached"`
}

// Handler builds the diagnostics router. channels may be nil.
func Handler(c *container.Container, channels ChannelCounter, log *zap.Logger) http.Handler {
	r := routing.New(log)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		gohttp.NewResponse(w).Success(map[string]string{"status": "ok"})
	})

	r.Prefix("/scopes", func(s *routing.Router) {
		s.Get("/{scope}", func(w http.ResponseWriter, req *http.Request) {
			res := gohttp.NewResponse(w)
			name := routing.Param(req, "scope")
			scope, ok := container.ParseScope(name)
			if !ok {
				res.NotFound("unknown scope " + name)
				return
			}
			res.Success(entries(c.Entries(scope)))
		})
	})

	r.Get("/channels", func(w http.ResponseWriter, _ *http.Request) {
		counts := map[string]int{}
		if channels != nil {
			counts = channels.SubscriberCounts()
		}
		gohttp.NewResponse(w).Success(counts)
	})

	return r
}

func entries(infos []container.EntryInfo) []Entry {
	out := make([]Entry, 0, len(infos))
	for _, info := range infos {
		out = append(out, Entry{
			Type:     info.Key.Type.String(),
			Tag:      info.Key.Tag,
			Lifetime: info.Lifetime.String(),
			Cached:   info.Cached,
		})
	}
	return out
}
