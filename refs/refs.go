// Package refs builds and parses JSON-reference URLs pointing at records on
// a configured server.
package refs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmartinm/inspire-dojson/record"
)

const (
	// DefaultServerName is used when no server name is configured.
	DefaultServerName = "http://inspirehep.net"
	// DefaultEndpoint is used when no endpoint is given to RecordRef.
	DefaultEndpoint = "record"
)

// Config carries the server name references are built against, e.g.
// "localhost:5000" or "https://example.com". A missing scheme defaults to
// http.
type Config struct {
	ServerName string
}

// Ref is a JSON reference to a record.
type Ref struct {
	URL string `json:"$ref"`
}

// Codec builds record references for one configured server.
type Codec struct {
	base string
}

// New returns a Codec for the given configuration.
func New(cfg Config) *Codec {
	server := cfg.ServerName
	if server == "" {
		server = DefaultServerName
	}
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	return &Codec{base: strings.TrimSuffix(server, "/")}
}

// RecordRef returns a reference to the record with the given id under
// base/api/endpoint/recid, or nil when recid is absent (zero).
func (c *Codec) RecordRef(recid int64, endpoint string) *Ref {
	if recid == 0 {
		return nil
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Ref{URL: fmt.Sprintf("%s/api/%s/%d", c.base, endpoint, recid)}
}

// RecidFromRef extracts the record id from a reference value: a *Ref, a
// mapping with a "$ref" key, or a plain map. The id is the trailing path
// segment of the URL; anything else reports not ok.
func RecidFromRef(v any) (int64, bool) {
	url, ok := refURL(v)
	if !ok {
		return 0, false
	}
	segments := strings.Split(url, "/")
	recid, err := strconv.ParseInt(segments[len(segments)-1], 10, 64)
	if err != nil {
		return 0, false
	}
	return recid, true
}

func refURL(v any) (string, bool) {
	switch t := v.(type) {
	case *Ref:
		if t == nil {
			return "", false
		}
		return t.URL, true
	case Ref:
		return t.URL, true
	case map[string]any:
		url, ok := t["$ref"].(string)
		return url, ok
	case map[string]string:
		url, ok := t["$ref"]
		return url, ok
	case record.Value:
		ref, ok := t.Get("$ref")
		if !ok {
			return "", false
		}
		url, ok := ref.Scalar().(string)
		return url, ok
	default:
		return "", false
	}
}
