// Package collecttest provides an in-process stand-in for the collection
// service, for tests and local runs.
package collecttest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/mux"

	"github.com/nicktill/tinyga/pkg/config"
	"github.com/nicktill/tinyga/pkg/httpx"
	"github.com/nicktill/tinyga/pkg/sdk/transport"
)

// mandatory keys checked by the debug endpoint
var requiredKeys = []string{"v", "tid", "cid", "t"}

// Hit is one hit line as received by the server.
type Hit struct {
	Path        string
	Line        string
	Params      url.Values
	Fingerprint uint64
}

// Request is one received request.
type Request struct {
	Path      string
	UserAgent string
	Lines     []string
}

type failure struct {
	status      int
	contentType string
	body        string
}

// Server records everything it receives.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	hits     []Hit
	seen     map[uint64]int
	fail     *failure
}

// NewServer starts a collection server on a loopback port.
func NewServer() *Server {
	s := &Server{seen: make(map[uint64]int)}
	s.Server = httptest.NewServer(s.Router())
	return s
}

// Router returns the collection routes.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc(config.CollectPath, s.handleCollect).Methods(http.MethodPost)
	router.HandleFunc(config.BatchPath, s.handleBatch).Methods(http.MethodPost)
	router.HandleFunc(config.DebugPath+config.CollectPath, s.handleDebug).Methods(http.MethodPost)
	return router
}

// FailWith makes every following request fail with the given response.
// A zero status restores normal behavior.
func (s *Server) FailWith(status int, contentType, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		s.fail = nil
		return
	}
	s.fail = &failure{status: status, contentType: contentType, body: body}
}

// Requests returns a copy of the received requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]Request, len(s.requests))
	copy(result, s.requests)
	return result
}

// Hits returns a copy of every received hit.
func (s *Server) Hits() []Hit {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]Hit, len(s.hits))
	copy(result, s.hits)
	return result
}

// Duplicates returns how many received hits had been received before.
func (s *Server) Duplicates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	dups := 0
	for _, n := range s.seen {
		dups += n - 1
	}
	return dups
}

// Transport returns a transport that delivers requests addressed to the
// collection service to this server instead.
func (s *Server) Transport() transport.Transport {
	next, _ := transport.NewHTTP(transport.Config{})
	return &rewriteTransport{base: s.URL, next: next}
}

type rewriteTransport struct {
	base string
	next transport.Transport
}

func (t *rewriteTransport) Post(ctx context.Context, req transport.Request) (*transport.Response, error) {
	req.URL = t.base + strings.TrimPrefix(req.URL, config.BaseURL)
	return t.next.Post(ctx, req)
}

func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	if s.record(w, r) == nil {
		return
	}
	httpx.RespondGIF(w, http.StatusOK)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	lines := s.record(w, r)
	if lines == nil {
		return
	}
	if len(lines) > config.MaxHitsPerRequest {
		httpx.RespondText(w, http.StatusBadRequest, "too many hits in batch")
		return
	}
	httpx.RespondGIF(w, http.StatusOK)
}

type parserMessage struct {
	MessageType string `json:"messageType"`
	Description string `json:"description"`
	Parameter   string `json:"parameter,omitempty"`
}

type parsingResult struct {
	Valid         bool            `json:"valid"`
	Hit           string          `json:"hit"`
	ParserMessage []parserMessage `json:"parserMessage"`
}

func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	lines := s.record(w, r)
	if lines == nil {
		return
	}

	results := make([]parsingResult, 0, len(lines))
	for _, line := range lines {
		params, _ := url.ParseQuery(line)
		res := parsingResult{Valid: true, Hit: "/debug/collect?" + line, ParserMessage: []parserMessage{}}
		for _, key := range requiredKeys {
			if params.Get(key) == "" {
				res.Valid = false
				res.ParserMessage = append(res.ParserMessage, parserMessage{
					MessageType: "ERROR",
					Description: "A value is required for parameter '" + key + "'.",
					Parameter:   key,
				})
			}
		}
		results = append(results, res)
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"hitParsingResult": results,
	})
}

// record stores the request and returns its hit lines. It returns nil
// after writing a failure response.
func (s *Server) record(w http.ResponseWriter, r *http.Request) []string {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.RespondText(w, http.StatusBadRequest, err.Error())
		return nil
	}

	var lines []string
	if len(body) > 0 {
		lines = strings.Split(string(body), "\n")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, Request{
		Path:      r.URL.Path,
		UserAgent: r.UserAgent(),
		Lines:     lines,
	})

	if s.fail != nil {
		if s.fail.contentType != "" {
			w.Header().Set("Content-Type", s.fail.contentType)
		}
		w.WriteHeader(s.fail.status)
		w.Write([]byte(s.fail.body))
		return nil
	}

	for _, line := range lines {
		params, _ := url.ParseQuery(line)
		fp := xxhash.Sum64String(line)
		s.seen[fp]++
		s.hits = append(s.hits, Hit{
			Path:        r.URL.Path,
			Line:        line,
			Params:      params,
			Fingerprint: fp,
		})
	}

	if lines == nil {
		return []string{}
	}
	return lines
}
