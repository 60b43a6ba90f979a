// Package server exposes the question bank over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/abhisek/sbfquiz/internal/bank"
	"github.com/abhisek/sbfquiz/internal/catalog"
	"github.com/abhisek/sbfquiz/internal/exam"
	"github.com/abhisek/sbfquiz/internal/question"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address. Default: ":8000".
	Addr string

	// MediaDir, when set, is served under /media/ for question images.
	MediaDir string

	Logger *slog.Logger // nil → slog.Default()
	Rand   *rand.Rand   // nil → randomly seeded
}

// Server serves questions, licenses and exam configs as JSON.
type Server struct {
	repo   bank.Repository
	addr   string
	logger *slog.Logger
	media  fasthttp.RequestHandler
	srv    *fasthttp.Server

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Server backed by repo.
func New(repo bank.Repository, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Server{
		repo:   repo,
		addr:   cfg.Addr,
		logger: cfg.Logger,
		rng:    cfg.Rand,
	}
	if cfg.MediaDir != "" {
		fs := &fasthttp.FS{
			Root:        cfg.MediaDir,
			PathRewrite: fasthttp.NewPathSlashesStripper(1),
		}
		s.media = fs.NewRequestHandler()
	}
	s.srv = &fasthttp.Server{
		Handler:      s.Handler,
		Name:         "sbfquiz",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe serves on the configured address until Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("question bank server listening", "addr", s.addr)
	return s.srv.ListenAndServe(s.addr)
}

// Serve serves on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.srv.Serve(ln)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.srv.Shutdown()
}

// Handler routes a request.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	ctx.Response.Header.Set("Cache-Control", "no-cache")
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")

	switch {
	case ctx.IsOptions():
		ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	case !ctx.IsGet() && !ctx.IsHead():
		respondError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
	case path == "/api/health":
		respondJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case path == "/api/licenses" || path == "/api/licenses/":
		s.licenses(ctx)
	case path == "/api/exams" || path == "/api/exams/":
		s.exams(ctx)
	case path == "/api/questions" || path == "/api/questions/":
		s.questions(ctx)
	case strings.HasPrefix(path, "/api/questions/"):
		s.question(ctx, strings.Trim(strings.TrimPrefix(path, "/api/questions/"), "/"))
	case strings.HasPrefix(path, "/media/") && s.media != nil:
		s.media(ctx)
	default:
		respondError(ctx, fasthttp.StatusNotFound, "not found")
	}

	s.logger.Debug("request",
		"method", string(ctx.Method()),
		"path", path,
		"status", ctx.Response.StatusCode(),
		"duration", time.Since(start),
	)
}

// questions handles GET /api/questions/?license=..&category=..
// Both filters are optional.
func (s *Server) questions(ctx *fasthttp.RequestCtx) {
	license := string(ctx.QueryArgs().Peek("license"))
	category := string(ctx.QueryArgs().Peek("category"))

	qs, err := s.repo.Questions(ctx, license, category)
	if err != nil {
		s.logger.Error("list questions", "license", license, "category", category, "error", err)
		respondError(ctx, fasthttp.StatusInternalServerError, "questions unavailable")
		return
	}

	out := make([]question.Question, len(qs))
	for i := range qs {
		out[i] = s.shuffled(qs[i])
	}
	respondJSON(ctx, fasthttp.StatusOK, out)
}

// question handles GET /api/questions/<id>/
func (s *Server) question(ctx *fasthttp.RequestCtx, id string) {
	qs, err := s.repo.Questions(ctx, "", "")
	if err != nil {
		s.logger.Error("get question", "id", id, "error", err)
		respondError(ctx, fasthttp.StatusInternalServerError, "questions unavailable")
		return
	}
	for i := range qs {
		if qs[i].ID == id {
			respondJSON(ctx, fasthttp.StatusOK, s.shuffled(qs[i]))
			return
		}
	}
	respondError(ctx, fasthttp.StatusNotFound, "question not found")
}

// shuffled returns q with its options in random order. The stored
// question is not modified.
func (s *Server) shuffled(q question.Question) question.Question {
	opts := make([]question.Option, len(q.Options))
	copy(opts, q.Options)

	s.mu.Lock()
	s.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	s.mu.Unlock()

	q.Options = opts
	return q
}

type licenseResponse struct {
	catalog.License
	Categories []catalog.Category `json:"categories"`
}

func (s *Server) licenses(ctx *fasthttp.RequestCtx) {
	var out []licenseResponse
	for _, l := range catalog.Licenses() {
		cs, _ := catalog.Categories(l.ID)
		out = append(out, licenseResponse{License: l, Categories: cs})
	}
	respondJSON(ctx, fasthttp.StatusOK, out)
}

type examResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	DurationMinutes int                `json:"duration"`
	Requirements    []exam.Requirement `json:"requirements"`
	Passing         exam.PassingRule   `json:"passingRules"`
	TotalQuestions  int                `json:"totalQuestions"`
}

// exams handles GET /api/exams?license=..
func (s *Server) exams(ctx *fasthttp.RequestCtx) {
	license := string(ctx.QueryArgs().Peek("license"))
	if license == "" {
		respondError(ctx, fasthttp.StatusBadRequest, "license is required")
		return
	}
	cfgs, err := catalog.Exams(license)
	if err != nil {
		respondError(ctx, fasthttp.StatusNotFound, err.Error())
		return
	}
	out := make([]examResponse, 0, len(cfgs))
	for _, c := range cfgs {
		out = append(out, examResponse{
			ID:              c.ID,
			Title:           c.Title,
			DurationMinutes: int(c.Duration / time.Minute),
			Requirements:    c.Requirements,
			Passing:         c.Passing,
			TotalQuestions:  c.TotalQuestions(),
		})
	}
	respondJSON(ctx, fasthttp.StatusOK, out)
}

func respondJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"error":"encode response"}`)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func respondError(ctx *fasthttp.RequestCtx, status int, msg string) {
	respondJSON(ctx, status, map[string]string{"error": msg})
}
