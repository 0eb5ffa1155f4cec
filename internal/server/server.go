// Package server serves expression evaluation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"sync"

	"github.com/buaazp/fasthttprouter"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/zephyrtronium/infix"
	"github.com/zephyrtronium/infix/internal/tables"
)

// Config configures a Server.
type Config struct {
	Addr string
	// Rate and Burst limit each client's requests per second. A Rate of zero
	// disables limiting.
	Rate  float64
	Burst int
	// CacheSize is the number of compiled expressions to keep.
	CacheSize int
	// Standard enables the standard functions when tables are replaced.
	Standard bool
}

type unit = func(map[string]float64) infix.Value

// Server evaluates expressions in open mode. Variables in a request are
// available to its expression as v.name.
type Server struct {
	cfg     Config
	log     *zap.Logger
	r       *fasthttprouter.Router
	limiter *ipRateLimiter

	// mu guards the context's functions against replacement during parses.
	mu     sync.RWMutex
	parsem sync.Mutex
	ctx    *infix.Context
	parser *infix.Parser1[map[string]float64, infix.Value]
	cache  *infix.Cache[unit]
}

type evalRequest struct {
	Expr string             `json:"expr"`
	Vars map[string]float64 `json:"vars"`
}

type evalResponse struct {
	Value interface{} `json:"value,omitempty"`
	Type  string      `json:"type,omitempty"`
	Tree  string      `json:"tree,omitempty"`
	Error string      `json:"error,omitempty"`
	Pos   *int        `json:"pos,omitempty"`
	Token string      `json:"token,omitempty"`
}

// New creates a server using ctx for functions and number format.
func New(cfg Config, ctx *infix.Context, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p, err := infix.NewParser1[map[string]float64, infix.Value](infix.MapParam("v"), infix.WithContext(ctx), infix.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1000
	}
	s := &Server{
		cfg:    cfg,
		log:    log,
		r:      fasthttprouter.New(),
		ctx:    ctx,
		parser: p,
	}
	if cfg.Rate > 0 {
		s.limiter = newIPRateLimiter(rate.Limit(cfg.Rate), cfg.Burst)
	}
	s.cache = infix.NewCache(cfg.CacheSize, s.parse)
	s.r.POST("/eval", s.limit(s.evalHandler))
	s.r.GET("/funcs", s.limit(s.funcsHandler))
	return s, nil
}

// parse compiles an expression. Parsers are not safe for concurrent use
// under every comparison policy, so parses are serialized.
func (s *Server) parse(src string) (unit, error) {
	s.parsem.Lock()
	defer s.parsem.Unlock()
	return s.parser.Parse(src)
}

// Handler returns the server's request handler.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.r.Handler
}

// Run serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	srv := &fasthttp.Server{Handler: s.Handler(), Name: "infix"}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr))
		errc <- srv.ListenAndServe(s.cfg.Addr)
	}()
	select {
	case <-ctx.Done():
		return srv.Shutdown()
	case err := <-errc:
		return err
	}
}

// SetTables replaces the server's functions with the given tables and clears
// the compiled expression cache.
func (s *Server) SetTables(t tables.Tables) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := t.Install(s.ctx, s.cfg.Standard); err != nil {
		return err
	}
	s.cache.Purge()
	return nil
}

func (s *Server) limit(h fasthttp.RequestHandler) fasthttp.RequestHandler {
	if s.limiter == nil {
		return h
	}
	return func(ctx *fasthttp.RequestCtx) {
		ip := ctx.RemoteIP().String()
		if !s.limiter.allow(ip) {
			s.log.Debug("ip limited", zap.String("ip", ip))
			writeJSON(ctx, fasthttp.StatusTooManyRequests, &evalResponse{Error: "request too frequently"})
			return
		}
		h(ctx)
	}
}

func (s *Server) evalHandler(ctx *fasthttp.RequestCtx) {
	var req evalRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeJSON(ctx, fasthttp.StatusBadRequest, &evalResponse{Error: err.Error()})
		return
	}
	s.mu.RLock()
	f, err := s.cache.Get(req.Expr)
	s.mu.RUnlock()
	if err != nil {
		resp := evalResponse{Error: err.Error()}
		var ie infix.InputError
		if errors.As(err, &ie) {
			pos := ie.Pos()
			resp.Pos, resp.Token = &pos, ie.Token()
		}
		s.log.Debug("eval failed", zap.String("expr", req.Expr), zap.Error(err))
		writeJSON(ctx, fasthttp.StatusBadRequest, &resp)
		return
	}
	v := f(req.Vars)
	resp := evalResponse{Value: jsonValue(v), Type: v.Type.String()}
	if string(ctx.QueryArgs().Peek("explain")) == "1" {
		s.mu.RLock()
		s.parsem.Lock()
		tree, err := s.parser.Explain(req.Expr)
		s.parsem.Unlock()
		s.mu.RUnlock()
		if err != nil {
			s.log.Debug("explain failed", zap.String("expr", req.Expr), zap.Error(err))
			resp.Error = err.Error()
		}
		resp.Tree = tree
	}
	writeJSON(ctx, fasthttp.StatusOK, &resp)
}

func (s *Server) funcsHandler(ctx *fasthttp.RequestCtx) {
	s.mu.RLock()
	names := s.ctx.FuncNames()
	s.mu.RUnlock()
	writeJSON(ctx, fasthttp.StatusOK, map[string][]string{"funcs": names})
}

// jsonValue converts a value to something encoding/json accepts. Non-finite
// numbers become strings.
func jsonValue(v infix.Value) interface{} {
	if v.Type == infix.TypeNumber && (math.IsNaN(v.Num) || math.IsInf(v.Num, 0)) {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
	return v.Interface()
}

func writeJSON(ctx *fasthttp.RequestCtx, code int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(code)
	ctx.SetContentType("application/json")
	ctx.Write(b)
}
