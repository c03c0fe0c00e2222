package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/peterkuimelis/decksim/internal/config"
	"github.com/peterkuimelis/decksim/internal/deckcode"
	"github.com/peterkuimelis/decksim/internal/game"
	decknet "github.com/peterkuimelis/decksim/internal/net"
)

// maxBodyBytes bounds pasted deck pages and table requests.
const maxBodyBytes = 4 << 20

// Server is the decksim HTTP and WebSocket host.
type Server struct {
	cfg    config.Config
	loader *deckcode.Loader
	tables *tableRegistry
	logger *zap.Logger
	mux    *http.ServeMux
}

// NewServer creates a server. A nil fetcher downloads from the configured
// deck URL; a nil logger discards output.
func NewServer(cfg config.Config, fetcher deckcode.PageFetcher, logger *zap.Logger) (*Server, error) {
	rc, err := cfg.ResolverConfig()
	if err != nil {
		return nil, err
	}
	loader, err := deckcode.NewLoader(rc)
	if err != nil {
		return nil, err
	}
	if fetcher != nil {
		loader.Fetcher = fetcher
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		loader: loader,
		tables: newTableRegistry(cfg.Web.EventKeep),
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("POST /api/resolve", s.handleResolve)
	s.mux.HandleFunc("POST /api/tables", s.handleCreateTable)
	s.mux.HandleFunc("GET /api/tables/{id}", s.handleTableState)
	s.mux.HandleFunc("DELETE /api/tables/{id}", s.handleDeleteTable)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe starts the HTTP server and stops it when ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	if ttl := s.cfg.Web.TableTTL; ttl > 0 {
		go s.expireTables(ctx, ttl)
	}
	s.logger.Info("listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.tables.closeAll()
	return nil
}

// expireTables closes idle tables until ctx is done.
func (s *Server) expireTables(ctx context.Context, ttl time.Duration) {
	every := max(ttl/4, time.Second)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range s.tables.expire(ttl) {
				s.logger.Info("table expired", zap.String("table", id), zap.Duration("idle", ttl))
			}
		}
	}
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks := s.cfg.Decks
	if decks == nil {
		decks = []config.SavedDeck{}
	}
	writeJSON(w, http.StatusOK, decks)
}

// ResolveResponse is the body of POST /api/resolve.
type ResolveResponse struct {
	Cards []game.Card `json:"cards"`
	Total int         `json:"total"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	src := deckcode.Source{Code: r.URL.Query().Get("code")}
	if src.Code == "" {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		src.HTML = string(body)
	}
	cards, err := s.loader.Load(r.Context(), src)
	if err != nil {
		s.logger.Info("resolve failed", zap.String("code", src.Code), zap.Error(err))
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, ResolveResponse{Cards: cards, Total: game.DeckSize(cards)})
}

// DeckRef picks a deck by saved name, site code or pasted HTML.
type DeckRef struct {
	Saved string `json:"saved,omitempty"`
	deckcode.Source
}

// CreateTableRequest is the body of POST /api/tables.
type CreateTableRequest struct {
	Self     DeckRef  `json:"self"`
	Opponent *DeckRef `json:"opponent,omitempty"`
}

// CreateTableResponse returns the new table id and its opening state.
type CreateTableResponse struct {
	ID    string              `json:"id"`
	State *decknet.StateView `json:"state"`
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req CreateTableRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	self, err := s.loadRef(r.Context(), req.Self)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	var opponent []game.Card
	if req.Opponent != nil {
		if opponent, err = s.loadRef(r.Context(), *req.Opponent); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
	}

	tc, err := s.cfg.TableConfig()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	id, tbl, err := s.tables.create(self, opponent, tc, s.logger)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	s.logger.Info("table created", zap.String("table", id), zap.Bool("opponent", opponent != nil))
	writeJSON(w, http.StatusCreated, CreateTableResponse{ID: id, State: stateOf(tbl)})
}

func (s *Server) loadRef(ctx context.Context, ref DeckRef) ([]game.Card, error) {
	if ref.Saved != "" {
		d, ok := s.cfg.Deck(ref.Saved)
		if !ok {
			return nil, fmt.Errorf("unknown saved deck %q", ref.Saved)
		}
		ref.Source = deckcode.Source{Code: d.Code}
	}
	return s.loader.Load(ctx, ref.Source)
}

func (s *Server) handleTableState(w http.ResponseWriter, r *http.Request) {
	tbl, ok := s.tables.get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("no such table"))
		return
	}
	writeJSON(w, http.StatusOK, stateOf(tbl))
}

func (s *Server) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	if !s.tables.remove(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, errors.New("no such table"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func stateOf(tbl *game.Table) *decknet.StateView {
	return decknet.Handle(tbl, decknet.ClientMessage{Type: decknet.MsgState}).State
}

// handleWebSocket exchanges ClientMessage and ServerMessage JSON frames for
// one table until the browser disconnects. Pointer messages go through a
// gesture router owned by the connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("table")
	tbl, ok := s.tables.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("no such table"))
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	log := s.logger.With(zap.String("table", id))
	log.Debug("websocket connected")
	ctx := r.Context()
	gestures := decknet.NewGestures(tbl, s.cfg.GestureConfig(), nil)
	defer gestures.Close()

	if err := wsjson.Write(ctx, conn, decknet.Handle(tbl, decknet.ClientMessage{Type: decknet.MsgState})); err != nil {
		return
	}
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				log.Debug("websocket read", zap.Error(err))
			}
			return
		}
		s.tables.get(id) // marks the table as used
		var msg decknet.ClientMessage
		var resp decknet.ServerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			resp = decknet.ErrorMessage(err)
		} else {
			resp = gestures.Handle(msg)
		}
		if resp.Type == "error" {
			log.Info("client message rejected", zap.String("type", msg.Type), zap.String("error", resp.Error))
		}
		if err := wsjson.Write(ctx, conn, resp); err != nil {
			log.Debug("websocket write", zap.Error(err))
			return
		}
	}
}

// --- helpers ---

// statusFor maps resolver and engine errors onto HTTP codes.
func statusFor(err error) int {
	var verr *game.ValidationError
	var perr *deckcode.ParseError
	var ferr *deckcode.FetchError
	switch {
	case errors.As(err, &verr), errors.As(err, &perr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &ferr):
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
