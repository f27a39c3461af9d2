// Package httpapi exposes the engine over HTTP. Every request goes through the
// same engine.Service, whose lock keeps transform and record atomic.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/doeshing/ciphervault/internal/application/engine"
	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server wires the engine into a chi router.
type Server struct {
	engine *engine.Service
	qr     ports.QRRenderer
	logger ports.Logger
}

// NewServer builds the API; qr may be nil to disable /api/qr.
func NewServer(svc *engine.Service, qr ports.QRRenderer, logger ports.Logger) *Server {
	return &Server{engine: svc, qr: qr, logger: logger}
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/process", s.handleProcess)
		r.Post("/keys", s.handleGenerateKey)
		r.Get("/algorithms", s.handleAlgorithms)
		r.Get("/algorithms/{id}", s.handleAlgorithm)
		r.Get("/history", s.handleHistory)
		r.Post("/qr", s.handleQR)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: domain.DefaultReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http api listening", map[string]interface{}{"addr": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), domain.DefaultShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type processRequest struct {
	Text      string `json:"text"`
	Key       string `json:"key"`
	Algorithm string `json:"algorithm"`
	Direction string `json:"direction"`
}

type processResponse struct {
	Result string                 `json:"result"`
	Record domain.OperationRecord `json:"record"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var body processRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	algo, err := domain.ParseAlgorithm(body.Algorithm)
	if err != nil {
		s.writeError(w, err)
		return
	}
	direction := domain.DirectionEncrypt
	if body.Direction != "" {
		if direction, err = domain.ParseDirection(body.Direction); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	res, err := s.engine.Process(r.Context(), domain.ProcessRequest{
		Text:      body.Text,
		Key:       body.Key,
		Algorithm: algo,
		Direction: direction,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, processResponse{Result: res.Result, Record: res.Record})
}

func (s *Server) handleGenerateKey(w http.ResponseWriter, r *http.Request) {
	key, err := s.engine.GenerateKey()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Algorithms())
}

func (s *Server) handleAlgorithm(w http.ResponseWriter, r *http.Request) {
	algo, err := domain.ParseAlgorithm(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Kind: string(domain.KindOf(err))})
		return
	}
	info, err := s.engine.AlgorithmInfo(algo)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.engine.OperationLog()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	if s.qr == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "qr rendering disabled"})
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	data, err := s.qr.PNG(r.Context(), body.Text)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+domain.QRFileName(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", err, nil)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: string(domain.KindOf(err))})
}

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindEmptyInput, domain.KindMissingKey, domain.KindUnsupportedAlgorithm:
		return http.StatusBadRequest
	case domain.KindInvalidKey, domain.KindCorruptInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
