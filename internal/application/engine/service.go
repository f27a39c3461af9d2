package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

// Service is the engine facade: it validates a request, dispatches it to the
// matching cipher and records successful operations.
type Service struct {
	Ciphers    ports.CipherFactory
	KeyGen     ports.KeyGenerator
	Log        ports.OperationLog
	Translator ports.Translator
	Logger     ports.Logger

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string

	mu sync.Mutex
}

// Process transforms req.Text and appends the outcome to the operation log.
// Failed transformations are returned as *domain.EngineError and leave the log untouched.
func (s *Service) Process(ctx context.Context, req domain.ProcessRequest) (domain.ProcessResult, error) {
	if s.Ciphers == nil || s.Log == nil || s.Logger == nil {
		return domain.ProcessResult{}, errors.New("engine.Service dependencies not satisfied")
	}
	if err := ctx.Err(); err != nil {
		return domain.ProcessResult{}, err
	}

	if strings.TrimSpace(req.Text) == "" {
		return domain.ProcessResult{}, domain.NewError(domain.ErrEmptyInput, "please enter some text to process")
	}
	if !req.Algorithm.Valid() {
		return domain.ProcessResult{}, domain.NewError(domain.ErrUnsupportedAlgorithm,
			fmt.Sprintf("unsupported algorithm: %q", string(req.Algorithm)))
	}
	needsKey := req.Algorithm.NeedsKey()
	if needsKey && strings.TrimSpace(req.Key) == "" {
		return domain.ProcessResult{}, domain.NewError(domain.ErrMissingKey, "a key is required for this algorithm")
	}
	direction := req.Direction
	if direction == "" {
		direction = domain.DirectionEncrypt
	}
	if !direction.Valid() {
		return domain.ProcessResult{}, fmt.Errorf("unknown direction %q (want encrypt|decrypt)", string(direction))
	}

	c, err := s.Ciphers.ForAlgorithm(req.Algorithm)
	if err != nil {
		return domain.ProcessResult{}, err
	}

	fields := map[string]interface{}{
		"algorithm": req.Algorithm.String(),
		"direction": direction.String(),
		"input_len": len(req.Text),
	}

	// transform and record under one lock so concurrent callers never interleave records
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := c.Apply(req.Text, req.Key, direction)
	if err != nil {
		fields["kind"] = string(domain.KindOf(err))
		s.Logger.Warn("transformation failed", fields)
		return domain.ProcessResult{}, err
	}

	key := domain.KeyNotApplicable
	if needsKey {
		key = req.Key
	}
	rec := domain.OperationRecord{
		ID:        s.newID(),
		Result:    out,
		Algorithm: req.Algorithm.Label(),
		Key:       key,
		Direction: direction,
		Timestamp: s.now(),
	}
	if err := s.Log.Record(rec); err != nil {
		s.Logger.Error("record operation", err, fields)
		return domain.ProcessResult{}, fmt.Errorf("record operation: %w", err)
	}

	fields["output_len"] = len(out)
	s.Logger.Debug("transformation recorded", fields)
	return domain.ProcessResult{Result: out, Record: rec}, nil
}

// GenerateKey returns a fresh random key.
func (s *Service) GenerateKey() (string, error) {
	if s.KeyGen == nil {
		return "", errors.New("key generator unavailable")
	}
	return s.KeyGen.Generate()
}

// OperationLog returns a newest-first snapshot of recent operations.
func (s *Service) OperationLog() ([]domain.OperationRecord, error) {
	if s.Log == nil {
		return nil, errors.New("operation log unavailable")
	}
	return s.Log.Records()
}

// ResetLog empties the operation log; used when an interactive session restarts.
func (s *Service) ResetLog() error {
	if s.Log == nil {
		return errors.New("operation log unavailable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Log.Clear()
}

// AlgorithmInfo returns the presentation metadata for algo, localised when a
// translator is configured.
func (s *Service) AlgorithmInfo(algo domain.Algorithm) (domain.AlgorithmInfo, error) {
	info, err := domain.LookupAlgorithmInfo(algo)
	if err != nil {
		return domain.AlgorithmInfo{}, err
	}
	if s.Translator == nil {
		return info, nil
	}
	info.DisplayName = s.translate("algo."+string(algo)+".name", info.DisplayName)
	info.Description = s.translate("algo."+string(algo)+".description", info.Description)
	return info, nil
}

// Algorithms returns the metadata of every algorithm in display order.
func (s *Service) Algorithms() []domain.AlgorithmInfo {
	all := domain.Algorithms()
	infos := make([]domain.AlgorithmInfo, 0, len(all))
	for _, algo := range all {
		info, err := s.AlgorithmInfo(algo)
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos
}

func (s *Service) translate(id, fallback string) string {
	if msg := s.Translator.T(id); msg != id {
		return msg
	}
	return fallback
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
