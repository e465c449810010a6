package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/career-coach/internal/journey"
	"github.com/jonathan/career-coach/internal/schemas"
	"github.com/jonathan/career-coach/internal/types"
)

// Storage keys. The pool keys predate the store abstraction and are kept
// stable so existing persisted data keeps loading.
const (
	talentPoolKey    = "career_lift_talent_pool"
	clientsKey       = "elevaite_clients_pool"
	historyKey       = "career_lift_history"
	activeSessionKey = "career_lift_profile"
)

// Store exposes the candidate and client collections plus the history and
// active-session documents over an injected Medium. All methods are safe for
// concurrent use within one process; concurrent writers from other processes
// against the same medium race last-write-wins.
type Store struct {
	mu     sync.Mutex
	medium Medium
	log    *zap.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the store's clock, used by tests for deterministic
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a store backed by the given medium.
func New(medium Medium, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		medium: medium,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// loadCollection reads and decodes a whole collection. A missing document is
// an empty collection; a corrupt one degrades to empty and is logged, never
// propagated.
func loadCollection[T any](ctx context.Context, s *Store, key string) []T {
	data, ok, err := s.medium.Get(ctx, key)
	if err != nil {
		s.log.Warn("storage read failed, treating collection as empty",
			zap.String("collection", key), zap.Error(err))
		return []T{}
	}
	if !ok {
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warn("corrupted collection, treating as empty",
			zap.String("collection", key), zap.Error(err))
		return []T{}
	}
	return records
}

func saveCollection[T any](ctx context.Context, s *Store, key string, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize collection %s: %w", key, err)
	}
	if err := s.medium.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to persist collection %s: %w", key, err)
	}
	return nil
}

// mergeRecords overlays the JSON fields of incoming onto existing, the same
// shallow merge the upsert and patch paths share.
func mergeRecords[T any](existing T, incoming any) (T, error) {
	var merged T

	base, err := json.Marshal(existing)
	if err != nil {
		return merged, err
	}
	overlay, err := json.Marshal(incoming)
	if err != nil {
		return merged, err
	}

	var baseMap, overlayMap map[string]any
	if err := json.Unmarshal(base, &baseMap); err != nil {
		return merged, err
	}
	if err := json.Unmarshal(overlay, &overlayMap); err != nil {
		return merged, err
	}
	for k, v := range overlayMap {
		baseMap[k] = v
	}

	remarshaled, err := json.Marshal(baseMap)
	if err != nil {
		return merged, err
	}
	if err := json.Unmarshal(remarshaled, &merged); err != nil {
		return merged, err
	}
	return merged, nil
}

// Candidates returns the full talent pool in insertion order.
func (s *Store) Candidates(ctx context.Context) []types.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[types.Candidate](ctx, s, talentPoolKey)
}

// FindCandidate looks up a candidate by contact.
func (s *Store) FindCandidate(ctx context.Context, contact string) (types.Candidate, bool) {
	for _, c := range s.Candidates(ctx) {
		if c.Contact == contact {
			return c, true
		}
	}
	return types.Candidate{}, false
}

// UpsertCandidate validates, normalizes and persists a candidate keyed by
// contact. Validation is fail-open: an invalid record is persisted as given
// and the failure is logged as a diagnostic.
func (s *Store) UpsertCandidate(ctx context.Context, candidate types.Candidate) (types.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	record := candidate.Normalize(now)
	if err := schemas.ValidateCandidate(record); err != nil {
		s.logValidation(talentPoolKey, err)
		record = candidate
	}

	pool := loadCollection[types.Candidate](ctx, s, talentPoolKey)
	found := false
	for i, existing := range pool {
		if existing.Contact != record.Contact {
			continue
		}
		merged, err := mergeRecords(existing, record)
		if err != nil {
			return types.Candidate{}, fmt.Errorf("failed to merge candidate %s: %w", record.Contact, err)
		}
		merged.UpdatedAt = now.UnixMilli()
		pool[i] = merged
		record = merged
		found = true
		break
	}
	if !found {
		if record.ID == "" {
			record.ID = fmt.Sprintf("cand_%d", now.UnixMilli())
		}
		if record.CreatedAt == 0 {
			record.CreatedAt = now.UnixMilli()
		}
		record.UpdatedAt = now.UnixMilli()
		pool = append(pool, record)
	}

	if err := saveCollection(ctx, s, talentPoolKey, pool); err != nil {
		return types.Candidate{}, err
	}
	return record, nil
}

// PatchCandidate shallow-merges a partial update onto the candidate matching
// contact and refreshes updatedAt. It is a no-op when the key is absent.
func (s *Store) PatchCandidate(ctx context.Context, contact string, patch map[string]any) (types.Candidate, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := loadCollection[types.Candidate](ctx, s, talentPoolKey)
	for i, existing := range pool {
		if existing.Contact != contact {
			continue
		}
		merged, err := mergeRecords(existing, patch)
		if err != nil {
			return types.Candidate{}, false, fmt.Errorf("failed to patch candidate %s: %w", contact, err)
		}
		merged.UpdatedAt = s.now().UnixMilli()
		pool[i] = merged
		if err := saveCollection(ctx, s, talentPoolKey, pool); err != nil {
			return types.Candidate{}, false, err
		}
		return merged, true, nil
	}
	return types.Candidate{}, false, nil
}

// Clients returns the full client collection in insertion order.
func (s *Store) Clients(ctx context.Context) []types.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[types.Client](ctx, s, clientsKey)
}

// FindClient looks up a client by id.
func (s *Store) FindClient(ctx context.Context, id string) (types.Client, bool) {
	for _, c := range s.Clients(ctx) {
		if c.ID == id {
			return c, true
		}
	}
	return types.Client{}, false
}

// UpsertClient validates and persists a client keyed by id, fail-open on
// validation like UpsertCandidate.
func (s *Store) UpsertClient(ctx context.Context, client types.Client) (types.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := client.Normalize()
	if err := schemas.ValidateClient(record); err != nil {
		s.logValidation(clientsKey, err)
		record = client
	}

	clients := loadCollection[types.Client](ctx, s, clientsKey)
	found := false
	for i, existing := range clients {
		if existing.ID != record.ID {
			continue
		}
		merged, err := mergeRecords(existing, record)
		if err != nil {
			return types.Client{}, fmt.Errorf("failed to merge client %s: %w", record.ID, err)
		}
		clients[i] = merged
		record = merged
		found = true
		break
	}
	if !found {
		clients = append(clients, record)
	}

	if err := saveCollection(ctx, s, clientsKey, clients); err != nil {
		return types.Client{}, err
	}
	return record, nil
}

// PatchClient shallow-merges a partial update onto the client matching id.
// It is a no-op when the key is absent.
func (s *Store) PatchClient(ctx context.Context, id string, patch map[string]any) (types.Client, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := loadCollection[types.Client](ctx, s, clientsKey)
	for i, existing := range clients {
		if existing.ID != id {
			continue
		}
		merged, err := mergeRecords(existing, patch)
		if err != nil {
			return types.Client{}, false, fmt.Errorf("failed to patch client %s: %w", id, err)
		}
		clients[i] = merged
		if err := saveCollection(ctx, s, clientsKey, clients); err != nil {
			return types.Client{}, false, err
		}
		return merged, true, nil
	}
	return types.Client{}, false, nil
}

// Vacancies flattens every client's active mandates into one list.
func (s *Store) Vacancies(ctx context.Context) []types.Mandate {
	var vacancies []types.Mandate
	for _, c := range s.Clients(ctx) {
		vacancies = append(vacancies, c.ActiveMandates...)
	}
	return vacancies
}

// PlaceCandidate records a placement: the candidate is marked placed (stage
// PLACED, terminal) and the client's accumulators grow by the fee and one
// placement. When either side is missing nothing is written at all.
//
// The two documents cannot be replaced in one atomic write. The candidate is
// saved first so the client accumulators never count a placement no candidate
// carries; if the client save then fails, the candidate document is rolled
// back to its prior state before the error is returned.
func (s *Store) PlaceCandidate(ctx context.Context, contact, clientID string, fee int) (types.Candidate, types.Client, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := loadCollection[types.Candidate](ctx, s, talentPoolKey)
	clients := loadCollection[types.Client](ctx, s, clientsKey)

	candidateIdx, clientIdx := -1, -1
	for i := range pool {
		if pool[i].Contact == contact {
			candidateIdx = i
			break
		}
	}
	for i := range clients {
		if clients[i].ID == clientID {
			clientIdx = i
			break
		}
	}
	if candidateIdx < 0 || clientIdx < 0 {
		return types.Candidate{}, types.Client{}, false, nil
	}

	prior := pool[candidateIdx]
	now := s.now().UnixMilli()
	pool[candidateIdx].PlacedWithClientID = clientID
	pool[candidateIdx].PlacementDate = now
	pool[candidateIdx].CurrentStage = journey.StagePlaced
	pool[candidateIdx].UpdatedAt = now

	clients[clientIdx].TotalBusinessBrought += fee
	clients[clientIdx].PlacementsCount++

	if err := saveCollection(ctx, s, talentPoolKey, pool); err != nil {
		return types.Candidate{}, types.Client{}, false, err
	}
	if err := saveCollection(ctx, s, clientsKey, clients); err != nil {
		pool[candidateIdx] = prior
		if rbErr := saveCollection(ctx, s, talentPoolKey, pool); rbErr != nil {
			s.log.Warn("placement rollback failed, candidate placed without client credit",
				zap.String("contact", contact), zap.Error(rbErr))
		}
		return types.Candidate{}, types.Client{}, false, err
	}
	return pool[candidateIdx], clients[clientIdx], true, nil
}

// History returns the persisted history list, most recent first.
func (s *Store) History(ctx context.Context) []types.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[types.HistoryItem](ctx, s, historyKey)
}

// SaveHistory durably replaces the whole history list.
func (s *Store) SaveHistory(ctx context.Context, items []types.HistoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if items == nil {
		items = []types.HistoryItem{}
	}
	return saveCollection(ctx, s, historyKey, items)
}

// UpdateHistory applies fn to the current history list and persists the
// result under one lock, so concurrent mutators cannot interleave and drop
// each other's items.
func (s *Store) UpdateHistory(ctx context.Context, fn func([]types.HistoryItem) []types.HistoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := fn(loadCollection[types.HistoryItem](ctx, s, historyKey))
	if items == nil {
		items = []types.HistoryItem{}
	}
	return saveCollection(ctx, s, historyKey, items)
}

// ActiveSession loads the persisted "who is logged in" snapshot. A missing
// or unparsable snapshot degrades to no session.
func (s *Store) ActiveSession(ctx context.Context) (types.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.medium.Get(ctx, activeSessionKey)
	if err != nil || !ok {
		if err != nil {
			s.log.Warn("session read failed", zap.Error(err))
		}
		return types.Candidate{}, false
	}

	var candidate types.Candidate
	if err := json.Unmarshal(data, &candidate); err != nil {
		s.log.Warn("session snapshot unparsable, starting unauthenticated", zap.Error(err))
		return types.Candidate{}, false
	}
	return candidate, true
}

// SaveActiveSession persists the active candidate snapshot.
func (s *Store) SaveActiveSession(ctx context.Context, candidate types.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(candidate)
	if err != nil {
		return fmt.Errorf("failed to serialize session snapshot: %w", err)
	}
	if err := s.medium.Set(ctx, activeSessionKey, data); err != nil {
		return fmt.Errorf("failed to persist session snapshot: %w", err)
	}
	return nil
}

// ClearActiveSession removes the active candidate snapshot.
func (s *Store) ClearActiveSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.medium.Delete(ctx, activeSessionKey)
}

func (s *Store) logValidation(collection string, err error) {
	if ve, ok := err.(*schemas.ValidationError); ok {
		s.log.Warn("storage validation error, persisting raw record",
			zap.String("collection", collection),
			zap.Strings("fields", ve.Fields()))
		return
	}
	s.log.Warn("storage validation error, persisting raw record",
		zap.String("collection", collection), zap.Error(err))
}
