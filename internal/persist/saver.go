package persist

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"gol-miner/internal/core"
)

// Saver applies a Policy and writes the selected patterns to a BlobStore.
type Saver struct {
	policy *Policy
	store  BlobStore
	log    zerolog.Logger
}

// NewSaver wires a policy to a store.
func NewSaver(policy *Policy, store BlobStore, log zerolog.Logger) *Saver {
	return &Saver{
		policy: policy,
		store:  store,
		log:    log.With().Str("component", "persist").Logger(),
	}
}

// Policy returns the underlying policy.
func (s *Saver) Policy() *Policy { return s.policy }

// Persist feeds counts into the policy and stores the full board once for
// every newly selected label. A failed Put is logged and the label stays
// eligible for the next tick. It returns the selections that were stored.
func (s *Saver) Persist(ctx context.Context, counts map[int]int, board *core.DenseGrid) []Selection {
	selected := s.policy.Select(counts)
	if len(selected) == 0 {
		return nil
	}

	payload, err := EncodeNPY(board)
	if err != nil {
		s.log.Error().Err(err).Int("selected", len(selected)).Msg("failed to encode board")
		return nil
	}
	var saved []Selection
	for _, sel := range selected {
		if err := s.store.Put(ctx, sel.Key(), payload); err != nil {
			s.log.Error().Err(err).
				Str("label", sel.Label()).
				Str("key", sel.Key()).
				Int("count", sel.Count).
				Msg("failed to save pattern")
			continue
		}
		s.policy.MarkSaved(sel.ID)
		saved = append(saved, sel)
		s.log.Info().
			Str("label", sel.Label()).
			Str("key", sel.Key()).
			Int("count", sel.Count).
			Int("bytes", len(payload)).
			Msg("saved pattern")
	}
	return saved
}

// Close releases the store when it holds a connection.
func (s *Saver) Close() error {
	if c, ok := s.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
