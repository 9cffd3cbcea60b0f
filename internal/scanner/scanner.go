package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/mathis-deconchat/github-repo-qualifier/internal/model"
	"github.com/mathis-deconchat/github-repo-qualifier/internal/scoring"
	"github.com/rs/zerolog/log"
)

// Fetcher retrieves the normalized repository list for an account handle.
type Fetcher interface {
	FetchRepositories(ctx context.Context, login, token string) ([]model.RepositoryMetadata, error)
}

// Store persists completed scans and lists past ones for an identity.
type Store interface {
	SaveScan(ctx context.Context, identity string, result *model.ScanResult) (*model.ScanResult, error)
	ListScans(ctx context.Context, identity string) ([]model.ScanResult, error)
}

// ScanInput carries the parameters of one scan request.
type ScanInput struct {
	AccountHandle string `json:"username"`
	Token         string `json:"token,omitempty"`
}

// Scanner coordinates the fetcher and scorer for one account scan.
type Scanner struct {
	fetcher Fetcher
	store   Store
	now     func() time.Time
}

// New creates a Scanner over the given collaborators.
func New(fetcher Fetcher, store Store) *Scanner {
	return &Scanner{
		fetcher: fetcher,
		store:   store,
		now:     time.Now,
	}
}

// Scan fetches every repository owned by the account, scores each one and
// persists the session for the identity. A fetch failure propagates
// unchanged and nothing is persisted; an empty repository list still records
// an empty session.
func (s *Scanner) Scan(ctx context.Context, identity string, input ScanInput) (*model.ScanResult, error) {
	repositories, err := s.fetcher.FetchRepositories(ctx, input.AccountHandle, input.Token)
	if err != nil {
		return nil, err
	}

	scannedAt := s.now().UTC()
	result := &model.ScanResult{
		AccountHandle:        input.AccountHandle,
		TotalRepositoryCount: len(repositories),
		Repositories:         make([]model.ScannedRepository, 0, len(repositories)),
		ScannedAt:            scannedAt,
	}

	for _, repo := range repositories {
		result.Repositories = append(result.Repositories, model.ScannedRepository{
			Name:            repo.Name,
			Description:     repo.Description,
			URL:             repo.URL,
			IsPrivate:       repo.IsPrivate,
			PrimaryLanguage: repo.PrimaryLanguage,
			StarCount:       repo.StarCount,
			ForkCount:       repo.ForkCount,
			Score:           scoring.ScoreRepository(repo),
			ScannedAt:       scannedAt,
		})
	}

	stored, err := s.store.SaveScan(ctx, identity, result)
	if err != nil {
		return nil, fmt.Errorf("failed to persist scan: %w", err)
	}

	log.Info().Str("login", input.AccountHandle).Int("repositories", stored.TotalRepositoryCount).Msg("Scan completed")
	return stored, nil
}

// History returns past scans for an identity, newest first.
func (s *Scanner) History(ctx context.Context, identity string) ([]model.ScanResult, error) {
	return s.store.ListScans(ctx, identity)
}
