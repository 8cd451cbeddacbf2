package apikey

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"freemodels-server/services/catalog-api/internal/domain/catalog"
	"freemodels-server/services/catalog-api/internal/domain/feedback"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

// KeyPrefix is the public prefix of every issued key secret.
const KeyPrefix = "fm"

// Service handles key issuance, bearer authentication and per-key saved
// preferences.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Issue creates a new key and returns it with the raw secret. The secret is
// shown exactly once; afterwards only its hash exists.
func (s *Service) Issue(ctx context.Context, name string) (*APIKey, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "default"
	}

	rawKey, err := generateKeySecret()
	if err != nil {
		return nil, "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "generate api key")
	}

	now := s.now().UTC()
	record := &APIKey{
		ID:        uuid.NewString(),
		Name:      name,
		Prefix:    KeyPrefix,
		Suffix:    rawKey[len(rawKey)-4:],
		Hash:      hashKey(rawKey),
		CreatedAt: now,
		UpdatedAt: now,
	}

	persisted, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "persist api key")
	}
	return persisted, rawKey, nil
}

// Authenticate resolves a raw bearer secret to its key record. Unknown and
// revoked keys both come back as an unauthorized error so callers cannot tell
// them apart.
func (s *Service) Authenticate(ctx context.Context, rawKey string) (*APIKey, error) {
	rawKey = strings.TrimSpace(rawKey)
	if rawKey == "" || !strings.HasPrefix(rawKey, KeyPrefix+"_") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "invalid api key", nil, "7d3c2f8e-9a41-4b6b-8c15-f0a2d65e3b97")
	}

	key, err := s.repo.FindByHash(ctx, hashKey(rawKey))
	if err != nil || key == nil || key.Revoked() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "invalid api key", err, "5b91c4ad-2e73-49df-b6fa-8713e0c4d2a6")
	}

	// best effort; a failed touch never blocks the request
	_ = s.repo.TouchLastUsed(ctx, key.ID, s.now().UTC())
	return key, nil
}

// Revoke permanently disables a key.
func (s *Service) Revoke(ctx context.Context, key *APIKey) error {
	if key == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "api key not found", nil, "e4f7a2b9-6c18-4d53-9e0b-1a8c5f72d3e4")
	}
	return s.repo.MarkRevoked(ctx, key.ID, s.now().UTC())
}

// GetPreferences returns the key's saved query defaults.
func (s *Service) GetPreferences(key *APIKey) Preferences {
	if key == nil {
		return Preferences{}
	}
	return key.Preferences
}

// SavePreferences validates and stores a key's default catalog query.
// Normalization matches the listing endpoint: unknown tags are dropped,
// unknown sort keys fall back to the default, topN is clamped.
func (s *Service) SavePreferences(ctx context.Context, key *APIKey, prefs Preferences) (Preferences, error) {
	if key == nil {
		return Preferences{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "api key required", nil, "b2c91f6e-0d34-47a8-bc52-7e18f9a3d604")
	}

	normalized := Preferences{
		ExcludedModels: prefs.ExcludedModels,
	}
	if len(prefs.UseCases) > 0 {
		for _, uc := range catalog.ParseUseCases(prefs.UseCases) {
			normalized.UseCases = append(normalized.UseCases, string(uc))
		}
	}
	if prefs.Sort != "" {
		normalized.Sort = string(catalog.ParseSortKey(prefs.Sort))
	}
	if prefs.TopN != 0 {
		normalized.TopN = catalog.ClampTopN(prefs.TopN)
	}
	if prefs.TimeRange != "" {
		normalized.TimeRange = string(feedback.ParseTimeRange(prefs.TimeRange))
	}
	if prefs.MaxErrorRate != nil {
		rate := *prefs.MaxErrorRate
		if rate < 0 || rate > 100 {
			return Preferences{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "maxErrorRate must be between 0 and 100", nil, "9f05d7c3-41ab-4e96-8d2f-c6b3a1e8f750")
		}
		normalized.MaxErrorRate = &rate
	}

	if err := s.repo.UpdatePreferences(ctx, key.ID, normalized); err != nil {
		return Preferences{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "save preferences")
	}
	key.Preferences = normalized
	return normalized, nil
}

// ApplyToQuery folds saved preferences into a listing query wherever the
// request itself left a field unset.
func ApplyToQuery(q catalog.ListQuery, prefs Preferences) catalog.ListQuery {
	if len(q.UseCases) == 0 && len(prefs.UseCases) > 0 {
		q.UseCases = catalog.ParseUseCases(prefs.UseCases)
	}
	if q.Sort == "" && prefs.Sort != "" {
		q.Sort = catalog.SortKey(prefs.Sort)
	}
	if q.TopN == 0 && prefs.TopN != 0 {
		q.TopN = prefs.TopN
	}
	if q.MaxErrorRate == nil && prefs.MaxErrorRate != nil {
		q.MaxErrorRate = prefs.MaxErrorRate
	}
	if q.TimeRange == "" && prefs.TimeRange != "" {
		q.TimeRange = feedback.TimeRange(prefs.TimeRange)
	}
	if len(q.ExcludeIDs) == 0 && len(prefs.ExcludedModels) > 0 {
		q.ExcludeIDs = prefs.ExcludedModels
	}
	return q
}

func generateKeySecret() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return fmt.Sprintf("%s_%s", KeyPrefix, hex.EncodeToString(buf)), nil
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
