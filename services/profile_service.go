package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"ticket-marketplace/internal/status"
	"ticket-marketplace/models"
	"ticket-marketplace/storage"
)

// ProfileService holds the current user's profile, seller balance and
// marketplace settings.
type ProfileService struct {
	store storage.Store
	mu    sync.Mutex
}

func NewProfileService(store storage.Store) *ProfileService {
	return &ProfileService{store: store}
}

func (s *ProfileService) loadProfile(ctx context.Context) (models.Profile, error) {
	data, ok, err := s.store.Load(ctx, storage.KeyProfile)
	if err != nil {
		return models.Profile{}, err
	}
	if !ok {
		return defaultProfile(), nil
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		log.Printf("profile: discarding corrupted profile record: %v", err)
		return defaultProfile(), nil
	}
	return profile, nil
}

func defaultProfile() models.Profile {
	return models.Profile{Balance: decimal.Zero}
}

func (s *ProfileService) saveProfile(ctx context.Context, profile models.Profile) error {
	profile.UpdatedAt = time.Now()
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, storage.KeyProfile, data)
}

func (s *ProfileService) Get(ctx context.Context) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.loadProfile(ctx)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type ProfileUpdate struct {
	UserID      string
	DisplayName string
	Email       string
}

func (s *ProfileService) Update(ctx context.Context, update ProfileUpdate) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.loadProfile(ctx)
	if err != nil {
		return nil, err
	}

	if update.UserID != "" {
		profile.UserID = update.UserID
	}
	if update.DisplayName != "" {
		profile.DisplayName = update.DisplayName
	}
	if update.Email != "" {
		profile.Email = update.Email
	}

	if err := s.saveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetAccessCode stores a bcrypt hash of the simulated-login access
// code. The plain code is never persisted.
func (s *ProfileService) SetAccessCode(ctx context.Context, code string) error {
	if code == "" {
		return status.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.loadProfile(ctx)
	if err != nil {
		return err
	}

	profile.AccessCodeHash = string(hash)
	return s.saveProfile(ctx, profile)
}

func (s *ProfileService) VerifyAccessCode(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.loadProfile(ctx)
	if err != nil {
		return false, err
	}
	if profile.AccessCodeHash == "" {
		return false, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(profile.AccessCodeHash), []byte(code))
	return err == nil, nil
}

// Credit adds a resale settlement to the seller balance and returns
// the new balance.
func (s *ProfileService) Credit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Decimal{}, status.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.loadProfile(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	profile.Balance = profile.Balance.Add(amount)
	if err := s.saveProfile(ctx, profile); err != nil {
		return decimal.Decimal{}, err
	}
	return profile.Balance, nil
}

func (s *ProfileService) GetSettings(ctx context.Context) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.store.Load(ctx, storage.KeySettings)
	if err != nil {
		return nil, err
	}

	settings := models.Settings{Currency: "EUR", Notifications: true}
	if ok {
		if err := json.Unmarshal(data, &settings); err != nil {
			log.Printf("profile: discarding corrupted settings record: %v", err)
			settings = models.Settings{Currency: "EUR", Notifications: true}
		}
	}
	return &settings, nil
}

func (s *ProfileService) UpdateSettings(ctx context.Context, settings models.Settings) error {
	if settings.Currency == "" {
		return status.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, storage.KeySettings, data)
}
