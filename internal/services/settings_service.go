package services

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"uangsaku/internal/config"
	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/models"
	"uangsaku/internal/store"
)

// Recognized setting keys.
const (
	SettingTheme        = "theme"
	SettingCurrency     = "currency"
	SettingDyslexia     = "dyslexia"
	SettingReduceMotion = "reduceMotion"
)

// settingsService handles the key/value settings collection. A missing entry
// means "use the default", never an error.
type settingsService struct {
	store    *store.Store
	defaults map[string]any
}

// NewSettingsService creates a new SettingsServicer. The currency default
// comes from configuration.
func NewSettingsService(st *store.Store, cfg *config.Config) SettingsServicer {
	return &settingsService{
		store: st,
		defaults: map[string]any{
			SettingTheme:        "auto",
			SettingCurrency:     cfg.DefaultCurrency,
			SettingDyslexia:     false,
			SettingReduceMotion: false,
		},
	}
}

// Set upserts a single entry. The value is stored as JSON so scalar types
// survive a round trip.
func (s *settingsService) Set(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	entry := models.Setting{Key: key, Value: string(encoded)}
	return s.store.Write(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error
	})
}

// Get returns the stored value for key, the default when nothing is stored,
// and nil for unknown keys with no default.
func (s *settingsService) Get(key string) (any, error) {
	var entry models.Setting
	stored := false
	err := s.store.Read(func(tx *gorm.DB) error {
		if err := tx.First(&entry, "key = ?", key).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		stored = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !stored {
		return s.defaults[key], nil
	}
	return decodeSettingValue(entry.Value), nil
}

// GetAll returns the defaults table overlaid with every stored entry.
func (s *settingsService) GetAll() (map[string]any, error) {
	var entries []models.Setting
	err := s.store.Read(func(tx *gorm.DB) error {
		return tx.Find(&entries).Error
	})
	if err != nil {
		return nil, err
	}

	all := make(map[string]any, len(s.defaults)+len(entries))
	for key, value := range s.defaults {
		all[key] = value
	}
	for _, entry := range entries {
		all[entry.Key] = decodeSettingValue(entry.Value)
	}
	return all, nil
}

// Clear removes every stored entry; subsequent reads revert to defaults.
func (s *settingsService) Clear() error {
	return s.store.Write(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Setting{}).Error
	})
}

func decodeSettingValue(encoded string) any {
	var value any
	if err := json.Unmarshal([]byte(encoded), &value); err != nil {
		// Rows written before the JSON encoding scheme hold bare strings.
		return encoded
	}
	return value
}
