package services

import (
	"encoding/json"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/models"
)

// Snapshot is the export/import file format: a UTF-8 JSON object holding
// every record in the store. Record ids are ignored on import.
type Snapshot struct {
	ExportedAt   time.Time            `json:"exportedAt"`
	Transactions []models.Transaction `json:"transactions"`
	Budgets      models.BudgetSummary `json:"budgets"`
	Goals        []models.Goal        `json:"goals"`
	Settings     map[string]any       `json:"settings"`
}

// syncService orchestrates whole-store export, destructive import, and
// reset across the four repositories.
type syncService struct {
	transactions TransactionServicer
	budgets      BudgetServicer
	goals        GoalServicer
	settings     SettingsServicer
}

// NewSyncService creates a new SyncServicer.
func NewSyncService(
	transactions TransactionServicer,
	budgets BudgetServicer,
	goals GoalServicer,
	settings SettingsServicer,
) SyncServicer {
	return &syncService{
		transactions: transactions,
		budgets:      budgets,
		goals:        goals,
		settings:     settings,
	}
}

// Export reads all four collections concurrently and returns a snapshot.
func (s *syncService) Export() (*Snapshot, error) {
	snapshot := &Snapshot{ExportedAt: time.Now().UTC()}

	var g errgroup.Group
	g.Go(func() error {
		items, err := s.transactions.List(TransactionFilter{})
		snapshot.Transactions = items
		return err
	})
	g.Go(func() error {
		budgets, err := s.budgets.GetBudgets()
		if budgets != nil {
			snapshot.Budgets = *budgets
		}
		return err
	})
	g.Go(func() error {
		goals, err := s.goals.List()
		snapshot.Goals = goals
		return err
	})
	g.Go(func() error {
		settings, err := s.settings.GetAll()
		snapshot.Settings = settings
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Import replaces the whole store with the snapshot. It fails with
// ErrInvalidFormat before touching anything if raw is not a JSON object.
// The clears and re-adds that follow are separate store transactions, so a
// failure partway through leaves a partially restored store.
func (s *syncService) Import(raw []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidFormat, err)
	}
	if probe == nil {
		// null decodes into a nil map without error
		return apperrors.ErrInvalidFormat
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidFormat, err)
	}

	if err := s.clearAll(); err != nil {
		return err
	}

	for _, txn := range snapshot.Transactions {
		_, err := s.transactions.Add(TransactionInput{
			Type:      txn.Type,
			Amount:    txn.Amount,
			Date:      txn.Date,
			Category:  txn.Category,
			Note:      txn.Note,
			CreatedAt: txn.CreatedAt,
		})
		if err != nil {
			return err
		}
	}

	if snapshot.Budgets.Global != 0 {
		if err := s.budgets.SaveGlobalLimit(snapshot.Budgets.Global); err != nil {
			return err
		}
	}
	for _, category := range sortedKeys(snapshot.Budgets.Categories) {
		if err := s.budgets.SaveCategoryLimit(category, snapshot.Budgets.Categories[category]); err != nil {
			return err
		}
	}

	for _, goal := range snapshot.Goals {
		_, err := s.goals.Add(GoalInput{
			Name:      goal.Name,
			Amount:    goal.Amount,
			Saved:     goal.Saved,
			Deadline:  goal.Deadline,
			CreatedAt: goal.CreatedAt,
		})
		if err != nil {
			return err
		}
	}

	for _, key := range sortedKeys(snapshot.Settings) {
		if err := s.settings.Set(key, snapshot.Settings[key]); err != nil {
			return err
		}
	}

	return nil
}

// Reset clears all four collections with no restore step.
func (s *syncService) Reset() error {
	return s.clearAll()
}

// clearAll empties the collections one at a time; each clear is its own
// store transaction.
func (s *syncService) clearAll() error {
	if err := s.transactions.Clear(); err != nil {
		return err
	}
	if err := s.budgets.Clear(); err != nil {
		return err
	}
	if err := s.goals.Clear(); err != nil {
		return err
	}
	return s.settings.Clear()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
