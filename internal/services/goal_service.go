package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/models"
	"uangsaku/internal/store"
)

// GoalMeta is the derived progress view of a goal.
type GoalMeta struct {
	Progress        int     `json:"progress"`
	Remaining       float64 `json:"remaining"`
	DaysLeft        int     `json:"daysLeft"`
	DailySuggestion float64 `json:"dailySuggestion"`
}

// goalService handles savings goal operations.
type goalService struct {
	store *store.Store
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(st *store.Store) GoalServicer {
	return &goalService{store: st}
}

// Add persists a new goal. Missing input fields take the documented
// defaults: "Target baru", amounts 0, deadline today, created now.
func (s *goalService) Add(input GoalInput) (*models.Goal, error) {
	goal := &models.Goal{
		Name:      input.Name,
		Amount:    input.Amount,
		Saved:     input.Saved,
		Deadline:  input.Deadline,
		CreatedAt: input.CreatedAt,
	}
	if goal.Name == "" {
		goal.Name = models.DefaultGoalName
	}
	if goal.Deadline == "" {
		goal.Deadline = today()
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now().UTC()
	}

	err := s.store.Write(func(tx *gorm.DB) error {
		return tx.Create(goal).Error
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// Get returns the goal with the given id.
func (s *goalService) Get(id uint) (*models.Goal, error) {
	var goal models.Goal
	err := s.store.Read(func(tx *gorm.DB) error {
		if err := tx.First(&goal, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrGoalNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// Update overlays changes on the stored goal and writes the merged record
// back wholesale. Returns ErrGoalNotFound if no goal with the id exists.
func (s *goalService) Update(id uint, changes GoalChanges) (*models.Goal, error) {
	goal, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		goal.Name = *changes.Name
	}
	if changes.Amount != nil {
		goal.Amount = *changes.Amount
	}
	if changes.Saved != nil {
		goal.Saved = *changes.Saved
	}
	if changes.Deadline != nil {
		goal.Deadline = *changes.Deadline
	}

	err = s.store.Write(func(tx *gorm.DB) error {
		return tx.Save(goal).Error
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// Delete removes the goal with the given id. Deleting an absent id is not an
// error.
func (s *goalService) Delete(id uint) error {
	return s.store.Write(func(tx *gorm.DB) error {
		return tx.Delete(&models.Goal{}, id).Error
	})
}

// List returns all goals, earliest deadline first.
func (s *goalService) List() ([]models.Goal, error) {
	var goals []models.Goal
	err := s.store.Read(func(tx *gorm.DB) error {
		return tx.Order("deadline ASC, id ASC").Find(&goals).Error
	})
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// Clear removes every goal.
func (s *goalService) Clear() error {
	return s.store.Write(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Goal{}).Error
	})
}

// BuildGoalMeta derives progress, remaining amount, days to deadline, and
// the daily amount to save. DaysLeft is the ceiling of the span from now to
// the deadline at midnight UTC, so it can be zero or negative for a goal due
// today or overdue; in that case the suggestion is the whole remainder.
func BuildGoalMeta(goal models.Goal) GoalMeta {
	meta := GoalMeta{
		Remaining: math.Max(0, goal.Amount-goal.Saved),
	}
	if goal.Amount != 0 {
		meta.Progress = int(math.Min(100, math.Round(goal.Saved/goal.Amount*100)))
	}

	deadline, err := time.Parse("2006-01-02", goal.Deadline)
	if err == nil {
		span := deadline.Sub(time.Now().UTC())
		meta.DaysLeft = int(math.Ceil(span.Hours() / 24))
	}

	if meta.DaysLeft > 0 {
		meta.DailySuggestion = math.Ceil(meta.Remaining / float64(meta.DaysLeft))
	} else {
		meta.DailySuggestion = meta.Remaining
	}
	return meta
}
