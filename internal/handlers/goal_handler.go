package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/models"
	"uangsaku/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Name     string  `json:"name" binding:"omitempty,max=100"`
	Amount   float64 `json:"amount" binding:"omitempty,gte=0"`
	Saved    float64 `json:"saved" binding:"omitempty,gte=0"`
	Deadline string  `json:"deadline" binding:"omitempty,isodate"`
}

// UpdateGoalRequest represents the request payload for updating a goal.
type UpdateGoalRequest struct {
	Name     *string  `json:"name" binding:"omitempty,max=100"`
	Amount   *float64 `json:"amount" binding:"omitempty,gte=0"`
	Saved    *float64 `json:"saved" binding:"omitempty,gte=0"`
	Deadline *string  `json:"deadline" binding:"omitempty,isodate"`
}

// goalView pairs a goal with its derived progress meta.
type goalView struct {
	models.Goal
	Meta services.GoalMeta `json:"meta"`
}

// CreateGoal handles creating a new goal.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.Add(services.GoalInput{
		Name:     req.Name,
		Amount:   req.Amount,
		Saved:    req.Saved,
		Deadline: req.Deadline,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals handles listing goals, earliest deadline first, each with its
// derived meta.
func (h *GoalHandler) GetGoals(c *gin.Context) {
	goals, err := h.goalService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	views := make([]goalView, 0, len(goals))
	for _, goal := range goals {
		views = append(views, goalView{Goal: goal, Meta: services.BuildGoalMeta(goal)})
	}

	c.JSON(http.StatusOK, gin.H{"goals": views})
}

// GetGoalByID handles fetching a single goal with its derived meta.
func (h *GoalHandler) GetGoalByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.Get(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goalView{Goal: *goal, Meta: services.BuildGoalMeta(*goal)}})
}

// UpdateGoal handles updating an existing goal.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.Update(id, services.GoalChanges{
		Name:     req.Name,
		Amount:   req.Amount,
		Saved:    req.Saved,
		Deadline: req.Deadline,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles deleting a goal. Deleting an unknown id succeeds.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
}
