package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mealtrack/backend-go/internal/database/repository"
	"github.com/mealtrack/backend-go/internal/database/service"
	"github.com/mealtrack/backend-go/internal/middleware"
)

// MealHandler handles HTTP requests for meals
type MealHandler struct {
	service service.MealService
	logger  *slog.Logger
}

// NewMealHandler creates a new meal handler
func NewMealHandler(service service.MealService, logger *slog.Logger) *MealHandler {
	return &MealHandler{
		service: service,
		logger:  logger,
	}
}

// Request DTOs
type CreateMealRequest struct {
	Name string     `json:"name" binding:"required"`
	Date *time.Time `json:"date"`
}

type UpdateMealRequest struct {
	Name *string    `json:"name"`
	Date *time.Time `json:"date"`
}

// CreateMeal handles meal creation; the date defaults to now when omitted
func (h *MealHandler) CreateMeal(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid create meal request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Meal name required."})
		return
	}

	meal, err := h.service.Create(userID, req.Name, req.Date)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, meal)
}

// GetAllMeals lists the caller's meals
func (h *MealHandler) GetAllMeals(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	meals, err := h.service.GetAll(userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals, "count": len(meals)})
}

// GetMeal returns one meal with its recipes nested
func (h *MealHandler) GetMeal(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	mealID, ok := pathID(c, "meal_id")
	if !ok {
		return
	}

	meal, err := h.service.Get(userID, mealID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMealResponse(meal))
}

// UpdateMeal applies a sparse patch; absent fields stay untouched
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	mealID, ok := pathID(c, "meal_id")
	if !ok {
		return
	}

	var req UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid update meal request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	meal, err := h.service.Update(userID, mealID, service.MealPatch{
		Name: req.Name,
		Date: req.Date,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, meal)
}

// DeleteMeal removes the meal, its links, and any recipe orphaned by that
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	mealID, ok := pathID(c, "meal_id")
	if !ok {
		return
	}

	if err := h.service.Delete(userID, mealID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses
func (h *MealHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrMealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
	case errors.Is(err, service.ErrNoMeals):
		c.JSON(http.StatusNotFound, gin.H{"error": "No meals found"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
