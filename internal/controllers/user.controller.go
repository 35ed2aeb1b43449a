package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"profilematch/internal/models"
	"profilematch/internal/repository"
	"profilematch/internal/services"
	"profilematch/internal/validation"

	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit  = 10
	defaultMatchLimit = 5
)

type UserController struct {
	service services.UserService
}

func NewUserController(service services.UserService) *UserController {
	return &UserController{service: service}
}

// CreateUser godoc
// @Summary Register a user profile
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.CreateUserInput true "Profile data"
// @Success 201 {object} map[string]interface{} "User created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data or email already registered"
// @Router /users/ [post]
func (uc *UserController) CreateUser(c *gin.Context) {
	var input models.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   validation.Describe(err),
		})
		return
	}

	user, err := uc.service.CreateUser(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Email already registered.",
				"error":   err.Error(),
			})
			return
		}
		internalError(c, "Failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User created successfully",
		"data":    user,
	})
}

// ListUsers godoc
// @Summary List active users
// @Tags users
// @Produce json
// @Param skip query int false "Records to skip" default(0)
// @Param limit query int false "Maximum records" default(10)
// @Success 200 {object} map[string]interface{} "Users retrieved successfully"
// @Router /users/ [get]
func (uc *UserController) ListUsers(c *gin.Context) {
	skip, limit, ok := pagination(c, defaultListLimit)
	if !ok {
		return
	}

	users, err := uc.service.ListUsers(c.Request.Context(), skip, limit)
	if err != nil {
		internalError(c, "Failed to list users", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Users retrieved successfully",
		"data":    users,
	})
}

// GetUser godoc
// @Summary Get a user by ID
// @Description Returns the profile whether or not it has been deactivated.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{} "User retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid user ID"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	user, err := uc.service.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c, "User not found")
			return
		}
		internalError(c, "Failed to retrieve user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User retrieved successfully",
		"data":    user,
	})
}

// UpdateUser godoc
// @Summary Partially update an active user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body models.UserPatch true "Fields to change"
// @Success 200 {object} map[string]interface{} "User updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data or email already registered"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id} [patch]
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   validation.Describe(err),
		})
		return
	}

	user, err := uc.service.UpdateUser(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			notFound(c, "User not found")
		case errors.Is(err, repository.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Email already registered by another user.",
				"error":   err.Error(),
			})
		default:
			internalError(c, "Failed to update user", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User updated successfully",
		"data":    user,
	})
}

// DeactivateUser godoc
// @Summary Deactivate a user
// @Description Soft delete: the record is kept and its email stays registered.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{} "User deactivated"
// @Failure 404 {object} map[string]interface{} "User not found or already deactivated"
// @Router /users/{id} [delete]
func (uc *UserController) DeactivateUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	if err := uc.service.DeactivateUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c, "User not found or already deactivated")
			return
		}
		internalError(c, "Failed to deactivate user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User deactivated",
		"data":    nil,
	})
}

// FindMatches godoc
// @Summary Ranked matches for an active user
// @Description Candidates share the user's city and differ in gender; results are sorted by score.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param skip query int false "Matches to skip" default(0)
// @Param limit query int false "Maximum matches" default(5)
// @Success 200 {object} map[string]interface{} "Matches retrieved successfully"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id}/matches [get]
func (uc *UserController) FindMatches(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	skip, limit, ok := pagination(c, defaultMatchLimit)
	if !ok {
		return
	}

	matches, err := uc.service.FindMatches(c.Request.Context(), id, skip, limit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c, "User not found")
			return
		}
		internalError(c, "Failed to find matches", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Matches retrieved successfully",
		"data":    matches,
	})
}

func userID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid user ID",
			"error":   "ID must be a valid positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

// pagination reads skip and limit. Out-of-range values are passed through;
// only non-integers are rejected.
func pagination(c *gin.Context, defaultLimit int) (int, int, bool) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		invalidQuery(c, "skip")
		return 0, 0, false
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil {
		invalidQuery(c, "limit")
		return 0, 0, false
	}
	return skip, limit, true
}

func invalidQuery(c *gin.Context, param string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid query parameter",
		"error":   param + " must be an integer",
	})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"status":  "error",
		"message": message,
		"error":   "No matching user for the provided ID",
	})
}

func internalError(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": message,
		"error":   "Internal server error",
	})
}
