package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okanyildiz/schoolroster/internal/app/models/dto"
	"github.com/okanyildiz/schoolroster/internal/app/services"
	"github.com/okanyildiz/schoolroster/internal/middleware"
)

// TransitionController handles the academic year transition workflow
type TransitionController struct {
	transitionService *services.TransitionService
}

// NewTransitionController creates a new TransitionController
func NewTransitionController(transitionService *services.TransitionService) *TransitionController {
	return &TransitionController{
		transitionService: transitionService,
	}
}

func parseYearParam(ctx *gin.Context, name string) (int, bool) {
	year, err := strconv.Atoi(ctx.Param(name))
	if err != nil || year <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year")
		errorDetail = errorDetail.WithDetails("Year must be a positive number").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return year, true
}

// GetProgress reports the current transition stage for a target year
// @Summary Get transition progress
// @Description Derives the current workflow stage and assignment coverage for a target year. Poll this before invoking any stage.
// @Tags transitions
// @Produce json
// @Security BearerAuth
// @Param toYear path int true "Target academic year"
// @Success 200 {object} dto.APIResponse{data=services.TransitionProgress} "Current progress"
// @Failure 400 {object} dto.ErrorResponse "Invalid year"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transitions/{toYear}/progress [get]
func (c *TransitionController) GetProgress(ctx *gin.Context) {
	toYear, ok := parseYearParam(ctx, "toYear")
	if !ok {
		return
	}

	progress, err := c.transitionService.GetTransitionProgress(ctx, toYear)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      progress,
		Timestamp: time.Now(),
	})
}

// CreateNextYearClasses replicates source-year classes into the target year
// @Summary Create next year classes
// @Description Creates inactive target-year class shells mirroring every source-year class. Safe to re-run.
// @Tags transitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.YearPairRequest true "Source and target years"
// @Success 201 {object} dto.APIResponse{data=dto.CreateClassesResponse} "Classes created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Precondition failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transitions/classes [post]
func (c *TransitionController) CreateNextYearClasses(ctx *gin.Context) {
	var req dto.YearPairRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.transitionService.CreateNextYearClasses(ctx, req.FromYear, req.ToYear)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.CreateClassesResponse{CreatedCount: created},
		Timestamp: time.Now(),
	})
}

// GetUnassignedStudents lists assignment coverage for the target year
// @Summary List assignment coverage
// @Description Lists every active source-year student with their staged target class, if any. Always reflects the live staged set.
// @Tags transitions
// @Produce json
// @Security BearerAuth
// @Param toYear path int true "Target academic year"
// @Success 200 {object} dto.APIResponse{data=[]models.StudentAssignmentInfo} "Assignment coverage"
// @Failure 400 {object} dto.ErrorResponse "Invalid year"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transitions/{toYear}/unassigned-students [get]
func (c *TransitionController) GetUnassignedStudents(ctx *gin.Context) {
	toYear, ok := parseYearParam(ctx, "toYear")
	if !ok {
		return
	}

	infos, err := c.transitionService.GetUnassignedStudents(ctx, toYear)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      infos,
		Timestamp: time.Now(),
	})
}

// AssignStudent stages one student into a target-year class
// @Summary Stage a student assignment
// @Description Stages a student into a target-year class, replacing any prior staged assignment. Live data is untouched.
// @Tags transitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignStudentRequest true "Assignment"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Assignment staged"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student or class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transitions/assignments [post]
func (c *TransitionController) AssignStudent(ctx *gin.Context) {
	var req dto.AssignStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.transitionService.AssignStudentTemp(ctx, req.StudentID, req.ClassID, req.ToYear); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student assignment staged"},
		Timestamp: time.Now(),
	})
}

// RemoveAssignment removes a staged student assignment
// @Summary Remove a staged assignment
// @Description Removes the staged assignment for a student and target year. Removing an absent assignment is a no-op.
// @Tags transitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RemoveAssignmentRequest true "Assignment to remove"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Assignment removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transitions/assignments [delete]
func (c *TransitionController) RemoveAssignment(ctx *gin.Context) {
	var req dto.RemoveAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.transitionService.RemoveStudentTempAssignment(ctx, req.StudentID, req.ToYear); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student assignment removed"},
		Timestamp: time.Now(),
	})
}

// AutoAssign bulk-stages every unassigned student
// @Summary Auto-assign students
// @Description Stages every unassigned active student into the target-year class matching their current class, or a holding class. Idempotent.
// @Tags transitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.YearPairRequest true "Source and target years"
// @Success 200 {object} dto.APIResponse{data=services.AutoAssignResult} "Auto-assignment result"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Precondition failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transitions/auto-assign [post]
func (c *TransitionController) AutoAssign(ctx *gin.Context) {
	var req dto.YearPairRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.transitionService.AutoAssignStudents(ctx, req.FromYear, req.ToYear)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// Confirm locks in a fully staged plan
// @Summary Confirm the transition
// @Description Validates full assignment coverage and creates the pending transition log. The last gate before execution.
// @Tags transitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.YearPairRequest true "Source and target years"
// @Success 201 {object} dto.APIResponse{data=models.TransitionLog} "Transition confirmed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Precondition failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transitions/confirm [post]
func (c *TransitionController) Confirm(ctx *gin.Context) {
	var req dto.YearPairRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	actorID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	log, err := c.transitionService.ConfirmTransition(ctx, req.FromYear, req.ToYear, actorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      log,
		Timestamp: time.Now(),
	})
}

// Execute irreversibly commits the staged plan
// @Summary Execute the transition
// @Description Commits every staged assignment into live student records, flips class activity and consumes the staged rows. Irreversible.
// @Tags transitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ExecuteTransitionRequest true "Pending log to execute"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Transition executed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Log not found"
// @Failure 409 {object} dto.ErrorResponse "Log not pending"
// @Failure 500 {object} dto.ErrorResponse "Execution failed"
// @Router /transitions/execute [post]
func (c *TransitionController) Execute(ctx *gin.Context) {
	var req dto.ExecuteTransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.transitionService.ExecuteTransition(ctx, req.LogID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Transition executed"},
		Timestamp: time.Now(),
	})
}

// DeleteNextYearClasses abandons a transition before execution
// @Summary Abandon the transition
// @Description Deletes target-year classes and staged assignments and marks any active log rolled back. Refused after execution.
// @Tags transitions
// @Produce json
// @Security BearerAuth
// @Param toYear path int true "Target academic year"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Transition abandoned"
// @Failure 400 {object} dto.ErrorResponse "Invalid year"
// @Failure 409 {object} dto.ErrorResponse "Transition already executed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transitions/{toYear}/classes [delete]
func (c *TransitionController) DeleteNextYearClasses(ctx *gin.Context) {
	toYear, ok := parseYearParam(ctx, "toYear")
	if !ok {
		return
	}

	if err := c.transitionService.DeleteNextYearClasses(ctx, toYear); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Transition abandoned and target year cleaned up"},
		Timestamp: time.Now(),
	})
}
