package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kerem/schoolhub/internal/app/models/dto"
	"github.com/kerem/schoolhub/internal/app/services"
	"github.com/kerem/schoolhub/internal/middleware"
)

// SalaryController handles the salary payment ledger
type SalaryController struct {
	salaryService *services.SalaryService
}

// NewSalaryController creates a new SalaryController
func NewSalaryController(salaryService *services.SalaryService) *SalaryController {
	return &SalaryController{
		salaryService: salaryService,
	}
}

// RecordPayment records a salary payment
// @Summary Record a salary payment
// @Description Records one month's salary payment for a teacher. A teacher can have at most one payment per month.
// @Tags salaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordSalaryPaymentRequest true "Payment information"
// @Success 201 {object} dto.APIResponse{data=models.SalaryPayment} "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Failure 409 {object} dto.ErrorResponse "Payment for this month already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /salaries [post]
func (c *SalaryController) RecordPayment(ctx *gin.Context) {
	var req dto.RecordSalaryPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	adminID, _ := middleware.AdminIDFromContext(ctx)
	payment, err := c.salaryService.RecordPayment(ctx, adminID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      payment,
		Timestamp: time.Now(),
	})
}

// ListPayments builds the salary payment report
// @Summary Salary payment report
// @Description A page of teachers with their payments flattened into rows, plus summary analytics. Pagination counts teachers.
// @Tags salaries
// @Produce json
// @Security BearerAuth
// @Param search query string false "Match teacher name or subject"
// @Param month query string false "Filter by month name"
// @Param paymentMethod query string false "Filter by payment method"
// @Param sortField query string false "name, paymentDate or amount" default(paymentDate)
// @Param sortOrder query string false "asc or desc" default(desc)
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.SalaryListResponse} "Report retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /salaries [get]
func (c *SalaryController) ListPayments(ctx *gin.Context) {
	resp, err := c.salaryService.ListPayments(ctx, ledgerListParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// TeacherHistory returns one teacher's payment history
// @Summary Teacher salary history
// @Description One teacher's payments, newest first, with a short profile header
// @Tags salaries
// @Produce json
// @Security BearerAuth
// @Param teacherId path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherSalaryHistoryResponse} "History retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid teacher ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /salaries/teacher/{teacherId} [get]
func (c *SalaryController) TeacherHistory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}

	resp, err := c.salaryService.TeacherHistory(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// UpdatePayment partially updates a salary payment
// @Summary Update a salary payment
// @Description Merges the given fields into an existing payment; absent fields keep their previous value
// @Tags salaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teacherId path int true "Teacher ID"
// @Param paymentId path int true "Payment ID"
// @Param request body dto.UpdateSalaryPaymentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.SalaryPayment} "Payment updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 409 {object} dto.ErrorResponse "Payment for this month already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /salaries/{teacherId}/{paymentId} [put]
func (c *SalaryController) UpdatePayment(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(ctx, "paymentId")
	if !ok {
		return
	}

	var req dto.UpdateSalaryPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	payment, err := c.salaryService.UpdatePayment(ctx, teacherID, paymentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      payment,
		Timestamp: time.Now(),
	})
}

// DeletePayment removes a salary payment
// @Summary Delete a salary payment
// @Description Removes a payment. Deleting an already absent payment succeeds.
// @Tags salaries
// @Produce json
// @Security BearerAuth
// @Param teacherId path int true "Teacher ID"
// @Param paymentId path int true "Payment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Payment deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid payment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /salaries/{teacherId}/{paymentId} [delete]
func (c *SalaryController) DeletePayment(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(ctx, "paymentId")
	if !ok {
		return
	}

	if err := c.salaryService.DeletePayment(ctx, teacherID, paymentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Payment deleted successfully"},
		Timestamp: time.Now(),
	})
}
