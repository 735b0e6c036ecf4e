package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kerem/schoolhub/internal/app/models/dto"
	"github.com/kerem/schoolhub/internal/app/services"
	"github.com/kerem/schoolhub/internal/middleware"
	"github.com/kerem/schoolhub/internal/pkg/helpers"
)

// FeeController handles the fee payment ledger
type FeeController struct {
	feeService *services.FeeService
}

// NewFeeController creates a new FeeController
func NewFeeController(feeService *services.FeeService) *FeeController {
	return &FeeController{
		feeService: feeService,
	}
}

// ledgerListParams reads the shared report query parameters
func ledgerListParams(ctx *gin.Context) services.LedgerListParams {
	page, size := helpers.ParsePaginationParams(ctx)
	return services.LedgerListParams{
		Search:    ctx.Query("search"),
		ClassID:   parseClassIDQuery(ctx),
		Month:     ctx.Query("month"),
		Method:    ctx.Query("paymentMethod"),
		SortField: ctx.DefaultQuery("sortField", "paymentDate"),
		SortOrder: ctx.DefaultQuery("sortOrder", "desc"),
		Page:      page,
		Size:      size,
	}
}

// RecordPayment records a fee payment
// @Summary Record a fee payment
// @Description Records one month's fee payment for a student and issues a receipt number. A student can have at most one payment per month.
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordFeePaymentRequest true "Payment information"
// @Success 201 {object} dto.APIResponse{data=dto.RecordFeePaymentResponse} "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Payment for this month already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fees [post]
func (c *FeeController) RecordPayment(ctx *gin.Context) {
	var req dto.RecordFeePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	adminID, _ := middleware.AdminIDFromContext(ctx)
	resp, err := c.feeService.RecordPayment(ctx, adminID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// ListPayments builds the fee payment report
// @Summary Fee payment report
// @Description A page of students with their payments flattened into rows, plus summary analytics. Pagination counts students.
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param search query string false "Match student name or number"
// @Param classId query int false "Filter by class"
// @Param month query string false "Filter by month name"
// @Param paymentMethod query string false "Filter by payment method"
// @Param sortField query string false "name, paymentDate or amount" default(paymentDate)
// @Param sortOrder query string false "asc or desc" default(desc)
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.FeeListResponse} "Report retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fees [get]
func (c *FeeController) ListPayments(ctx *gin.Context) {
	resp, err := c.feeService.ListPayments(ctx, ledgerListParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// StudentHistory returns one student's payment history
// @Summary Student fee history
// @Description One student's payments, newest first, with a short profile header
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentFeeHistoryResponse} "History retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fees/student/{studentId} [get]
func (c *FeeController) StudentHistory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	resp, err := c.feeService.StudentHistory(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// DebtReport lists students with an unsettled current month
// @Summary Debt report
// @Description Students with no payment labelled with the current month, or one in Debt status
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.DebtReportRow} "Report retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fees/debt-report [get]
func (c *FeeController) DebtReport(ctx *gin.Context) {
	resp, err := c.feeService.DebtReport(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// UpdatePayment partially updates a fee payment
// @Summary Update a fee payment
// @Description Merges the given fields into an existing payment; absent fields keep their previous value
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param paymentId path int true "Payment ID"
// @Param request body dto.UpdateFeePaymentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.FeePayment} "Payment updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 409 {object} dto.ErrorResponse "Payment for this month already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fees/{studentId}/{paymentId} [put]
func (c *FeeController) UpdatePayment(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(ctx, "paymentId")
	if !ok {
		return
	}

	var req dto.UpdateFeePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	payment, err := c.feeService.UpdatePayment(ctx, studentID, paymentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      payment,
		Timestamp: time.Now(),
	})
}

// DeletePayment removes a fee payment
// @Summary Delete a fee payment
// @Description Removes a payment. Deleting an already absent payment succeeds.
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param paymentId path int true "Payment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Payment deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid payment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fees/{studentId}/{paymentId} [delete]
func (c *FeeController) DeletePayment(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(ctx, "paymentId")
	if !ok {
		return
	}

	if err := c.feeService.DeletePayment(ctx, studentID, paymentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Payment deleted successfully"},
		Timestamp: time.Now(),
	})
}
