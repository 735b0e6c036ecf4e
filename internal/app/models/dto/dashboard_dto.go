package dto

import (
	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/pkg/money"
)

// DashboardTotals carries the entity counts shown on the dashboard header
type DashboardTotals struct {
	Students int64 `json:"students" example:"240"`
	Teachers int64 `json:"teachers" example:"18"`
	Classes  int64 `json:"classes" example:"8"`
}

// MonthAmount is one bar of the fee revenue chart
type MonthAmount struct {
	Month  string       `json:"month" example:"Jan 2025"`
	Amount money.Amount `json:"amount" example:"12500"`
}

// MonthIncomeExpense is one bar of the income vs expense chart
type MonthIncomeExpense struct {
	Month   string       `json:"month" example:"Jan 2025"`
	Income  money.Amount `json:"income" example:"12500"`
	Expense money.Amount `json:"expense" example:"9800"`
}

// ClassCount is one slice of the students-by-class chart
type ClassCount struct {
	ClassName string `json:"className" example:"Grade 5"`
	Count     int    `json:"count" example:"24"`
}

// DashboardCharts groups the chart series
type DashboardCharts struct {
	FeePaymentsByMonth []MonthAmount        `json:"feePaymentsByMonth"`
	StudentsByClass    []ClassCount         `json:"studentsByClass"`
	IncomeVsExpense    []MonthIncomeExpense `json:"incomeVsExpense"`
}

// DashboardStatsResponse is the full dashboard payload
type DashboardStatsResponse struct {
	Totals           DashboardTotals         `json:"totals"`
	Charts           DashboardCharts         `json:"charts"`
	RecentActivities []*models.ActivityEntry `json:"recentActivities"`
}
