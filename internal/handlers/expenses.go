package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dhamma-seva/registration-api/internal/models"
	"gorm.io/gorm"
)

// ExpenseHandler is a simple per-course ledger. It exists mostly so the
// course reset has something real to cascade over.
type ExpenseHandler struct {
	db *gorm.DB
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{db: db}
}

type CreateExpenseRequest struct {
	ID   uint `path:"id" doc:"Course ID"`
	Body struct {
		Description string     `json:"description" required:"true"`
		Amount      float64    `json:"amount" required:"true"`
		ExpenseDate *time.Time `json:"expenseDate,omitempty"`
	}
}

type ExpenseResponse struct {
	Body models.Expense
}

func (h *ExpenseHandler) HandleCreateExpense(ctx context.Context, input *CreateExpenseRequest) (*ExpenseResponse, error) {
	var course models.Course
	if err := h.db.First(&course, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Course not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load course: " + err.Error())
	}

	date := time.Now()
	if input.Body.ExpenseDate != nil {
		date = *input.Body.ExpenseDate
	}

	expense := models.Expense{
		CourseID:    course.ID,
		Description: input.Body.Description,
		Amount:      input.Body.Amount,
		ExpenseDate: date,
	}
	if err := h.db.Create(&expense).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create expense: " + err.Error())
	}

	return &ExpenseResponse{Body: expense}, nil
}

type ListExpensesRequest struct {
	ID uint `path:"id" doc:"Course ID"`
}

type ListExpensesResponse struct {
	Body []models.Expense
}

func (h *ExpenseHandler) HandleListExpenses(ctx context.Context, input *ListExpensesRequest) (*ListExpensesResponse, error) {
	var expenses []models.Expense
	if err := h.db.Where("course_id = ?", input.ID).Order("expense_date desc").Find(&expenses).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list expenses: " + err.Error())
	}
	return &ListExpensesResponse{Body: expenses}, nil
}

type DeleteExpenseRequest struct {
	ID uint `path:"id" doc:"Expense ID"`
}

func (h *ExpenseHandler) HandleDeleteExpense(ctx context.Context, input *DeleteExpenseRequest) (*struct{}, error) {
	result := h.db.Delete(&models.Expense{}, input.ID)
	if result.Error != nil {
		return nil, huma.Error500InternalServerError("Failed to delete expense: " + result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return nil, huma.Error404NotFound("Expense not found")
	}
	return nil, nil
}
