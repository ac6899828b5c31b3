package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/burakserin/taskvault/internal/dto"
	"github.com/burakserin/taskvault/internal/models"
	"github.com/burakserin/taskvault/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTaskNotFound covers both a genuinely absent task and one owned by
// someone else; callers must not be able to tell the difference.
var ErrTaskNotFound = errors.New("task not found")

var ErrBadSort = errors.New("invalid sortBy parameter")

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// ListTasksQuery carries the optional refinements of GET /tasks. Zero values
// mean "not given": no filter, no limit, no offset, storage order.
type ListTasksQuery struct {
	Completed *bool
	Limit     int
	Skip      int
	SortBy    string
}

// sortColumns maps the public sortBy field names onto columns. Anything not
// listed here is rejected rather than interpolated into the query.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

// parseSort turns "field:asc|desc" into an ORDER BY clause. A bare field name
// sorts ascending.
func parseSort(sortBy string) (string, error) {
	field, dir, hasDir := strings.Cut(sortBy, ":")
	column, ok := sortColumns[field]
	if !ok {
		return "", fmt.Errorf("unknown sort field %q: %w", field, ErrBadSort)
	}

	order := "ASC"
	if hasDir {
		switch dir {
		case "asc":
		case "desc":
			order = "DESC"
		default:
			return "", fmt.Errorf("unknown sort direction %q: %w", dir, ErrBadSort)
		}
	}
	return column + " " + order, nil
}

// Create persists a task owned by the requester. The owner comes from the
// authenticated context, never from the request body.
func (s *TaskService) Create(ownerID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	description := strings.TrimSpace(req.Description)
	if ferr := validation.TaskDescription(description); ferr != nil {
		return nil, ferr
	}

	task := models.Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Description: description,
		Completed:   req.Completed,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// Get returns the task only when both id and owner match.
func (s *TaskService) Get(ownerID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := s.db.Where("id = ? AND owner_id = ?", taskID, ownerID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// List returns the owner's tasks, optionally filtered by completion state,
// sorted and paginated.
func (s *TaskService) List(ownerID uuid.UUID, q ListTasksQuery) ([]models.Task, error) {
	query := s.db.Where("owner_id = ?", ownerID)

	if q.Completed != nil {
		query = query.Where("completed = ?", *q.Completed)
	}
	if q.SortBy != "" {
		order, err := parseSort(q.SortBy)
		if err != nil {
			return nil, err
		}
		query = query.Order(order)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Skip > 0 {
		query = query.Offset(q.Skip)
	}

	tasks := []models.Task{}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies a parsed allow-list update with fetch-then-save semantics so
// the updated_at timestamp and any save-time hooks behave as on create.
func (s *TaskService) Update(ownerID, taskID uuid.UUID, upd *dto.TaskUpdate) (*models.Task, error) {
	task, err := s.Get(ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if upd.Description != nil {
		description := strings.TrimSpace(*upd.Description)
		if ferr := validation.TaskDescription(description); ferr != nil {
			return nil, ferr
		}
		task.Description = description
	}
	if upd.Completed != nil {
		task.Completed = *upd.Completed
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// Delete removes the task if id and owner match and returns the deleted record.
func (s *TaskService) Delete(ownerID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.Get(ownerID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(task).Error; err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return task, nil
}
