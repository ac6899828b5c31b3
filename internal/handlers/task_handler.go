package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/burakserin/taskvault/internal/dto"
	"github.com/burakserin/taskvault/internal/middleware"
	"github.com/burakserin/taskvault/internal/services"
	"github.com/burakserin/taskvault/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create handles POST /tasks. The owner is always the requester.
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "invalid request body",
		})
	}

	user := middleware.CurrentUser(c)
	task, err := h.tasks.Create(user.ID, &req)
	if err != nil {
		var ferr *validation.FieldError
		if errors.As(err, &ferr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("task create failed", "action", "create_task", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to create task",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// Get handles GET /tasks/:id. A task owned by someone else is reported
// exactly like a task that does not exist.
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return taskNotFound(c)
	}

	user := middleware.CurrentUser(c)
	task, err := h.tasks.Get(user.ID, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return taskNotFound(c)
		}
		slog.Error("task fetch failed", "action", "get_task", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to fetch task",
		})
	}

	return c.JSON(task)
}

// List handles GET /tasks with optional completed, limit, skip and sortBy
// query parameters.
func (h *TaskHandler) List(c *fiber.Ctx) error {
	q := services.ListTasksQuery{SortBy: c.Query("sortBy")}

	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "completed must be true or false",
			})
		}
		q.Completed = &completed
	}

	q.Limit, _ = strconv.Atoi(c.Query("limit", "0"))
	q.Skip, _ = strconv.Atoi(c.Query("skip", "0"))

	user := middleware.CurrentUser(c)
	tasks, err := h.tasks.List(user.ID, q)
	if err != nil {
		if errors.Is(err, services.ErrBadSort) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("task list failed", "action", "list_tasks", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to list tasks",
		})
	}

	return c.JSON(tasks)
}

// Update handles PATCH /tasks/:id with the {description, completed} allow-list.
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return taskNotFound(c)
	}

	upd, err := dto.ParseTaskUpdate(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	user := middleware.CurrentUser(c)
	task, err := h.tasks.Update(user.ID, taskID, upd)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return taskNotFound(c)
		}
		var ferr *validation.FieldError
		if errors.As(err, &ferr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("task update failed", "action", "update_task", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to update task",
		})
	}

	return c.JSON(task)
}

// Delete handles DELETE /tasks/:id and returns the removed task.
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return taskNotFound(c)
	}

	user := middleware.CurrentUser(c)
	task, err := h.tasks.Delete(user.ID, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return taskNotFound(c)
		}
		slog.Error("task delete failed", "action", "delete_task", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to delete task",
		})
	}

	return c.JSON(task)
}

func taskNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "task not found",
	})
}
