package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clickdeck/internal/clickup"
	"clickdeck/pkg/logger"
)

type TaskHandler struct {
	clickup *clickup.Client
	logger  *zap.Logger
}

func NewTaskHandler(client *clickup.Client, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		clickup: client,
		logger:  logger,
	}
}

type taskWriteRequest struct {
	ListID      string `json:"listId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Assignees   any    `json:"assignees"`
	Priority    int    `json:"priority"`
	StartDate   any    `json:"start_date"`
	DueDate     any    `json:"due_date"`
	Status      string `json:"status"`
}

// taskDates converts both date fields to epoch milliseconds, writing a
// 400 and returning false when either is unparsable. Validation happens
// before any upstream call.
func (h *TaskHandler) taskDates(c *gin.Context, start, due any) (*int64, *int64, bool) {
	startMs, err := clickup.ParseDateMillis(start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Start Date format."})
		return nil, nil, false
	}
	dueMs, err := clickup.ParseDateMillis(due)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Due Date format."})
		return nil, nil, false
	}
	return startMs, dueMs, true
}

// CreateTask handles POST /create-task. The list id travels in the
// body and the created resource is wrapped in {success, data}.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req taskWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ListID == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List ID and task name are required."})
		return
	}

	startMs, dueMs, ok := h.taskDates(c, req.StartDate, req.DueDate)
	if !ok {
		return
	}

	payload := clickup.CreateTaskPayload{
		Name:        req.Name,
		Description: req.Description,
		Assignees:   clickup.CoerceAssignees(req.Assignees),
		Priority:    req.Priority,
		StartDate:   startMs,
		DueDate:     dueMs,
		Status:      req.Status,
	}
	if payload.Priority == 0 {
		payload.Priority = 3
	}
	if payload.Status == "" {
		payload.Status = "to do"
	}

	data, err := h.clickup.CreateTask(c.Request.Context(), req.ListID, payload)
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("create task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// CreateTaskInList handles POST /lists/:id/tasks. Same upstream call as
// CreateTask but the list id comes from the path and the created
// resource is returned unwrapped.
func (h *TaskHandler) CreateTaskInList(c *gin.Context) {
	listID := c.Param("id")

	var req taskWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || listID == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List ID and task name are required."})
		return
	}

	startMs, dueMs, ok := h.taskDates(c, req.StartDate, req.DueDate)
	if !ok {
		return
	}

	payload := clickup.CreateTaskPayload{
		Name:        req.Name,
		Description: req.Description,
		Assignees:   clickup.CoerceAssignees(req.Assignees),
		Priority:    req.Priority,
		StartDate:   startMs,
		DueDate:     dueMs,
	}
	if payload.Priority == 0 {
		payload.Priority = 3
	}

	data, err := h.clickup.CreateTask(c.Request.Context(), listID, payload)
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("create task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task."})
		return
	}
	c.Data(http.StatusCreated, "application/json", data)
}

// GetTask handles GET /tasks/:taskId, resolving assignee display names
// before the payload leaves the gateway.
func (h *TaskHandler) GetTask(c *gin.Context) {
	data, err := h.clickup.GetTask(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("fetch task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task details."})
		return
	}

	var task map[string]any
	if err := json.Unmarshal(data, &task); err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("decode task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task details."})
		return
	}
	resolveTaskAssignees(task)

	c.JSON(http.StatusOK, task)
}

// ListTasks handles GET /lists/:id/tasks, resolving assignees on every
// task. An upstream failure here means the list does not exist or the
// credential cannot see it, hence the 404.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	data, err := h.clickup.GetListTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("fetch tasks failed", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found or unauthorized access."})
		return
	}

	var page map[string]any
	if err := json.Unmarshal(data, &page); err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("decode tasks failed", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found or unauthorized access."})
		return
	}
	if tasks, ok := page["tasks"].([]any); ok {
		for _, t := range tasks {
			if task, ok := t.(map[string]any); ok {
				resolveTaskAssignees(task)
			}
		}
	}

	c.JSON(http.StatusOK, page)
}

// UpdateTask handles PUT /tasks/:taskId.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req taskWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task name is required."})
		return
	}

	startMs, dueMs, ok := h.taskDates(c, req.StartDate, req.DueDate)
	if !ok {
		return
	}

	payload := clickup.UpdateTaskPayload{
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		StartDate:   startMs,
		DueDate:     dueMs,
	}
	if payload.Priority == 0 {
		payload.Priority = 3
	}

	data, err := h.clickup.UpdateTask(c.Request.Context(), c.Param("taskId"), payload)
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("update task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task."})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// DeleteTask handles DELETE /tasks/:taskId.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.clickup.DeleteTask(c.Request.Context(), c.Param("taskId")); err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("delete task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted successfully."})
}

func resolveTaskAssignees(task map[string]any) {
	if raw, ok := task["assignees"].([]any); ok && len(raw) > 0 {
		task["assignees"] = clickup.ResolveAssignees(raw)
	}
}
