package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clickdeck/internal/clickup"
)

// fakeUpstream stands in for the ClickUp API, recording every call.
type fakeUpstream struct {
	srv      *httptest.Server
	calls    int
	lastPath string
	lastBody []byte
	status   int
	response string
}

func newFakeUpstream(status int, response string) *fakeUpstream {
	f := &fakeUpstream{status: status, response: response}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls++
		f.lastPath = r.URL.Path
		f.lastBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(f.status)
		w.Write([]byte(f.response))
	}))
	return f
}

func (f *fakeUpstream) Close() { f.srv.Close() }

func taskRouter(upstreamURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTaskHandler(clickup.NewClient(upstreamURL, "test-token", zap.NewNop()), zap.NewNop())
	r := gin.New()
	r.POST("/create-task", h.CreateTask)
	r.POST("/lists/:id/tasks", h.CreateTaskInList)
	r.GET("/lists/:id/tasks", h.ListTasks)
	r.GET("/tasks/:taskId", h.GetTask)
	r.PUT("/tasks/:taskId", h.UpdateTask)
	r.DELETE("/tasks/:taskId", h.DeleteTask)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTask_MissingRequiredFields(t *testing.T) {
	upstream := newFakeUpstream(http.StatusOK, `{}`)
	defer upstream.Close()
	r := taskRouter(upstream.srv.URL)

	for _, body := range []string{`{}`, `{"listId":"L1"}`, `{"name":"Test"}`} {
		w := doJSON(r, http.MethodPost, "/create-task", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, w.Code)
		}
		if w.Body.String() != `{"error":"List ID and task name are required."}` {
			t.Fatalf("body %q: unexpected response %s", body, w.Body.String())
		}
	}
	if upstream.calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", upstream.calls)
	}
}

func TestCreateTask_InvalidDueDateAbortsBeforeUpstream(t *testing.T) {
	upstream := newFakeUpstream(http.StatusOK, `{}`)
	defer upstream.Close()
	r := taskRouter(upstream.srv.URL)

	w := doJSON(r, http.MethodPost, "/create-task",
		`{"listId":"L1","name":"Test","due_date":"not-a-date"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"Invalid Due Date format."}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if upstream.calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", upstream.calls)
	}
}

func TestCreateTask_InvalidStartDate(t *testing.T) {
	upstream := newFakeUpstream(http.StatusOK, `{}`)
	defer upstream.Close()
	r := taskRouter(upstream.srv.URL)

	w := doJSON(r, http.MethodPost, "/create-task",
		`{"listId":"L1","name":"Test","start_date":"yesterday-ish"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"Invalid Start Date format."}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if upstream.calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", upstream.calls)
	}
}

func TestCreateTask_DefaultsForwardedUpstream(t *testing.T) {
	upstream := newFakeUpstream(http.StatusOK, `{"id":"T1"}`)
	defer upstream.Close()
	r := taskRouter(upstream.srv.URL)

	w := doJSON(r, http.MethodPost, "/create-task",
		`{"listId":"L1","name":"Test","assignees":"not-an-array"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if upstream.lastPath != "/list/L1/task" {
		t.Fatalf("unexpected upstream path: %s", upstream.lastPath)
	}

	var forwarded map[string]any
	if err := json.Unmarshal(upstream.lastBody, &forwarded); err != nil {
		t.Fatalf("decode forwarded payload: %v", err)
	}
	if forwarded["priority"] != float64(3) {
		t.Fatalf("expected default priority 3, got %v", forwarded["priority"])
	}
	if forwarded["description"] != "" {
		t.Fatalf("expected empty description, got %v", forwarded["description"])
	}
	if forwarded["status"] != "to do" {
		t.Fatalf("expected default status, got %v", forwarded["status"])
	}
	if assignees, ok := forwarded["assignees"].([]any); !ok || len(assignees) != 0 {
		t.Fatalf("expected coerced empty assignees, got %v", forwarded["assignees"])
	}
	if forwarded["start_date"] != nil || forwarded["due_date"] != nil {
		t.Fatalf("expected null dates, got %v / %v", forwarded["start_date"], forwarded["due_date"])
	}
}

func TestCreateTask_EndToEnd(t *testing.T) {
	upstream := newFakeUpstream(http.StatusOK, `{"id":"T1","name":"Test","priority":3}`)
	defer upstream.Close()
	r := taskRouter(upstream.srv.URL)

	w := doJSON(r, http.MethodPost, "/create-task", `{"listId":"L1","name":"Test"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success true")
	}
	if resp.Data["id"] != "T1" || resp.Data["name"] != "Test" || resp.Data["priority"] != float64(3) {
		t.Fatalf("unexpected data: %v", resp.Data)
	}
	if upstream.calls != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", upstream.calls)
	}
}

func TestCreateTaskInList_UsesPathListID(t *testing.T) {
	upstream := newFakeUpstream(http.StatusOK, `{"id":"T2","name":"Other"}`)
	defer upstream.Close()
	r := taskRouter(upstream.srv.URL)

	w := doJSON(r, http.MethodPost, "/lists/L9/tasks", `{"name":"Other","due_date":"2024-03-01"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if upstream.lastPath != "/list/L9/task" {
		t.Fatalf("unexpected upstream path: %s", upstream.lastPath)
	}

	var forwarded map[string]any
	if err := json.Unmarshal(upstream.lastBody, &forwarded); err != nil {
		t.Fatalf("decode forwarded payload: %v", err)
	}
	if _, hasStatus := forwarded["status"]; hasStatus {
		t.Fatalf("list-scoped create must not force a status: %v", forwarded)
	}
	if forwarded["due_date"] == nil {
		t.Fatal("expected parsed due_date in payload")
	}
}

func TestListTasks_ResolvesAssignees(t *testing.T) {
	upstream := newFakeUpstream(http.StatusOK,
		`{"tasks":[{"id":"T1","assignees":[{"id":1,"username":"alice"},{"id":2}]}]}`)
	defer upstream.Close()
	r := taskRouter(upstream.srv.URL)

	w := doJSON(r, http.MethodGet, "/lists/L1/tasks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var page struct {
		Tasks []struct {
			Assignees []clickup.Assignee `json:"assignees"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(page.Tasks) != 1 || len(page.Tasks[0].Assignees) != 2 {
		t.Fatalf("unexpected page: %s", w.Body.String())
	}
	if page.Tasks[0].Assignees[0].Name != "alice" {
		t.Fatalf("expected alice, got %q", page.Tasks[0].Assignees[0].Name)
	}
	if page.Tasks[0].Assignees[1].Name != "Unknown" {
		t.Fatalf("expected Unknown fallback, got %q", page.Tasks[0].Assignees[1].Name)
	}
}

func TestListTasks_UpstreamFailureIs404(t *testing.T) {
	upstream := newFakeUpstream(http.StatusInternalServerError, `{"err":"nope"}`)
	defer upstream.Close()
	r := taskRouter(upstream.srv.URL)

	w := doJSON(r, http.MethodGet, "/lists/L404/tasks", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"List not found or unauthorized access."}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestGetTask_ResolvesAssignees(t *testing.T) {
	upstream := newFakeUpstream(http.StatusOK,
		`{"id":"T1","name":"Demo","assignees":[{"id":9,"username":"bob","email":"bob@x.y"}]}`)
	defer upstream.Close()
	r := taskRouter(upstream.srv.URL)

	w := doJSON(r, http.MethodGet, "/tasks/T1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var task map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	assignees, ok := task["assignees"].([]any)
	if !ok || len(assignees) != 1 {
		t.Fatalf("unexpected assignees: %v", task["assignees"])
	}
	resolved := assignees[0].(map[string]any)
	if resolved["name"] != "bob" {
		t.Fatalf("expected resolved name bob, got %v", resolved)
	}
	if _, leaked := resolved["email"]; leaked {
		t.Fatalf("resolver must reduce to id/name pairs, got %v", resolved)
	}
}

func TestUpdateTask_BlankName(t *testing.T) {
	upstream := newFakeUpstream(http.StatusOK, `{}`)
	defer upstream.Close()
	r := taskRouter(upstream.srv.URL)

	w := doJSON(r, http.MethodPut, "/tasks/T1", `{"name":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"Task name is required."}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if upstream.calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", upstream.calls)
	}
}

func TestDeleteTask(t *testing.T) {
	upstream := newFakeUpstream(http.StatusOK, `{}`)
	defer upstream.Close()
	r := taskRouter(upstream.srv.URL)

	w := doJSON(r, http.MethodDelete, "/tasks/T1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Message != "Task deleted successfully." {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
}
