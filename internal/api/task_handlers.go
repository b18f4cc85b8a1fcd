package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rflorenc/cloud-resource-workbench/internal/models"
	"github.com/rflorenc/cloud-resource-workbench/internal/property"
)

type listTasksReq struct {
	Filter *property.Filter `json:"filter"`
	Page   models.Page      `json:"page"`
}

type listTasksResult struct {
	Count   int            `json:"count"`
	Details []*models.Task `json:"details,omitempty"`
}

func (s *Server) ListTaskProperties(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, property.TaskProperties())
}

func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	var req listTasksReq
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Filter.Validate(property.TaskProperties()); err != nil {
		s.writeError(w, r, invalidParam("invalid filter: %v", err))
		return
	}
	if err := req.Page.Normalize(); err != nil {
		s.writeError(w, r, invalidParam("%v", err))
		return
	}

	tasks, total := s.Tasks.List(req.Filter, req.Page)
	result := listTasksResult{Count: total}
	if !req.Page.Count {
		result.Details = make([]*models.Task, 0, len(tasks))
		for _, t := range tasks {
			result.Details = append(result.Details, t.Snapshot())
		}
	}
	writeOK(w, http.StatusOK, result)
}

func (s *Server) GetTask(w http.ResponseWriter, r *http.Request) {
	task := s.Tasks.Get(chi.URLParam(r, "id"))
	if task == nil {
		s.writeError(w, r, models.ErrTaskNotFound)
		return
	}
	writeOK(w, http.StatusOK, task.Snapshot())
}

// CancelTask cancels a running task.
func (s *Server) CancelTask(w http.ResponseWriter, r *http.Request) {
	task := s.Tasks.Get(chi.URLParam(r, "id"))
	if task == nil {
		s.writeError(w, r, models.ErrTaskNotFound)
		return
	}
	if err := task.Cancel("CANCELLED: task stopped by " + operator(r)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]string{"state": string(task.CurrentState())})
}
