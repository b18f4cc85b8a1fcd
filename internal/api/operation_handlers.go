package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rflorenc/cloud-resource-workbench/internal/adaptor"
	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
	"github.com/rflorenc/cloud-resource-workbench/internal/models"
)

// syncStepDelay paces the sync log so clients streaming it see progress.
var syncStepDelay = 100 * time.Millisecond

// SyncSecret starts an async task that syncs every resource type of a secret.
func (s *Server) SyncSecret(w http.ResponseWriter, r *http.Request) {
	sec := s.Secrets.Get(chi.URLParam(r, "id"))
	if sec == nil {
		s.writeError(w, r, models.ErrSecretNotFound)
		return
	}
	a, err := adaptor.New(sec.Vendor)
	if err != nil {
		s.writeError(w, r, invalidParam("%v", err))
		return
	}

	task := s.Tasks.Create(models.TaskSpec{
		Operations: []enumor.TaskType{enumor.TaskSyncResource},
		Source:     enumor.TaskSourceAPI,
		Creator:    operator(r),
		Vendor:     sec.Vendor,
		SecretID:   sec.ID,
	})
	ctx, cancel := context.WithCancel(context.Background())
	task.Bind(cancel)

	go func() {
		defer cancel()
		err := s.runSync(ctx, a, sec, task)
		switch {
		case err == nil:
			// a cancel may still win the race after runSync returned
			if task.Succeed() {
				s.Secrets.MarkSynced(sec.ID, time.Now())
			}
		case ctx.Err() != nil:
			// cancelled through the API, state already set
		default:
			task.Fail(err.Error())
		}
		state := task.CurrentState()
		s.Metrics.SyncTasks.WithLabelValues(string(sec.Vendor), string(state)).Inc()
		s.Logger.Info("sync task finished",
			zap.String("task", task.ID),
			zap.String("secret", sec.ID),
			zap.String("state", string(state)))
	}()

	writeOK(w, http.StatusAccepted, map[string]string{"task_id": task.ID})
}

func (s *Server) runSync(ctx context.Context, a adaptor.Adaptor, sec *models.Secret, task *models.Task) error {
	task.AppendLog(fmt.Sprintf("Syncing %s (%s, %s)", sec.Name, sec.Vendor.Name(), sec.CloudSecretID))
	counts, err := a.CountResources(ctx, sec)
	if err != nil {
		return err
	}
	total := 0
	for _, c := range counts {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(syncStepDelay):
		}
		task.AppendLog(fmt.Sprintf("  %s: %d", c.Type.DisplayName(), c.Count))
		total += c.Count
	}
	task.AppendLog(fmt.Sprintf("Synced %d resources of %d types", total, len(counts)))
	return nil
}

// operator returns the user issuing the request.
func operator(r *http.Request) string {
	if u := r.Header.Get(UserHeader); u != "" {
		return u
	}
	return "anonymous"
}
