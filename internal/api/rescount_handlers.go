package api

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rflorenc/cloud-resource-workbench/internal/adaptor"
	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
	"github.com/rflorenc/cloud-resource-workbench/internal/models"
)

// ResCountsBySecrets counts the resources reachable through a set of stored
// secrets of one vendor. The body maps credential labels to secret ids.
func (s *Server) ResCountsBySecrets(w http.ResponseWriter, r *http.Request) {
	v := enumor.Vendor(chi.URLParam(r, "vendor"))
	// unknown path values share one series
	label := string(v)
	if v.Validate() != nil {
		label = "invalid"
	}
	result, err := s.resCounts(r, v)
	if err != nil {
		s.Metrics.ResCountQueries.WithLabelValues(label, "error").Inc()
		s.writeError(w, r, err)
		return
	}
	s.Metrics.ResCountQueries.WithLabelValues(label, "ok").Inc()
	writeOK(w, http.StatusOK, result)
}

func (s *Server) resCounts(r *http.Request, v enumor.Vendor) (*models.ResourceCountResult, error) {
	if err := v.Validate(); err != nil {
		return nil, invalidParam("%v", err)
	}

	var secretIDs models.VendorCredentialMap
	if err := decodeJSON(r, &secretIDs); err != nil {
		return nil, err
	}
	if err := s.validate.Var(secretIDs, "min=1,dive,required"); err != nil {
		return nil, err
	}

	a, err := adaptor.New(v)
	if err != nil {
		return nil, invalidParam("%v", err)
	}

	labels := make([]string, 0, len(secretIDs))
	for label := range secretIDs {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	seen := make(map[string]bool, len(labels))
	perSecret := make([][]models.ResourceCount, 0, len(labels))
	for _, label := range labels {
		id := secretIDs[label]
		if seen[id] {
			continue
		}
		seen[id] = true

		sec, err := s.Secrets.GetForVendor(id, v)
		if err != nil {
			return nil, fmt.Errorf("%s (%s): %w", label, id, err)
		}
		counts, err := a.CountResources(r.Context(), sec)
		if err != nil {
			return nil, fmt.Errorf("counting resources of %s: %w", label, err)
		}
		perSecret = append(perSecret, counts)
	}

	items := adaptor.SumCounts(a, perSecret...)
	s.Logger.Debug("counted resources",
		zap.String("vendor", string(v)),
		zap.Int("secrets", len(perSecret)),
		zap.Int("types", len(items)))
	return &models.ResourceCountResult{Items: items}, nil
}
