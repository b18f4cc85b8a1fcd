package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rflorenc/cloud-resource-workbench/internal/adaptor"
	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
	"github.com/rflorenc/cloud-resource-workbench/internal/models"
)

type createSecretReq struct {
	Name           string                      `json:"name" validate:"required,max=64"`
	Vendor         enumor.Vendor               `json:"vendor" validate:"required,oneof=tcloud aws azure gcp huawei other"`
	CloudSecretID  string                      `json:"cloud_secret_id" validate:"required"`
	CloudSecretKey string                      `json:"cloud_secret_key"`
	Resources      map[enumor.ResourceType]int `json:"resources" validate:"dive,gte=0"`
}

// NewSecret validates an inventory against the vendor and builds the secret.
func NewSecret(name string, v enumor.Vendor, cloudID, cloudKey string, resources map[enumor.ResourceType]int) (*models.Secret, error) {
	if err := v.Validate(); err != nil {
		return nil, invalidParam("%v", err)
	}
	for rt, n := range resources {
		if err := rt.Validate(); err != nil {
			return nil, invalidParam("%v", err)
		}
		if !adaptor.Supports(v, rt) {
			return nil, invalidParam("vendor %s has no resource type %s", v, rt)
		}
		if n < 0 {
			return nil, invalidParam("resource count of %s must not be negative", rt)
		}
	}
	return &models.Secret{
		Name:           name,
		Vendor:         v,
		CloudSecretID:  cloudID,
		CloudSecretKey: cloudKey,
		Resources:      resources,
	}, nil
}

func (s *Server) CreateSecret(w http.ResponseWriter, r *http.Request) {
	var req createSecretReq
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sec, err := NewSecret(req.Name, req.Vendor, req.CloudSecretID, req.CloudSecretKey, req.Resources)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Secrets.Create(sec)
	writeOK(w, http.StatusCreated, sec.Public())
}

func (s *Server) ListSecrets(w http.ResponseWriter, r *http.Request) {
	v := enumor.Vendor(r.URL.Query().Get("vendor"))
	if v != "" {
		if err := v.Validate(); err != nil {
			s.writeError(w, r, invalidParam("%v", err))
			return
		}
	}
	writeOK(w, http.StatusOK, map[string]interface{}{"details": s.Secrets.List(v)})
}

func (s *Server) DeleteSecret(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.Secrets.Delete(id) {
		s.writeError(w, r, models.ErrSecretNotFound)
		return
	}
	writeOK(w, http.StatusOK, nil)
}
