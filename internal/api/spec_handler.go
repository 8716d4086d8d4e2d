package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaiso/Flowdoc/internal/domain"
)

// ListSpecs возвращает список всех спецификаций.
// GET /api/v1/specs
func (h *Handler) ListSpecs(w http.ResponseWriter, r *http.Request) {
	specs, err := h.specRepo.List(r.Context())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]SpecResponse, len(specs))
	for i, s := range specs {
		result[i] = SpecFromDomain(s)
	}

	List(w, result, len(result))
}

// CreateSpec создаёт спецификацию вместе с первой draft-версией.
// POST /api/v1/specs
func (h *Handler) CreateSpec(w http.ResponseWriter, r *http.Request) {
	var req CreateSpecRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Name == "" {
		BadRequest(w, "name is required")
		return
	}

	spec := &domain.Spec{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	}

	version, err := h.specRepo.Create(r.Context(), spec)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	if h.publisher != nil {
		if err := h.publisher.SpecCreated(r.Context(), spec.ID); err != nil {
			h.logger.Warn("publish spec.created failed", "error", err)
		}
	}

	Created(w, struct {
		Spec           SpecResponse    `json:"spec"`
		InitialVersion VersionResponse `json:"initial_version"`
	}{
		Spec:           SpecFromDomain(*spec),
		InitialVersion: VersionFromDomain(*version),
	})
}

// GetSpec возвращает спецификацию по ID.
// GET /api/v1/specs/{id}
func (h *Handler) GetSpec(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid spec id")
		return
	}

	spec, err := h.specRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "spec not found") {
		return
	}

	Success(w, SpecFromDomain(*spec))
}

// UpdateSpec обновляет название/описание спецификации.
// PUT /api/v1/specs/{id}
func (h *Handler) UpdateSpec(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid spec id")
		return
	}

	var req UpdateSpecRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	spec, err := h.specRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "spec not found") {
		return
	}

	if req.Name != nil {
		spec.Name = *req.Name
	}
	if req.Description != nil {
		spec.Description = *req.Description
	}

	if err := h.specRepo.Update(r.Context(), spec); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Success(w, SpecFromDomain(*spec))
}

// DeleteSpec удаляет спецификацию со всеми версиями.
// DELETE /api/v1/specs/{id}
func (h *Handler) DeleteSpec(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid spec id")
		return
	}

	if err := h.specRepo.Delete(r.Context(), id); HandleRepoError(w, h.logger, err, "spec not found") {
		return
	}

	NoContent(w)
}

// ListSpecVersions возвращает версии спецификации.
// GET /api/v1/specs/{id}/versions
func (h *Handler) ListSpecVersions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid spec id")
		return
	}

	// Проверяем, что спецификация существует
	_, err = h.specRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "spec not found") {
		return
	}

	versions, err := h.versionRepo.ListBySpec(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]VersionResponse, len(versions))
	for i, v := range versions {
		result[i] = VersionFromDomain(v)
	}

	List(w, result, len(result))
}
