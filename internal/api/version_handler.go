package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaiso/Flowdoc/internal/diff"
	"github.com/shaiso/Flowdoc/internal/domain"
	"github.com/shaiso/Flowdoc/internal/telemetry"
)

// GetVersion возвращает версию по ID.
// GET /api/v1/versions/{id}
func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid version id")
		return
	}

	version, err := h.versionRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "version not found") {
		return
	}

	Success(w, VersionFromDomain(*version))
}

// ForkVersion создаёт новую версию как копию существующей.
// POST /api/v1/versions/{id}/fork
func (h *Handler) ForkVersion(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid version id")
		return
	}

	fork, err := h.versionRepo.Fork(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "version not found") {
		return
	}

	log := telemetry.WithSpecID(h.logger, fork.SpecID.String())

	if h.publisher != nil {
		if err := h.publisher.VersionCreated(r.Context(), fork.SpecID, fork.ID, fork.Number); err != nil {
			log.Warn("publish version.created failed", "error", err)
		}
	}

	log.Info("version forked", "version_id", fork.ID, "number", fork.Number)
	Created(w, VersionFromDomain(*fork))
}

// SetVersionStatus устанавливает статус версии.
// Статус published дополнительно делает версию текущей для спецификации.
// PUT /api/v1/versions/{id}/status
func (h *Handler) SetVersionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid version id")
		return
	}

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	status := domain.VersionStatus(req.Status)
	if !status.IsValid() {
		BadRequest(w, "unknown status: "+req.Status)
		return
	}

	version, err := h.versionRepo.SetStatus(r.Context(), id, status)
	if HandleRepoError(w, h.logger, err, "version not found") {
		return
	}

	if status == domain.StatusPublished && h.publisher != nil {
		if err := h.publisher.VersionPublished(r.Context(), version.SpecID, version.ID, version.Number); err != nil {
			h.logger.Warn("publish version.published failed", "error", err)
		}
	}

	Success(w, VersionFromDomain(*version))
}

// DiffVersions сравнивает графы двух версий.
// GET /api/v1/versions/{from}/diff/{to}
func (h *Handler) DiffVersions(w http.ResponseWriter, r *http.Request) {
	fromID, err := uuid.Parse(r.PathValue("from"))
	if err != nil {
		BadRequest(w, "invalid from version id")
		return
	}
	toID, err := uuid.Parse(r.PathValue("to"))
	if err != nil {
		BadRequest(w, "invalid to version id")
		return
	}

	// Обе версии должны существовать: пустой граф несуществующей
	// версии дал бы бессмысленный дифф "всё удалено".
	if _, err := h.versionRepo.GetByID(r.Context(), fromID); HandleRepoError(w, h.logger, err, "from version not found") {
		return
	}
	if _, err := h.versionRepo.GetByID(r.Context(), toID); HandleRepoError(w, h.logger, err, "to version not found") {
		return
	}

	fromSnapshot, err := h.graphRepo.GetSnapshot(r.Context(), fromID)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}
	toSnapshot, err := h.graphRepo.GetSnapshot(r.Context(), toID)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	diffsTotal.Inc()
	Success(w, diff.Diff(fromSnapshot, toSnapshot))
}
