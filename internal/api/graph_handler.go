package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaiso/Flowdoc/internal/domain"
	"github.com/shaiso/Flowdoc/internal/graph"
	"github.com/shaiso/Flowdoc/internal/importer"
	"github.com/shaiso/Flowdoc/internal/telemetry"
)

// GetGraph возвращает снапшот графа версии.
// GET /api/v1/versions/{id}/graph
func (h *Handler) GetGraph(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid version id")
		return
	}

	if _, err := h.versionRepo.GetByID(r.Context(), id); HandleRepoError(w, h.logger, err, "version not found") {
		return
	}

	snapshot, err := h.graphRepo.GetSnapshot(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	Success(w, snapshot)
}

// SaveGraph атомарно заменяет граф версии.
//
// Ключи шагов обязаны быть уникальными — это жёсткая проверка.
// Переходы на неизвестные ключи репозиторий отбрасывает с warning:
// рассинхронизация холста не блокирует сохранение.
// PUT /api/v1/versions/{id}/graph
func (h *Handler) SaveGraph(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid version id")
		return
	}

	var req SaveGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if _, err := h.versionRepo.GetByID(r.Context(), id); HandleRepoError(w, h.logger, err, "version not found") {
		return
	}

	snapshot := domain.Snapshot{Steps: req.Steps, Transitions: req.Transitions}

	if err := graph.ValidateSteps(&snapshot); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if err := h.graphRepo.ReplaceSnapshot(r.Context(), id, snapshot); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	saved, err := h.graphRepo.GetSnapshot(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	Success(w, saved)
}

// ImportGraph импортирует граф версии из xlsx-файла.
//
// Принимает multipart поле "file", разбирает табличное описание
// сценария и атомарно заменяет граф версии результатом.
// POST /api/v1/versions/{id}/import
func (h *Handler) ImportGraph(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid version id")
		return
	}

	version, err := h.versionRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "version not found") {
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		BadRequest(w, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	rows, err := importer.ReadWorkbook(file, h.patterns)
	if err != nil {
		BadRequest(w, "cannot read workbook: "+err.Error())
		return
	}

	snapshot, err := importer.ImportScenario(rows, h.patterns)
	if HandleImportError(w, h.logger, err) {
		importsTotal.WithLabelValues("error").Inc()
		return
	}

	if err := h.graphRepo.ReplaceSnapshot(r.Context(), id, snapshot); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	log := telemetry.WithVersionID(telemetry.FromContext(r.Context()), id.String())

	if h.publisher != nil {
		if err := h.publisher.VersionImported(r.Context(), version.SpecID, version.ID, version.Number); err != nil {
			log.Warn("publish version.imported failed", "error", err)
		}
	}

	log.Info("graph imported",
		"steps", len(snapshot.Steps),
		"transitions", len(snapshot.Transitions),
	)
	importsTotal.WithLabelValues("ok").Inc()
	Success(w, snapshot)
}
