package api

import (
	"log/slog"

	"github.com/shaiso/Flowdoc/internal/importer"
	"github.com/shaiso/Flowdoc/internal/mq"
	"github.com/shaiso/Flowdoc/internal/repo"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	specRepo    *repo.SpecRepo
	versionRepo *repo.VersionRepo
	graphRepo   *repo.GraphRepo
	userRepo    *repo.UserRepo
	publisher   *mq.Publisher
	patterns    importer.Patterns
	logger      *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	SpecRepo    *repo.SpecRepo
	VersionRepo *repo.VersionRepo
	GraphRepo   *repo.GraphRepo
	UserRepo    *repo.UserRepo

	// Publisher может быть nil: сервис работает и без брокера,
	// события тогда просто не публикуются.
	Publisher *mq.Publisher

	// Patterns — эвристики импортёра; пустое значение заменяется
	// на importer.DefaultPatterns().
	Patterns *importer.Patterns

	Logger *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	pats := importer.DefaultPatterns()
	if cfg.Patterns != nil {
		pats = *cfg.Patterns
	}

	return &Handler{
		specRepo:    cfg.SpecRepo,
		versionRepo: cfg.VersionRepo,
		graphRepo:   cfg.GraphRepo,
		userRepo:    cfg.UserRepo,
		publisher:   cfg.Publisher,
		patterns:    pats,
		logger:      cfg.Logger,
	}
}
