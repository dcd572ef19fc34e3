package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/procurement-atlas/pkg/adapters"
	"github.com/de-tools/procurement-atlas/pkg/models/api"
	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/de-tools/procurement-atlas/pkg/services/analytics"
	"github.com/de-tools/procurement-atlas/pkg/services/config"
	"github.com/de-tools/procurement-atlas/pkg/services/source"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxDatasetBytes = 32 << 20

type Generator interface {
	Generate(ctx context.Context, records []domain.ProcurementRecord, categories domain.CategoryTable) (*domain.Report, error)
}

type SourceOpener interface {
	Open(ctx context.Context, profile domain.SourceProfile) (source.Source, error)
}

type Handler struct {
	profiles  config.Registry
	sources   SourceOpener
	generator Generator
}

func NewHandler(profiles config.Registry, sources SourceOpener, generator Generator) *Handler {
	return &Handler{
		profiles:  profiles,
		sources:   sources,
		generator: generator,
	}
}

// CreateReport builds a report from the records and categories in the request body.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var dataset api.Dataset
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDatasetBytes)).Decode(&dataset); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid dataset: "+err.Error())
		return
	}

	records := adapters.MapApiRecordsToDomain(dataset.Records)
	categories := adapters.MapApiCategoriesToDomain(dataset.Categories)

	report, err := h.generator.Generate(ctx, records, categories)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate report")
		writeError(w, r, statusFor(err), err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(report))
}

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	profiles, err := h.profiles.GetProfiles(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list profiles")
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	response := make([]api.Profile, 0, len(profiles))
	for _, p := range profiles {
		response = append(response, adapters.MapProfileDomainToApi(p))
	}
	writeJSON(w, r, http.StatusOK, response)
}

// GetProfileReport renders the report of a configured profile as plain text,
// or as JSON when format=json is requested.
func (h *Handler) GetProfileReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "profile")
	logger := zerolog.Ctx(ctx).With().Str("profile", name).Logger()

	profile, err := h.profiles.GetProfile(ctx, name)
	if err != nil {
		writeError(w, r, statusFor(err), err.Error())
		return
	}

	src, err := h.sources.Open(ctx, profile)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open source")
		writeError(w, r, http.StatusBadGateway, err.Error())
		return
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close source")
		}
	}()

	records, categories, err := source.Load(ctx, src)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load procurement data")
		writeError(w, r, http.StatusBadGateway, err.Error())
		return
	}

	report, err := h.generator.Generate(ctx, records, categories)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate report")
		writeError(w, r, statusFor(err), err.Error())
		return
	}

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(report))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(report.String())); err != nil {
		logger.Error().Err(err).Msg("failed to write report")
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, config.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, analytics.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, api.Error{Error: msg})
}
