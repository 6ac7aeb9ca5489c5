package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/rentfolio/internal/common"
	"github.com/bobmcallan/rentfolio/internal/interfaces"
	"github.com/bobmcallan/rentfolio/internal/models"
	"github.com/bobmcallan/rentfolio/internal/services/analysis"
)

// listingErrorStatus maps a ListingStorage error to an HTTP status: 404 only
// for a missing dataset, 500 for read or parse faults.
func listingErrorStatus(err error) int {
	if errors.Is(err, interfaces.ErrDatasetNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": common.GetVersion(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleConfig handles GET /api/config — the effective default assumptions.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment": s.app.Config.Environment,
		"analysis":    s.app.Config.Analysis,
	})
}

// handleMetrics handles GET /api/metrics — the supported sort metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"metrics": analysis.SupportedMetrics(),
	})
}

// handleDatasets handles GET /api/datasets.
func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	datasets, err := s.app.Storage.ListingStorage().ListDatasets(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"datasets": datasets})
}

// handleListings handles GET /api/listings?dataset=NAME.
func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	dataset := r.URL.Query().Get("dataset")
	if dataset == "" {
		WriteError(w, http.StatusBadRequest, "dataset query parameter is required")
		return
	}
	listings, err := s.app.Storage.ListingStorage().GetListings(r.Context(), dataset)
	if err != nil {
		WriteError(w, listingErrorStatus(err), err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"dataset":  dataset,
		"count":    len(listings),
		"listings": listings,
	})
}

// resolveParams merges a raw JSON params override onto the configured
// defaults; absent fields keep their default values.
func (s *Server) resolveParams(raw json.RawMessage) (models.AnalysisParams, error) {
	params := s.app.Config.Analysis
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &params); err != nil {
			return params, err
		}
	}
	return params, nil
}

// handleAnalyze handles POST /api/analyze: one listing, optional params overrides.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Listing models.Listing  `json:"listing"`
		Params  json.RawMessage `json:"params,omitempty"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Listing.ZPID == "" {
		WriteError(w, http.StatusBadRequest, "listing.zpid is required")
		return
	}

	params, err := s.resolveParams(req.Params)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid params: "+err.Error())
		return
	}

	result := s.app.AnalysisService.Analyze(req.Listing, params)
	WriteJSON(w, http.StatusOK, result)
}

// handleAnalyzeBatch handles POST /api/analyze/batch: a whole dataset against
// one parameter set, optionally ranked by a named metric.
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Dataset string          `json:"dataset"`
		Params  json.RawMessage `json:"params,omitempty"`
		Sort    string          `json:"sort,omitempty"`
		Limit   int             `json:"limit,omitempty"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Dataset == "" {
		WriteError(w, http.StatusBadRequest, "dataset is required")
		return
	}

	params, err := s.resolveParams(req.Params)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid params: "+err.Error())
		return
	}

	listings, err := s.app.Storage.ListingStorage().GetListings(r.Context(), req.Dataset)
	if err != nil {
		WriteError(w, listingErrorStatus(err), err.Error())
		return
	}

	batch, err := s.app.AnalysisService.AnalyzeBatch(r.Context(), listings, params)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := map[string]interface{}{
		"dataset": req.Dataset,
		"summary": batch.Summary,
		"params":  batch.Params,
		"results": batch.Results,
	}

	if req.Sort != "" {
		metric, err := analysis.ParseMetric(req.Sort)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		response["ranked"] = analysis.RankResults(batch.Results, metric, req.Limit)
	}

	WriteJSON(w, http.StatusOK, response)
}

// routeListings dispatches /api/listings/{zpid}/... subresources.
func (s *Server) routeListings(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case strings.HasSuffix(path, "/analysis"):
		s.handleListingAnalysis(w, r)
	case strings.HasSuffix(path, "/chart/equity"):
		s.handleListingChart(w, r, analysis.RenderEquityChart)
	case strings.HasSuffix(path, "/chart/wealth"):
		s.handleListingChart(w, r, analysis.RenderWealthChart)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// handleListingAnalysis handles GET /api/listings/{zpid}/analysis — the
// persisted snapshots for a listing.
func (s *Server) handleListingAnalysis(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	zpid := PathParam(r, "/api/listings/", "/analysis")
	if zpid == "" {
		WriteError(w, http.StatusBadRequest, "zpid is required")
		return
	}

	snapshots, err := s.app.Storage.SnapshotStorage().ListSnapshots(r.Context(), zpid)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(snapshots) == 0 {
		WriteError(w, http.StatusNotFound, "no analysis snapshots for listing "+zpid)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"zpid":      zpid,
		"snapshots": snapshots,
	})
}

// handleListingChart renders a chart PNG from the most recent snapshot.
func (s *Server) handleListingChart(w http.ResponseWriter, r *http.Request, render func(*models.AnalysisResult) ([]byte, error)) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	zpid := PathParam(r, "/api/listings/", "/chart/")
	if zpid == "" {
		WriteError(w, http.StatusBadRequest, "zpid is required")
		return
	}

	snapshots, err := s.app.Storage.SnapshotStorage().ListSnapshots(r.Context(), zpid)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(snapshots) == 0 {
		WriteError(w, http.StatusNotFound, "no analysis snapshots for listing "+zpid)
		return
	}

	latest := snapshots[0]
	for _, snap := range snapshots[1:] {
		if snap.CreatedAt.After(latest.CreatedAt) {
			latest = snap
		}
	}

	png, err := render(latest.Result)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WritePNG(w, png)
}
