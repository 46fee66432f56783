package handlers

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"advancedstats/chart"
	"advancedstats/database"
	"advancedstats/render"
	"advancedstats/services"
	"advancedstats/utils"
)

const (
	comparingParam = "comparing-event"
	maxPayloadSize = 1 << 20
)

type Handler struct {
	Stats    *services.Stats
	Insights *services.Insights
	// Token, when set, is required as a bearer token on every route but /health.
	Token string
}

func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(h.requireToken)

	stats := api.PathPrefix("/control/event/{organizer}/{event}/advanced_stats").Subrouter()
	stats.HandleFunc("/", h.HandleAdvancedStats).Methods(http.MethodGet)
	stats.HandleFunc("/config.json", h.HandleChartConfig).Methods(http.MethodGet)
	stats.HandleFunc("/chart.png", h.widgetHandler("image/png", render.PNG)).Methods(http.MethodGet)
	stats.HandleFunc("/chart.xlsx", h.widgetHandler("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", render.XLSX)).Methods(http.MethodGet)
	stats.HandleFunc("/echarts", h.widgetHandler("text/html; charset=utf-8", render.ECharts)).Methods(http.MethodGet)
	stats.HandleFunc("/insights", h.HandleInsights).Methods(http.MethodGet)

	api.HandleFunc("/chart/config", HandleConfigure).Methods(http.MethodPost)
	api.HandleFunc("/webhooks/orders", h.HandleOrderWebhook).Methods(http.MethodPost)
	return r
}

func (h *Handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Token != "" {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(h.Token)) != 1 {
				utils.WriteError(w, http.StatusUnauthorized, "missing or invalid token")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// comparison loads the statistics for the route's event, writing the error
// response itself when it fails.
func (h *Handler) comparison(w http.ResponseWriter, r *http.Request) (*services.Comparison, bool) {
	vars := mux.Vars(r)
	organizer, event := vars["organizer"], vars["event"]
	comparing := r.URL.Query().Get(comparingParam)

	if !utils.ValidateSlug(organizer) || !utils.ValidateSlug(event) {
		utils.WriteError(w, http.StatusBadRequest, "invalid organizer or event")
		return nil, false
	}
	if comparing != "" && !utils.ValidateSlug(comparing) {
		utils.WriteError(w, http.StatusBadRequest, "invalid comparing event")
		return nil, false
	}

	cmp, err := h.Stats.SelloutComparison(r.Context(), organizer, event, comparing)
	if errors.Is(err, database.ErrEventNotFound) {
		utils.WriteError(w, http.StatusNotFound, "event not found")
		return nil, false
	}
	if err != nil {
		log.Printf("Loading statistics for %s/%s failed: %v", organizer, event, err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load statistics")
		return nil, false
	}
	return cmp, true
}

// widget runs the chart pipeline on the serialized dataset, exactly as the
// page does with its data-chart attribute.
func widget(ds chart.Dataset) (string, *chart.Widget, error) {
	raw, err := ds.Encode()
	if err != nil {
		return "", nil, err
	}
	cfg, err := chart.Configure(raw)
	if err != nil {
		return "", nil, err
	}
	w, err := chart.Render(chart.DefaultSurface, cfg)
	if err != nil {
		return "", nil, err
	}
	return raw, w, nil
}

func (h *Handler) HandleAdvancedStats(w http.ResponseWriter, r *http.Request) {
	cmp, ok := h.comparison(w, r)
	if !ok {
		return
	}

	raw, wg, err := widget(cmp.Dataset)
	if err != nil {
		log.Printf("Building chart for %s failed: %v", cmp.Event.Slug, err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to build chart")
		return
	}

	page := render.Page{
		EventName:    cmp.Event.Name,
		SelectedSlug: cmp.SelectedSlug,
		HasOrders:    cmp.HasOrders,
		DataChart:    raw,
		Widget:       wg,
	}
	for _, e := range cmp.Events {
		page.Events = append(page.Events, render.EventOption{Slug: e.Slug, Name: e.Name})
	}

	var buf bytes.Buffer
	if err := render.HTML(&buf, page); err != nil {
		log.Printf("Template error: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
}

func (h *Handler) HandleChartConfig(w http.ResponseWriter, r *http.Request) {
	cmp, ok := h.comparison(w, r)
	if !ok {
		return
	}
	_, wg, err := widget(cmp.Dataset)
	if err != nil {
		log.Printf("Building chart for %s failed: %v", cmp.Event.Slug, err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to build chart")
		return
	}
	utils.WriteJSON(w, http.StatusOK, wg.Config)
}

func (h *Handler) widgetHandler(contentType string, fn func(io.Writer, *chart.Widget) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmp, ok := h.comparison(w, r)
		if !ok {
			return
		}
		_, wg, err := widget(cmp.Dataset)
		if err != nil {
			log.Printf("Building chart for %s failed: %v", cmp.Event.Slug, err)
			utils.WriteError(w, http.StatusInternalServerError, "failed to build chart")
			return
		}

		var buf bytes.Buffer
		err = fn(&buf, wg)
		if errors.Is(err, chart.ErrEmptySeries) {
			utils.WriteError(w, http.StatusNotFound, "no ticket sales to plot")
			return
		}
		if err != nil {
			log.Printf("Rendering %s for %s failed: %v", contentType, cmp.Event.Slug, err)
			utils.WriteError(w, http.StatusInternalServerError, "failed to render chart")
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(buf.Bytes())
	}
}

// HandleConfigure turns a posted data-chart payload into its chart configuration.
func HandleConfigure(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadSize))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := chart.Configure(string(body))
	var parseErr *chart.ParseError
	var shapeErr *chart.ShapeError
	switch {
	case errors.As(err, &parseErr), errors.As(err, &shapeErr):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, cfg)
}

func (h *Handler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	if h.Insights == nil || h.Insights.Generator == nil {
		utils.WriteError(w, http.StatusServiceUnavailable, services.ErrNoProvider.Error())
		return
	}
	cmp, ok := h.comparison(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	text, err := h.Insights.Summarize(ctx, cmp)
	if err != nil {
		log.Printf("Insights for %s failed: %v", cmp.Event.Slug, err)
		utils.WriteError(w, http.StatusBadGateway, fmt.Sprintf("insights generation error: %v", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"insights": text})
}
