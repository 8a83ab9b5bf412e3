package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sweeney/intake-chart/internal/chart"
	"github.com/sweeney/intake-chart/internal/render"
)

// ChartRequest asks for one encoded frame. A non-nil Pointer moves the
// highlight to the entry nearest that pixel before drawing.
type ChartRequest struct {
	Format  render.Format
	Pointer *chart.Point
}

// ChartRenderer produces chart frames. The daemon implements it by handing
// the request to the goroutine that owns the chart.
type ChartRenderer interface {
	RenderChart(ctx context.Context, req ChartRequest) ([]byte, error)
}

// parseChartRequest reads the format from the path and the optional px/py
// pointer from the query. px and py must be given together.
func parseChartRequest(r *http.Request) (ChartRequest, error) {
	ext := strings.TrimPrefix(r.URL.Path, "/chart.")
	f, err := render.ParseFormat(ext)
	if err != nil {
		return ChartRequest{}, err
	}
	req := ChartRequest{Format: f}

	q := r.URL.Query()
	pxs, pys := q.Get("px"), q.Get("py")
	if pxs == "" && pys == "" {
		return req, nil
	}
	if pxs == "" || pys == "" {
		return ChartRequest{}, errors.New("px and py must be given together")
	}
	px, err := strconv.ParseFloat(pxs, 64)
	if err != nil {
		return ChartRequest{}, fmt.Errorf("invalid px: %w", err)
	}
	py, err := strconv.ParseFloat(pys, 64)
	if err != nil {
		return ChartRequest{}, fmt.Errorf("invalid py: %w", err)
	}
	req.Pointer = &chart.Point{X: px, Y: py}
	return req, nil
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if s.charts == nil {
		http.Error(w, "chart rendering disabled", http.StatusServiceUnavailable)
		return
	}
	req, err := parseChartRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := s.charts.RenderChart(r.Context(), req)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "chart not ready", http.StatusServiceUnavailable)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Write(body)
}
