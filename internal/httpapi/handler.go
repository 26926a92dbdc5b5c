package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cavegen/internal/config"
	"cavegen/internal/core"
	"cavegen/internal/render"
	"cavegen/internal/session"
	"cavegen/internal/sims/cave"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
)

// ErrInvalidRequest marks client input that is well-formed JSON but out of range.
var ErrInvalidRequest = errors.New("invalid request")

const (
	defaultImageScale = 8
	maxImageScale     = 32

	// Used when Limits.MaxImagePixels is unset.
	defaultMaxImagePixels = 4 << 20
)

// Handler exposes cave runs over HTTP.
type Handler struct {
	Store    *session.Store
	Defaults cave.Config
	Limits   config.LimitsConfig
}

// RegisterRoutes mounts the cave API and the health check on s.
func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.GET("/healthz", h.health)

	s.POST("/api/caves", h.create)
	s.GET("/api/caves", h.list)

	caves := s.Group("/api/caves/:id")
	caves.GET("", h.get)
	caves.DELETE("", h.remove)
	caves.POST("/step", h.step)
	caves.POST("/reset", h.reset)
	caves.GET("/image.png", h.image)
}

type createRequest struct {
	Width       *int   `json:"width"`
	Height      *int   `json:"height"`
	WallPercent *int   `json:"wall_percent"`
	Seed        *int64 `json:"seed"`
}

type stepRequest struct {
	Steps int `json:"steps"`
}

type resetRequest struct {
	Seed        *int64 `json:"seed"`
	WallPercent *int   `json:"wall_percent"`
}

type caveResponse struct {
	ID          string    `json:"id"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	WallPercent int       `json:"wall_percent"`
	Seed        int64     `json:"seed"`
	Generation  int       `json:"generation"`
	Stable      bool      `json:"stable"`
	Walls       int       `json:"walls"`
	Rows        []string  `json:"rows,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h Handler) health(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{"status": "ok", "runs": h.Store.Len()})
}

func (h Handler) create(c context.Context, ctx *app.RequestContext) {
	var body createRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	cfg := h.Defaults
	cfg.Seed = 0
	if body.Width != nil {
		cfg.Width = *body.Width
	}
	if body.Height != nil {
		cfg.Height = *body.Height
	}
	if body.WallPercent != nil {
		cfg.WallPercent = *body.WallPercent
	}
	if body.Seed != nil {
		cfg.Seed = *body.Seed
	}
	if err := h.checkSize(cfg.Width, cfg.Height); err != nil {
		writeError(ctx, err)
		return
	}

	snap, err := h.Store.Create(cfg)
	if err != nil {
		writeError(ctx, err)
		return
	}
	hlog.CtxInfof(c, "cave %s created %dx%d wall=%d%% seed=%d", snap.ID, cfg.Width, cfg.Height, snap.Config.WallPercent, snap.Seed)
	ctx.JSON(consts.StatusCreated, toResponse(snap, true))
}

func (h Handler) list(_ context.Context, ctx *app.RequestContext) {
	snaps := h.Store.List()
	out := make([]caveResponse, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, toResponse(snap, false))
	}
	ctx.JSON(consts.StatusOK, map[string]any{"caves": out})
}

func (h Handler) get(_ context.Context, ctx *app.RequestContext) {
	id, err := runID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	snap, err := h.Store.Get(id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, toResponse(snap, true))
}

func (h Handler) step(c context.Context, ctx *app.RequestContext) {
	id, err := runID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body stepRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.Steps == 0 {
		body.Steps = 1
	}
	if limit := h.Limits.MaxStepsPerRequest; limit > 0 && body.Steps > limit {
		writeError(ctx, fmt.Errorf("%w: steps %d exceeds %d", ErrInvalidRequest, body.Steps, limit))
		return
	}

	snap, err := h.Store.Step(id, body.Steps)
	if err != nil {
		writeError(ctx, err)
		return
	}
	hlog.CtxDebugf(c, "cave %s stepped to generation %d", id, snap.Generation)
	ctx.JSON(consts.StatusOK, toResponse(snap, true))
}

func (h Handler) reset(c context.Context, ctx *app.RequestContext) {
	id, err := runID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body resetRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	snap, err := h.Store.Reset(id, session.ResetOptions{Seed: body.Seed, WallPercent: body.WallPercent})
	if err != nil {
		writeError(ctx, err)
		return
	}
	hlog.CtxInfof(c, "cave %s reset seed=%d wall=%d%%", id, snap.Seed, snap.Config.WallPercent)
	ctx.JSON(consts.StatusOK, toResponse(snap, true))
}

func (h Handler) remove(c context.Context, ctx *app.RequestContext) {
	id, err := runID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.Store.Delete(id); err != nil {
		writeError(ctx, err)
		return
	}
	hlog.CtxInfof(c, "cave %s deleted", id)
	ctx.SetStatusCode(consts.StatusNoContent)
}

func (h Handler) image(_ context.Context, ctx *app.RequestContext) {
	id, err := runID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	scale := defaultImageScale
	if raw := ctx.Query("scale"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxImageScale {
			writeError(ctx, fmt.Errorf("%w: scale must be 1..%d", ErrInvalidRequest, maxImageScale))
			return
		}
		scale = n
	}
	snap, err := h.Store.Get(id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.checkImageSize(snap.Grid, scale); err != nil {
		writeError(ctx, err)
		return
	}
	var buf bytes.Buffer
	if err := render.WritePNG(&buf, snap.Grid, cave.DisplayPalette(), scale); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(consts.StatusOK, "image/png", buf.Bytes())
}

func (h Handler) checkSize(w, hgt int) error {
	if w <= 0 || hgt <= 0 {
		return fmt.Errorf("%w: %dx%d", core.ErrInvalidDimensions, w, hgt)
	}
	if h.Limits.MaxWidth > 0 && w > h.Limits.MaxWidth {
		return fmt.Errorf("%w: width %d exceeds %d", ErrInvalidRequest, w, h.Limits.MaxWidth)
	}
	if h.Limits.MaxHeight > 0 && hgt > h.Limits.MaxHeight {
		return fmt.Errorf("%w: height %d exceeds %d", ErrInvalidRequest, hgt, h.Limits.MaxHeight)
	}
	return nil
}

func (h Handler) checkImageSize(g *core.Grid, scale int) error {
	limit := h.Limits.MaxImagePixels
	if limit <= 0 {
		limit = defaultMaxImagePixels
	}
	w, hgt := g.W*scale, g.H*scale
	if w*hgt > limit {
		return fmt.Errorf("%w: %dx%d image exceeds %d pixels, lower the scale", ErrInvalidRequest, w, hgt, limit)
	}
	return nil
}

func runID(ctx *app.RequestContext) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed cave id", ErrInvalidRequest)
	}
	return id, nil
}

func toResponse(snap session.Snapshot, withRows bool) caveResponse {
	resp := caveResponse{
		ID:          snap.ID.String(),
		Width:       snap.Grid.W,
		Height:      snap.Grid.H,
		WallPercent: snap.Config.WallPercent,
		Seed:        snap.Seed,
		Generation:  snap.Generation,
		Stable:      snap.Stable,
		Walls:       snap.Grid.Count(core.Wall),
		CreatedAt:   snap.CreatedAt,
		UpdatedAt:   snap.UpdatedAt,
	}
	if withRows {
		resp.Rows = render.Lines(snap.Grid)
	}
	return resp
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidDimensions):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_dimensions", err.Error())
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, session.ErrInvalidStep):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, session.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, session.ErrLimit):
		writeErrorBody(ctx, consts.StatusTooManyRequests, "run_limit", err.Error())
	default:
		hlog.Errorf("cave request failed: %v", err)
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
