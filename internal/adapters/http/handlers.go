package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/unaigarro/mapstamp/internal/core/domain"
	"github.com/unaigarro/mapstamp/internal/core/staticmap"
	"github.com/unaigarro/mapstamp/internal/core/usecases"
	"github.com/unaigarro/mapstamp/internal/pkg/metrics"
)

// mapOptionsPayload is the JSON/query representation of per-request
// rendering options. Pointer fields distinguish "unset" from zero.
type mapOptionsPayload struct {
	Size     string   `json:"size,omitempty"` // "WxH"
	Zoom     *int     `json:"zoom,omitempty"`
	Scale    *int     `json:"scale,omitempty"`
	Format   string   `json:"format,omitempty"`
	MapType  string   `json:"maptype,omitempty"`
	Language string   `json:"language,omitempty"`
	Region   string   `json:"region,omitempty"`
	Heading  *float64 `json:"heading,omitempty"`
	Pitch    *float64 `json:"pitch,omitempty"`
}

func (p mapOptionsPayload) toRequest() (usecases.MapRequest, error) {
	req := usecases.MapRequest{
		Zoom:     p.Zoom,
		Scale:    p.Scale,
		Format:   p.Format,
		MapType:  p.MapType,
		Language: p.Language,
		Region:   p.Region,
		Heading:  p.Heading,
		Pitch:    p.Pitch,
	}
	if p.Size != "" {
		var w, h int
		if n, err := fmt.Sscanf(p.Size, "%dx%d", &w, &h); err != nil || n != 2 {
			return req, fmt.Errorf("size must be WxH, got %q", p.Size)
		}
		req.Width, req.Height = w, h
	}
	return req, nil
}

// queryOptions reads rendering options from query parameters.
func queryOptions(c *fiber.Ctx) (usecases.MapRequest, error) {
	p := mapOptionsPayload{
		Size:     c.Query("size"),
		Format:   c.Query("format"),
		MapType:  c.Query("maptype"),
		Language: c.Query("language"),
		Region:   c.Query("region"),
	}
	if c.Query("zoom") != "" {
		z := c.QueryInt("zoom")
		p.Zoom = &z
	}
	if c.Query("scale") != "" {
		s := c.QueryInt("scale")
		p.Scale = &s
	}
	if c.Query("heading") != "" {
		h := c.QueryFloat("heading")
		p.Heading = &h
	}
	if c.Query("pitch") != "" {
		pt := c.QueryFloat("pitch")
		p.Pitch = &pt
	}
	return p.toRequest()
}

// orderedPair is a name/value pair whose list position is preserved in
// the serialized URL. Plain JSON objects cannot guarantee that.
type orderedPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func toParams(pairs []orderedPair) []staticmap.Param {
	out := make([]staticmap.Param, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, staticmap.Param{Key: p.Name, Value: p.Value})
	}
	return out
}

type urlResponse struct {
	URL string `json:"url"`
}

// StaticMapHandler builds a centered map URL from query parameters.
func StaticMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		center := c.Query("center")
		if center == "" {
			return errBadRequest(c, "center query parameter is required")
		}

		req, err := queryOptions(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		url, err := deps.Maps.BuildLocationURL(c.Context(), center, req)
		if err != nil {
			return errBuild(c, err)
		}

		metrics.URLsBuilt.WithLabelValues("location").Inc()
		return c.JSON(urlResponse{URL: url})
	}
}

// MarkersHandler builds a map URL carrying one or more marker groups.
func MarkersHandler(deps *Dependencies) fiber.Handler {
	type markerGroupPayload struct {
		Style     map[string]string `json:"style,omitempty"`
		Locations []string          `json:"locations"`
	}
	type body struct {
		Options mapOptionsPayload    `json:"options"`
		Markers []markerGroupPayload `json:"markers"`
	}

	return func(c *fiber.Ctx) error {
		var b body
		if err := c.BodyParser(&b); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if len(b.Markers) == 0 {
			return errBadRequest(c, "at least one marker group is required")
		}

		req, err := b.Options.toRequest()
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		groups := make([]staticmap.MarkerGroup, 0, len(b.Markers))
		for _, m := range b.Markers {
			groups = append(groups, staticmap.MarkerGroup{Style: m.Style, Locations: m.Locations})
		}

		url, err := deps.Maps.BuildMarkersURL(c.Context(), groups, req)
		if err != nil {
			return errBuild(c, err)
		}

		metrics.URLsBuilt.WithLabelValues("markers").Inc()
		return c.JSON(urlResponse{URL: url})
	}
}

// PathHandler builds a map URL with a single styled path.
func PathHandler(deps *Dependencies) fiber.Handler {
	type body struct {
		Options mapOptionsPayload `json:"options"`
		Points  []string          `json:"points"`
		Style   []orderedPair     `json:"style,omitempty"`
	}

	return func(c *fiber.Ctx) error {
		var b body
		if err := c.BodyParser(&b); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		req, err := b.Options.toRequest()
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		url, err := deps.Maps.BuildPathURL(c.Context(), staticmap.PathSpec{
			Style:  toParams(b.Style),
			Points: b.Points,
		}, req)
		if err != nil {
			return errBuild(c, err)
		}

		metrics.URLsBuilt.WithLabelValues("path").Inc()
		return c.JSON(urlResponse{URL: url})
	}
}

// StyledHandler builds a map URL with positional style rules.
func StyledHandler(deps *Dependencies) fiber.Handler {
	type stylePayload struct {
		Feature string        `json:"feature,omitempty"`
		Element string        `json:"element,omitempty"`
		Rules   []orderedPair `json:"rules,omitempty"`
	}
	type body struct {
		Options mapOptionsPayload `json:"options"`
		Styles  []stylePayload    `json:"styles"`
	}

	return func(c *fiber.Ctx) error {
		var b body
		if err := c.BodyParser(&b); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if len(b.Styles) == 0 {
			return errBadRequest(c, "at least one style rule is required")
		}

		req, err := b.Options.toRequest()
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		rules := make([]staticmap.StyleRule, 0, len(b.Styles))
		for _, s := range b.Styles {
			rules = append(rules, staticmap.StyleRule{
				Feature: s.Feature,
				Element: s.Element,
				Rules:   toParams(s.Rules),
			})
		}

		url, err := deps.Maps.BuildStyledURL(c.Context(), rules, req)
		if err != nil {
			return errBuild(c, err)
		}

		metrics.URLsBuilt.WithLabelValues("styled").Inc()
		return c.JSON(urlResponse{URL: url})
	}
}

// GetAPIKeyHandler reports whether a key is configured. The key itself
// never leaves the server; only a masked tail is returned for display.
func GetAPIKeyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, err := deps.Settings.APIKey(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{
			"configured": key != "",
			"masked":     maskKey(key),
		})
	}
}

// PutAPIKeyHandler stores a new API key.
func PutAPIKeyHandler(deps *Dependencies) fiber.Handler {
	type body struct {
		APIKey string `json:"api_key"`
	}
	return func(c *fiber.Ctx) error {
		var b body
		if err := c.BodyParser(&b); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		key := strings.TrimSpace(b.APIKey)
		if key == "" {
			return errBadRequest(c, "api_key must not be empty")
		}
		if err := deps.Settings.SetAPIKey(c.Context(), key); err != nil {
			return errInternal(c, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ValidateKeyHandler probes the live API with a minimal 1x1 request
// and reports whether the stored key was accepted.
func ValidateKeyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		valid, err := deps.Maps.ValidateKey(c.Context())
		if err != nil {
			return errBuild(c, err)
		}
		result := "invalid"
		if valid {
			result = "valid"
		}
		metrics.KeyValidations.WithLabelValues(result).Inc()
		return c.JSON(fiber.Map{"valid": valid})
	}
}

// CreateSnapshotHandler builds a location URL and enqueues a snapshot
// request for the worker. Responds 202 once the request is queued.
func CreateSnapshotHandler(deps *Dependencies) fiber.Handler {
	type body struct {
		Title    string            `json:"title"`
		Filename string            `json:"filename,omitempty"`
		AltText  string            `json:"alt_text,omitempty"`
		Folder   string            `json:"folder,omitempty"`
		Center   string            `json:"center"`
		Options  mapOptionsPayload `json:"options"`
	}

	return func(c *fiber.Ctx) error {
		var b body
		if err := c.BodyParser(&b); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if b.Center == "" {
			return errBadRequest(c, "center is required")
		}

		req, err := b.Options.toRequest()
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		url, err := deps.Maps.BuildLocationURL(c.Context(), b.Center, req)
		if err != nil {
			return errBuild(c, err)
		}

		snapReq := &domain.SnapshotRequest{
			Title:    b.Title,
			Filename: b.Filename,
			AltText:  b.AltText,
			Folder:   b.Folder,
			URL:      url,
		}
		if err := deps.Snapshots.Request(c.Context(), snapReq); err != nil {
			return errInternal(c, err.Error())
		}

		metrics.SnapshotsRequested.Inc()
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"status":   "queued",
			"url":      url,
			"filename": snapReq.Filename,
		})
	}
}

// ListSnapshotsHandler returns stored snapshots, newest first.
func ListSnapshotsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offset, limit := ParsePagination(c)

		snaps, total, err := deps.Snapshots.List(c.Context(), offset, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: snaps, Pagination: pg})
	}
}

// GetSnapshotHandler returns a single stored snapshot by ID.
func GetSnapshotHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "snapshot id is required")
		}
		snap, err := deps.Snapshots.GetByID(c.Context(), id)
		if err != nil {
			return errInternal(c, err.Error())
		}
		if snap == nil {
			return errNotFound(c, "snapshot not found")
		}
		return c.JSON(snap)
	}
}

// maskKey hides all but the last four characters of a key.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
