package dto

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/interaction-analytics/internal/analytics"
	"github.com/spec-kit/interaction-analytics/internal/domain"
	apperrors "github.com/spec-kit/interaction-analytics/pkg/util/errorutil"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse payload.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	Role      string `json:"role"`
}

// IngestRecord is one normalized interaction record as submitted by the
// ingestion layer.
type IngestRecord struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"`
	Hour         int      `json:"hour"`
	Sector       string   `json:"sector"`
	Channel      string   `json:"channel"`
	ProductGroup string   `json:"product_group"`
	Tags         []string `json:"tags"`
	Process      string   `json:"process"`
	Status       string   `json:"status"`
}

// IngestRequest payload.
type IngestRequest struct {
	Records []IngestRecord `json:"records"`
}

// IngestResponse reports accepted and dropped record counts.
type IngestResponse struct {
	Accepted int `json:"accepted"`
	Dropped  int `json:"dropped"`
}

// BubbleRequest configures the dissatisfaction-score pipeline. Absent
// fields fall back to the configured defaults.
type BubbleRequest struct {
	Granularity *string                   `json:"granularity"`
	Weights     map[string]float64        `json:"weights"`
	Thresholds  *analytics.ZoneThresholds `json:"thresholds"`
}

// Event converts a submitted record into a domain event, reporting whether
// it was well-formed. Malformed records are dropped by the caller, never
// fatal.
func (r IngestRecord) Event() (domain.Event, bool) {
	date, ok := analytics.ParseDay(r.Date)
	if !ok {
		return domain.Event{}, false
	}
	if r.Hour < 0 || r.Hour > 23 {
		return domain.Event{}, false
	}
	sector, ok := domain.ParseSector(r.Sector)
	if !ok {
		return domain.Event{}, false
	}
	channel, ok := domain.ParseChannel(r.Channel)
	if !ok {
		return domain.Event{}, false
	}
	group, ok := domain.ParseProductGroup(r.ProductGroup)
	if !ok || group == domain.ProductGroupAll {
		return domain.Event{}, false
	}
	tags := domain.NewTagSet()
	for _, raw := range r.Tags {
		tag, known := domain.ParseProblemTag(raw)
		if !known {
			return domain.Event{}, false
		}
		tags[tag] = struct{}{}
	}
	if r.Process == "" || r.Status == "" {
		return domain.Event{}, false
	}
	return domain.Event{
		ID:           r.ID,
		CalendarDate: date,
		Hour:         r.Hour,
		Sector:       sector,
		Channel:      channel,
		ProductGroup: group,
		Tags:         tags,
		Process:      r.Process,
		Status:       r.Status,
	}, true
}

// ParseFilterSpec reads the shared filter query parameters.
func ParseFilterSpec(c *fiber.Ctx) (analytics.FilterSpec, error) {
	var spec analytics.FilterSpec

	if v := c.Query("sector"); v != "" {
		sector, ok := domain.ParseSector(v)
		if !ok {
			return spec, apperrors.NewValidationError("unknown sector", map[string]any{"sector": v})
		}
		spec.Sector = &sector
	}
	if v := c.Query("channel"); v != "" {
		channel, ok := domain.ParseChannel(v)
		if !ok {
			return spec, apperrors.NewValidationError("unknown channel", map[string]any{"channel": v})
		}
		spec.Channel = &channel
	}
	if v := c.Query("product_group"); v != "" {
		group, ok := domain.ParseProductGroup(v)
		if !ok {
			return spec, apperrors.NewValidationError("unknown product group", map[string]any{"product_group": v})
		}
		spec.ProductGroup = &group
	}
	if v := c.Query("from"); v != "" {
		from, ok := analytics.ParseDay(v)
		if !ok {
			return spec, apperrors.NewValidationError("invalid from date", map[string]any{"from": v})
		}
		spec.Dates.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, ok := analytics.ParseDay(v)
		if !ok {
			return spec, apperrors.NewValidationError("invalid to date", map[string]any{"to": v})
		}
		spec.Dates.To = &to
	}
	return spec, nil
}

// ParseGranularity reads the granularity query parameter, defaulting to day.
func ParseGranularity(c *fiber.Ctx) (domain.Granularity, error) {
	v := c.Query("granularity")
	if v == "" {
		return domain.GranularityDay, nil
	}
	g, ok := domain.ParseGranularity(v)
	if !ok {
		return "", apperrors.NewConfigError("unknown granularity", map[string]any{"granularity": v})
	}
	return g, nil
}
