package handlers

import (
	"net/http"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// EventHandler serves the event catalog. Events live in PocketBase
// collections (see migrations); purchased tickets reference them by
// name only.
type EventHandler struct {
	app *pocketbase.PocketBase
}

func NewEventHandler(app *pocketbase.PocketBase) *EventHandler {
	return &EventHandler{app: app}
}

// List - published events, optional ?search= on name or venue
func (h *EventHandler) List(e *core.RequestEvent) error {
	filter := "status = 'published'"
	params := map[string]any{}

	if search := e.Request.URL.Query().Get("search"); search != "" {
		filter = "status = 'published' && (name ~ {:search} || venue ~ {:search})"
		params["search"] = search
	}

	events, err := h.app.FindRecordsByFilter(
		"events",
		filter,
		"event_date",
		-1,
		0,
		params,
	)
	if err != nil {
		return apis.NewBadRequestError("Failed to get events", err)
	}

	items := make([]map[string]any, 0, len(events))
	for _, event := range events {
		items = append(items, map[string]any{
			"id":         event.Id,
			"name":       event.GetString("name"),
			"venue":      event.GetString("venue"),
			"event_date": event.GetDateTime("event_date"),
			"zones":      event.Get("zones"),
			"base_price": event.GetFloat("base_price"),
			"status":     event.GetString("status"),
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"events": items,
		"total":  len(items),
	})
}

// Venues - distinct venues with published events, for the browse filter
func (h *EventHandler) Venues(e *core.RequestEvent) error {
	var rows []dbx.NullStringMap
	err := h.app.DB().
		NewQuery("SELECT DISTINCT venue FROM events WHERE status = {:status} ORDER BY venue").
		Bind(dbx.Params{"status": "published"}).
		All(&rows)
	if err != nil {
		return apis.NewBadRequestError("Failed to get venues", err)
	}

	venues := make([]string, 0, len(rows))
	for _, row := range rows {
		if venue := row["venue"].String; venue != "" {
			venues = append(venues, venue)
		}
	}

	return e.JSON(http.StatusOK, map[string]any{"venues": venues})
}
