package eventchat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RankedEvent is one recommended event from the side channel.
type RankedEvent struct {
	Title         string
	URL           string
	Category      string     // empty when the event has no category
	ScheduledDate *time.Time // nil when the server sent no date
	Score         float64
}

// wireEvent mirrors the JSON item sent by the server. Pointers distinguish
// missing fields from zero values.
type wireEvent struct {
	Title         *string  `json:"title"`
	URL           *string  `json:"url"`
	Category      *string  `json:"category"`
	ScheduledDate *string  `json:"scheduled_date"`
	Score         *float64 `json:"score"`
}

// dateLayouts are tried in order when parsing scheduled_date. The server
// emits Python isoformat(), which may lack a zone offset.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// DecodeEvents decodes a side-channel JSON array into ranked events,
// preserving array order. Every item must carry a title, a url and a score.
func DecodeEvents(data []byte) ([]RankedEvent, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, errors.New("payload is not a JSON array")
	}
	var items []wireEvent
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	events := make([]RankedEvent, 0, len(items))
	for i, item := range items {
		ev, err := item.toRankedEvent()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func (w wireEvent) toRankedEvent() (RankedEvent, error) {
	if w.Title == nil || *w.Title == "" {
		return RankedEvent{}, errors.New("missing title")
	}
	if w.URL == nil || *w.URL == "" {
		return RankedEvent{}, errors.New("missing url")
	}
	if w.Score == nil {
		return RankedEvent{}, errors.New("missing score")
	}
	ev := RankedEvent{
		Title: *w.Title,
		URL:   *w.URL,
		Score: *w.Score,
	}
	if w.Category != nil {
		ev.Category = *w.Category
	}
	if w.ScheduledDate != nil && *w.ScheduledDate != "" {
		t, err := parseDate(*w.ScheduledDate)
		if err != nil {
			return RankedEvent{}, err
		}
		ev.ScheduledDate = &t
	}
	return ev, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid scheduled_date %q", s)
}
