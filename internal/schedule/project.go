package schedule

import "github.com/tripterrior/tripterrior/internal/model"

// EventColor is the display color assigned to every projected calendar
// event. There is no per-record color logic.
const EventColor = "#5302FF"

// Project transforms backend travel records into display-ready calendar
// events. Output order mirrors input order for display stability, and
// the result always has the same length as the input.
func Project(records []model.TravelRecord) []model.TravelEvent {
	events := make([]model.TravelEvent, 0, len(records))
	for _, rec := range records {
		events = append(events, model.TravelEvent{
			Title: rec.Name,
			Start: rec.StartDate,
			End:   rec.EndDate,
			Color: EventColor,
		})
	}
	return events
}
