package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tripterrior/tripterrior/internal/api"
	"github.com/tripterrior/tripterrior/internal/auth"
	"github.com/tripterrior/tripterrior/internal/model"
	"github.com/tripterrior/tripterrior/internal/schedule"
	ws "github.com/tripterrior/tripterrior/internal/websocket"
)

// CalendarHandler serves the family travel calendar and the schedule
// creation flow.
type CalendarHandler struct {
	api       *api.Client
	submitter *schedule.Submitter
	hub       *ws.Hub
	templates *template.Template
	logger    *slog.Logger
}

func NewCalendarHandler(client *api.Client, submitter *schedule.Submitter, hub *ws.Hub, templates *template.Template, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{
		api:       client,
		submitter: submitter,
		hub:       hub,
		templates: templates,
		logger:    logger,
	}
}

// scheduleFormView re-renders the creation form with the entered values
// preserved so a failed submit never loses the user's input.
type scheduleFormView struct {
	Destination string
	Start       schedule.DateSelection
	End         schedule.DateSelection
	Error       string
}

// familyFormView is the family-creation form shown to users who do not
// belong to a family yet.
type familyFormView struct {
	Nickname string
	Error    string
}

// Page serves GET /myfamily/calendar. A failed event fetch renders an
// empty calendar rather than an error page, and the group image is
// decorative: failures on either are logged and the page goes out.
// A user without a family gets the family-creation form instead of the
// group image.
func (c *CalendarHandler) Page(w http.ResponseWriter, r *http.Request) {
	token := auth.Token(r.Context())

	events := c.fetchEvents(r, token)

	groupImage := ""
	hasFamily := true
	if user, err := c.api.FetchUser(r.Context(), token); err != nil {
		c.logger.Error("fetch user for group image", "error", err)
	} else if user.FamilyID == 0 {
		hasFamily = false
	} else if family, err := c.api.FetchFamily(r.Context(), token, user.FamilyID); err != nil {
		c.logger.Error("fetch family for group image", "error", err)
	} else {
		groupImage = family.ProfileImage
	}

	render(w, c.templates, c.logger, "calendar.html", map[string]any{
		"Events":     events,
		"GroupImage": groupImage,
		"HasFamily":  hasFamily,
		"FamilyForm": familyFormView{},
	})
}

// FamilyCreate handles POST /partials/family. On success the page
// reloads so the header picks up the new family.
func (c *CalendarHandler) FamilyCreate(w http.ResponseWriter, r *http.Request) {
	token := auth.Token(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	form := familyFormView{Nickname: strings.TrimSpace(r.FormValue("nickname"))}
	if form.Nickname == "" {
		form.Error = "가족 이름을 입력하세요."
		render(w, c.templates, c.logger, "family-form", form)
		return
	}

	if err := c.api.CreateFamily(r.Context(), token, form.Nickname); err != nil {
		c.logger.Error("create family", "error", err)
		form.Error = "가족 생성에 실패 했습니다"
		render(w, c.templates, c.logger, "family-form", form)
		return
	}

	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
}

// EventsPartial serves GET /partials/calendar/events: the projected
// event list, re-fetched from the backend.
func (c *CalendarHandler) EventsPartial(w http.ResponseWriter, r *http.Request) {
	token := auth.Token(r.Context())
	render(w, c.templates, c.logger, "event-list", map[string]any{
		"Events": c.fetchEvents(r, token),
	})
}

// ScheduleNewForm serves GET /partials/calendar/schedule/new.
func (c *CalendarHandler) ScheduleNewForm(w http.ResponseWriter, r *http.Request) {
	render(w, c.templates, c.logger, "schedule-form", scheduleFormView{})
}

// ScheduleCreate handles POST /partials/calendar/schedule.
//
// The range is validated server-side even though the form validates on
// every change; an invalid submit re-renders the form with the message
// and the entered values. A valid submit goes to the backend exactly
// once, and on success the refreshed event list replaces the form.
func (c *CalendarHandler) ScheduleCreate(w http.ResponseWriter, r *http.Request) {
	token := auth.Token(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	form := scheduleFormView{
		Destination: r.FormValue("destination"),
		Start: schedule.DateSelection{
			Year:  r.FormValue("start_year"),
			Month: r.FormValue("start_month"),
			Day:   r.FormValue("start_day"),
		},
		End: schedule.DateSelection{
			Year:  r.FormValue("end_year"),
			Month: r.FormValue("end_month"),
			Day:   r.FormValue("end_day"),
		},
	}

	if vs := schedule.Validate(form.Destination, form.Start, form.End); !vs.ButtonEnabled {
		form.Error = vs.ErrorMessage
		render(w, c.templates, c.logger, "schedule-form", form)
		return
	}

	err := c.submitter.Submit(r.Context(), token, form.Destination, form.Start, form.End)
	switch {
	case errors.Is(err, schedule.ErrAlreadySubmitting):
		form.Error = "일정을 등록하는 중입니다. 잠시 후 다시 시도하세요."
		render(w, c.templates, c.logger, "schedule-form", form)
		return
	case err != nil:
		c.logger.Error("create schedule", "destination", form.Destination, "error", err)
		form.Error = "일정 등록에 실패 했습니다"
		render(w, c.templates, c.logger, "schedule-form", form)
		return
	}

	c.hub.Broadcast(ws.NewMessage("travel", "created", 0))

	// Tell the page to close the creation modal, then hand back the
	// refreshed event list.
	w.Header().Set("HX-Trigger", "schedule-created")
	render(w, c.templates, c.logger, "event-list", map[string]any{
		"Events": c.fetchEvents(r, token),
	})
}

// fetchEvents loads and projects the family's travel records. On fetch
// failure it logs and returns an empty list; the calendar stays up.
func (c *CalendarHandler) fetchEvents(r *http.Request, token string) []model.TravelEvent {
	records, err := c.api.ListTravels(r.Context(), token)
	if err != nil {
		c.logger.Error("fetch travel events", "error", err)
		return []model.TravelEvent{}
	}
	return schedule.Project(records)
}
