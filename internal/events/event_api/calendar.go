package event_api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"club-events/internal/models"
	"club-events/internal/utils"
)

// DownloadCalendar serves the public listing as an iCalendar file so the
// events can be imported into a personal calendar.
// GET /api/events/calendar
func (h *Handler) DownloadCalendar(w http.ResponseWriter, r *http.Request) {
	evts, err := h.EventService.ListAll(r.Context())
	if err != nil {
		h.Logger.Error("EVENTS", fmt.Sprintf("Failed to build calendar: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load events")
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", `attachment; filename="vce-events.ics"`)
	w.Write([]byte(buildCalendar(evts)))
}

// EventQR renders the event's registration link as a PNG QR code, sized for
// posters and flyers.
// GET /api/events/{id}/qr
func (h *Handler) EventQR(w http.ResponseWriter, r *http.Request) {
	event, err := h.EventService.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, "load", err)
		return
	}

	png, err := qrcode.Encode(event.Registration, qrcode.Medium, 256)
	if err != nil {
		h.Logger.Error("EVENTS", fmt.Sprintf("Failed to encode QR for event %s: %v", event.ID, err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// buildCalendar assembles a VCALENDAR document. Canonical dates become an
// all-morning DTSTART at 09:00, matching the downloadable file the site has
// always produced.
func buildCalendar(evts []models.Event) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//VCE//Upcoming Events//EN\r\n")
	for _, event := range evts {
		start := strings.ReplaceAll(event.Date, "-", "") + "T090000Z"
		b.WriteString("BEGIN:VEVENT\r\n")
		b.WriteString(fmt.Sprintf("UID:vce-%s@vardhaman.edu\r\n", event.ID))
		b.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", start))
		b.WriteString(fmt.Sprintf("DTSTART:%s\r\n", start))
		b.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(event.Title)))
		b.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(event.Venue)))
		b.WriteString("END:VEVENT\r\n")
	}
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func escapeICS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
