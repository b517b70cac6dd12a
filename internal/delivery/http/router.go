package http

import (
	"log/slog"
	"net/http"

	"orgcalendar/internal/delivery/http/controllers"
	"orgcalendar/internal/delivery/http/helpers"
	"orgcalendar/internal/delivery/http/middleware"
	"orgcalendar/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth     *controllers.AuthController
	Events   *controllers.EventController
	Meetings *controllers.MeetingController
	Users    *controllers.UserController
	Calendar *controllers.CalendarController
}

// NewRouter initializes the HTTP router with all application routes.
// Routes other than auth sign-up/login, health, metrics and swagger require a
// bearer token resolved through identity.
func NewRouter(c Controllers, identity domain.IdentityVerifier, metrics http.Handler, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(identity, logger)

	// Auth
	mux.HandleFunc("POST /auth/register", c.Auth.Register)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /auth/me", auth(c.Auth.Me))

	// Events
	mux.HandleFunc("GET /events", auth(c.Events.ListEvents))
	mux.HandleFunc("POST /events", auth(c.Events.CreateEvent))
	mux.HandleFunc("GET /events/{id}", auth(c.Events.GetEvent))
	mux.HandleFunc("PUT /events/{id}", auth(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{id}", auth(c.Events.DeleteEvent))

	// Meetings
	mux.HandleFunc("GET /meetings", auth(c.Meetings.ListMeetings))
	mux.HandleFunc("POST /meetings", auth(c.Meetings.CreateMeeting))
	mux.HandleFunc("GET /meetings/{id}", auth(c.Meetings.GetMeeting))
	mux.HandleFunc("PUT /meetings/{id}", auth(c.Meetings.UpdateMeeting))
	mux.HandleFunc("DELETE /meetings/{id}", auth(c.Meetings.DeleteMeeting))

	// Users; the literal /users/members wins over /users/{id}.
	mux.HandleFunc("GET /users", auth(c.Users.ListUsers))
	mux.HandleFunc("GET /users/members", auth(c.Users.ListMembers))
	mux.HandleFunc("GET /users/{id}", auth(c.Users.GetUser))
	mux.HandleFunc("PUT /users/{id}", auth(c.Users.UpdateUser))

	// Calendar feed
	mux.HandleFunc("GET /calendar.ics", auth(c.Calendar.ExportCalendar))

	mux.HandleFunc("GET /health", health)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"}, "")
}
