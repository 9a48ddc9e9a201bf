package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/dhamma-seva/registration-api/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Intake       *IntakeHandler
	Allocation   *AllocationHandler
	Import       *ImportHandler
	Rooms        *RoomHandler
	Stats        *StatsHandler
	Courses      *CourseHandler
	Participants *ParticipantHandler
	Expenses     *ExpenseHandler
}

func RegisterRoutes(r *chi.Mux, authHandler *auth.AuthHandler, h Handlers) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	config := huma.DefaultConfig("Course Registration Logistics API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: "X-API-KEY",
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	huma.Post(api, "/auth/login", authHandler.HandleLogin)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authHandler.AuthMiddleware)

		secured := func(o *huma.Operation) {
			o.Security = []map[string][]string{{"cookieAuth": {}}, {"apiKeyAuth": {}}}
		}

		// Intake pipeline
		huma.Post(api, "/participants/arrival", h.Intake.HandleArrival, secured)
		huma.Post(api, "/participants/stage", h.Intake.HandleAdvanceStage, secured)
		huma.Post(api, "/participants/gate-checkin", h.Intake.HandleGateCheckIn, secured)
		huma.Post(api, "/participants/gate-cancel", h.Intake.HandleGateCancel, secured)
		huma.Post(api, "/participants/onboard", h.Allocation.HandleOnboard, secured)

		// Participant records
		huma.Post(api, "/participants", h.Participants.HandleCreateParticipant, secured)
		huma.Put(api, "/participants/{id}", h.Participants.HandleUpdateParticipant, secured)
		huma.Delete(api, "/participants/{id}", h.Participants.HandleDeleteParticipant, secured)

		// Courses
		huma.Post(api, "/courses", h.Courses.HandleCreateCourse, secured)
		huma.Get(api, "/courses", h.Courses.HandleListCourses, secured)
		huma.Get(api, "/courses/{id}/participants", h.Courses.HandleListParticipants, secured)
		huma.Post(api, "/courses/{id}/import", h.Import.HandleImport, secured)
		huma.Get(api, "/courses/{id}/global-occupied", h.Allocation.HandleGlobalOccupied, secured)
		huma.Get(api, "/courses/{id}/stats", h.Stats.HandleStats, secured)
		huma.Post(api, "/courses/{id}/reset", h.Courses.HandleResetCourse, secured)
		huma.Post(api, "/courses/{id}/no-show-sweep", h.Courses.HandleNoShowSweep, secured)

		// Expenses
		huma.Post(api, "/courses/{id}/expenses", h.Expenses.HandleCreateExpense, secured)
		huma.Get(api, "/courses/{id}/expenses", h.Expenses.HandleListExpenses, secured)
		huma.Delete(api, "/expenses/{id}", h.Expenses.HandleDeleteExpense, secured)

		// Room catalog
		huma.Post(api, "/rooms", h.Rooms.HandleCreateRoom, secured)
		huma.Get(api, "/rooms", h.Rooms.HandleListRooms, secured)
		huma.Delete(api, "/rooms/{id}", h.Rooms.HandleDeleteRoom, secured)
		huma.Get(api, "/occupancy", h.Rooms.HandleOccupancy, secured)
	})
}
