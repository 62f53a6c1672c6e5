package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/erzer12/y-ultimate/handlers"
	"github.com/erzer12/y-ultimate/middleware"
	"github.com/erzer12/y-ultimate/models"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Tournament   *handlers.TournamentHandler
	Team         *handlers.TeamHandler
	Match        *handlers.MatchHandler
	Registration *handlers.RegistrationHandler
	Profile      *handlers.ProfileHandler
	Session      *handlers.SessionHandler
	Attendance   *handlers.AttendanceHandler
	Assessment   *handlers.AssessmentHandler
	WebSocket    *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, auth *middleware.Authenticator, h Handlers, allowedOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Live updates are read-only and public, like the tournament views.
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeTournament)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Get("/me", h.Auth.Me)

			r.With(auth.Authorize(models.RoleAdmin)).
				Post("/register", h.Auth.Register)
		})
	})

	router.With(auth.Authenticate).Get("/coaches", h.Auth.ListCoaches)

	staff := []models.UserRole{models.RoleAdmin, models.RoleManager}
	anyStaff := []models.UserRole{models.RoleAdmin, models.RoleManager, models.RoleCoach}

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.List)
		r.Get("/{tournamentID}", h.Tournament.GetByID)
		r.Get("/{tournamentID}/stats", h.Tournament.GetStats)
		r.Get("/{tournamentID}/teams", h.Team.ListByTournament)
		r.Get("/{tournamentID}/standings", h.Team.Standings)
		r.Get("/{tournamentID}/matches", h.Match.ListByTournament)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize(staff...))

			r.Post("/", h.Tournament.Create)
			r.Put("/{tournamentID}", h.Tournament.Update)
			r.Delete("/{tournamentID}", h.Tournament.Delete)
			r.Post("/{tournamentID}/logo", h.Tournament.UploadLogo)

			r.Post("/{tournamentID}/teams", h.Team.Create)
			r.Post("/{tournamentID}/matches", h.Match.Create)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/{tournamentID}/registrations", h.Registration.ListByTournament)
			r.Post("/{tournamentID}/registrations", h.Registration.Register)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", h.Team.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize(staff...))

			r.Put("/{teamID}", h.Team.Update)
			r.Delete("/{teamID}", h.Team.Delete)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", h.Match.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.With(auth.Authorize(anyStaff...)).
				Post("/{matchID}/score", h.Match.SubmitScore)
			r.With(auth.Authorize(staff...)).
				Put("/{matchID}", h.Match.Update)
			r.With(auth.Authorize(staff...)).
				Delete("/{matchID}", h.Match.Delete)
		})
	})

	router.Route("/registrations", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/{registrationID}", h.Registration.GetByID)
		r.Put("/{registrationID}", h.Registration.Update)
		r.With(auth.Authorize(staff...)).
			Post("/{registrationID}/approve", h.Registration.Approve)
		r.With(auth.Authorize(staff...)).
			Delete("/{registrationID}", h.Registration.Delete)
	})

	router.Route("/children", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/", h.Profile.List)
		r.Get("/{childID}", h.Profile.GetByID)
		r.Get("/{childID}/stats", h.Profile.GetStats)
		r.Get("/{childID}/progress", h.Assessment.ChildProgress)
		r.Get("/{childID}/transfers", h.Profile.ListTransfers)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(anyStaff...))

			r.Post("/", h.Profile.Create)
			r.Put("/{childID}", h.Profile.Update)
			r.Post("/{childID}/photo", h.Profile.UploadPhoto)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(staff...))

			r.Post("/{childID}/transfer", h.Profile.Transfer)
			r.Delete("/{childID}", h.Profile.Delete)
		})
	})

	router.Route("/sessions", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/", h.Session.List)
		r.Get("/{sessionID}", h.Session.GetByID)
		r.Get("/{sessionID}/attendance", h.Session.AttendanceSummary)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(anyStaff...))

			r.Post("/", h.Session.Create)
			r.Put("/{sessionID}", h.Session.Update)
			r.Post("/{sessionID}/start", h.Session.Start)
			r.Post("/{sessionID}/end", h.Session.End)
		})

		r.With(auth.Authorize(staff...)).
			Delete("/{sessionID}", h.Session.Delete)
	})

	router.Route("/attendance", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/", h.Attendance.List)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(anyStaff...))

			r.Post("/", h.Attendance.Mark)
			r.Post("/bulk", h.Attendance.BulkMark)
			r.Put("/{attendanceID}", h.Attendance.Update)
		})

		r.With(auth.Authorize(staff...)).
			Delete("/{attendanceID}", h.Attendance.Delete)
	})

	router.Route("/assessments", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/", h.Assessment.List)
		r.Get("/{assessmentID}", h.Assessment.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(anyStaff...))

			r.Post("/", h.Assessment.Create)
			r.Put("/{assessmentID}", h.Assessment.Update)
		})

		r.With(auth.Authorize(staff...)).
			Delete("/{assessmentID}", h.Assessment.Delete)
	})
}
