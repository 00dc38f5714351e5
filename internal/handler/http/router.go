package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-engine/internal/config"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	appConfig config.AppConfig,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	holidayHandler HolidayHandler,
	auditHandler AuditHandler,
	employeeHandler EmployeeHandler,
	jobHandler JobHandler,
	authHandler AuthHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appConfig.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appConfig.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appConfig.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/revoke", authHandler.Revoke)

			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.EmployeeRequired)
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/today", attendanceHandler.Today)
				r.Get("/my", attendanceHandler.MyHistory)
				r.Patch("/my/{id}/reason", attendanceHandler.UpdateMyReason)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", leaveHandler.ListTypes)

				// Self-service, requires an employee identity
				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeRequired)
					r.Route("/requests", func(r chi.Router) {
						r.Post("/", leaveHandler.CreateRequest)
						r.Get("/my", leaveHandler.GetMyRequests)
						r.Put("/{id}", leaveHandler.UpdateRequest)
						r.Delete("/{id}", leaveHandler.DeleteRequest)
					})
					r.Get("/summary", leaveHandler.GetMySummary)
					r.Get("/summary/pdf", leaveHandler.GetMySummaryPDF)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.ListByYear)
				r.Get("/range", holidayHandler.ListByRange)
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", attendanceHandler.List)
					r.Get("/pending", attendanceHandler.ListPending)
					r.Get("/errors", attendanceHandler.ListErrors)
					r.Get("/stats", attendanceHandler.Stats)
					r.Get("/export", attendanceHandler.Export)
					r.Post("/batch-approve", attendanceHandler.BatchApprove)
					r.Post("/batch-reject", attendanceHandler.BatchReject)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", attendanceHandler.Get)
						r.Put("/", attendanceHandler.Update)
						r.Post("/approve", attendanceHandler.Approve)
						r.Post("/reject", attendanceHandler.Reject)
						r.Post("/mark-error", attendanceHandler.MarkError)
						r.Get("/audit", auditHandler.AttendanceTrail)
					})
				})

				r.Route("/leave", func(r chi.Router) {
					r.Route("/requests", func(r chi.Router) {
						r.Get("/", leaveHandler.ListRequests)
						r.Get("/pending", leaveHandler.ListPendingRequests)
						r.Post("/batch-approve", leaveHandler.BatchApprove)
						r.Post("/batch-reject", leaveHandler.BatchReject)

						r.Route("/{id}", func(r chi.Router) {
							r.Get("/", leaveHandler.GetRequest)
							r.Post("/approve", leaveHandler.ApproveRequest)
							r.Post("/reject", leaveHandler.RejectRequest)
							r.Get("/audit", auditHandler.LeaveTrail)
						})
					})

					r.Route("/types", func(r chi.Router) {
						r.Post("/", leaveHandler.CreateType)
						r.Put("/{id}", leaveHandler.UpdateType)
					})
				})

				r.Route("/holidays", func(r chi.Router) {
					r.Post("/", holidayHandler.Create)
					r.Delete("/{id}", holidayHandler.Delete)
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", employeeHandler.ListEmployees)
					r.Get("/{id}", employeeHandler.GetEmployee)
					r.Get("/{id}/leave-summary", leaveHandler.GetEmployeeSummary)
				})

				r.Get("/audit", auditHandler.List)
				r.Post("/jobs/absence-sweep", jobHandler.RunAbsenceSweep)
			})
		})
	})
	return r
}
