package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-management/internal/department"
	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/frahmantamala/employee-management/internal/statistics"
	"github.com/frahmantamala/employee-management/internal/transport/middleware"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RegisterAllRoutes wires handlers, middleware and static photo
// serving onto the router.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	employeeHandler *employee.Handler,
	departmentHandler *department.Handler,
	statisticsHandler *statistics.Handler,
	photoDir string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db, photoDir)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Uploaded photos are served straight from the upload directory.
	fileServer := http.StripPrefix("/images/photos/", http.FileServer(http.Dir(photoDir)))
	router.Get("/images/photos/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})

	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if employeeHandler != nil {
			r.Route("/employees", func(er chi.Router) {
				er.Get("/", employeeHandler.ListEmployees)          // GET /employees?search=
				er.Post("/", employeeHandler.CreateEmployee)        // POST /employees
				er.Get("/{id}", employeeHandler.GetEmployee)        // GET /employees/:id
				er.Put("/{id}", employeeHandler.UpdateEmployee)     // PUT /employees/:id
				er.Delete("/{id}", employeeHandler.DeleteEmployee)  // DELETE /employees/:id
			})
		}

		if departmentHandler != nil {
			r.Route("/departments", func(dr chi.Router) {
				dr.Get("/", departmentHandler.ListDepartments)
				dr.Post("/", departmentHandler.CreateDepartment)
				dr.Get("/{id}", departmentHandler.GetDepartment)
				dr.Put("/{id}", departmentHandler.UpdateDepartment)
				dr.Delete("/{id}", departmentHandler.DeleteDepartment)
			})
		}

		if statisticsHandler != nil {
			r.Get("/statistics/departments", statisticsHandler.GetDepartmentStatistics)
		}
	})
}
