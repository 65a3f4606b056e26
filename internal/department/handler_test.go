package department_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/go-chi/chi"

	"github.com/frahmantamala/employee-management/internal/department"
	"github.com/frahmantamala/employee-management/internal/transport"
)

var _ = Describe("Department Handler", func() {
	var (
		router   *chi.Mux
		mockRepo *mockDepartmentRepository
	)

	doRequest := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		mockRepo = newMockDepartmentRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := department.NewService(mockRepo, logger)
		handler := department.NewHandler(transport.NewBaseHandler(logger), service)

		router = chi.NewRouter()
		router.Route("/api/v1/departments", func(r chi.Router) {
			r.Get("/", handler.ListDepartments)
			r.Post("/", handler.CreateDepartment)
			r.Get("/{id}", handler.GetDepartment)
			r.Put("/{id}", handler.UpdateDepartment)
			r.Delete("/{id}", handler.DeleteDepartment)
		})
	})

	It("should create a department and list it", func() {
		rec := doRequest(http.MethodPost, "/api/v1/departments", `{"department_name":"Engineering"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		listRec := doRequest(http.MethodGet, "/api/v1/departments", "")
		Expect(listRec.Code).To(Equal(http.StatusOK))
		Expect(listRec.Body.String()).To(ContainSubstring("Engineering"))
	})

	It("should return 404 with the department code for a missing id", func() {
		rec := doRequest(http.MethodGet, "/api/v1/departments/999", "")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(ContainSubstring("DEPARTMENT_NOT_FOUND"))
	})

	It("should return 404 when renaming a missing department", func() {
		rec := doRequest(http.MethodPut, "/api/v1/departments/999", `{"department_name":"Platform"}`)

		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(ContainSubstring("DEPARTMENT_NOT_FOUND"))
	})

	It("should return 409 with the conflict code when employees remain", func() {
		rec := doRequest(http.MethodPost, "/api/v1/departments", `{"department_name":"Engineering"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		mockRepo.employeeCounts[1] = 2

		delRec := doRequest(http.MethodDelete, "/api/v1/departments/1", "")

		Expect(delRec.Code).To(Equal(http.StatusConflict))
		Expect(delRec.Body.String()).To(ContainSubstring("DEPARTMENT_HAS_EMPLOYEES"))
	})

	It("should return 400 for an empty name", func() {
		rec := doRequest(http.MethodPost, "/api/v1/departments", `{"department_name":""}`)

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("department_name"))
	})
})
