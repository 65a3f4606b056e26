package employee_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/go-chi/chi"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/employee-management/internal/department"
	"github.com/frahmantamala/employee-management/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-management/internal/employee/postgres"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/frahmantamala/employee-management/internal/upload"
)

// SQLiteDepartment is a SQLite-compatible model for testing
type SQLiteDepartment struct {
	ID             int64  `gorm:"primaryKey"`
	DepartmentName string `gorm:"column:department_name;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (SQLiteDepartment) TableName() string {
	return "departments"
}

// SQLiteEmployee is a SQLite-compatible model for testing
type SQLiteEmployee struct {
	ID           int64  `gorm:"primaryKey"`
	EmployeeName string `gorm:"column:employee_name;not null"`
	Gender       string `gorm:"column:gender;default:unknown"`
	DateOfBirth  *time.Time
	Email        *string
	Phone        *string
	PhotoPath    *string
	Salary       *float64
	DepartmentID int64 `gorm:"column:department_id;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SQLiteEmployee) TableName() string {
	return "employees"
}

// conflictingService simulates a writer that lost the optimistic
// concurrency race on every update.
type conflictingService struct{}

func (conflictingService) ListEmployees(search string) ([]employee.EmployeeSummary, error) {
	return nil, nil
}

func (conflictingService) GetEmployee(id int64) (*employee.Employee, error) {
	return nil, employee.ErrEmployeeNotFound
}

func (conflictingService) CreateEmployee(dto employee.EmployeeFormDTO, photo *employee.PhotoUpload) (*employee.Employee, error) {
	return nil, employee.ErrEmployeeNotFound
}

func (conflictingService) UpdateEmployee(id int64, dto employee.EmployeeFormDTO, photo *employee.PhotoUpload) (*employee.Employee, error) {
	return nil, employee.ErrEmployeeConflict
}

func (conflictingService) DeleteEmployee(id int64) error {
	return nil
}

// multipartForm builds the request body the browser form would send.
func multipartForm(fields map[string]string, photoName string, photoContent []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		Expect(writer.WriteField(key, value)).To(Succeed())
	}
	if photoName != "" {
		part, err := writer.CreateFormFile("photo", photoName)
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write(photoContent)
		Expect(err).NotTo(HaveOccurred())
	}
	Expect(writer.Close()).To(Succeed())
	return body, writer.FormDataContentType()
}

var _ = Describe("Employee Handler", func() {
	var (
		router   *chi.Mux
		dept     *department.Department
		photoDir string
	)

	doRequest := func(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, body)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	createEmployee := func(fields map[string]string, photoName string, photoContent []byte) *httptest.ResponseRecorder {
		body, contentType := multipartForm(fields, photoName, photoContent)
		return doRequest(http.MethodPost, "/api/v1/employees", body, contentType)
	}

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&SQLiteDepartment{}, &SQLiteEmployee{})).To(Succeed())

		dept = &department.Department{DepartmentName: "Engineering"}
		Expect(db.Create(dept).Error).To(Succeed())

		photoDir = GinkgoT().TempDir()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		uploadService := upload.NewService(photoDir, "/images/photos", logger)
		repo := employeePostgres.NewEmployeeRepository(db)
		service := employee.NewService(repo, uploadService, logger)
		handler := employee.NewHandler(transport.NewBaseHandler(logger), service)

		router = chi.NewRouter()
		router.Route("/api/v1/employees", func(r chi.Router) {
			r.Get("/", handler.ListEmployees)
			r.Post("/", handler.CreateEmployee)
			r.Get("/{id}", handler.GetEmployee)
			r.Put("/{id}", handler.UpdateEmployee)
			r.Delete("/{id}", handler.DeleteEmployee)
		})
	})

	validFields := func() map[string]string {
		return map[string]string{
			"employee_name": "Dang Khoa",
			"gender":        "male",
			"email":         "khoa@example.com",
			"phone":         "0901000001",
			"salary":        "1500",
			"department_id": fmt.Sprintf("%d", dept.ID),
		}
	}

	Describe("CreateEmployee", func() {
		It("should create an employee without a photo", func() {
			rec := createEmployee(validFields(), "", nil)

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var created employee.Employee
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.EmployeeName).To(Equal("Dang Khoa"))
			Expect(created.PhotoPath).To(BeNil())
		})

		It("should store the photo and record its public path", func() {
			rec := createEmployee(validFields(), "portrait.png", []byte("png-bytes"))

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var created employee.Employee
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
			Expect(created.PhotoPath).NotTo(BeNil())
			Expect(*created.PhotoPath).To(HavePrefix("/images/photos/"))
			Expect(*created.PhotoPath).To(HaveSuffix(".png"))

			stored := filepath.Join(photoDir, filepath.Base(*created.PhotoPath))
			content, err := os.ReadFile(stored)
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal([]byte("png-bytes")))
		})

		It("should reject an unsupported photo type", func() {
			rec := createEmployee(validFields(), "portrait.gif", []byte("gif-bytes"))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("photo"))
		})

		It("should reject a missing name", func() {
			fields := validFields()
			fields["employee_name"] = ""

			rec := createEmployee(fields, "", nil)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("employee_name"))
		})

		It("should reject an unknown department", func() {
			fields := validFields()
			fields["department_id"] = "9999"

			rec := createEmployee(fields, "", nil)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("department_id"))
		})
	})

	Describe("ListEmployees", func() {
		BeforeEach(func() {
			first := validFields()
			Expect(createEmployee(first, "", nil).Code).To(Equal(http.StatusCreated))

			second := validFields()
			second["employee_name"] = "Thu Ha"
			second["email"] = "ha@example.com"
			second["phone"] = "0988111222"
			Expect(createEmployee(second, "", nil).Code).To(Equal(http.StatusCreated))
		})

		It("should return every employee without a search term", func() {
			rec := doRequest(http.MethodGet, "/api/v1/employees", nil, "")

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp employee.EmployeesResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Employees).To(HaveLen(2))
			Expect(resp.Employees[0].DepartmentName).To(Equal("Engineering"))
		})

		It("should filter by the search term", func() {
			rec := doRequest(http.MethodGet, "/api/v1/employees?search=khoa", nil, "")

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp employee.EmployeesResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Search).To(Equal("khoa"))
			Expect(resp.Employees).To(HaveLen(1))
			Expect(resp.Employees[0].EmployeeName).To(Equal("Dang Khoa"))
		})
	})

	Describe("GetEmployee", func() {
		It("should return the stored fields", func() {
			rec := createEmployee(validFields(), "", nil)
			Expect(rec.Code).To(Equal(http.StatusCreated))
			var created employee.Employee
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())

			getRec := doRequest(http.MethodGet, fmt.Sprintf("/api/v1/employees/%d", created.ID), nil, "")

			Expect(getRec.Code).To(Equal(http.StatusOK))
			var fetched employee.Employee
			Expect(json.Unmarshal(getRec.Body.Bytes(), &fetched)).To(Succeed())
			Expect(fetched.EmployeeName).To(Equal("Dang Khoa"))
			Expect(fetched.Email).NotTo(BeNil())
			Expect(*fetched.Email).To(Equal("khoa@example.com"))
		})

		It("should return 404 with the employee code for a missing id", func() {
			rec := doRequest(http.MethodGet, "/api/v1/employees/9999", nil, "")

			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Body.String()).To(ContainSubstring("EMPLOYEE_NOT_FOUND"))
		})

		It("should return 400 for a non-numeric id", func() {
			rec := doRequest(http.MethodGet, "/api/v1/employees/abc", nil, "")

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("UpdateEmployee", func() {
		var created employee.Employee

		BeforeEach(func() {
			rec := createEmployee(validFields(), "", nil)
			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		})

		It("should apply the replaced fields", func() {
			fields := validFields()
			fields["id"] = fmt.Sprintf("%d", created.ID)
			fields["employee_name"] = "Dang Khoa Updated"
			body, contentType := multipartForm(fields, "", nil)

			rec := doRequest(http.MethodPut, fmt.Sprintf("/api/v1/employees/%d", created.ID), body, contentType)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var updated employee.Employee
			Expect(json.Unmarshal(rec.Body.Bytes(), &updated)).To(Succeed())
			Expect(updated.EmployeeName).To(Equal("Dang Khoa Updated"))
		})

		It("should return 404 when the form id does not match the route id", func() {
			fields := validFields()
			fields["id"] = fmt.Sprintf("%d", created.ID+1)
			body, contentType := multipartForm(fields, "", nil)

			rec := doRequest(http.MethodPut, fmt.Sprintf("/api/v1/employees/%d", created.ID), body, contentType)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 404 for a deleted employee", func() {
			delRec := doRequest(http.MethodDelete, fmt.Sprintf("/api/v1/employees/%d", created.ID), nil, "")
			Expect(delRec.Code).To(Equal(http.StatusNoContent))

			fields := validFields()
			fields["id"] = fmt.Sprintf("%d", created.ID)
			body, contentType := multipartForm(fields, "", nil)

			rec := doRequest(http.MethodPut, fmt.Sprintf("/api/v1/employees/%d", created.ID), body, contentType)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Body.String()).To(ContainSubstring("EMPLOYEE_NOT_FOUND"))
		})
	})

	Describe("UpdateEmployee on a concurrent modification", func() {
		It("should return 409 with the conflict code", func() {
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			handler := employee.NewHandler(transport.NewBaseHandler(logger), conflictingService{})

			r := chi.NewRouter()
			r.Put("/api/v1/employees/{id}", handler.UpdateEmployee)

			fields := validFields()
			fields["id"] = "1"
			body, contentType := multipartForm(fields, "", nil)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/employees/1", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(rec.Body.String()).To(ContainSubstring("EMPLOYEE_CONFLICT"))
		})
	})

	Describe("DeleteEmployee", func() {
		It("should delete and then report 404 on fetch", func() {
			rec := createEmployee(validFields(), "", nil)
			Expect(rec.Code).To(Equal(http.StatusCreated))
			var created employee.Employee
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())

			delRec := doRequest(http.MethodDelete, fmt.Sprintf("/api/v1/employees/%d", created.ID), nil, "")
			Expect(delRec.Code).To(Equal(http.StatusNoContent))

			getRec := doRequest(http.MethodGet, fmt.Sprintf("/api/v1/employees/%d", created.ID), nil, "")
			Expect(getRec.Code).To(Equal(http.StatusNotFound))
		})

		It("should succeed for an id that was already deleted", func() {
			rec := doRequest(http.MethodDelete, "/api/v1/employees/4242", nil, "")

			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(rec.Body.Len()).To(BeZero())
		})
	})

	Describe("list summary after photo upload", func() {
		It("should expose the gender label and photo path", func() {
			fields := validFields()
			rec := createEmployee(fields, "portrait.jpg", []byte("jpg-bytes"))
			Expect(rec.Code).To(Equal(http.StatusCreated))

			listRec := doRequest(http.MethodGet, "/api/v1/employees", nil, "")
			Expect(listRec.Code).To(Equal(http.StatusOK))

			var resp employee.EmployeesResponse
			Expect(json.Unmarshal(listRec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Employees).To(HaveLen(1))
			Expect(resp.Employees[0].Gender).To(Equal("Male"))
			Expect(resp.Employees[0].PhotoPath).NotTo(BeNil())
			Expect(strings.HasPrefix(*resp.Employees[0].PhotoPath, "/images/photos/")).To(BeTrue())
		})
	})
})
