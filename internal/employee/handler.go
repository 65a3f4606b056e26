package employee

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/go-chi/chi"
)

// maxFormMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const maxFormMemory = 4 << 20

type ServiceAPI interface {
	ListEmployees(search string) ([]EmployeeSummary, error)
	GetEmployee(id int64) (*Employee, error)
	CreateEmployee(dto EmployeeFormDTO, photo *PhotoUpload) (*Employee, error)
	UpdateEmployee(id int64, dto EmployeeFormDTO, photo *PhotoUpload) (*Employee, error)
	DeleteEmployee(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// ListEmployees handles GET /employees with an optional ?search= query.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	summaries, err := h.Service.ListEmployees(search)
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err, "search", search)
		h.WriteError(w, http.StatusInternalServerError, "failed to list employees")
		return
	}

	h.WriteJSON(w, http.StatusOK, EmployeesResponse{
		Employees: summaries,
		Search:    search,
	})
}

// GetEmployee handles GET /employees/{id}. It also serves as the read
// step of the delete confirmation flow.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	emp, err := h.Service.GetEmployee(id)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			h.HandleServiceError(w, internal.NewNotFoundError("employee not found", internal.ErrCodeEmployeeNotFound))
			return
		}
		h.Logger.Error("GetEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

// CreateEmployee handles POST /employees (multipart form, optional
// photo part).
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	dto, photo, appErr := h.parseForm(r)
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}
	if photo != nil {
		defer photo.close()
	}

	emp, err := h.Service.CreateEmployee(dto, photo.payload())
	if err != nil {
		h.Logger.Warn("CreateEmployee: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateEmployee: employee created", "employee_id", emp.ID)
	h.WriteJSON(w, http.StatusCreated, emp)
}

// UpdateEmployee handles PUT /employees/{id}. The form id must match
// the route id; a mismatch is treated as not-found, not corrected.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	dto, photo, appErr := h.parseForm(r)
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}
	if photo != nil {
		defer photo.close()
	}

	emp, err := h.Service.UpdateEmployee(id, dto, photo.payload())
	if err != nil {
		switch {
		case errors.Is(err, ErrEmployeeNotFound):
			h.HandleServiceError(w, internal.NewNotFoundError("employee not found", internal.ErrCodeEmployeeNotFound))
		case errors.Is(err, ErrEmployeeConflict):
			h.HandleServiceError(w, internal.NewConflictError("employee was modified by another request", internal.ErrCodeEmployeeConflict))
		default:
			h.Logger.Warn("UpdateEmployee: service error", "error", err, "employee_id", id)
			h.HandleServiceError(w, err)
		}
		return
	}

	h.Logger.Info("UpdateEmployee: employee updated", "employee_id", id)
	h.WriteJSON(w, http.StatusOK, emp)
}

// DeleteEmployee handles DELETE /employees/{id}; removing a missing id
// is a no-op success.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteEmployee(id); err != nil {
		h.Logger.Error("DeleteEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Warn("invalid employee ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return 0, false
	}
	return id, true
}

// formPhoto pairs the multipart file with its header so the handler
// can close it after the service consumed the stream.
type formPhoto struct {
	file   multipart.File
	header *multipart.FileHeader
}

func (p *formPhoto) payload() *PhotoUpload {
	if p == nil {
		return nil
	}
	return &PhotoUpload{
		Filename: p.header.Filename,
		Size:     p.header.Size,
		Content:  p.file,
	}
}

func (p *formPhoto) close() {
	if p != nil && p.file != nil {
		p.file.Close()
	}
}

func (h *Handler) parseForm(r *http.Request) (EmployeeFormDTO, *formPhoto, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return EmployeeFormDTO{}, nil, internal.NewValidationError("invalid form payload", internal.ErrCodeValidationFailed)
	}

	dto, appErr := ParseEmployeeForm(r)
	if appErr != nil {
		return EmployeeFormDTO{}, nil, appErr
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return dto, nil, nil
		}
		return EmployeeFormDTO{}, nil, internal.NewValidationFieldError("photo", "invalid photo part", internal.ErrCodeValidationFailed)
	}

	return dto, &formPhoto{file: file, header: header}, nil
}
