package statistics

import (
	"net/http"

	"github.com/frahmantamala/employee-management/internal/transport"
)

type ServiceAPI interface {
	DepartmentStatistics() ([]DepartmentStatistics, error)
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

type StatisticsResponse struct {
	Departments []DepartmentStatistics `json:"departments"`
}

func (h *Handler) GetDepartmentStatistics(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.DepartmentStatistics()
	if err != nil {
		h.Logger.Error("GetDepartmentStatistics: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}

	h.WriteJSON(w, http.StatusOK, StatisticsResponse{Departments: rows})
}
