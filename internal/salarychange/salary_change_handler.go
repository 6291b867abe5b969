package salarychange

import (
	"net/http"
	"strconv"

	"go-hcm/internal/shared/apperror"
	"go-hcm/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		httpErr := apperror.ToHTTP(apperror.InvalidField("Index"))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return 0, false
	}
	return index, true
}

func (h *Handler) Append(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("id")

	var req AppendChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Append(c.Request.Context(), companyID, getActorID(c), employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) EditField(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("id")

	index, ok := parseIndex(c)
	if !ok {
		return
	}

	var req EditChangeFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.EditField(c.Request.Context(), companyID, employeeID, index, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Remove(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("id")

	index, ok := parseIndex(c)
	if !ok {
		return
	}

	resp, err := h.service.Remove(c.Request.Context(), companyID, employeeID, index)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("id")

	resp, err := h.service.List(c.Request.Context(), companyID, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
