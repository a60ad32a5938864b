// Report HTTP handlers.
//
//   - GET /reports/employee    public per-employee report, ETag support
//   - GET /reports/supervisor  admin or supervisor, team report
//   - GET /reports/manager     admin, organisation-wide report
//
// Range filters use the start and end query params (YYYY-MM-DD, inclusive).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/http/middleware"
)

// EmployeeReport godoc
// @ID          employeeReport
// @Summary     Employee report
// @Description Aggregates every completed response for one employee. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Reports
// @Produce     json
// @Param       employee_id    query   string  true   "Employee id"                 example(EMP-001)
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {object} report.EmployeeReport
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "missing_employee"
// @Failure     404  {object} handlers.ErrorResponse "employee_not_found"
// @Router      /reports/employee [get]
func (h *Handlers) EmployeeReport(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Query("employee_id")

	// ETag pre-check (best effort).
	if etag, err := h.reports.EmployeeETag(ctx, id); err == nil {
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	rep, err := h.reports.EmployeeReport(ctx, id)
	if err != nil {
		c.Writer.Header().Del("ETag")
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, rep)
}

// SupervisorReport godoc
// @ID          supervisorReport
// @Summary     Supervisor team report
// @Description Supervisors see their own team only; supervisor_id defaults to the caller. Admins may pass any id.
// @Tags        Reports
// @Produce     json
// @Security    PortalToken
// @Param       supervisor_id  query  string  false  "Supervisor user id"  example(SUP-001)
// @Param       start          query  string  false  "First day (YYYY-MM-DD)"
// @Param       end            query  string  false  "Last day (YYYY-MM-DD)"
// @Success     200  {object} report.SupervisorReport
// @Failure     400  {object} handlers.ErrorResponse "missing_supervisor or invalid_range"
// @Failure     401  {object} handlers.ErrorResponse "unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "forbidden"
// @Router      /reports/supervisor [get]
func (h *Handlers) SupervisorReport(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	rep, err := h.reports.SupervisorReport(c.Request.Context(), p,
		c.Query("supervisor_id"), c.Query("start"), c.Query("end"))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, rep)
}

// ManagerReport godoc
// @ID          managerReport
// @Summary     Manager report
// @Tags        Reports
// @Produce     json
// @Security    PortalToken
// @Param       start  query  string  false  "First day (YYYY-MM-DD)"
// @Param       end    query  string  false  "Last day (YYYY-MM-DD)"
// @Success     200  {object} report.ManagerReport
// @Failure     400  {object} handlers.ErrorResponse "invalid_range"
// @Failure     401  {object} handlers.ErrorResponse "unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "forbidden"
// @Router      /reports/manager [get]
func (h *Handlers) ManagerReport(c *gin.Context) {
	rep, err := h.reports.ManagerReport(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, rep)
}
