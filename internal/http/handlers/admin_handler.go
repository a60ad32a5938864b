// Admin catalog handlers. Every route here sits behind RequireRole(admin).
//
//   - GET/POST  /admin/employees,  PATCH /admin/employees/{id}
//   - GET/POST  /admin/questions,  PATCH /admin/questions/{id}
//   - GET/POST  /admin/users,      PATCH /admin/users/{id}
//
// PATCH bodies change only the fields they carry.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/services"
)

// EmployeeResponse wraps one employee.
type EmployeeResponse struct {
	Employee *domain.Employee `json:"employee"`
}

// QuestionResponse wraps one question.
type QuestionResponse struct {
	Question *domain.SurveyQuestion `json:"question"`
}

// UserResponse wraps one user.
type UserResponse struct {
	User *domain.User `json:"user"`
}

// ListEmployees godoc
// @ID          adminListEmployees
// @Summary     All employees
// @Tags        Admin
// @Produce     json
// @Security    PortalToken
// @Success     200  {object}  handlers.EmployeesResponse
// @Router      /admin/employees [get]
func (h *Handlers) ListEmployees(c *gin.Context) {
	list, err := h.catalog.Employees(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, EmployeesResponse{Employees: list})
}

// CreateEmployee godoc
// @ID          adminCreateEmployee
// @Summary     Create an employee
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    PortalToken
// @Param       body  body      services.EmployeeInput  true  "Employee"
// @Success     201   {object}  handlers.EmployeeResponse
// @Failure     400   {object}  handlers.ErrorResponse "missing_fields"
// @Failure     409   {object}  handlers.ErrorResponse "already_exists"
// @Router      /admin/employees [post]
func (h *Handlers) CreateEmployee(c *gin.Context) {
	var in services.EmployeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	e, err := h.catalog.CreateEmployee(c.Request.Context(), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, EmployeeResponse{Employee: e})
}

// UpdateEmployee godoc
// @ID          adminUpdateEmployee
// @Summary     Update an employee
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    PortalToken
// @Param       id    path      string                  true  "Employee id"
// @Param       body  body      services.EmployeeInput  true  "Changed fields"
// @Success     200   {object}  handlers.EmployeeResponse
// @Failure     404   {object}  handlers.ErrorResponse "not_found"
// @Router      /admin/employees/{id} [patch]
func (h *Handlers) UpdateEmployee(c *gin.Context) {
	var in services.EmployeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	e, err := h.catalog.UpdateEmployee(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, EmployeeResponse{Employee: e})
}

// ListQuestions godoc
// @ID          adminListQuestions
// @Summary     All questions
// @Tags        Admin
// @Produce     json
// @Security    PortalToken
// @Success     200  {object}  handlers.QuestionsResponse
// @Router      /admin/questions [get]
func (h *Handlers) ListQuestions(c *gin.Context) {
	list, err := h.catalog.Questions(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, QuestionsResponse{Questions: list})
}

// CreateQuestion godoc
// @ID          adminCreateQuestion
// @Summary     Create a question
// @Description At most five questions may be primary.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    PortalToken
// @Param       body  body      services.QuestionInput  true  "Question"
// @Success     201   {object}  handlers.QuestionResponse
// @Failure     400   {object}  handlers.ErrorResponse "missing_fields, invalid_field or too_many_primary"
// @Failure     409   {object}  handlers.ErrorResponse "already_exists"
// @Router      /admin/questions [post]
func (h *Handlers) CreateQuestion(c *gin.Context) {
	var in services.QuestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	q, err := h.catalog.CreateQuestion(c.Request.Context(), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, QuestionResponse{Question: q})
}

// UpdateQuestion godoc
// @ID          adminUpdateQuestion
// @Summary     Update a question
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    PortalToken
// @Param       id    path      string                  true  "Question id"
// @Param       body  body      services.QuestionInput  true  "Changed fields"
// @Success     200   {object}  handlers.QuestionResponse
// @Failure     400   {object}  handlers.ErrorResponse "invalid_field or too_many_primary"
// @Failure     404   {object}  handlers.ErrorResponse "not_found"
// @Router      /admin/questions/{id} [patch]
func (h *Handlers) UpdateQuestion(c *gin.Context) {
	var in services.QuestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	q, err := h.catalog.UpdateQuestion(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, QuestionResponse{Question: q})
}

// ListUsers godoc
// @ID          adminListUsers
// @Summary     All users, admins included
// @Tags        Admin
// @Produce     json
// @Security    PortalToken
// @Success     200  {object}  handlers.UsersResponse
// @Router      /admin/users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	list, err := h.catalog.Users(c.Request.Context(), false)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, UsersResponse{Users: list})
}

// CreateUser godoc
// @ID          adminCreateUser
// @Summary     Create a user
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    PortalToken
// @Param       body  body      services.UserInput  true  "User"
// @Success     201   {object}  handlers.UserResponse
// @Failure     400   {object}  handlers.ErrorResponse "missing_fields or invalid_field"
// @Failure     409   {object}  handlers.ErrorResponse "already_exists"
// @Router      /admin/users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	u, err := h.catalog.CreateUser(c.Request.Context(), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, UserResponse{User: u})
}

// UpdateUser godoc
// @ID          adminUpdateUser
// @Summary     Update a user
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    PortalToken
// @Param       id    path      string              true  "User id"
// @Param       body  body      services.UserInput  true  "Changed fields"
// @Success     200   {object}  handlers.UserResponse
// @Failure     400   {object}  handlers.ErrorResponse "invalid_field"
// @Failure     404   {object}  handlers.ErrorResponse "not_found"
// @Router      /admin/users/{id} [patch]
func (h *Handlers) UpdateUser(c *gin.Context) {
	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	u, err := h.catalog.UpdateUser(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, UserResponse{User: u})
}
