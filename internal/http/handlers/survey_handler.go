// Survey HTTP handlers.
//
//   - GET  /survey/session     current session, or resume by edit token
//   - POST /survey/answer      upsert one answer
//   - POST /survey/progress    record the current question index
//   - POST /survey/finish      complete the response
//   - POST /survey/abandon     mark an in-progress response incomplete
//   - POST /survey/logout      drop the session cookies
//   - GET  /survey/employees   active employees
//   - GET  /survey/questions   active questions by order
//
// Session-dependent calls read the survey_session cookie and, when present,
// the survey_response snapshot used to rebuild lost server state. Each
// successful mutation rewrites the snapshot cookie.
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/services"
)

// SessionResponse is the current survey state.
type SessionResponse struct {
	Session  *domain.SurveySession  `json:"session"`
	Response *domain.SurveyResponse `json:"response"`
	Employee *domain.Employee       `json:"employee,omitempty"`
}

// AnswerRequest upserts one answer. Omitted fields keep their stored value.
// AllowEdit must be set to change a completed response.
type AnswerRequest struct {
	QuestionID string  `json:"question_id" example:"Q-OVERALL"`
	Score      *int    `json:"score,omitempty" example:"8"`
	TextValue  *string `json:"text_value,omitempty"`
	YesNoValue *bool   `json:"yes_no_value,omitempty"`
	Comment    *string `json:"comment,omitempty" example:"Very helpful"`
	AllowEdit  bool    `json:"allow_edit,omitempty"`
}

// ProgressRequest records the question the respondent is on.
type ProgressRequest struct {
	Index *int `json:"index" example:"3"`
}

// FinishRequest completes the response. A blank comment clears it.
type FinishRequest struct {
	FinalComment *string `json:"final_comment,omitempty" example:"Thanks!"`
}

// FinishResponse returns the edit token for later changes.
type FinishResponse struct {
	OK        bool   `json:"ok" example:"true"`
	EditToken string `json:"edit_token" example:"5f0c7f0e-8a0a-4d6b-9b7e-0d6a1c2b3e4f"`
}

// EmployeesResponse lists employees.
type EmployeesResponse struct {
	Employees []domain.Employee `json:"employees"`
}

// QuestionsResponse lists questions.
type QuestionsResponse struct {
	Questions []domain.SurveyQuestion `json:"questions"`
}

// bindOptionalJSON binds a JSON body that may be absent.
func bindOptionalJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// GetSession godoc
// @ID          getSurveySession
// @Summary     Current survey session
// @Description Returns the session bound to the survey_session cookie. Without one, an edit_token opens a new session on that response.
// @Tags        Survey
// @Produce     json
// @Param       edit_token  query     string  false  "Edit token returned by finish"
// @Success     200         {object}  handlers.SessionResponse
// @Failure     401         {object}  handlers.ErrorResponse "no_session"
// @Failure     403         {object}  handlers.ErrorResponse "logged_out"
// @Failure     404         {object}  handlers.ErrorResponse "invalid_edit_token or missing_response"
// @Router      /survey/session [get]
func (h *Handlers) GetSession(c *gin.Context) {
	ctx := c.Request.Context()
	editToken := c.Query("edit_token")

	if v, _ := c.Cookie(CookieLoggedOut); v == "1" && editToken != "" {
		fail(c, http.StatusForbidden, ErrCodeLoggedOut, "signed out of the survey")
		return
	}

	ref := sessionRef(c)
	if ref.SessionID != "" {
		view, err := h.survey.Current(ctx, ref.SessionID)
		if err == nil {
			ok(c, http.StatusOK, SessionResponse{Session: view.Session, Response: view.Response, Employee: view.Employee})
			return
		}
		if !errors.Is(err, services.ErrNoSession) || editToken == "" {
			serviceError(c, err)
			return
		}
	}

	if editToken == "" {
		fail(c, http.StatusUnauthorized, ErrCodeNoSession, services.ErrNoSession.Error())
		return
	}
	m, err := h.survey.ResumeByEditToken(ctx, editToken)
	if err != nil {
		serviceError(c, err)
		return
	}
	h.writeMutation(c, m, ref.SessionID)

	view, err := h.survey.Current(ctx, m.Session.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, SessionResponse{Session: view.Session, Response: view.Response, Employee: view.Employee})
}

// RecordAnswer godoc
// @ID          recordAnswer
// @Summary     Record an answer
// @Tags        Survey
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.AnswerRequest  true  "Answer"
// @Success     200   {object}  handlers.OKResponse
// @Failure     400   {object}  handlers.ErrorResponse "missing_question or invalid_score"
// @Failure     401   {object}  handlers.ErrorResponse "no_session"
// @Failure     403   {object}  handlers.ErrorResponse "readonly"
// @Failure     404   {object}  handlers.ErrorResponse "missing_response"
// @Failure     409   {object}  handlers.ErrorResponse "conflict"
// @Router      /survey/answer [post]
func (h *Handlers) RecordAnswer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ref := sessionRef(c)
	m, err := h.survey.RecordAnswer(c.Request.Context(), ref, services.AnswerInput{
		QuestionID: req.QuestionID,
		Score:      req.Score,
		TextValue:  req.TextValue,
		YesNoValue: req.YesNoValue,
		Comment:    req.Comment,
	}, req.AllowEdit)
	if err != nil {
		serviceError(c, err)
		return
	}
	h.writeMutation(c, m, ref.SessionID)
	acknowledge(c)
}

// RecordProgress godoc
// @ID          recordProgress
// @Summary     Record survey progress
// @Tags        Survey
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.ProgressRequest  true  "Question index"
// @Success     200   {object}  handlers.OKResponse
// @Failure     400   {object}  handlers.ErrorResponse "invalid_index"
// @Failure     401   {object}  handlers.ErrorResponse "no_session"
// @Failure     404   {object}  handlers.ErrorResponse "missing_response"
// @Router      /survey/progress [post]
func (h *Handlers) RecordProgress(c *gin.Context) {
	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidIndex, services.ErrInvalidIndex.Error())
		return
	}
	ref := sessionRef(c)
	m, err := h.survey.RecordProgress(c.Request.Context(), ref, *req.Index)
	if err != nil {
		serviceError(c, err)
		return
	}
	h.writeMutation(c, m, ref.SessionID)
	acknowledge(c)
}

// FinishSurvey godoc
// @ID          finishSurvey
// @Summary     Complete the survey
// @Description Idempotent. A repeated call replaces the final comment and returns the same edit token.
// @Tags        Survey
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.FinishRequest  false  "Final comment"
// @Success     200   {object}  handlers.FinishResponse
// @Failure     401   {object}  handlers.ErrorResponse "no_session"
// @Failure     404   {object}  handlers.ErrorResponse "missing_response"
// @Router      /survey/finish [post]
func (h *Handlers) FinishSurvey(c *gin.Context) {
	var req FinishRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ref := sessionRef(c)
	token, m, err := h.survey.Finish(c.Request.Context(), ref, req.FinalComment)
	if err != nil {
		serviceError(c, err)
		return
	}
	h.writeMutation(c, m, ref.SessionID)
	ok(c, http.StatusOK, FinishResponse{OK: true, EditToken: token})
}

// AbandonSurvey godoc
// @ID          abandonSurvey
// @Summary     Abandon the survey
// @Description Sent on page unload. In-progress responses become incomplete; anything else is left alone.
// @Tags        Survey
// @Produce     json
// @Success     200  {object}  handlers.OKResponse
// @Failure     401  {object}  handlers.ErrorResponse "no_session"
// @Failure     404  {object}  handlers.ErrorResponse "missing_response"
// @Router      /survey/abandon [post]
func (h *Handlers) AbandonSurvey(c *gin.Context) {
	ref := sessionRef(c)
	m, err := h.survey.Abandon(c.Request.Context(), ref)
	if err != nil {
		serviceError(c, err)
		return
	}
	h.writeMutation(c, m, ref.SessionID)
	acknowledge(c)
}

// LogoutSurvey godoc
// @ID          logoutSurvey
// @Summary     Sign out of the survey
// @Description Clears the session and snapshot cookies. For 12 hours an edit token can no longer reopen a response from this browser.
// @Tags        Survey
// @Produce     json
// @Success     200  {object}  handlers.OKResponse
// @Router      /survey/logout [post]
func (h *Handlers) LogoutSurvey(c *gin.Context) {
	h.clearCookie(c, CookieSession, http.SameSiteLaxMode)
	h.clearCookie(c, CookieSnapshot, http.SameSiteLaxMode)
	h.setCookie(c, CookieLoggedOut, "1", logoutMaxAge, http.SameSiteLaxMode)
	h.setCookie(c, CookieThankYouClosed, "1", logoutMaxAge, http.SameSiteLaxMode)
	acknowledge(c)
}

// ListActiveEmployees godoc
// @ID          listActiveEmployees
// @Summary     Active employees
// @Tags        Survey
// @Produce     json
// @Success     200  {object}  handlers.EmployeesResponse
// @Router      /survey/employees [get]
func (h *Handlers) ListActiveEmployees(c *gin.Context) {
	list, err := h.catalog.ActiveEmployees(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, EmployeesResponse{Employees: list})
}

// ListActiveQuestions godoc
// @ID          listActiveQuestions
// @Summary     Active questions in display order
// @Tags        Survey
// @Produce     json
// @Success     200  {object}  handlers.QuestionsResponse
// @Router      /survey/questions [get]
func (h *Handlers) ListActiveQuestions(c *gin.Context) {
	list, err := h.catalog.ActiveQuestions(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, QuestionsResponse{Questions: list})
}
