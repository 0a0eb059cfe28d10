package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"lexdraft/internal/domain"
	"lexdraft/internal/middleware"
	"lexdraft/internal/session"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, templateID string, values domain.FormValues, actorID string) (string, error) {
	args := m.Called(ctx, templateID, values, actorID)
	return args.String(0), args.Error(1)
}

func setupRouter(handler *Handler, user *session.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler(quietLogger()))
	router.POST("/create-document/:templateId", func(c *gin.Context) {
		if user != nil {
			c.Request = c.Request.WithContext(session.WithUser(c.Request.Context(), user))
		}
		handler.CreateDocument(c)
	})
	return router
}

func postValues(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/create-document/T1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateDocument_Created(t *testing.T) {
	submitter := new(MockSubmitter)
	router := setupRouter(NewHandler(submitter), &session.User{ID: "U1"})

	submitter.On("Submit", mock.Anything, "T1", domain.FormValues{"partyA": "Acme"}, "U1").Return("D1", nil)

	w := postValues(router, `{"values":{"partyA":"Acme"}}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "D1", response["id"])
	submitter.AssertExpectations(t)
}

func TestCreateDocument_ValidationFailed(t *testing.T) {
	submitter := new(MockSubmitter)
	router := setupRouter(NewHandler(submitter), &session.User{ID: "U1"})

	submitter.On("Submit", mock.Anything, "T1", mock.Anything, "U1").
		Return("", &Error{Kind: KindValidationFailed, Field: "partyB"})

	w := postValues(router, `{"values":{}}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var response struct {
		Details map[string]string `json:"details"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "partyB", response.Details["field"])
}

func TestCreateDocument_AnonymousPassesEmptyActor(t *testing.T) {
	submitter := new(MockSubmitter)
	router := setupRouter(NewHandler(submitter), nil)

	submitter.On("Submit", mock.Anything, "T1", mock.Anything, "").
		Return("", &Error{Kind: KindUnauthenticated})

	w := postValues(router, `{"values":{}}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	submitter.AssertExpectations(t)
}

func TestCreateDocument_MalformedBody(t *testing.T) {
	submitter := new(MockSubmitter)
	router := setupRouter(NewHandler(submitter), &session.User{ID: "U1"})

	w := postValues(router, `{"values":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
