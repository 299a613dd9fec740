package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository/kvdeck"
	"github.com/vytor/flashdeck/internal/repository/memory"
	"github.com/vytor/flashdeck/internal/services"
	"github.com/vytor/flashdeck/internal/testutil/mocks"
)

const templatesDir = "../../web/templates"

type ServerTestSuite struct {
	suite.Suite
	store   *memory.KeyValueStore
	handler http.Handler
}

func (s *ServerTestSuite) SetupTest() {
	tmpl, err := LoadTemplates(templatesDir)
	s.Require().NoError(err)

	s.store = memory.NewKeyValueStore()
	srv := &Server{
		StudyService: services.NewStudyService(kvdeck.NewDeckRepository(s.store)),
		Store:        s.store,
		Templates:    tmpl,
	}
	s.handler = srv.Routes()
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) get(path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) post(path string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) postOK(path string, form url.Values) {
	rec := s.post(path, form)
	s.Require().Equal(http.StatusSeeOther, rec.Code, "POST %s: %s", path, rec.Body.String())
	s.Equal("/", rec.Header().Get("Location"))
}

func (s *ServerTestSuite) deck() models.DeckSnapshot {
	rec := s.get("/api/deck")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var snapshot models.DeckSnapshot
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &snapshot))
	return snapshot
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code, body.Error.Message
}

func (s *ServerTestSuite) TestHome_ShowsClassEntryFirst() {
	rec := s.get("/")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "text/html")
	s.Contains(rec.Body.String(), `name="class_id"`)
	s.NotContains(rec.Body.String(), "Cards left")
}

func (s *ServerTestSuite) TestSubmitClass_ShowsStudyScreen() {
	s.postOK("/class", url.Values{"class_id": {"7a"}})

	value, found, err := s.store.Get(context.Background(), kvdeck.ClassIDKey)
	s.Require().NoError(err)
	s.True(found)
	s.Equal("7a", value)

	body := s.get("/").Body.String()
	s.Contains(body, "Was ist die Hauptstadt von Frankreich?")
	s.Contains(body, "Cards left: 20")
	s.Contains(body, `action="/study/reveal"`)
	s.NotContains(body, "Paris")
}

func (s *ServerTestSuite) TestSubmitClass_EmptyIsRejected() {
	rec := s.post("/class", url.Values{"class_id": {""}})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "class_id")
	s.Contains(rec.Body.String(), `role="alert"`)
}

func (s *ServerTestSuite) TestSubmitClass_BlankIsRejectedAsJSON() {
	rec := s.post("/class", url.Values{"class_id": {"   "}}, "Accept", "application/json")

	s.Equal(http.StatusBadRequest, rec.Code)
	code, _ := decodeError(s.T(), rec)
	s.Equal("VALIDATION_ERROR", code)
}

func (s *ServerTestSuite) TestRevealAndMark() {
	s.postOK("/class", url.Values{"class_id": {"7a"}})
	s.postOK("/study/reveal", nil)

	body := s.get("/").Body.String()
	s.Contains(body, "Paris")
	s.Contains(body, `value="pass"`)

	s.postOK("/study/mark", url.Values{"outcome": {"pass"}})

	snapshot := s.deck()
	s.Equal(1, snapshot.CurrentFlashcardIndex)
	s.Equal([]models.Outcome{models.OutcomePass}, snapshot.Flashcards[0].History)

	body = s.get("/").Body.String()
	s.Contains(body, "Cards left: 19")
	s.NotContains(body, "Paris")
}

func (s *ServerTestSuite) TestMark_InvalidOutcome() {
	s.postOK("/class", url.Values{"class_id": {"7a"}})

	rec := s.post("/study/mark", url.Values{"outcome": {"maybe"}}, "Accept", "application/json")

	s.Equal(http.StatusBadRequest, rec.Code)
	code, message := decodeError(s.T(), rec)
	s.Equal("VALIDATION_ERROR", code)
	s.Contains(message, "outcome")
	s.Empty(s.deck().Flashcards[0].History)
}

func (s *ServerTestSuite) TestMark_WithoutClass() {
	rec := s.post("/study/mark", url.Values{"outcome": {"pass"}}, "Accept", "application/json")

	s.Equal(http.StatusConflict, rec.Code)
	code, _ := decodeError(s.T(), rec)
	s.Equal("NO_CLASS", code)
}

func (s *ServerTestSuite) TestStatistics() {
	s.postOK("/class", url.Values{"class_id": {"7a"}})
	s.postOK("/study/mark", url.Values{"outcome": {"pass"}})
	s.postOK("/study/mark", url.Values{"outcome": {"fail"}})
	s.postOK("/study/mark", url.Values{"outcome": {"pass"}})

	rec := s.get("/api/statistics")
	s.Require().Equal(http.StatusOK, rec.Code)
	var stats statisticsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &stats))
	s.Equal("7a", stats.ClassID)
	s.Equal(2, stats.PassCount)
	s.Equal(1, stats.FailCount)
	s.Equal([]models.ChartPoint{{Name: "Pass", Value: 2}, {Name: "Fail", Value: 1}}, stats.Points)

	s.postOK("/statistics/open", nil)
	body := s.get("/").Body.String()
	s.Contains(body, "Statistics")
	s.Contains(body, "Pass 2, Fail 1")
	s.Contains(body, `action="/statistics/close"`)

	s.postOK("/statistics/close", nil)
	s.Contains(s.get("/").Body.String(), "Cards left")
}

func (s *ServerTestSuite) TestAPI_RequiresClass() {
	rec := s.get("/api/deck")

	s.Equal(http.StatusConflict, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "application/json")
	code, _ := decodeError(s.T(), rec)
	s.Equal("NO_CLASS", code)
}

func (s *ServerTestSuite) TestAdmin_AddEditDelete() {
	s.postOK("/class", url.Values{"class_id": {"7a"}})
	s.postOK("/admin/toggle", nil)

	body := s.get("/").Body.String()
	s.Contains(body, "Manage cards")
	s.Contains(body, "Attempts: 0")

	s.postOK("/admin/add/start", nil)
	s.Contains(s.get("/").Body.String(), "New card")
	s.postOK("/admin/add", url.Values{"front": {"Hauptstadt von Österreich?"}, "back": {"Wien"}})

	snapshot := s.deck()
	s.Require().Len(snapshot.Flashcards, flashcard.SeedDeckSize+1)
	added := snapshot.Flashcards[flashcard.SeedDeckSize]
	s.Equal(flashcard.SeedDeckSize+1, added.ID)
	s.Equal("Wien", added.Back)

	s.postOK("/admin/cards/21/edit/start", nil)
	body = s.get("/").Body.String()
	s.Contains(body, "Edit card 21")
	s.Contains(body, `value="Wien"`)

	s.postOK("/admin/cards/21/edit", url.Values{"front": {"Hauptstadt von Österreich?"}, "back": {"Vienna"}})
	s.Equal("Vienna", s.deck().Flashcards[flashcard.SeedDeckSize].Back)

	s.postOK("/admin/cards/1/delete", nil)
	snapshot = s.deck()
	s.Len(snapshot.Flashcards, flashcard.SeedDeckSize)
	s.Equal(0, snapshot.CurrentFlashcardIndex)
	s.Equal(2, snapshot.Flashcards[0].ID)

	s.postOK("/admin/toggle", nil)
	s.Contains(s.get("/").Body.String(), "Cards left")
}

func (s *ServerTestSuite) TestAdmin_AddWithoutForm() {
	s.postOK("/class", url.Values{"class_id": {"7a"}})
	s.postOK("/admin/toggle", nil)

	rec := s.post("/admin/add", url.Values{"front": {"q"}, "back": {"a"}}, "Accept", "application/json")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Len(s.deck().Flashcards, flashcard.SeedDeckSize)
}

func (s *ServerTestSuite) TestAdmin_InvalidCardID() {
	s.postOK("/class", url.Values{"class_id": {"7a"}})
	s.postOK("/admin/toggle", nil)

	rec := s.post("/admin/cards/abc/delete", nil, "Accept", "application/json")

	s.Equal(http.StatusBadRequest, rec.Code)
	code, message := decodeError(s.T(), rec)
	s.Equal("BAD_REQUEST", code)
	s.Contains(message, "abc")
}

func (s *ServerTestSuite) TestAdmin_RequiresAdminMode() {
	s.postOK("/class", url.Values{"class_id": {"7a"}})

	rec := s.post("/admin/add/start", nil, "Accept", "application/json")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.get("/healthz")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("OK", rec.Body.String())

	rec = s.get("/readyz")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Ready", rec.Body.String())
}

func (s *ServerTestSuite) TestRequestID() {
	rec := s.get("/healthz", "X-Request-ID", "req-123")
	s.Equal("req-123", rec.Header().Get("X-Request-ID"))

	rec = s.get("/healthz", "X-Request-ID", strings.Repeat("x", 100))
	s.Len(rec.Header().Get("X-Request-ID"), 36)
	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
	s.Equal("no-store", rec.Header().Get("Cache-Control"))
}

func (s *ServerTestSuite) TestErrorJSON_CarriesRequestID() {
	rec := s.get("/api/deck", "X-Request-ID", "req-456")

	var body struct {
		RequestID string `json:"request_id"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("req-456", body.RequestID)
}

func TestReady_StoreUnavailable(t *testing.T) {
	store := new(mocks.MockKeyValueStore)
	store.On("Ping", mock.Anything).Return(stderrors.New("disk I/O error"))

	srv := &Server{Store: store}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	store.AssertExpectations(t)
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoadTemplates_MissingDir(t *testing.T) {
	_, err := LoadTemplates(t.TempDir())
	assert.Error(t, err)
}

func TestValidateForm(t *testing.T) {
	assert.NoError(t, validateForm(markForm{Outcome: "fail"}))
	assert.NoError(t, validateForm(classForm{ClassID: "7a"}))

	err := validateForm(markForm{Outcome: "skip"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of: pass fail")

	err = validateForm(classForm{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class_id")
}
