package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"catalog-backend/internal/config"
	"catalog-backend/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type bookPayload struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
	Author          string `json:"author"`
	AuthorName      string `json:"author_name"`
}

type authorPayload struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Books []bookPayload `json:"books"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:   config.AppConfig{Name: "Catalog API", Environment: "test", LogLevel: "error", Version: "test"},
		Store: config.StoreConfig{Driver: config.StoreDriverMemory},
		Redis: config.RedisConfig{TTL: time.Minute},
		JWT:   config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: 60},
		Auth:  config.AuthConfig{SeedUsername: "admin", SeedPassword: "s3cret"},
	}
	c, err := container.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	s := &testServer{t: t, router: SetupRouter(c)}

	w, env := s.do(http.MethodPost, "/api-token-auth/", "", map[string]string{"username": "admin", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tok))
	s.token = "Bearer " + tok.Token
	return s
}

func (s *testServer) do(method, path, auth string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *testServer) createAuthor(name string) authorPayload {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/authors/", s.token, map[string]string{"name": name})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var a authorPayload
	require.NoError(s.t, json.Unmarshal(env.Data, &a))
	return a
}

func (s *testServer) createBook(title string, year int, authorID string) bookPayload {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/books/", s.token, map[string]interface{}{
		"title": title, "publication_year": year, "author": authorID,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var b bookPayload
	require.NoError(s.t, json.Unmarshal(env.Data, &b))
	return b
}

func (s *testServer) listBooks(query string) []bookPayload {
	s.t.Helper()
	w, env := s.do(http.MethodGet, "/books/"+query, "", nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var books []bookPayload
	require.NoError(s.t, json.Unmarshal(env.Data, &books))
	return books
}

func (s *testServer) seedCatalog() (john, jane authorPayload) {
	john = s.createAuthor("John Doe")
	jane = s.createAuthor("Jane Smith")
	s.createBook("Django Basics", 2020, john.ID)
	s.createBook("Advanced Django", 2021, jane.ID)
	s.createBook("Python Tricks", 2019, john.ID)
	return john, jane
}

func bookTitles(books []bookPayload) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestEndToEndScenario(t *testing.T) {
	s := newTestServer(t)

	author := s.createAuthor("John Doe")
	book := s.createBook("Django Basics", 2020, author.ID)
	assert.Equal(t, "John Doe", book.AuthorName)
	assert.Equal(t, author.ID, book.Author)

	books := s.listBooks("")
	require.Len(t, books, 1)
	assert.Equal(t, "Django Basics", books[0].Title)

	w, env := s.do(http.MethodPut, "/books/"+book.ID+"/", s.token, map[string]interface{}{
		"title": "Django Basics Updated", "publication_year": 2021, "author": author.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated bookPayload
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Django Basics Updated", updated.Title)
	assert.Equal(t, 2021, updated.PublicationYear)

	w, _ = s.do(http.MethodDelete, "/books/"+book.ID+"/", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Len(t, s.listBooks(""), 1)

	w, _ = s.do(http.MethodDelete, "/books/"+book.ID+"/", s.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w, env = s.do(http.MethodGet, "/books/"+book.ID+"/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestFutureYearRejected(t *testing.T) {
	s := newTestServer(t)
	author := s.createAuthor("John Doe")
	book := s.createBook("Django Basics", 2020, author.ID)
	future := time.Now().Year() + 1

	w, env := s.do(http.MethodPost, "/books/", s.token, map[string]interface{}{
		"title": "From The Future", "publication_year": future, "author": author.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FUTURE_PUBLICATION_YEAR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "publication_year")

	w, _ = s.do(http.MethodPatch, "/books/"+book.ID+"/", s.token, map[string]interface{}{
		"title": "Django Basics", "publication_year": future,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	books := s.listBooks("")
	require.Len(t, books, 1)
	assert.Equal(t, 2020, books[0].PublicationYear)
}

func TestAnonymousWritesForbidden(t *testing.T) {
	s := newTestServer(t)
	author := s.createAuthor("John Doe")
	book := s.createBook("Django Basics", 2020, author.ID)
	payload := map[string]interface{}{"title": "Hijacked", "publication_year": 2000, "author": author.ID}

	tests := []struct {
		method string
		path   string
		auth   string
	}{
		{http.MethodPost, "/books/", ""},
		{http.MethodPost, "/books_all/", ""},
		{http.MethodPost, "/books-create/", ""},
		{http.MethodPut, "/books/" + book.ID + "/", ""},
		{http.MethodPatch, "/books_all/" + book.ID + "/", ""},
		{http.MethodPut, "/books-update/" + book.ID + "/", ""},
		{http.MethodDelete, "/books/" + book.ID + "/", ""},
		{http.MethodDelete, "/books-delete/" + book.ID + "/", ""},
		{http.MethodPost, "/authors/", ""},
		{http.MethodDelete, "/authors/" + author.ID + "/", ""},
		{http.MethodDelete, "/books/" + book.ID + "/", "Bearer garbage"},
		{http.MethodDelete, "/books/" + book.ID + "/", "Basic YWRtaW46czNjcmV0"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w, env := s.do(tt.method, tt.path, tt.auth, payload)
			assert.Equal(t, http.StatusForbidden, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, "FORBIDDEN", env.Error.Code)
		})
	}

	books := s.listBooks("")
	require.Len(t, books, 1)
	assert.Equal(t, "Django Basics", books[0].Title)
}

func TestTokenScheme(t *testing.T) {
	s := newTestServer(t)
	token := "Token " + strings.TrimPrefix(s.token, "Bearer ")

	w, _ := s.do(http.MethodPost, "/authors/", token, map[string]string{"name": "Jane Smith"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestLoginFailure(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodPost, "/api-token-auth/", "", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}

func TestAuthorDeleteCascades(t *testing.T) {
	s := newTestServer(t)
	john, jane := s.seedCatalog()

	w, env := s.do(http.MethodGet, "/authors/"+john.ID+"/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got authorPayload
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, []string{"Django Basics", "Python Tricks"}, bookTitles(got.Books))

	w, _ = s.do(http.MethodDelete, "/authors/"+john.ID+"/", s.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, []string{"Advanced Django"}, bookTitles(s.listBooks("")))

	w, env = s.do(http.MethodGet, "/authors/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var authors []authorPayload
	require.NoError(t, json.Unmarshal(env.Data, &authors))
	require.Len(t, authors, 1)
	assert.Equal(t, jane.ID, authors[0].ID)
}

func TestListBooksQuery(t *testing.T) {
	s := newTestServer(t)
	s.seedCatalog()

	t.Run("ordering by year is non-decreasing", func(t *testing.T) {
		books := s.listBooks("?ordering=publication_year")
		require.Len(t, books, 3)
		for i := 1; i < len(books); i++ {
			assert.LessOrEqual(t, books[i-1].PublicationYear, books[i].PublicationYear)
		}
	})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"default ordering", "", []string{"Advanced Django", "Django Basics", "Python Tricks"}},
		{"descending title", "?ordering=-title", []string{"Python Tricks", "Django Basics", "Advanced Django"}},
		{"unknown ordering dropped", "?ordering=price", []string{"Advanced Django", "Django Basics", "Python Tricks"}},
		{"search title ignoring case", "?search=DJANGO", []string{"Advanced Django", "Django Basics"}},
		{"search author name", "?search=doe", []string{"Django Basics", "Python Tricks"}},
		{"search no match", "?search=rust", []string{}},
		{"filter title", "?title=Python%20Tricks", []string{"Python Tricks"}},
		{"filter author", "?author=jane%20smith", []string{"Advanced Django"}},
		{"filter year", "?publication_year=2019", []string{"Python Tricks"}},
		{"filters combine", "?author=John%20Doe&search=django", []string{"Django Basics"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bookTitles(s.listBooks(tt.query)))
		})
	}

	t.Run("viewset lists the same", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/books_all/?ordering=-publication_year", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var books []bookPayload
		require.NoError(t, json.Unmarshal(env.Data, &books))
		assert.Equal(t, []string{"Advanced Django", "Django Basics", "Python Tricks"}, bookTitles(books))
	})

	t.Run("non-integer year is rejected", func(t *testing.T) {
		w, _ := s.do(http.MethodGet, "/books/?publication_year=abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookValidationErrors(t *testing.T) {
	s := newTestServer(t)
	john, _ := s.seedCatalog()
	book := s.listBooks("?title=Django%20Basics")[0]

	tests := []struct {
		name     string
		method   string
		path     string
		body     interface{}
		wantCode string
	}{
		{"duplicate title", http.MethodPost, "/books/", map[string]interface{}{"title": "django basics", "publication_year": 2020, "author": john.ID}, "DUPLICATE_TITLE"},
		{"unknown author", http.MethodPost, "/books/", map[string]interface{}{"title": "New", "publication_year": 2020, "author": "5b0f8f9e-0c1a-4d7e-8a35-2b6a5d4c3e21"}, "INVALID_REFERENCE"},
		{"empty title on put", http.MethodPut, "/books/" + book.ID + "/", map[string]interface{}{"title": "", "publication_year": 2020, "author": john.ID}, "EMPTY_TITLE"},
		{"missing title on patch", http.MethodPatch, "/books/" + book.ID + "/", map[string]interface{}{"publication_year": 2020}, "EMPTY_TITLE"},
		{"malformed body", http.MethodPost, "/books/", "not an object", "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := s.do(tt.method, tt.path, s.token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestPaddedTitlesAreTrimmed(t *testing.T) {
	s := newTestServer(t)
	author := s.createAuthor("  John Doe ")
	assert.Equal(t, "John Doe", author.Name)
	s.createBook("Django Basics", 2020, author.ID)

	w, env := s.do(http.MethodPost, "/books/", s.token, map[string]interface{}{
		"title": "Django Basics ", "publication_year": 2021, "author": author.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_TITLE", env.Error.Code)

	w, env = s.do(http.MethodPost, "/books/", s.token, map[string]interface{}{
		"title": "   ", "publication_year": 2021, "author": author.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "title")

	book := s.createBook("  Python Tricks  ", 2019, author.ID)
	assert.Equal(t, "Python Tricks", book.Title)
	assert.Equal(t, []string{"Django Basics", "Python Tricks"}, bookTitles(s.listBooks("")))
}

func TestYearOutsideIntegerRangeRejected(t *testing.T) {
	s := newTestServer(t)
	author := s.createAuthor("John Doe")

	w, env := s.do(http.MethodPost, "/books/", s.token, map[string]interface{}{
		"title": "Ancient", "publication_year": -3000000000, "author": author.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "publication_year")

	w, _ = s.do(http.MethodGet, "/books/?publication_year=3000000000", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, s.listBooks(""))
}

func TestLegacyRoutes(t *testing.T) {
	s := newTestServer(t)
	author := s.createAuthor("John Doe")

	w, env := s.do(http.MethodPost, "/books-create/", s.token, map[string]interface{}{
		"title": "Legacy", "publication_year": 2018, "author": author.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var book bookPayload
	require.NoError(t, json.Unmarshal(env.Data, &book))

	w, _ = s.do(http.MethodPatch, "/books-update/"+book.ID+"/", s.token, map[string]interface{}{"title": "Legacy Renamed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"Legacy Renamed"}, bookTitles(s.listBooks("")))

	w, _ = s.do(http.MethodDelete, "/books-delete/"+book.ID+"/", s.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, s.listBooks(""))
}

func TestMalformedIDIsNotFound(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/books/not-a-uuid/", "/books_all/123/", "/authors/xyz/"} {
		w, _ := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}
