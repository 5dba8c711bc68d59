package boards

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var (
	alice = &service.Claims{ID: "alice", Email: "alice@x.com"}
	bob   = &service.Claims{ID: "bob", Email: "bob@x.com"}
)

// failingBoards fails every call with err.
type failingBoards struct{ err error }

func (f failingBoards) Create(context.Context, *service.Claims, service.BoardInput) (*model.Board, error) {
	return nil, f.err
}
func (f failingBoards) List(context.Context, *service.Claims) ([]model.Board, error) {
	return nil, f.err
}
func (f failingBoards) Get(context.Context, *service.Claims, string) (*model.Board, error) {
	return nil, f.err
}
func (f failingBoards) Update(context.Context, *service.Claims, string, service.BoardPatch) (*model.Board, error) {
	return nil, f.err
}
func (f failingBoards) Delete(context.Context, *service.Claims, string) error { return f.err }

func newCtx(e *echo.Echo, method, body string, caller *service.Claims, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserKey, caller)
	if id != "" {
		c.SetPath("/boards/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func newService() *service.Boards {
	mem := store.NewMemory()
	return service.NewBoards(mem, mem, service.DefaultOwnershipPolicy())
}

func decodeBoard(t *testing.T, rec *httptest.ResponseRecorder) model.Board {
	var b model.Board
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	return b
}

func TestCreateAndListBoards(t *testing.T) {
	e := echo.New()
	e.Validator = handler.NewValidator()
	svc := newService()

	ctx, rec := newCtx(e, http.MethodPost, `{"name":"B1","background":"#fff"}`, alice, "")
	require.NoError(t, CreateBoardHandler(svc)(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	b1 := decodeBoard(t, rec)
	require.Equal(t, 1, b1.SortID)
	require.Equal(t, "alice", b1.UserID)
	require.Equal(t, "#fff", *b1.Background)

	ctx, rec = newCtx(e, http.MethodPost, `{"name":""}`, alice, "")
	require.NoError(t, CreateBoardHandler(svc)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	ctx, rec = newCtx(e, http.MethodGet, "", alice, "")
	require.NoError(t, ListBoardsHandler(svc)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.Board
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	ctx, rec = newCtx(e, http.MethodGet, "", bob, "")
	require.NoError(t, ListBoardsHandler(svc)(ctx))
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestBoardByID(t *testing.T) {
	e := echo.New()
	e.Validator = handler.NewValidator()
	svc := newService()
	b, err := svc.Create(context.Background(), alice, service.BoardInput{Name: "mine"})
	require.NoError(t, err)

	ctx, rec := newCtx(e, http.MethodGet, "", alice, b.ID)
	require.NoError(t, GetBoardHandler(svc)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, rec = newCtx(e, http.MethodGet, "", bob, b.ID)
	require.NoError(t, GetBoardHandler(svc)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)

	ctx, rec = newCtx(e, http.MethodPut, `{"name":"stolen"}`, bob, b.ID)
	require.NoError(t, UpdateBoardHandler(svc)(ctx))
	require.Equal(t, http.StatusForbidden, rec.Code)

	ctx, rec = newCtx(e, http.MethodPut, `{"name":"renamed"}`, alice, b.ID)
	require.NoError(t, UpdateBoardHandler(svc)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "renamed", decodeBoard(t, rec).Name)

	ctx, rec = newCtx(e, http.MethodDelete, "", bob, b.ID)
	require.NoError(t, DeleteBoardHandler(svc)(ctx))
	require.Equal(t, http.StatusForbidden, rec.Code)

	ctx, rec = newCtx(e, http.MethodDelete, "", alice, b.ID)
	require.NoError(t, DeleteBoardHandler(svc)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, rec = newCtx(e, http.MethodDelete, "", alice, b.ID)
	require.NoError(t, DeleteBoardHandler(svc)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBoardHandlersInternalError(t *testing.T) {
	e := echo.New()
	e.Validator = handler.NewValidator()
	svc := failingBoards{err: errors.New("db down")}

	cases := []struct {
		name   string
		method string
		body   string
		id     string
		h      echo.HandlerFunc
	}{
		{"create", http.MethodPost, `{"name":"x"}`, "", CreateBoardHandler(svc)},
		{"list", http.MethodGet, "", "", ListBoardsHandler(svc)},
		{"get", http.MethodGet, "", "b", GetBoardHandler(svc)},
		{"update", http.MethodPut, `{"name":"x"}`, "b", UpdateBoardHandler(svc)},
		{"delete", http.MethodDelete, "", "b", DeleteBoardHandler(svc)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, rec := newCtx(e, tc.method, tc.body, alice, tc.id)
			require.NoError(t, tc.h(ctx))
			require.Equal(t, http.StatusInternalServerError, rec.Code)
			require.NotContains(t, rec.Body.String(), "db down")
		})
	}
}
