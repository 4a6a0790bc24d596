package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitchlog/backend/internal/domain"
	"github.com/hitchlog/backend/internal/handler"
)

type mockHitchhikeServicer struct {
	getByID func(ctx context.Context, id int64) (domain.HitchhikeDetail, error)
}

func (m *mockHitchhikeServicer) GetByID(ctx context.Context, id int64) (domain.HitchhikeDetail, error) {
	return m.getByID(ctx, id)
}

var _ handler.HitchhikeServicer = (*mockHitchhikeServicer)(nil)

type hitchhikeBody struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Date     string `json:"date"`
	Username string `json:"username"`
	Person   *struct {
		Name       string `json:"name"`
		Occupation string `json:"occupation"`
	} `json:"person"`
	Next int64 `json:"next"`
	Prev int64 `json:"prev"`
}

func TestGetHitchhike_returnsDetailWithNeighbours(t *testing.T) {
	departure := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	waiting := 20
	svc := &mockHitchhikeServicer{
		getByID: func(_ context.Context, id int64) (domain.HitchhikeDetail, error) {
			assert.Equal(t, int64(4), id)
			return domain.HitchhikeDetail{
				Hitchhike: domain.Hitchhike{
					ID:          4,
					Title:       "Through the Alps",
					WaitingTime: &waiting,
					Person:      &domain.Person{Name: "Anna", Occupation: "truck driver"},
					Departure:   &departure,
					Username:    "tom",
				},
				Next: 9,
				Prev: 2,
			}, nil
		},
	}

	rec := do(t, newHTTPHandler(nil, nil, svc), "/hitchhikes/4")

	require.Equal(t, http.StatusOK, rec.Code)
	var body hitchhikeBody
	decode(t, rec, &body)
	assert.Equal(t, int64(4), body.ID)
	assert.Equal(t, "Through the Alps, Anna, truck driver, waiting time: 20 minutes", body.Summary)
	assert.Equal(t, "09. Mar 2024", body.Date)
	assert.Equal(t, "tom", body.Username)
	require.NotNil(t, body.Person)
	assert.Equal(t, "Anna", body.Person.Name)
	assert.Equal(t, int64(9), body.Next)
	assert.Equal(t, int64(2), body.Prev)
}

func TestGetHitchhike_withoutPersonOrDate(t *testing.T) {
	svc := &mockHitchhikeServicer{
		getByID: func(context.Context, int64) (domain.HitchhikeDetail, error) {
			return domain.HitchhikeDetail{Hitchhike: domain.Hitchhike{ID: 1, Title: "Short hop"}, Next: 1, Prev: 1}, nil
		},
	}

	rec := do(t, newHTTPHandler(nil, nil, svc), "/hitchhikes/1")

	require.Equal(t, http.StatusOK, rec.Code)
	var body hitchhikeBody
	decode(t, rec, &body)
	assert.Nil(t, body.Person)
	assert.Empty(t, body.Date)
	assert.Equal(t, "Short hop", body.Summary)
}

func TestGetHitchhike_returns404WhenMissing(t *testing.T) {
	svc := &mockHitchhikeServicer{
		getByID: func(context.Context, int64) (domain.HitchhikeDetail, error) {
			return domain.HitchhikeDetail{}, domain.ErrNotFound
		},
	}

	rec := do(t, newHTTPHandler(nil, nil, svc), "/hitchhikes/5")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "hitchhike not found")
}

func TestGetHitchhike_returns400ForInvalidID(t *testing.T) {
	rec := do(t, newHTTPHandler(nil, nil, &mockHitchhikeServicer{}), "/hitchhikes/x")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
