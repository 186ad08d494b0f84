package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
	"github.com/Astemirdum/shareit-service/shareit/internal/model"

	service_mocks "github.com/Astemirdum/shareit-service/shareit/internal/handler/mocks"
)

var created = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func TestHandler_ListAllRequests(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockRequestService)

	var tests = []struct {
		name         string
		target       string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name:   "default paging",
			target: "/api/v1/requests/all",
			mockBehavior: func(r *service_mocks.MockRequestService) {
				r.EXPECT().
					ListAllRequestsExcludingOwn(gomock.Any(), int64(2), 0, 10).
					Return([]model.RequestView{{
						ItemRequest: model.ItemRequest{ID: 4, Description: "need a ladder", RequesterID: 7, Created: created},
						Items:       []model.Item{{ID: 8, Name: "ladder", Description: "3m", Available: true, OwnerID: 2}},
					}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":4,"description":"need a ladder","requesterId":7,"created":"2026-06-01T10:00:00Z","items":[{"id":8,"name":"ladder","description":"3m","available":true,"ownerId":2}]}]`,
		},
		{
			name:   "explicit paging",
			target: "/api/v1/requests/all?from=2&size=5",
			mockBehavior: func(r *service_mocks.MockRequestService) {
				r.EXPECT().
					ListAllRequestsExcludingOwn(gomock.Any(), int64(2), 2, 5).
					Return([]model.RequestView{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:         "err. from not a number",
			target:       "/api/v1/requests/all?from=abc",
			mockBehavior: func(r *service_mocks.MockRequestService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"from is invalid"}`,
		},
		{
			name:   "err. negative size",
			target: "/api/v1/requests/all?size=-1",
			mockBehavior: func(r *service_mocks.MockRequestService) {
				r.EXPECT().
					ListAllRequestsExcludingOwn(gomock.Any(), int64(2), 0, -1).
					Return(nil, errors.Wrap(errs.ErrValidation, "size must be positive"))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"size must be positive: validation failed"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			e, svc := newRouter(c)

			tt.mockBehavior(svc.request)
			w := do(e, http.MethodGet, tt.target, 2, "")

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, body(w))
		})
	}
}

func TestHandler_CreateRequest(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	e, svc := newRouter(c)

	svc.request.EXPECT().
		CreateRequest(gomock.Any(), int64(3), model.CreateItemRequestRequest{Description: "need a tent"}).
		Return(model.ItemRequest{ID: 1, Description: "need a tent", RequesterID: 3, Created: created}, nil)

	w := do(e, http.MethodPost, "/api/v1/requests", 3, `{"description":"need a tent"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, `{"id":1,"description":"need a tent","requesterId":3,"created":"2026-06-01T10:00:00Z"}`, body(w))

	w = do(e, http.MethodPost, "/api/v1/requests", 3, `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetRequest(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	e, svc := newRouter(c)

	svc.request.EXPECT().
		GetRequest(gomock.Any(), int64(3), int64(42)).
		Return(model.RequestView{}, errors.Wrap(errs.ErrNotFound, "request 42"))

	w := do(e, http.MethodGet, "/api/v1/requests/42", 3, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, `{"message":"request 42: not found"}`, body(w))

	w = do(e, http.MethodGet, "/api/v1/requests/0", 3, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `{"message":"requestId is invalid"}`, body(w))
}
