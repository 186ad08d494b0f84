package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
	"github.com/Astemirdum/shareit-service/shareit/internal/model"
)

func TestRequestMatcher_ItemRoundTrip(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	requester, owner := f.user("requester"), f.user("owner")

	req, err := f.requests.CreateRequest(f.ctx, requester.ID, model.CreateItemRequestRequest{Description: "need a ladder"})
	require.NoError(t, err)
	require.Equal(t, now, req.Created)

	view, err := f.requests.AssembleRequestView(f.ctx, req)
	require.NoError(t, err)
	require.Empty(t, view.Items)

	available := true
	item, err := f.items.CreateItem(f.ctx, owner.ID, model.CreateItemRequest{
		Name:        "ladder",
		Description: "3m ladder",
		Available:   &available,
		RequestID:   &req.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, item.RequestID)
	require.Equal(t, req.ID, *item.RequestID)
	f.item(owner.ID, true)

	view, err = f.requests.GetRequest(f.ctx, owner.ID, req.ID)
	require.NoError(t, err)
	require.Equal(t, []model.Item{item}, view.Items)

	missing := int64(999)
	_, err = f.items.CreateItem(f.ctx, owner.ID, model.CreateItemRequest{
		Name:        "ladder",
		Description: "another",
		Available:   &available,
		RequestID:   &missing,
	})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRequestMatcher_ListAllRequestsExcludingOwn(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	me, other, third := f.user("me"), f.user("other"), f.user("third")

	for i, u := range []model.User{me, other, third, other, me, third} {
		f.clock = now.Add(time.Duration(i) * time.Hour)
		_, err := f.requests.CreateRequest(f.ctx, u.ID, model.CreateItemRequestRequest{Description: "want something"})
		require.NoError(t, err)
	}

	all, err := f.requests.ListAllRequestsExcludingOwn(f.ctx, me.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, v := range all {
		require.NotEqual(t, me.ID, v.RequesterID)
		if i > 0 {
			require.True(t, all[i-1].Created.After(v.Created))
		}
	}

	page, err := f.requests.ListAllRequestsExcludingOwn(f.ctx, me.ID, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, all[1].ID, page[0].ID)
	require.Equal(t, all[2].ID, page[1].ID)

	tail, err := f.requests.ListAllRequestsExcludingOwn(f.ctx, me.ID, 1, math.MaxInt)
	require.NoError(t, err)
	require.Len(t, tail, 3)
	require.Equal(t, all[1].ID, tail[0].ID)

	_, err = f.requests.ListAllRequestsExcludingOwn(f.ctx, me.ID, -1, 10)
	require.ErrorIs(t, err, errs.ErrValidation)
	_, err = f.requests.ListAllRequestsExcludingOwn(f.ctx, me.ID, 0, 0)
	require.ErrorIs(t, err, errs.ErrValidation)
	_, err = f.requests.ListAllRequestsExcludingOwn(f.ctx, 999, 0, 10)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRequestMatcher_ListOwnRequests(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	me, owner := f.user("me"), f.user("owner")

	var ids []int64
	for i := 0; i < 3; i++ {
		f.clock = now.Add(time.Duration(i) * time.Minute)
		req, err := f.requests.CreateRequest(f.ctx, me.ID, model.CreateItemRequestRequest{Description: "need"})
		require.NoError(t, err)
		ids = append(ids, req.ID)
	}
	available := true
	_, err := f.items.CreateItem(f.ctx, owner.ID, model.CreateItemRequest{Name: "thing", Description: "for you", Available: &available, RequestID: &ids[1]})
	require.NoError(t, err)

	own, err := f.requests.ListOwnRequests(f.ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, own, 3)
	require.Equal(t, []int64{ids[2], ids[1], ids[0]}, []int64{own[0].ID, own[1].ID, own[2].ID})
	require.Empty(t, own[0].Items)
	require.Len(t, own[1].Items, 1)
	require.Empty(t, own[2].Items)

	none, err := f.requests.ListOwnRequests(f.ctx, owner.ID)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestRequestMatcher_CreateRequestValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	u := f.user("u")

	_, err := f.requests.CreateRequest(f.ctx, u.ID, model.CreateItemRequestRequest{Description: "   "})
	require.ErrorIs(t, err, errs.ErrValidation)
	_, err = f.requests.CreateRequest(f.ctx, 999, model.CreateItemRequestRequest{Description: "x"})
	require.ErrorIs(t, err, errs.ErrNotFound)
	_, err = f.requests.GetRequest(f.ctx, u.ID, 999)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
