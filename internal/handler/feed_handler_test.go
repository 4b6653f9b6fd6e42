package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Thikana-App/internal/domain/model"
)

type fakeFeedUseCase struct {
	resp      *model.FeedResponse
	err       error
	gotUserID string
	gotLoc    model.Location
	gotLimit  int
}

func (f *fakeFeedUseCase) BuildFeed(_ context.Context, userID string, loc model.Location, limit int) (*model.FeedResponse, error) {
	f.gotUserID = userID
	f.gotLoc = loc
	f.gotLimit = limit
	return f.resp, f.err
}

type fakeDiscoveryUseCase struct {
	resp     *model.WhoToFollowResponse
	err      error
	gotLimit int
}

func (f *fakeDiscoveryUseCase) WhoToFollow(_ context.Context, _ string, _ model.Location, limit int) (*model.WhoToFollowResponse, error) {
	f.gotLimit = limit
	return f.resp, f.err
}

type fakeLocationUseCase struct {
	err    error
	gotID  string
	gotLoc model.Location
	calls  int
}

func (f *fakeLocationUseCase) UpdateBusinessLocation(_ context.Context, businessID string, loc model.Location) error {
	f.calls++
	f.gotID = businessID
	f.gotLoc = loc
	return f.err
}

func setupRouter(feedUC *fakeFeedUseCase, discoveryUC *fakeDiscoveryUseCase, locationUC *fakeLocationUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/feed/:user_id", NewFeedHandler(feedUC).GetFeed)
	r.GET("/discovery/who-to-follow/:user_id", NewDiscoveryHandler(discoveryUC).GetWhoToFollow)
	r.PUT("/businesses/:id/location", NewBusinessLocationHandler(locationUC).PutBusinessLocation)
	return r
}

func TestGetFeed(t *testing.T) {
	feedUC := &fakeFeedUseCase{resp: &model.FeedResponse{
		UserID: "user-1",
		Count:  1,
		Posts:  []model.FeedItem{{ID: "p1", Score: 0.6494, RecommendationType: model.RecommendationFollowed}},
	}}
	router := setupRouter(feedUC, &fakeDiscoveryUseCase{}, &fakeLocationUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/feed/user-1?lat=18.5204&lon=73.8567", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", feedUC.gotUserID)
	assert.Equal(t, model.Location{Latitude: 18.5204, Longitude: 73.8567}, feedUC.gotLoc)
	assert.Equal(t, model.DefaultFeedLimit, feedUC.gotLimit)

	var resp model.FeedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "p1", resp.Posts[0].ID)
}

func TestGetFeedValidation(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"lat/lon欠落", "/feed/user-1"},
		{"latのみ", "/feed/user-1?lat=18.5"},
		{"latが数値でない", "/feed/user-1?lat=abc&lon=73.8567"},
		{"latが範囲外", "/feed/user-1?lat=91&lon=73.8567"},
		{"lonが範囲外", "/feed/user-1?lat=18.5&lon=181"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(&fakeFeedUseCase{}, &fakeDiscoveryUseCase{}, &fakeLocationUseCase{})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.url, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetFeedLimitClamp(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"limit=5", 5},
		{"limit=100", 50},
		{"limit=0", 1},
		{"limit=abc", model.DefaultFeedLimit},
	}

	for _, tc := range cases {
		feedUC := &fakeFeedUseCase{resp: &model.FeedResponse{Posts: []model.FeedItem{}}}
		router := setupRouter(feedUC, &fakeDiscoveryUseCase{}, &fakeLocationUseCase{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed/user-1?lat=18.5&lon=73.8&"+tc.query, nil))
		assert.Equal(t, tc.want, feedUC.gotLimit, tc.query)
	}
}

func TestGetFeedInternalError(t *testing.T) {
	feedUC := &fakeFeedUseCase{err: errors.New("firestore unavailable")}
	router := setupRouter(feedUC, &fakeDiscoveryUseCase{}, &fakeLocationUseCase{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed/user-1?lat=18.5&lon=73.8", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestGetWhoToFollow(t *testing.T) {
	discoveryUC := &fakeDiscoveryUseCase{resp: &model.WhoToFollowResponse{
		UserID:      "user-1",
		Count:       1,
		Suggestions: []model.FollowSuggestion{{ID: "biz-n", Score: 0.4811}},
	}}
	router := setupRouter(&fakeFeedUseCase{}, discoveryUC, &fakeLocationUseCase{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/discovery/who-to-follow/user-1?lat=18.5204&lon=73.8567", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.DefaultSuggestionLimit, discoveryUC.gotLimit)

	var resp model.WhoToFollowResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "biz-n", resp.Suggestions[0].ID)
}

func TestPutBusinessLocation(t *testing.T) {
	locationUC := &fakeLocationUseCase{}
	router := setupRouter(&fakeFeedUseCase{}, &fakeDiscoveryUseCase{}, locationUC)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"latitude": 18.5204, "longitude": 73.8567}`)
	req := httptest.NewRequest(http.MethodPut, "/businesses/biz-1/location", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "biz-1", locationUC.gotID)
	assert.Equal(t, model.Location{Latitude: 18.5204, Longitude: 73.8567}, locationUC.gotLoc)
}

func TestPutBusinessLocationValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"空ボディ", ``},
		{"latitude欠落", `{"longitude": 73.8567}`},
		{"範囲外", `{"latitude": 91, "longitude": 73.8567}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			locationUC := &fakeLocationUseCase{}
			router := setupRouter(&fakeFeedUseCase{}, &fakeDiscoveryUseCase{}, locationUC)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/businesses/biz-1/location", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, 0, locationUC.calls)
		})
	}
}

func TestPutBusinessLocationZeroCoordinates(t *testing.T) {
	// 0.0は有効な座標（ギニア湾沖）であり、requiredバリデーションに弾かれない
	locationUC := &fakeLocationUseCase{}
	router := setupRouter(&fakeFeedUseCase{}, &fakeDiscoveryUseCase{}, locationUC)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/businesses/biz-1/location", strings.NewReader(`{"latitude": 0, "longitude": 0}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, locationUC.calls)
}
