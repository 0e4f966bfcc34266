package httputil

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type solution struct {
	Pitch float64 `json:"pitch"`
}

func TestNewStandardClient(t *testing.T) {
	custom := &http.Client{}
	assert.Same(t, custom, NewStandardClient(custom).Client)
	assert.Same(t, http.DefaultClient, NewStandardClient(nil).Client)
}

func TestPostJSON(t *testing.T) {
	tests := []struct {
		name     string
		resp     *MockResponse
		want     solution
		wantErr  bool
		wantCode int
		wantMsg  string
	}{
		{name: "ok", resp: &MockResponse{StatusCode: http.StatusOK, Body: `{"pitch": 0.0011}`}, want: solution{Pitch: 0.0011}},
		{name: "json error", resp: &MockResponse{StatusCode: http.StatusUnprocessableEntity, Body: `{"error":"target out of reach"}`}, wantErr: true, wantCode: 422, wantMsg: "target out of reach"},
		{name: "plain error", resp: &MockResponse{StatusCode: http.StatusBadGateway, Body: "bad gateway\n"}, wantErr: true, wantCode: 502, wantMsg: "bad gateway"},
		{name: "garbage", resp: &MockResponse{StatusCode: http.StatusOK, Body: "not json"}, wantErr: true},
		{name: "transport", resp: &MockResponse{Error: errors.New("connection refused")}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockHTTPClient()
			mock.Responses = append(mock.Responses, tt.resp)

			var got solution
			err := PostJSON(mock, "http://example.com/zero", []byte(`{"label":"x"}`), &got)

			require.Equal(t, 1, mock.RequestCount())
			assert.Equal(t, http.MethodPost, mock.Requests[0].Method)
			assert.Equal(t, "application/json", mock.Requests[0].Header.Get("Content-Type"))
			assert.JSONEq(t, `{"label":"x"}`, string(mock.Bodies[0]))

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			if tt.wantCode != 0 {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, tt.wantCode, se.StatusCode)
				assert.Equal(t, tt.wantMsg, se.Message)
			}
		})
	}
}

func TestPostJSONNilOut(t *testing.T) {
	mock := NewMockHTTPClient().AddResponse(http.StatusNoContent, "")
	require.NoError(t, PostJSON(mock, "http://example.com/x", nil, nil))
}

func TestMockHTTPClientQueue(t *testing.T) {
	mock := NewMockHTTPClient().
		AddResponse(http.StatusCreated, "first").
		AddErrorResponse(errors.New("boom"))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	resp, err := mock.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "first", string(body))

	_, err = mock.Do(req)
	assert.EqualError(t, err, "boom")

	resp, err = mock.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, mock.RequestCount())
}

func TestStandardClientAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONOK(w, solution{Pitch: 0.5})
	}))
	defer srv.Close()

	var got solution
	require.NoError(t, PostJSON(NewStandardClient(srv.Client()), srv.URL, []byte(`{}`), &got))
	assert.Equal(t, 0.5, got.Pitch)
}
