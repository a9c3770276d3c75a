//go:build integration

package integration

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/ipryshchepa/FTG12-sub001/internal/app"
	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
	"github.com/ipryshchepa/FTG12-sub001/internal/repositories"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newRepos() app.Repositories {
	return app.Repositories{
		Books:           repositories.NewBookRepository(db),
		Loans:           repositories.NewLoanRepository(db),
		Ratings:         repositories.NewRatingRepository(db),
		ReadingStatuses: repositories.NewReadingStatusRepository(db),
	}
}

// call sends a JSON request and returns the status code and raw body.
func call(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, baseURL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func createBook(t *testing.T, title, author, ownership string) dtos.BookResponse {
	t.Helper()
	status, raw := call(t, http.MethodPost, "/api/v1/books", map[string]any{
		"title": title, "author": author, "ownershipStatus": ownership,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[dtos.BookResponse](t, raw)
}
