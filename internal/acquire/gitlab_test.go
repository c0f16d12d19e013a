package acquire

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGitLab serves a fixed one-subgroup, two-project tree, standing in for
// gitlab.com so DiscoverTargets's filtering/naming logic can be exercised
// without any real network access.
func stubGitLab(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/groups/42/subgroups", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]subgroup{{ID: 7, Path: "cohort-a"}})
	})
	mux.HandleFunc("/groups/7/projects", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]glProject{
			{Name: "student-alpha", Path: "alpha", PathWithNS: "cohort-a/alpha"},
			{Name: "capstone-beta", Path: "beta", PathWithNS: "cohort-a/beta"},
		})
	})
	return httptest.NewServer(mux)
}

func TestDiscoverTargets_FiltersByNameRegex(t *testing.T) {
	srv := stubGitLab(t)
	defer srv.Close()

	c := &GitLabClient{BaseURL: srv.URL, Token: "tok", HTTP: srv.Client()}
	targets, err := c.DiscoverTargets("42", "^student-")
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "cohort-a-alpha", targets[0].Name)
	assert.Contains(t, targets[0].URL, "git:tok@")
	assert.Contains(t, targets[0].URL, "cohort-a/alpha.git")
}

func TestDiscoverTargets_EmptyRegexMatchesAll(t *testing.T) {
	srv := stubGitLab(t)
	defer srv.Close()

	c := &GitLabClient{BaseURL: srv.URL, Token: "tok", HTTP: srv.Client()}
	targets, err := c.DiscoverTargets("42", "")
	require.NoError(t, err)
	assert.Len(t, targets, 2)
}

func TestDiscoverTargets_InvalidRegex(t *testing.T) {
	c := &GitLabClient{BaseURL: "http://unused.invalid", Token: "tok", HTTP: http.DefaultClient}
	_, err := c.DiscoverTargets("42", "(")
	assert.Error(t, err)
}

func TestDiscoverTargets_UpstreamErrorPropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/groups/42/subgroups", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := &GitLabClient{BaseURL: srv.URL, Token: "tok", HTTP: srv.Client()}
	_, err := c.DiscoverTargets("42", "")
	assert.Error(t, err)
}
