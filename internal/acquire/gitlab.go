package acquire

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
)

// GitLabClient discovers clone targets from a GitLab group tree, the Go
// equivalent of original_source/gitlab.py's requests-based group/subgroup
// walk. It uses net/http and encoding/json directly: the pack carries no
// third-party HTTP client or GitLab SDK for a REST-only, two-endpoint
// integration to plausibly wire into (see DESIGN.md).
type GitLabClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewGitLabClient returns a client against gitlab.com using token for the
// PRIVATE-TOKEN header.
func NewGitLabClient(token string) *GitLabClient {
	return &GitLabClient{BaseURL: "https://gitlab.com/api/v4", Token: token, HTTP: http.DefaultClient}
}

type subgroup struct {
	ID   int    `json:"id"`
	Path string `json:"path"`
}

type glProject struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	PathWithNS string `json:"path_with_namespace"`
}

// DiscoverTargets walks every subgroup of groupID and returns one Target per
// project whose name matches nameRegex (case-insensitive; an empty pattern
// matches everything), named "<subgroup-path>-<project-path>" to disambiguate
// identically-named projects across subgroups the way _single_clone did.
func (c *GitLabClient) DiscoverTargets(groupID, nameRegex string) ([]Target, error) {
	pattern, err := regexp.Compile("(?i)" + nameRegex)
	if err != nil {
		return nil, fmt.Errorf("acquire: invalid project-name-regex: %w", err)
	}

	var subgroups []subgroup
	if err := c.getJSON(fmt.Sprintf("/groups/%s/subgroups", groupID), &subgroups); err != nil {
		return nil, fmt.Errorf("acquire: listing subgroups of %s: %w", groupID, err)
	}

	var targets []Target
	for _, sg := range subgroups {
		var projects []glProject
		if err := c.getJSON(fmt.Sprintf("/groups/%d/projects", sg.ID), &projects); err != nil {
			return nil, fmt.Errorf("acquire: listing projects of subgroup %s: %w", sg.Path, err)
		}
		for _, p := range projects {
			if nameRegex != "" && !pattern.MatchString(p.Name) {
				continue
			}
			targets = append(targets, Target{
				URL:  fmt.Sprintf("https://git:%s@gitlab.com/%s.git", c.Token, p.PathWithNS),
				Name: fmt.Sprintf("%s-%s", sg.Path, p.Path),
			})
		}
	}
	return targets, nil
}

func (c *GitLabClient) getJSON(pathSuffix string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+pathSuffix, nil)
	if err != nil {
		return err
	}
	req.Header.Set("PRIVATE-TOKEN", c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gitlab API returned status %d for %s", resp.StatusCode, pathSuffix)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
