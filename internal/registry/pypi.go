/*
Copyright 2026 The pkgvet Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package registry implements metadata sources backed by public package
// registries.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/pkgvet/pkgvet/pkg/vet"
)

// ErrNotFound means the registry has no such package or version.
var ErrNotFound = errors.New("package not found")

// PyPIClient fetches package metadata from the PyPI JSON API.
type PyPIClient struct {
	baseURL string
	http    *retryablehttp.Client
}

// NewPyPIClient builds a client for baseURL, defaulting to the public PyPI
// instance.
func NewPyPIClient(baseURL string) *PyPIClient {
	if baseURL == "" {
		baseURL = "https://pypi.org"
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil
	client.HTTPClient.Timeout = 30 * time.Second

	return &PyPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

// pypiResponse mirrors the slice of the PyPI JSON API we consume.
type pypiResponse struct {
	Info struct {
		Summary         string            `json:"summary"`
		HomePage        string            `json:"home_page"`
		License         string            `json:"license"`
		Author          string            `json:"author"`
		AuthorEmail     string            `json:"author_email"`
		ProjectURLs     map[string]string `json:"project_urls"`
		RequiresDist    []string          `json:"requires_dist"`
		Version         string            `json:"version"`
		PackageURL      string            `json:"package_url"`
		MaintainerEmail string            `json:"maintainer_email"`
	} `json:"info"`
	URLs []struct {
		UploadTime time.Time `json:"upload_time_iso_8601"`
	} `json:"urls"`
}

// PackageMetadata implements vet.MetadataSource.
func (c *PyPIClient) PackageMetadata(ctx context.Context, id vet.PackageIdentity) (*vet.PackageMetadata, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, id.Name)
	if id.Version != "" {
		url = fmt.Sprintf("%s/pypi/%s/%s/json", c.baseURL, id.Name, id.Version)
	}

	req, err := retryablehttp.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building registry request: %w", err)
	}
	req = req.WithContext(ctx)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying registry for %s: %w", id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("registry returned status %d for %s", resp.StatusCode, id)
	}

	var parsed pypiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding registry response for %s: %w", id, err)
	}

	return c.toMetadata(id, parsed), nil
}

func (c *PyPIClient) toMetadata(id vet.PackageIdentity, parsed pypiResponse) *vet.PackageMetadata {
	if id.Version == "" {
		id.Version = parsed.Info.Version
	}

	md := &vet.PackageMetadata{
		Identity:     id,
		Description:  parsed.Info.Summary,
		Homepage:     parsed.Info.HomePage,
		Repository:   repositoryURL(parsed.Info.ProjectURLs),
		License:      parsed.Info.License,
		Dependencies: parsed.Info.RequiresDist,
	}

	if md.Homepage == "" {
		md.Homepage = parsed.Info.ProjectURLs["Homepage"]
	}

	if parsed.Info.Author != "" || parsed.Info.AuthorEmail != "" {
		md.Maintainers = append(md.Maintainers, vet.Maintainer{
			Username: parsed.Info.Author,
			Email:    parsed.Info.AuthorEmail,
		})
	}

	for _, u := range parsed.URLs {
		if !u.UploadTime.IsZero() {
			t := u.UploadTime
			md.LatestRelease = &t
			break
		}
	}

	return md
}

func repositoryURL(projectURLs map[string]string) string {
	for _, key := range []string{"Source", "Source Code", "Repository", "Code"} {
		if u, ok := projectURLs[key]; ok {
			return u
		}
	}
	for _, u := range projectURLs {
		if strings.Contains(u, "github.com") || strings.Contains(u, "gitlab.com") {
			return u
		}
	}
	return ""
}
