package pricelist

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"shopapi/internal/domain"
)

// Fetcher resolves public share links through a cloud-storage API and
// downloads the catalog document they point at.
type Fetcher struct {
	client  *resty.Client
	apiBase string
}

func NewFetcher(apiBase string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:  resty.New().SetTimeout(timeout),
		apiBase: apiBase,
	}
}

// ResolveLink exchanges a public share key for a direct download URL.
func (f *Fetcher) ResolveLink(ctx context.Context, publicURL string) (string, error) {
	var body struct {
		Href string `json:"href"`
	}
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("public_key", publicURL).
		SetResult(&body).
		Get(f.apiBase)
	if err != nil || !resp.IsSuccess() || body.Href == "" {
		return "", domain.ErrLinkResolution
	}
	return body.Href, nil
}

// Download fetches the raw bytes at a direct URL. Non-2xx responses,
// network errors and timeouts all surface as ErrDownload.
func (f *Fetcher) Download(ctx context.Context, directURL string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(directURL)
	if err != nil || !resp.IsSuccess() {
		return nil, domain.ErrDownload
	}
	return resp.Body(), nil
}

// Filename extracts the filename hint a direct download URL carries in
// its query string; falls back to a fixed name when there is none.
func Filename(directURL string) string {
	if u, err := url.Parse(directURL); err == nil {
		if name := u.Query().Get("filename"); name != "" {
			return sanitize(name)
		}
	}
	return "pricelist.yaml"
}

func sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ReplaceAll(name, "..", "")
	if name == "" {
		return "pricelist.yaml"
	}
	return name
}
