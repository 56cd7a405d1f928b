package fetch

import (
	"context"
	"time"
)

// PageFetcher turns a posting URL into plain page text.
type PageFetcher struct {
	opts           *Options
	browserEnabled bool
	browserTimeout time.Duration
}

// NewPageFetcher creates a PageFetcher with default options and browser
// fallback enabled.
func NewPageFetcher() *PageFetcher {
	return &PageFetcher{
		opts:           DefaultOptions(),
		browserEnabled: true,
		browserTimeout: DefaultTimeout,
	}
}

// DisableBrowser turns off the headless-browser fallback for SPA pages.
func (p *PageFetcher) DisableBrowser() *PageFetcher {
	p.browserEnabled = false
	return p
}

// JobPageText fetches a posting URL and returns its main text. When the plain
// HTTP fetch yields too little text and the browser fallback is enabled, the
// page is re-rendered in a headless browser before extraction.
func (p *PageFetcher) JobPageText(ctx context.Context, url string) (string, error) {
	result, err := URL(ctx, url, p.opts)
	if err != nil {
		return "", err
	}

	text, err := ExtractMainText(result.HTML, JobPostingSelectors())
	if err != nil {
		return "", err
	}

	if p.browserEnabled && ShouldUseBrowser(text) {
		html, berr := WithBrowser(ctx, url, p.browserTimeout)
		if berr != nil {
			// The static fetch already produced something; use it.
			return text, nil
		}
		rendered, berr := ExtractMainText(html, JobPostingSelectors())
		if berr == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	return text, nil
}
