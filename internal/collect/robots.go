package collect

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// hostRules is one host's cached robots.txt verdict. A nil group means the
// host had no matching rules and everything is allowed.
type hostRules struct {
	data  *robotstxt.RobotsData
	delay time.Duration
}

// RobotsChecker answers whether a tool page may be fetched, caching one
// robots.txt verdict per host. An unreachable or unparseable robots.txt is
// cached as allow-all so each host is asked at most once per run.
type RobotsChecker struct {
	mu        sync.Mutex
	hosts     map[string]*hostRules
	client    *http.Client
	userAgent string
}

// NewRobotsChecker creates a checker identifying itself as userAgent
func NewRobotsChecker(userAgent string, timeout time.Duration) *RobotsChecker {
	return &RobotsChecker{
		hosts:     make(map[string]*hostRules),
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// CanFetch reports whether rawURL may be fetched and any crawl delay the
// host requests.
func (r *RobotsChecker) CanFetch(ctx context.Context, rawURL string) (bool, time.Duration, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, 0, fmt.Errorf("parse URL: %w", err)
	}

	rules := r.rulesFor(ctx, parsed)
	if rules.data == nil {
		return true, 0, nil
	}
	return rules.data.TestAgent(parsed.Path, r.userAgent), rules.delay, nil
}

// rulesFor returns the cached rules for a host, fetching robots.txt on the
// first request. The lock is held across the fetch so concurrent workers
// hitting one new host trigger a single download.
func (r *RobotsChecker) rulesFor(ctx context.Context, page *url.URL) *hostRules {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rules, ok := r.hosts[page.Host]; ok {
		return rules
	}

	rules := &hostRules{}
	if data, err := r.fetchRobots(ctx, page); err == nil {
		rules.data = data
		if group := data.FindGroup(r.userAgent); group != nil {
			rules.delay = group.CrawlDelay
		}
	}
	r.hosts[page.Host] = rules
	return rules
}

func (r *RobotsChecker) fetchRobots(ctx context.Context, page *url.URL) (*robotstxt.RobotsData, error) {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", page.Scheme, page.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}
	return data, nil
}
