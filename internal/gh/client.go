// Package gh implements the GitHub-backed event source for the pipeline.
package gh

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"golang.org/x/time/rate"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// GitHub allows 5000 requests per hour for authenticated users and 60
// requests per hour for unauthenticated ones.
const (
	authedBurst = 5000
	anonBurst   = 60
)

// Client fetches star events and repository stats from the GitHub REST API.
// It honors the platform rate limit on its own, so callers never see a
// rate-limit error: quota exhaustion is waited out, not surfaced.
type Client struct {
	gh       *github.Client
	limiter  *rate.Limiter
	maxPages int
	perPage  int

	// retryDelay is the base delay between transient-fault retries.
	// Tests shrink it to keep the suite fast.
	retryDelay time.Duration
}

var _ contract.EventSource = (*Client)(nil)

// NewClient builds a Client from validated config. A token raises the
// client-side limiter to the authenticated quota; BaseURL supports GitHub
// Enterprise deployments.
func NewClient(cfg *contract.Config) (*Client, error) {
	var gc *github.Client
	var limiter *rate.Limiter
	if cfg.Token != "" {
		gc = github.NewClient(nil).WithAuthToken(cfg.Token)
		limiter = rate.NewLimiter(rate.Every(time.Hour), authedBurst)
	} else {
		gc = github.NewClient(nil)
		limiter = rate.NewLimiter(rate.Every(time.Hour), anonBurst)
	}

	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
		}
		gc.BaseURL = base
	}

	return &Client{
		gh:         gc,
		limiter:    limiter,
		maxPages:   cfg.MaxPages,
		perPage:    cfg.PerPage,
		retryDelay: contract.RetryBaseDelay,
	}, nil
}

// FetchStarEvents returns the full star event history for owner/repo in
// starred-at order, plus the number of pages consumed. Pagination stops at
// the configured page ceiling, returning the events gathered so far.
func (c *Client) FetchStarEvents(ctx context.Context, owner, repo string) ([]schema.StarEvent, int, error) {
	repoKey := owner + "/" + repo
	events := make([]schema.StarEvent, 0, c.perPage)
	pages := 0

	opts := &github.ListOptions{Page: 1, PerPage: c.perPage}
	for pages < c.maxPages {
		stargazers, resp, err := c.listPage(ctx, owner, repo, opts)
		if err != nil {
			return nil, pages, err
		}
		pages++

		for _, sg := range stargazers {
			events = append(events, schema.StarEvent{
				Repo:      repoKey,
				StarredAt: sg.GetStarredAt().Time.UTC(),
				Actor:     sg.GetUser().GetLogin(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	// The API serves stargazers in ascending starred-at order already, but
	// store order is a contract, so enforce it.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StarredAt.Before(events[j].StarredAt)
	})
	return events, pages, nil
}

// FetchRepoStats returns a point-in-time snapshot of repository counters.
func (c *Client) FetchRepoStats(ctx context.Context, owner, repo string) (*schema.RepoStats, error) {
	attempt := 0
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		repository, _, err := c.gh.Repositories.Get(ctx, owner, repo)
		if err != nil {
			again, mapped := c.retryAfter(ctx, err, &attempt)
			if again {
				continue
			}
			return nil, mapped
		}
		return &schema.RepoStats{
			FullName:    repository.GetFullName(),
			Stars:       repository.GetStargazersCount(),
			Forks:       repository.GetForksCount(),
			Watchers:    repository.GetSubscribersCount(),
			OpenIssues:  repository.GetOpenIssuesCount(),
			Language:    repository.GetLanguage(),
			Description: repository.GetDescription(),
			CreatedAt:   repository.GetCreatedAt().Time.UTC(),
			UpdatedAt:   repository.GetUpdatedAt().Time.UTC(),
		}, nil
	}
}

// listPage fetches one stargazer page, retrying the same page across quota
// resets and transient faults.
func (c *Client) listPage(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Stargazer, *github.Response, error) {
	attempt := 0
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
		stargazers, resp, err := c.gh.Activity.ListStargazers(ctx, owner, repo, opts)
		if err != nil {
			again, mapped := c.retryAfter(ctx, err, &attempt)
			if again {
				continue
			}
			return nil, nil, mapped
		}
		return stargazers, resp, nil
	}
}

// retryAfter decides how to handle an API error: wait out quota windows
// without consuming a retry, back off and retry transient faults up to the
// attempt ceiling, and surface everything else mapped onto the error
// taxonomy. A false return carries the error the caller must surface.
func (c *Client) retryAfter(ctx context.Context, err error, attempt *int) (bool, error) {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		if werr := sleepUntil(ctx, rateErr.Rate.Reset.Time); werr != nil {
			return false, werr
		}
		return true, nil
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		delay := c.retryDelay
		if abuseErr.RetryAfter != nil {
			delay = *abuseErr.RetryAfter
		}
		if werr := sleepFor(ctx, delay); werr != nil {
			return false, werr
		}
		return true, nil
	}

	mapped := mapError(err)
	if !errors.Is(mapped, contract.ErrTransient) {
		return false, mapped
	}

	*attempt++
	if *attempt >= contract.MaxRetryAttempts {
		return false, mapped
	}
	if werr := sleepFor(ctx, c.retryDelay<<(*attempt-1)); werr != nil {
		return false, werr
	}
	return true, nil
}

// mapError translates an API failure onto the shared error taxonomy.
// Anything that is not a definite 404 or auth failure counts as transient.
func mapError(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch code := ghErr.Response.StatusCode; {
		case code == http.StatusNotFound:
			return fmt.Errorf("%w: %v", contract.ErrNotFound, err)
		case code == http.StatusUnauthorized || code == http.StatusForbidden:
			return fmt.Errorf("%w: %v", contract.ErrAuth, err)
		}
	}
	return fmt.Errorf("%w: %v", contract.ErrTransient, err)
}

func sleepUntil(ctx context.Context, t time.Time) error {
	return sleepFor(ctx, time.Until(t))
}

func sleepFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
