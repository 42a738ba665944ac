// Package onet searches O*NET OnLine's occupation quick search by scraping
// the server-rendered result table with colly.
package onet

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/occupation"
	"github.com/JakeFAU/occupation-risk/internal/search"
)

// Defaults for the O*NET quick search.
const (
	DefaultBaseURL   = "https://www.onetonline.org/find/quick"
	DefaultUserAgent = "occupation-risk/1.0 (+https://github.com/JakeFAU/occupation-risk)"
	DefaultTimeout   = 15 * time.Second
)

// O*NET-SOC codes carry a two-digit suffix on the SOC code, e.g. 15-1252.00.
var onetCode = regexp.MustCompile(`(\d{2}-\d{4})\.\d{2}`)

// Config controls the scraper.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Waiter paces outbound requests.
type Waiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// Searcher implements search.Searcher against O*NET OnLine.
type Searcher struct {
	cfg       Config
	transport http.RoundTripper
	limiter   Waiter
	logger    *zap.Logger
}

// New builds a Searcher. limiter and logger may be nil.
func New(cfg Config, limiter Waiter, logger *zap.Logger) *Searcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{
		cfg:       cfg,
		transport: newHTTPTransport(),
		limiter:   limiter,
		logger:    logger.Named("onet"),
	}
}

// Search visits the quick search page for query and returns the listed
// occupations in page order. Detailed O*NET codes collapse onto their SOC code.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]search.Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	target, err := s.searchURL(query)
	if err != nil {
		return nil, err
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, target); err != nil {
			return nil, err
		}
	}

	var (
		matches  []search.Match
		seen     = make(map[string]struct{})
		fetchErr error
	)
	collector := colly.NewCollector(colly.UserAgent(s.cfg.UserAgent), colly.AllowURLRevisit())
	collector.SetRequestTimeout(s.cfg.Timeout)
	collector.WithTransport(s.transport)

	collector.OnHTML("table tr", func(row *colly.HTMLElement) {
		code, title := parseRow(row)
		if code == "" {
			return
		}
		if _, dup := seen[code]; dup {
			return
		}
		seen[code] = struct{}{}
		if std, ok := occupation.StandardTitle(code); ok {
			title = std
		}
		matches = append(matches, search.Match{Code: code, Title: title})
	})
	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("onet search status %d: %w", r.StatusCode, err)
	})

	if err := visit(ctx, collector, target); err != nil {
		return nil, err
	}
	if fetchErr != nil {
		return nil, fetchErr
	}

	for i := range matches {
		matches[i].Score = 1 - float64(i)/float64(len(matches))
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	s.logger.Debug("onet search", zap.String("query", query), zap.Int("matches", len(matches)))
	return matches, nil
}

func (s *Searcher) searchURL(query string) (string, error) {
	u, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse onet base url: %w", err)
	}
	q := u.Query()
	q.Set("s", query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// parseRow pulls the SOC code from the row's summary link and the title from
// the first link whose text is not the code itself.
func parseRow(row *colly.HTMLElement) (string, string) {
	var code, title string
	row.ForEach("a[href]", func(_ int, a *colly.HTMLElement) {
		if code == "" {
			if m := onetCode.FindStringSubmatch(a.Attr("href")); m != nil {
				code = m[1]
			}
		}
		text := strings.TrimSpace(a.Text)
		if title == "" && text != "" && !onetCode.MatchString(text) {
			title = text
		}
	})
	if code == "" {
		if m := onetCode.FindStringSubmatch(row.Text); m != nil {
			code = m[1]
		}
	}
	if !occupation.ValidCode(code) {
		return "", ""
	}
	return code, title
}

func visit(ctx context.Context, collector *colly.Collector, target string) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(target)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("onet search canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("onet visit failed: %w", err)
		}
		return nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}
}
