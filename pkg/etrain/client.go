package etrain

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/railnext/railnext/pkg/redis_client"
	"github.com/railnext/railnext/pkg/util"
	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://etrain.info"

const pageCacheExpiration = 2 * time.Minute

const maxFetchRetries = 3

// Client fetches schedule pages from the upstream site. The upstream sits
// behind bot protection that rejects naked clients, so requests carry
// browser-like headers.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	pageCache *cache.Cache[string]
}

func NewClient() *Client {
	baseURL := defaultBaseURL

	env := util.GetEnvironmentVariables()
	if env["RAILNEXT_ETRAIN_BASE_URL"] != "" {
		baseURL = env["RAILNEXT_ETRAIN_BASE_URL"]
	}

	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetupPageCache attaches a redis backed cache of raw schedule pages so that
// repeated queries for the same station pair within a couple of minutes dont
// hit the upstream again. Requires redis_client.Connect to have succeeded.
func (c *Client) SetupPageCache() {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(pageCacheExpiration))

	c.pageCache = cache.New[string](redisStore)
}

// Slugify converts a station name & code pair into the upstream URL slug,
// eg. "Howrah Jn", "hwh" -> "Howrah-Jn-HWH".
func Slugify(name string, code string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "-")

	return fmt.Sprintf("%s-%s", name, strings.ToUpper(strings.TrimSpace(code)))
}

// SchedulePageURL builds the between-stations schedule page URL for the given
// local calendar date.
func (c *Client) SchedulePageURL(srcName string, srcCode string, dstName string, dstCode string, date time.Time) string {
	return fmt.Sprintf(
		"%s/trains/%s-to-%s?date=%s",
		c.BaseURL,
		Slugify(srcName, srcCode),
		Slugify(dstName, dstCode),
		date.Format("20060102"),
	)
}

// FetchSchedulePage retrieves and parses the schedule page for a station pair
// on the given date, going through the page cache when one is attached.
func (c *Client) FetchSchedulePage(ctx context.Context, srcName string, srcCode string, dstName string, dstCode string, date time.Time) (*goquery.Document, error) {
	requestURL := c.SchedulePageURL(srcName, srcCode, dstName, dstCode, date)

	if c.pageCache != nil {
		cachedPage, err := c.pageCache.Get(ctx, requestURL)
		if err == nil {
			log.Debug().Str("url", requestURL).Msg("Schedule page cache hit")

			return goquery.NewDocumentFromReader(strings.NewReader(cachedPage))
		}
	}

	var pageBody string
	fetch := func() error {
		body, err := c.fetch(ctx, requestURL)
		if err != nil {
			log.Warn().Err(err).Str("url", requestURL).Msg("Failed to fetch schedule page, retrying")
			return err
		}

		pageBody = body
		return nil
	}

	err := backoff.Retry(fetch, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxFetchRetries))
	if err != nil {
		return nil, err
	}

	if c.pageCache != nil {
		if err := c.pageCache.Set(ctx, requestURL, pageBody); err != nil {
			log.Warn().Err(err).Msg("Failed to cache schedule page")
		}
	}

	return goquery.NewDocumentFromReader(strings.NewReader(pageBody))
}

func (c *Client) fetch(ctx context.Context, requestURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}
