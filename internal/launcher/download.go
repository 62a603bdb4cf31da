package launcher

import (
	"context"
	"crypto/sha1" //nolint:gosec // SHA-1 is the digest algorithm mandated by the upstream catalogs.
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	userAgent       = "mc-launcher/1.0"
	fetchAttempts   = 5
	fetchTimeout    = 10 * time.Second
	registryTimeout = 100 * time.Second
)

// fetchBackoff is the sleep between retry attempts. It is a var rather than
// a const solely so tests can shrink it; production code never reassigns it.
var fetchBackoff = 3 * time.Second

// sha1Hex returns the lowercase hex-encoded SHA-1 digest of data.
func sha1Hex(data []byte) string {
	h := sha1.New() //nolint:gosec
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// FetchVerified performs up to fetchAttempts GET requests against url,
// retrying on transport errors or digest mismatch, and returns the first
// body whose SHA-1 equals expectedDigest (or the first successful body, if
// expectedDigest is nil). It sleeps fetchBackoff between attempts.
func FetchVerified(ctx context.Context, client *http.Client, url string, expectedDigest *string) ([]byte, error) {
	return fetchVerifiedTimeout(ctx, client, url, expectedDigest, fetchTimeout)
}

// FetchVerifiedLongTimeout is FetchVerified with the longer request timeout
// the mod registry API requires (100s, versus the 10s used for manifest and
// artifact fetches).
func FetchVerifiedLongTimeout(ctx context.Context, client *http.Client, url string, expectedDigest *string) ([]byte, error) {
	return fetchVerifiedTimeout(ctx, client, url, expectedDigest, registryTimeout)
}

func fetchVerifiedTimeout(ctx context.Context, client *http.Client, url string, expectedDigest *string, timeout time.Duration) ([]byte, error) {
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		data, err := fetchOnce(ctx, client, url, timeout)
		if err == nil {
			if expectedDigest == nil || sha1Hex(data) == *expectedDigest {
				return data, nil
			}
		}
		if attempt < fetchAttempts-1 {
			select {
			case <-time.After(fetchBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, &FetchExhaustedError{URL: url}
}

func fetchOnce(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %q: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %q: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body of %q: %w", url, err)
	}
	return data, nil
}

// NewDefaultHTTPClient returns a client with a tuned transport: bounded
// idle connections and TLS-handshake/expect-continue timeouts, with per-request
// deadlines applied by the callers above.
func NewDefaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			ForceAttemptHTTP2:     true,
		},
	}
}
