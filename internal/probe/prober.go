package probe

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kyswtn/linkprobe/internal/model"
)

// Default probe settings.
const (
	// DefaultTimeout is the per-probe deadline. Ten seconds is generous
	// enough for slow hosts while keeping large runs bounded.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies linkprobe in HTTP requests. A descriptive
	// User-Agent lets operators recognize checker traffic in their logs.
	DefaultUserAgent = "linkprobe/1.0 (+https://github.com/kyswtn/linkprobe)"

	// maxRedirects caps redirect chains. When the cap is reached the last
	// 3xx response is classified rather than followed further.
	maxRedirects = 10
)

// Prober performs existence checks against web addresses.
// It is stateless apart from its configuration and is safe for
// concurrent use.
type Prober struct {
	// client performs the HTTP requests. Redirects are followed up to
	// maxRedirects; past that the last response is returned as-is.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// timeout is the per-probe deadline, covering the whole redirect chain.
	timeout time.Duration

	// hostHeaders holds extra request headers keyed by hostname.
	// Some hosts reject anonymous HEAD probes without them.
	hostHeaders map[string]map[string]string

	// hostTimeouts holds per-hostname timeout overrides.
	hostTimeouts map[string]time.Duration
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout sets the per-probe deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(p *Prober) {
		p.userAgent = ua
	}
}

// WithHostHeaders sets extra request headers per hostname.
func WithHostHeaders(headers map[string]map[string]string) Option {
	return func(p *Prober) {
		p.hostHeaders = headers
	}
}

// WithHostTimeouts sets per-hostname timeout overrides.
func WithHostTimeouts(timeouts map[string]time.Duration) Option {
	return func(p *Prober) {
		p.hostTimeouts = timeouts
	}
}

// WithClient replaces the HTTP client. Intended for tests that need a
// custom transport; the replacement client's redirect policy is kept.
func WithClient(client *http.Client) Option {
	return func(p *Prober) {
		p.client = client
	}
}

// New creates a Prober with the given options.
func New(opts ...Option) *Prober {
	p := &Prober{
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.client == nil {
		p.client = &http.Client{
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	return p
}

// Probe issues a single HEAD request against the address and classifies
// the result. It always returns an Outcome; every failure path is
// converted into a classification. A single attempt is definitive for
// the run, there are no retries.
func (p *Prober) Probe(ctx context.Context, address string) model.Outcome {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, p.timeoutFor(address))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, address, nil)
	if err != nil {
		// The address never produced a request, let alone a connection.
		return model.Outcome{
			Address:  address,
			Status:   model.StatusConnectionError,
			Code:     model.CodeConnectionError,
			Reason:   err.Error(),
			Duration: time.Since(start),
		}
	}

	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "*/*")
	for key, value := range p.hostHeaders[req.URL.Hostname()] {
		req.Header.Set(key, value)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return classifyTransportError(address, err, time.Since(start))
	}
	defer resp.Body.Close()

	outcome := model.Outcome{
		Address:  address,
		Code:     resp.StatusCode,
		Duration: time.Since(start),
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		outcome.Status = model.StatusSuccess
		outcome.Reason = statusText(resp)
		return outcome
	}

	// Any non-2xx final response, including a redirect chain that hit the
	// limit, counts as a server-side problem.
	outcome.Status = model.StatusClientServerError
	outcome.Reason = "Client/Server Error"
	return outcome
}

// timeoutFor returns the per-host timeout override when one exists,
// or the prober default.
func (p *Prober) timeoutFor(address string) time.Duration {
	if len(p.hostTimeouts) > 0 {
		if req, err := http.NewRequest(http.MethodHead, address, nil); err == nil {
			if t, ok := p.hostTimeouts[req.URL.Hostname()]; ok && t > 0 {
				return t
			}
		}
	}
	return p.timeout
}

// classifyTransportError converts a client error into a Timeout or
// ConnectionError outcome.
func classifyTransportError(address string, err error, elapsed time.Duration) model.Outcome {
	if isTimeout(err) {
		return model.Outcome{
			Address:  address,
			Status:   model.StatusTimeout,
			Code:     model.CodeTimeout,
			Reason:   "Timeout",
			Duration: elapsed,
		}
	}

	return model.Outcome{
		Address:  address,
		Status:   model.StatusConnectionError,
		Code:     model.CodeConnectionError,
		Reason:   err.Error(),
		Duration: elapsed,
	}
}

// isTimeout reports whether the error represents an expired deadline
// rather than a hard transport failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// statusText extracts the server-provided reason phrase from a response.
// Falls back to the standard text for the code when the server sent none.
func statusText(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode) + " "
	if text := strings.TrimPrefix(resp.Status, prefix); text != "" && text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
