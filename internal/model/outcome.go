package model

import "time"

// Status classifies the result of probing a single address.
type Status int

const (
	// StatusSuccess indicates a final response with a 2xx status code.
	StatusSuccess Status = iota

	// StatusClientServerError indicates a final non-2xx response from the
	// server (4xx, 5xx, or a redirect chain that exceeded the limit).
	StatusClientServerError

	// StatusTimeout indicates no response arrived within the probe timeout.
	StatusTimeout

	// StatusConnectionError indicates a transport-level failure: DNS
	// resolution, refused connection, TLS handshake, malformed response.
	// The server was never reached, as opposed to responding with an error.
	StatusConnectionError
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusClientServerError:
		return "client/server error"
	case StatusTimeout:
		return "timeout"
	case StatusConnectionError:
		return "connection error"
	default:
		return "unknown"
	}
}

// Bucket is the summary counter an Outcome contributes to.
type Bucket int

const (
	// BucketGood counts successful probes.
	BucketGood Bucket = iota
	// BucketBad counts probes that reached a server but got an error
	// response or timed out.
	BucketBad
	// BucketError counts probes that never got a response at all.
	BucketError
)

// Bucket maps a status to its summary bucket.
// Success counts as good; error responses and timeouts count as bad;
// connection failures count as error.
func (s Status) Bucket() Bucket {
	switch s {
	case StatusSuccess:
		return BucketGood
	case StatusClientServerError, StatusTimeout:
		return BucketBad
	default:
		return BucketError
	}
}

// Sentinel numeric codes for outcomes that carry no protocol status code.
const (
	// CodeTimeout is reported for probes that exceeded their timeout,
	// reusing the HTTP 408 "Request Timeout" semantic.
	CodeTimeout = 408

	// CodeConnectionError is reported for transport-level failures,
	// distinguishing "never got a response" from "got an error response".
	CodeConnectionError = 0
)

// Outcome is the immutable result of probing one address.
// Exactly one Outcome is produced per unique address per run.
type Outcome struct {
	// Address is the probed URL, exactly as extracted from the document.
	Address string `json:"address"`

	// Status is the classification of the probe result.
	Status Status `json:"status"`

	// Code is the final HTTP status code, or a sentinel (CodeTimeout,
	// CodeConnectionError) when no protocol status code exists.
	Code int `json:"code"`

	// Reason is a short human-readable explanation. For successes it is
	// the server-provided status text; for connection errors it is the
	// full underlying error text. Display layers truncate it as needed;
	// the full text is kept here for diagnostics.
	Reason string `json:"reason"`

	// Duration is how long the probe took, including redirects.
	Duration time.Duration `json:"duration"`
}
