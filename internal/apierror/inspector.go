// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apierror

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// StatusError is returned when the directory answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("directory returned %d %s for %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// IsNotFoundError reports whether the status was 404.
func (e *StatusError) IsNotFoundError() bool { return e.StatusCode == http.StatusNotFound }

// IsServerError reports whether the status was 5xx.
func (e *StatusError) IsServerError() bool { return e.StatusCode >= 500 }

// Inspector analyses errors returned while talking to the directory.
type Inspector interface {
	// IsNetworkError returns true for connectivity failures: refused
	// connections, DNS failures, resets and TLS handshake errors.
	IsNetworkError(err error) bool

	// IsTimeout returns true if the request ran out of time.
	IsTimeout(err error) bool

	// IsNotFoundError returns true if the directory reported 404.
	IsNotFoundError(err error) bool

	// IsServerError returns true if the directory reported a 5xx status.
	IsServerError(err error) bool
}

// TextInspector classifies errors by their message text.
type TextInspector struct{}

// NewInspector creates the default inspector: typed checks on the error
// chain first, message text second.
func NewInspector() Inspector {
	return NewErrorChainInspector(&TextInspector{})
}

// IsNetworkError checks the message for common dial and TLS failures.
func (i *TextInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}

// IsTimeout checks the message for timeout wording.
func (i *TextInspector) IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// IsNotFoundError checks the message for a 404.
func (i *TextInspector) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "404") ||
		strings.Contains(errStr, "not found")
}

// IsServerError checks the message for a 5xx status.
func (i *TextInspector) IsServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500 internal server error") ||
		strings.Contains(errStr, "502 bad gateway") ||
		strings.Contains(errStr, "503 service unavailable") ||
		strings.Contains(errStr, "504 gateway timeout")
}

// ErrorChainInspector checks the error chain with errors.Is and errors.As
// before falling back to a base inspector.
type ErrorChainInspector struct {
	base Inspector
}

// NewErrorChainInspector wraps base with typed error-chain checks.
func NewErrorChainInspector(base Inspector) Inspector {
	return &ErrorChainInspector{base: base}
}

// IsNetworkError checks for net.OpError and net.DNSError in the chain.
func (e *ErrorChainInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var status *StatusError
	if errors.As(err, &status) {
		return false
	}
	return e.base.IsNetworkError(err)
}

// IsTimeout checks for context deadlines and net.Error timeouts.
func (e *ErrorChainInspector) IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return e.base.IsTimeout(err)
}

// IsNotFoundError checks for a StatusError in the chain.
func (e *ErrorChainInspector) IsNotFoundError(err error) bool {
	var notFoundErr interface{ IsNotFoundError() bool }
	if errors.As(err, &notFoundErr) {
		return notFoundErr.IsNotFoundError()
	}
	return e.base.IsNotFoundError(err)
}

// IsServerError checks for a StatusError in the chain.
func (e *ErrorChainInspector) IsServerError(err error) bool {
	var serverErr interface{ IsServerError() bool }
	if errors.As(err, &serverErr) {
		return serverErr.IsServerError()
	}
	return e.base.IsServerError(err)
}
