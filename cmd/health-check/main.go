// Package main provides a standalone health probe for container health checks
// and monitoring scripts
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/alchemorsel/composer/pkg/healthcheck"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

func main() {
	url := flag.String("url", "http://localhost:8080/health", "health endpoint URL")
	timeout := flag.Duration("timeout", 5*time.Second, "request timeout")
	retries := flag.Int("retries", 0, "extra attempts after a failure")
	retryDelay := flag.Duration("retry-delay", time.Second, "delay between attempts")
	allowDegraded := flag.Bool("allow-degraded", true, "treat a degraded service as passing")
	verbose := flag.Bool("verbose", false, "print the response body")
	flag.Parse()

	code := exitCodeError
	for attempt := 0; attempt <= *retries; attempt++ {
		if attempt > 0 {
			time.Sleep(*retryDelay)
		}
		code = probe(*url, *timeout, *allowDegraded, *verbose)
		if code == exitCodeSuccess {
			break
		}
	}
	os.Exit(code)
}

func probe(url string, timeout time.Duration, allowDegraded, verbose bool) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid url: %v\n", err)
		return exitCodeError
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "request failed: %v\n", err)
		return exitCodeError
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read response: %v\n", err)
		return exitCodeError
	}
	if verbose {
		fmt.Println(string(body))
	}

	var result struct {
		Status healthcheck.Status `json:"status"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Fprintf(os.Stderr, "unexpected response (HTTP %d): %v\n", resp.StatusCode, err)
		return exitCodeError
	}

	return exitCode(result.Status, allowDegraded)
}

func exitCode(status healthcheck.Status, allowDegraded bool) int {
	switch status {
	case healthcheck.StatusHealthy:
		return exitCodeSuccess
	case healthcheck.StatusDegraded:
		if allowDegraded {
			return exitCodeSuccess
		}
		return exitCodeFailure
	default:
		return exitCodeFailure
	}
}
