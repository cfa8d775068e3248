// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package gh

import (
	"errors"
	"fmt"
	"net/http"
	"syscall"

	"github.com/google/go-github/v68/github"
	"golang.org/x/term"

	"github.com/kicksaw/sfictl/internal/console"
)

// NewClient builds an authenticated GitHub client from the given token.
func NewClient(token string) *github.Client {
	return github.NewClient(nil).WithAuthToken(token)
}

// ResolveToken returns the token passed on the command line (or resolved from
// the environment by the flag layer). When empty, it prompts interactively
// without echoing input.
func ResolveToken(token string) (string, error) {
	if token != "" {
		return token, nil
	}

	console.Warnf("GitHub token not found in environment or command line arguments.")
	fmt.Print("Please enter your GitHub token: ")

	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if len(raw) == 0 {
		return "", errors.New("a GitHub token is required")
	}

	return string(raw), nil
}

// apiStatus extracts the HTTP status code from a go-github error, or 0 when
// the error carries none.
func apiStatus(err error) int {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}
	return 0
}

// isNotFound reports whether err is a GitHub 404.
func isNotFound(err error) bool {
	return apiStatus(err) == http.StatusNotFound
}

// isConflict reports whether err is a GitHub 409.
func isConflict(err error) bool {
	return apiStatus(err) == http.StatusConflict
}
