package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	errAccountMissing  = errors.New("account not found")
	errAccountDisabled = errors.New("account disabled")
	errSessionRevoked  = errors.New("session revoked")
)

type lookupRequest struct {
	LocalID []string `json:"localId"`
}

type lookupResponse struct {
	Users []struct {
		LocalID    string `json:"localId"`
		Disabled   bool   `json:"disabled"`
		ValidSince string `json:"validSince"`
	} `json:"users"`
}

// accountChecker asks the authority's account service whether a subject is
// still allowed to hold tokens issued at authTime.
type accountChecker struct {
	http      *resty.Client
	projectID string
}

// check returns errAccountMissing, errAccountDisabled or errSessionRevoked
// for a refused subject. Any other error means the service was unreachable.
func (a *accountChecker) check(ctx context.Context, subject string, authTime time.Time) error {
	var out lookupResponse
	resp, err := a.http.R().
		SetContext(ctx).
		SetBody(lookupRequest{LocalID: []string{subject}}).
		SetResult(&out).
		Post("/projects/" + a.projectID + "/accounts:lookup")
	if err != nil {
		return fmt.Errorf("account lookup: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("account lookup: %s; body: %s", resp.Status(), truncate(resp.String(), 200))
	}

	if len(out.Users) == 0 {
		return errAccountMissing
	}
	user := out.Users[0]
	if user.Disabled {
		return errAccountDisabled
	}
	if user.ValidSince != "" {
		secs, err := strconv.ParseInt(user.ValidSince, 10, 64)
		if err == nil && authTime.Before(time.Unix(secs, 0)) {
			return errSessionRevoked
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
