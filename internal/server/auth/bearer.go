package auth

import (
	"strings"

	"github.com/dmitrijs2005/passgate/internal/common"
)

// ParseBearer extracts the token from an Authorization header value.
// An absent header, or one without the "Bearer " prefix, is not an attempt at
// a credential and yields common.ErrorForbidden. An empty token after the
// prefix is returned as-is and fails later verification.
func ParseBearer(header string) (string, error) {
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return "", common.ErrorForbidden
	}
	return strings.TrimPrefix(header, common.BearerPrefix), nil
}
