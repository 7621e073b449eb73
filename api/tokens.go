package api

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/fiji-flo/basket/errors"
)

var tokenFormat = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// tokenPath fills {token} in pathTemplate after checking the token format,
// so a malformed token can never change which endpoint is called.
// A rejected token is logged and counted like a failed call.
func (c *apiClient) tokenPath(method, pathTemplate, token string) (string, *errors.ApiError) {
	if err := c.validateToken(token); err != nil {
		apiErr := &errors.ApiError{
			Stage:     errors.STAGE_BEFORE_REQUEST,
			Type:      errors.TYPE_INVALID_TOKEN,
			SourceErr: err,
		}
		c.logger.Warnf("basket %s %s failed: %v", method, pathTemplate, apiErr)
		c.metrics.RecordRequest(method, pathTemplate, apiErr.Type, 0)
		return "", apiErr
	}
	return strings.Replace(pathTemplate, "{token}", token, 1), nil
}

func (c *apiClient) validateToken(token string) error {
	if !tokenFormat.MatchString(token) {
		return fmt.Errorf("token %q must be a non-empty identifier", token)
	}
	if c.strictTokens {
		if _, err := uuid.Parse(token); err != nil {
			return fmt.Errorf("token must be a uuid: %w", err)
		}
	}
	return nil
}
