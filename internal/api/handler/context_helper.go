package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/proj-int-univesp/lai-cmg/pkg/response"
)

// MustGetAccountID extracts account_id injected by the JWT middleware.
// Writes a 401 and returns false when it is missing; the caller should
// return immediately in that case.
func MustGetAccountID(c *gin.Context) (string, bool) {
	v, exists := c.Get("account_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts the role claim from the context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// mustGetIdentity bundles the two claims most handlers need.
func mustGetIdentity(c *gin.Context) (accountID, role string, ok bool) {
	accountID, ok = MustGetAccountID(c)
	if !ok {
		return "", "", false
	}
	role, ok = MustGetRole(c)
	if !ok {
		return "", "", false
	}
	return accountID, role, true
}
