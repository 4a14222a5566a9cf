package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user as a string for use in
// cache and rate-limit keys. It returns "anon" for unauthenticated
// requests. The user_id context value is the raw JWT sub claim, which
// decodes as float64 for numeric subjects.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case nil:
		return "anon"
	case string:
		if v != "" {
			return v
		}
		return "anon"
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}
