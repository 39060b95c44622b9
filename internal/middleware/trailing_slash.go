// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// StripTrailingSlash routes /api/teams/ like /api/teams. It rewrites the
// path instead of redirecting so request bodies survive. Register with Pre.
func StripTrailingSlash(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		path := req.URL.Path
		if path != "/" && strings.HasSuffix(path, "/") {
			req.URL.Path = strings.TrimRight(path, "/")
			if req.URL.Path == "" {
				req.URL.Path = "/"
			}
			req.URL.RawPath = ""
		}
		return next(c)
	}
}
