// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ToGin adapts an interceptor to a gin handler. When the interceptor
// answers the request itself the gin chain is aborted. The rest of the
// chain keeps writing to gin's writer, so interceptors may swap the
// request but not the ResponseWriter.
func ToGin(interceptor Interceptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		called := false

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			c.Request = r
			c.Next()
		})

		interceptor(next).ServeHTTP(c.Writer, c.Request)

		if !called {
			c.Abort()
		}
	}
}
