// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-image-gateway/internal/app"
	"github.com/MKhiriev/go-image-gateway/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// A path that exists but does not serve the requested method is answered
// exactly like an unknown path: 404 with the {"detail"} body.
//
// chi only calls the handler after its own lookup failed for r.Method, so the
// route tree is consulted once more and a request that does match (e.g. a
// route added on a sub-router after the check was installed) is served.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		notFound(w, r)
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteDetail(w, app.MsgNotFound, http.StatusNotFound)
}
