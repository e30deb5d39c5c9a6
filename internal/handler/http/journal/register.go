// Package journal exposes the journal use cases over HTTP under /journals.
package journal

import (
	"net/http"

	jUC "journal-api/internal/usecase/journal"
)

// Register registers all journal routes with the given mux.
// authz wraps every route; pass an identity function to leave them open.
// Both "/journals" and "/journals/" are accepted for the collection.
func Register(mux *http.ServeMux, svc *jUC.Service, authz func(http.Handler) http.Handler) {
	list := authz(ListHandler{svc})
	create := authz(CreateHandler{svc})

	mux.Handle("GET /journals", list)
	mux.Handle("GET /journals/{$}", list)
	mux.Handle("POST /journals", create)
	mux.Handle("POST /journals/{$}", create)

	mux.Handle("GET /journals/{id}", authz(GetHandler{svc}))
	mux.Handle("PUT /journals/{id}", authz(UpdateHandler{svc}))
	mux.Handle("DELETE /journals/{id}", authz(DeleteHandler{svc}))
}
