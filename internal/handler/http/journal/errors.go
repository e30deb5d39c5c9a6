package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"journal-api/internal/handler/http/pathutil"
	"journal-api/internal/handler/http/respond"
	jUC "journal-api/internal/usecase/journal"
	"journal-api/pkg/journalapi"
)

// maxBodyBytes caps a single journal payload.
const maxBodyBytes = 1 << 20

var errBadBody = errors.New("invalid JSON body")

// writeError maps a use case error to a response.
// Not-found answers 404 with an empty body.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case jUC.IsNotFound(err):
		respond.Status(w, http.StatusNotFound)
	case errors.Is(err, jUC.ErrMalformedDate):
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// pathID reads the {id} wildcard. A non-numeric id answers 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}

// decodeRequest reads a JournalRequest body. A bad body answers 400.
func decodeRequest(w http.ResponseWriter, r *http.Request) (journalapi.JournalRequest, bool) {
	var req journalapi.JournalRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", errBadBody, err))
		return req, false
	}
	return req, true
}
