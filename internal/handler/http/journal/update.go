package journal

import (
	"net/http"

	"journal-api/internal/handler/http/respond"
	jUC "journal-api/internal/usecase/journal"
)

type UpdateHandler struct{ Svc *jUC.Service }

// ServeHTTP overwrites a journal and its article, keeping both ids.
// @Summary      Update journal
// @Tags         journals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path int                       true "journal id"
// @Param        journal body journalapi.JournalRequest true "new values"
// @Success      200 {object} journalapi.JournalResponse
// @Failure      400 {string} string "invalid id, JSON body or date"
// @Failure      404 "no such journal (empty body)"
// @Router       /journals/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.UpdateByID(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}
