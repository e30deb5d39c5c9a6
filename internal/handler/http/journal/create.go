package journal

import (
	"net/http"

	"journal-api/internal/handler/http/respond"
	jUC "journal-api/internal/usecase/journal"
)

type CreateHandler struct{ Svc *jUC.Service }

// ServeHTTP creates a journal together with its article.
// @Summary      Create journal
// @Tags         journals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        journal body journalapi.JournalRequest true "journal and article"
// @Success      200 {object} journalapi.JournalResponse
// @Failure      400 {string} string "invalid JSON body or malformed date"
// @Failure      403 {string} string "journals:write scope required"
// @Router       /journals [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}
