package journal

import (
	"net/http"

	"journal-api/internal/handler/http/respond"
	jUC "journal-api/internal/usecase/journal"
)

type GetHandler struct{ Svc *jUC.Service }

// ServeHTTP returns one journal.
// @Summary      Get journal
// @Tags         journals
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "journal id"
// @Success      200 {object} journalapi.JournalResponse
// @Failure      400 {string} string "id is not an integer"
// @Failure      404 "no such journal (empty body)"
// @Router       /journals/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}
