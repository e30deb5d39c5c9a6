package journal

import (
	"net/http"

	"journal-api/internal/handler/http/respond"
	jUC "journal-api/internal/usecase/journal"
)

type ListHandler struct{ Svc *jUC.Service }

// ServeHTTP lists journals.
// @Summary      List journals
// @Tags         journals
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array}  journalapi.JournalResponse
// @Failure      401 {string} string "missing or invalid token"
// @Failure      403 {string} string "journals:read scope required"
// @Failure      500 {string} string "internal server error"
// @Router       /journals [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}
