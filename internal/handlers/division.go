package handlers

import (
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// handleListDivisions returns all divisions
func (h *Handlers) handleListDivisions(w http.ResponseWriter, r *http.Request) {
	divisions, err := h.Division.ListDivisions(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, divisions)
}

// handleGetSnapshot returns the complete current schedule state of a
// division. Consoles fetch this on connect and after a stream drop, then
// track changes through the websocket.
func (h *Handlers) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	divisionID, err := requireParam(r, "divisionID")
	if err != nil {
		respondError(w, err)
		return
	}

	snapshot, err := h.Division.GetSnapshot(r.Context(), divisionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, snapshot)
}

// handleDivisionQR serves a QR code PNG pointing a phone or tablet at the
// division's console
func (h *Handlers) handleDivisionQR(w http.ResponseWriter, r *http.Request) {
	divisionID, err := requireParam(r, "divisionID")
	if err != nil {
		respondError(w, err)
		return
	}
	// 404 for divisions that don't exist
	if _, err := h.Division.GetSnapshot(r.Context(), divisionID); err != nil {
		respondError(w, err)
		return
	}

	consoleURL := strings.TrimSuffix(h.consoleBaseURL, "/") + "/divisions/" + divisionID
	png, err := qrcode.Encode(consoleURL, qrcode.Medium, 256)
	if err != nil {
		respondError(w, InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleWebSocket subscribes the connection to a division's event stream
func (h *Handlers) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	divisionID, err := requireParam(r, "divisionID")
	if err != nil {
		respondError(w, err)
		return
	}
	h.Hub.ServeWs(w, r, divisionID)
}
