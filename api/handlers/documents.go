package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sseindex/sseindex-server/internal/store"
)

// DocumentHandler answers GET /api/v1/documents/{id}, returning the raw
// encrypted blob (IV ‖ AES-CBC(PKCS#7(plaintext))). The client decrypts locally
// with K4; the server holds no key that would let it do so itself.
func DocumentHandler(db *store.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id := r.PathValue("id")
		if id == "" {
			http.Error(w, "missing document id", http.StatusBadRequest)
			return
		}

		blob, ok, err := db.GetDocument(id)
		if err != nil {
			slog.Error("error fetching document", "id", id, "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(blob)
	}
}
