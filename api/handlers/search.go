package handlers

import (
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sseindex/sseindex-server/internal/index"
	"github.com/sseindex/sseindex-server/internal/search"
	"github.com/sseindex/sseindex-server/internal/trapdoor"
)

type searchRequest struct {
	Index uint64 `json:"index"`
	Mask  string `json:"mask"` // hex-encoded, index.EntrySize bytes
}

type searchResponse struct {
	DocIDs []string `json:"doc_ids"`
}

// SearchHandler answers POST /api/v1/search. The server learns only
// equality of repeated trapdoors and the size of the returned result —
// every other failure mode (unknown keyword, forged trapdoor, corrupted
// chain) is folded into an empty doc_ids list, per spec §7: the response
// never distinguishes why a search came back empty.
func SearchHandler(table *index.Table, array *index.Array) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		maskBytes, err := hex.DecodeString(req.Mask)
		if err != nil || len(maskBytes) != index.EntrySize {
			http.Error(w, "invalid trapdoor mask", http.StatusBadRequest)
			return
		}
		var mask [index.EntrySize]byte
		copy(mask[:], maskBytes)
		td := trapdoor.Trapdoor{Index: req.Index, Mask: mask}

		docIDs, err := search.Search(table, array, td)
		if err != nil {
			slog.Debug("search resolved to empty result", "err", err)
			docIDs = nil
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(searchResponse{DocIDs: docIDs})
	}
}
