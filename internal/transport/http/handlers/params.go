package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/transport/http/response"
	"github.com/baechuer/vidshare/internal/transport/http/validate"
)

// pathIDs parses every named path parameter or writes a 400 and returns false.
func pathIDs(w http.ResponseWriter, r *http.Request, names ...string) ([]uuid.UUID, bool) {
	out := make([]uuid.UUID, 0, len(names))
	for _, n := range names {
		id, err := validate.PathID(r, n)
		if err != nil {
			response.Err(w, r, err)
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	ids, ok := pathIDs(w, r, name)
	if !ok {
		return uuid.Nil, false
	}
	return ids[0], true
}
