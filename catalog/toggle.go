package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/s0up4200/marquee/transport"
)

// togglePayload holds the discriminators a toggle response may declare
type togglePayload struct {
	Status      string `json:"status"`
	IsFavorite  *bool  `json:"is_favorite"`
	InWatchlist *bool  `json:"in_watchlist"`
}

// decodeToggle resolves a toggle response into its variant. The outcome is
// taken from the declared status, then the membership flag, then 201 Created.
func decodeToggle(resp *transport.Response, movieID int64) (*ToggleResult, error) {
	var p togglePayload
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &p); err != nil {
			return nil, fmt.Errorf("failed to parse toggle response: %w", err)
		}
	}

	status, ok := declaredStatus(p, resp.StatusCode)
	if !ok {
		return nil, fmt.Errorf("%w: toggle response for movie %d declares no outcome", ErrUnexpectedPayload, movieID)
	}

	if status == ToggleRemoved {
		return Removed(movieID), nil
	}

	var entry Entry
	if err := resp.Decode(&entry); err != nil {
		return nil, err
	}
	if entry.ID == 0 || entry.Movie.ID == 0 {
		return nil, fmt.Errorf("%w: added entry for movie %d lacks entry or movie id", ErrUnexpectedPayload, movieID)
	}
	return Added(entry), nil
}

func declaredStatus(p togglePayload, code int) (ToggleStatus, bool) {
	switch p.Status {
	case "removed":
		return ToggleRemoved, true
	case "added":
		return ToggleAdded, true
	}

	for _, flag := range []*bool{p.IsFavorite, p.InWatchlist} {
		if flag != nil {
			if *flag {
				return ToggleAdded, true
			}
			return ToggleRemoved, true
		}
	}

	if code == http.StatusCreated {
		return ToggleAdded, true
	}
	return 0, false
}
