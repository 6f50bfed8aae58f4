package http

import (
	"time"

	"github.com/hnvivek/game-management-sub006/internal/availability"
)

// DayGridRequest defines query parameters for the availability endpoint.
// StartTime/EndTime switch the endpoint into single-interval check mode.
type DayGridRequest struct {
	Date      string `form:"date" binding:"required"`
	StartTime string `form:"start_time"`
	EndTime   string `form:"end_time"`
}

// CheckResponse answers a single-interval availability probe.
type CheckResponse struct {
	CourtID   string              `json:"court_id"`
	Date      string              `json:"date"`
	StartTime time.Time           `json:"start_time"`
	EndTime   time.Time           `json:"end_time"`
	Closed    bool                `json:"closed"`
	Available bool                `json:"available"`
	BlockedBy *BlockedByResponse  `json:"blocked_by,omitempty"`
}

func NewCheckResponse(ch *availability.Check) CheckResponse {
	out := CheckResponse{
		CourtID:   ch.CourtID,
		Date:      ch.Date,
		StartTime: ch.StartTime,
		EndTime:   ch.EndTime,
		Closed:    ch.Closed,
		Available: ch.Available,
	}
	if ch.BlockedBy != nil {
		out.BlockedBy = &BlockedByResponse{
			Kind: string(ch.BlockedBy.Kind),
			ID:   ch.BlockedBy.ID,
		}
	}
	return out
}

// SlotResponse mirrors one grid cell on the wire.
type SlotResponse struct {
	StartTime time.Time           `json:"start_time"`
	EndTime   time.Time           `json:"end_time"`
	Available bool                `json:"available"`
	BlockedBy *BlockedByResponse  `json:"blocked_by,omitempty"`
}

// BlockedByResponse references the record occupying a blocked slot.
type BlockedByResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// DayGridResponse is the slot-grid payload. Closed separates "venue is
// closed on this day" from a fully booked day with zero free slots.
type DayGridResponse struct {
	CourtID string         `json:"court_id"`
	Date    string         `json:"date"`
	Closed  bool           `json:"closed"`
	Slots   []SlotResponse `json:"slots"`
}

func NewDayGridResponse(g *availability.Grid) DayGridResponse {
	slots := make([]SlotResponse, len(g.Slots))
	for i, s := range g.Slots {
		slot := SlotResponse{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Available: s.Available,
		}
		if s.BlockedBy != nil {
			slot.BlockedBy = &BlockedByResponse{
				Kind: string(s.BlockedBy.Kind),
				ID:   s.BlockedBy.ID,
			}
		}
		slots[i] = slot
	}
	return DayGridResponse{
		CourtID: g.CourtID,
		Date:    g.Date,
		Closed:  g.Closed,
		Slots:   slots,
	}
}
