// Package applicant builds the owner's per-listing view of incoming applications.
package applicant

import (
	"context"
	"sort"

	domain "renthive-backend/internal/domain/application"
	"renthive-backend/internal/domain/auth"
	"renthive-backend/internal/domain/listing"
	appuc "renthive-backend/internal/usecase/application"
)

type Group struct {
	ListingType   string                 `json:"listing_type"`
	ListingID     string                 `json:"listing_id"`
	Title         string                 `json:"title"`
	Location      string                 `json:"location"`
	Images        []string               `json:"images"`
	Applicants    []appuc.ApplicationDTO `json:"applicants"`
	PendingCount  int                    `json:"pending_count"`
	ApprovedCount int                    `json:"approved_count"`
}

// GroupByListing groups applications by (listing type, listing id). The listing
// snapshot comes from the first application of each group. Groups are ordered by
// applicant count, most first; ties keep first-seen order.
func GroupByListing(apps []domain.Application) []Group {
	index := make(map[listing.Ref]int)
	var groups []Group
	for i := range apps {
		a := &apps[i]
		ref := a.ListingRef()
		gi, ok := index[ref]
		if !ok {
			gi = len(groups)
			index[ref] = gi
			groups = append(groups, Group{
				ListingType: string(ref.Kind),
				ListingID:   ref.ID,
				Title:       a.ListingTitle,
				Location:    a.ListingLocation,
				Images:      a.ListingImages,
			})
		}
		g := &groups[gi]
		g.Applicants = append(g.Applicants, *appuc.ToDTO(a))
		switch a.Status {
		case domain.StatusPending:
			g.PendingCount++
		case domain.StatusApproved:
			g.ApprovedCount++
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Applicants) > len(groups[j].Applicants)
	})
	return groups
}

type Usecase struct{ apps domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{apps: r} }

func (u *Usecase) ForOwner(ctx context.Context, actor auth.Actor) ([]Group, error) {
	list, err := u.apps.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return GroupByListing(list), nil
}
