package service

import (
	"context"

	"github.com/google/uuid"

	"campdirectory/internal/models"
	"campdirectory/internal/repository"
)

// populateListings swaps the bare parent reference of each child for the
// listing's name and description.
func populateListings(ctx context.Context, listings repository.ListingRepository, refs []*models.ListingRef) error {
	if len(refs) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(refs))
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref != nil && !seen[ref.ID] {
			seen[ref.ID] = true
			ids = append(ids, ref.ID)
		}
	}

	found, err := listings.Refs(ctx, ids)
	if err != nil {
		return err
	}

	for _, ref := range refs {
		if ref == nil {
			continue
		}
		if full, ok := found[ref.ID]; ok {
			*ref = full
		}
	}
	return nil
}

// listingScope narrows a nested list to one listing. A malformed id matches nothing.
func listingScope(listingID string) (string, bool) {
	if _, err := uuid.Parse(listingID); err != nil {
		return "", false
	}
	return listingID, true
}
