// Package tags persists the team-scoped tag vocabulary and its links to
// taggable entities.
package tags

import (
	"context"

	"github.com/mverner/teambook/internal/models"
)

type Repository interface {
	// FindByText returns the id of the tag with this exact text in the team,
	// or common.ErrNotFound.
	FindByText(ctx context.Context, team int64, text string) (int64, error)
	// Insert creates a tag row and returns its id.
	Insert(ctx context.Context, team int64, text string) (int64, error)
	// InsertLink records one association between item and tag. Duplicate
	// links for the same pair are allowed.
	InsertLink(ctx context.Context, item models.ItemRef, tagID int64) error
	// SelectByTeam returns the team's tags ordered by text ascending. A
	// non-empty term filters to tags containing it, case-insensitively.
	SelectByTeam(ctx context.Context, team int64, term string) ([]models.Tag, error)
	// SelectLinkTagIDs returns the tag ids linked to item, one per link.
	SelectLinkTagIDs(ctx context.Context, item models.ItemRef) ([]int64, error)
	// UpdateText renames a tag in place. Reports whether a row matched.
	UpdateText(ctx context.Context, team int64, oldText, newText string) (bool, error)
	// DeleteLink removes a single (item, tag) link. Reports whether a row
	// matched.
	DeleteLink(ctx context.Context, tagID int64, item models.ItemRef) (bool, error)
	// CountLinks returns the number of links referencing tagID anywhere.
	CountLinks(ctx context.Context, tagID int64) (int64, error)
	// DeleteLinksForTag removes every link referencing tagID.
	DeleteLinksForTag(ctx context.Context, tagID int64) error
	// DeleteTag removes the tag row itself. Reports whether a row matched.
	DeleteTag(ctx context.Context, tagID int64) (bool, error)
	// DeleteLinksForItem removes every link of one entity.
	DeleteLinksForItem(ctx context.Context, item models.ItemRef) error
	// DeleteLinksByOwner removes the links of every entity owned by userID.
	DeleteLinksByOwner(ctx context.Context, userID int64) error
}
