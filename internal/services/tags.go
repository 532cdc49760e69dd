package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mverner/teambook/internal/common"
	"github.com/mverner/teambook/internal/dbx"
	"github.com/mverner/teambook/internal/logging"
	"github.com/mverner/teambook/internal/models"
	"github.com/mverner/teambook/internal/repositories/repomanager"
)

// TagService manages the team-scoped tag vocabulary. Tags are shared rows
// referenced by links; a tag exists exactly as long as something links to
// it, except when destroyed outright.
type TagService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewTagService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *TagService {
	return &TagService{
		db:          db,
		repomanager: m,
		log:         log,
	}
}

// Create attaches the tag with this text to item, creating the tag row if
// the team does not have it yet. Returns the tag's id. Attaching the same
// tag to the same item twice adds a second link.
func (s *TagService) Create(ctx context.Context, team int64, item models.ItemRef, text string) (int64, error) {
	var tagID int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tags(tx)

		id, err := repo.FindByText(ctx, team, text)
		if errors.Is(err, common.ErrNotFound) {
			id, err = repo.Insert(ctx, team, text)
			if err != nil {
				return fmt.Errorf("error creating tag: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("error searching tag: %w", err)
		}

		if err := repo.InsertLink(ctx, item, id); err != nil {
			return fmt.Errorf("error linking tag: %w", err)
		}

		tagID = id
		return nil
	})

	if err != nil {
		return 0, err
	}

	return tagID, nil
}

// ReadAll returns the team's tags ordered by text. A non-empty term keeps
// only tags whose text contains it, case-insensitively.
func (s *TagService) ReadAll(ctx context.Context, team int64, term string) ([]models.Tag, error) {
	repo := s.repomanager.Tags(s.db)

	tags, err := repo.SelectByTeam(ctx, team, term)
	if err != nil {
		return nil, fmt.Errorf("error reading tags: %w", err)
	}

	return tags, nil
}

// List returns just the tag texts of a team, ordered, for autocompletion.
// A non-empty term filters like ReadAll.
func (s *TagService) List(ctx context.Context, team int64, term string) ([]string, error) {
	tags, err := s.ReadAll(ctx, team, term)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(tags))
	for _, t := range tags {
		texts = append(texts, t.Text)
	}

	return texts, nil
}

// CopyLinks attaches every tag of source to target, one new link per
// existing link. A source without tags is a no-op.
func (s *TagService) CopyLinks(ctx context.Context, source, target models.ItemRef) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tags(tx)

		ids, err := repo.SelectLinkTagIDs(ctx, source)
		if err != nil {
			return fmt.Errorf("error reading tag links: %w", err)
		}

		for _, id := range ids {
			if err := repo.InsertLink(ctx, target, id); err != nil {
				return fmt.Errorf("error copying tag link: %w", err)
			}
		}

		return nil
	})
}

// Rename changes a tag's text in place. Every item linked to the tag sees
// the new text at once. Reports false, without an error, when the team has
// no tag with the old text; callers must check the boolean.
func (s *TagService) Rename(ctx context.Context, team int64, oldText, newText string) (bool, error) {
	repo := s.repomanager.Tags(s.db)

	matched, err := repo.UpdateText(ctx, team, oldText, newText)
	if err != nil {
		return false, fmt.Errorf("error renaming tag: %w", err)
	}

	return matched, nil
}

// Unreference removes one link between item and the tag, reporting whether
// a link existed. When the last link anywhere disappears, the tag row goes
// with it.
func (s *TagService) Unreference(ctx context.Context, item models.ItemRef, tagID int64) (bool, error) {
	var removed bool

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tags(tx)

		matched, err := repo.DeleteLink(ctx, tagID, item)
		if err != nil {
			return fmt.Errorf("error removing tag link: %w", err)
		}
		if !matched {
			return nil
		}
		removed = true

		remaining, err := repo.CountLinks(ctx, tagID)
		if err != nil {
			return fmt.Errorf("error counting tag links: %w", err)
		}

		if remaining == 0 {
			if _, err := repo.DeleteTag(ctx, tagID); err != nil {
				return fmt.Errorf("error removing orphan tag: %w", err)
			}
			s.log.Info(ctx, "orphan tag removed", "tag_id", tagID)
		}

		return nil
	})

	if err != nil {
		return false, err
	}

	return removed, nil
}

// Destroy removes the tag and every link referencing it, team-wide.
// Reports whether the tag existed.
func (s *TagService) Destroy(ctx context.Context, tagID int64) (bool, error) {
	var matched bool

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tags(tx)

		if err := repo.DeleteLinksForTag(ctx, tagID); err != nil {
			return fmt.Errorf("error removing tag links: %w", err)
		}

		var err error
		matched, err = repo.DeleteTag(ctx, tagID)
		if err != nil {
			return fmt.Errorf("error removing tag: %w", err)
		}

		return nil
	})

	if err != nil {
		return false, err
	}

	return matched, nil
}

// DestroyAllLinksForItem detaches every tag from item, e.g. before the
// item itself is deleted. Tags stay even if this was their last link.
func (s *TagService) DestroyAllLinksForItem(ctx context.Context, item models.ItemRef) error {
	repo := s.repomanager.Tags(s.db)

	if err := repo.DeleteLinksForItem(ctx, item); err != nil {
		return fmt.Errorf("error removing item tag links: %w", err)
	}

	return nil
}
