package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"project-board/internal/dto"
	"project-board/internal/observability/logging"
	"project-board/internal/observability/metrics"
	"project-board/internal/repository"
)

// Service provides comment use cases.
type Service struct {
	Tx     repository.TxManager
	Logger *slog.Logger
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) logger(ctx context.Context) *slog.Logger {
	if s.Logger != nil {
		return logging.WithRequestID(ctx, s.Logger)
	}
	return logging.FromContext(ctx)
}

// SearchArticleComments returns the comments of an article, oldest first.
// An unknown article yields an empty list.
func (s *Service) SearchArticleComments(ctx context.Context, articleID int64) ([]dto.ArticleCommentDTO, error) {
	var out []dto.ArticleCommentDTO
	err := s.Tx.Do(ctx, true, func(repos repository.Repositories) error {
		comments, err := repos.ArticleComments.FindByArticleID(ctx, articleID)
		if err != nil {
			return err
		}
		out = dto.ArticleCommentsFromEntities(comments)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search article comments: %w", err)
	}
	return out, nil
}

// SaveArticleComment stores a new comment on d.ArticleID written by
// d.UserAccount.UserID and returns its id.
func (s *Service) SaveArticleComment(ctx context.Context, actor string, d dto.ArticleCommentDTO) (int64, error) {
	if strings.TrimSpace(d.Content) == "" {
		return 0, ErrEmptyContent
	}

	var id int64
	err := s.Tx.Do(ctx, false, func(repos repository.Repositories) error {
		article, err := repos.Articles.FindByID(ctx, d.ArticleID)
		if err != nil {
			return err
		}
		if article == nil {
			return fmt.Errorf("%w - articleId: %d", ErrArticleNotFound, d.ArticleID)
		}

		author, err := repos.UserAccounts.FindByUserID(ctx, d.UserAccount.UserID)
		if err != nil {
			return err
		}
		if author == nil {
			return fmt.Errorf("%w - userId: %s", ErrInvalidOwner, d.UserAccount.UserID)
		}

		c := d.ToEntity(*author)
		if err := c.Validate(); err != nil {
			return err
		}
		c.Stamp(actor, s.now())
		if err := repos.ArticleComments.Save(ctx, &c); err != nil {
			return err
		}
		id = c.ID
		return nil
	})
	if err != nil {
		metrics.RecordArticleMutation(metrics.OpCommentCreate, metrics.OutcomeFailed)
		return 0, fmt.Errorf("save article comment: %w", err)
	}
	metrics.RecordArticleMutation(metrics.OpCommentCreate, metrics.OutcomeApplied)
	return id, nil
}

// UpdateArticleComment replaces the content of a comment written by actor.
// A missing comment or a different author is a silent no-op.
func (s *Service) UpdateArticleComment(ctx context.Context, actor string, commentID int64, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}

	outcome := metrics.OutcomeApplied
	err := s.Tx.Do(ctx, false, func(repos repository.Repositories) error {
		c, err := repos.ArticleComments.FindByID(ctx, commentID)
		if err != nil {
			return err
		}
		if c == nil {
			outcome = metrics.OutcomeNotFound
			return nil
		}
		if !c.IsWrittenBy(actor) {
			outcome = metrics.OutcomeOwnerMismatch
			return nil
		}
		c.Content = content
		if err := c.Validate(); err != nil {
			return err
		}
		c.Stamp(actor, s.now())
		return repos.ArticleComments.Save(ctx, c)
	})
	if err != nil {
		metrics.RecordArticleMutation(metrics.OpCommentUpdate, metrics.OutcomeFailed)
		return fmt.Errorf("update article comment: %w", err)
	}
	metrics.RecordArticleMutation(metrics.OpCommentUpdate, outcome)
	if outcome != metrics.OutcomeApplied {
		s.logger(ctx).Debug("comment update skipped",
			slog.Int64("commentId", commentID),
			slog.String("outcome", outcome))
	}
	return nil
}

// DeleteArticleComment deletes a comment by id. A missing comment is a no-op.
func (s *Service) DeleteArticleComment(ctx context.Context, commentID int64) error {
	var n int64
	err := s.Tx.Do(ctx, false, func(repos repository.Repositories) error {
		var err error
		n, err = repos.ArticleComments.DeleteByID(ctx, commentID)
		return err
	})
	if err != nil {
		metrics.RecordArticleMutation(metrics.OpCommentDelete, metrics.OutcomeFailed)
		return fmt.Errorf("delete article comment: %w", err)
	}
	if n == 0 {
		metrics.RecordArticleMutation(metrics.OpCommentDelete, metrics.OutcomeNoMatch)
		return nil
	}
	metrics.RecordArticleMutation(metrics.OpCommentDelete, metrics.OutcomeApplied)
	return nil
}

// DeleteOwnArticleComment deletes a comment only when userID wrote it.
// Missing comments and other authors' comments are left alone without error.
func (s *Service) DeleteOwnArticleComment(ctx context.Context, commentID int64, userID string) error {
	outcome := metrics.OutcomeApplied
	err := s.Tx.Do(ctx, false, func(repos repository.Repositories) error {
		c, err := repos.ArticleComments.FindByID(ctx, commentID)
		if err != nil {
			return err
		}
		if c == nil {
			outcome = metrics.OutcomeNoMatch
			return nil
		}
		if !c.IsWrittenBy(userID) {
			outcome = metrics.OutcomeOwnerMismatch
			return nil
		}
		_, err = repos.ArticleComments.DeleteByID(ctx, commentID)
		return err
	})
	if err != nil {
		metrics.RecordArticleMutation(metrics.OpCommentDelete, metrics.OutcomeFailed)
		return fmt.Errorf("delete article comment: %w", err)
	}
	metrics.RecordArticleMutation(metrics.OpCommentDelete, outcome)
	if outcome != metrics.OutcomeApplied {
		s.logger(ctx).Debug("comment delete skipped",
			slog.Int64("commentId", commentID),
			slog.String("outcome", outcome))
	}
	return nil
}
