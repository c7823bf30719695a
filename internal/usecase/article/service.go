package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"project-board/internal/domain/entity"
	"project-board/internal/dto"
	"project-board/internal/observability/logging"
	"project-board/internal/observability/metrics"
	"project-board/internal/repository"
)

// Service provides article use cases. Each method runs in one unit of work.
type Service struct {
	Tx     repository.TxManager
	Logger *slog.Logger
	// Now stamps audit fields. Defaults to the current UTC time.
	Now func() time.Time
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

// GetArticleWithComments returns an article and all of its comments.
func (s *Service) GetArticleWithComments(ctx context.Context, articleID int64) (dto.ArticleWithCommentsDTO, error) {
	if articleID <= 0 {
		return dto.ArticleWithCommentsDTO{}, fmt.Errorf("%w: %w - articleId: %d", ErrInvalidArticleID, ErrArticleNotFound, articleID)
	}

	var out dto.ArticleWithCommentsDTO
	err := s.Tx.Do(ctx, true, func(repos repository.Repositories) error {
		article, err := repos.Articles.FindByID(ctx, articleID)
		if err != nil {
			return err
		}
		if article == nil {
			return articleNotFound(articleID)
		}
		comments, err := repos.ArticleComments.FindByArticleID(ctx, articleID)
		if err != nil {
			return err
		}
		out = dto.ArticleWithCommentsFromEntity(*article, comments)
		return nil
	})
	if err != nil {
		return dto.ArticleWithCommentsDTO{}, fmt.Errorf("get article with comments: %w", err)
	}
	return out, nil
}

// GetArticle returns a single article.
func (s *Service) GetArticle(ctx context.Context, articleID int64) (dto.ArticleDTO, error) {
	if articleID <= 0 {
		return dto.ArticleDTO{}, fmt.Errorf("%w: %w - articleId: %d", ErrInvalidArticleID, ErrArticleNotFound, articleID)
	}

	var out dto.ArticleDTO
	err := s.Tx.Do(ctx, true, func(repos repository.Repositories) error {
		article, err := repos.Articles.FindByID(ctx, articleID)
		if err != nil {
			return err
		}
		if article == nil {
			return articleNotFound(articleID)
		}
		out = dto.ArticleFromEntity(*article)
		return nil
	})
	if err != nil {
		return dto.ArticleDTO{}, fmt.Errorf("get article: %w", err)
	}
	return out, nil
}

// SearchArticles returns a page of articles. A blank keyword lists every
// article; otherwise searchType selects exactly one field query. HASHTAG
// searches prefix the keyword with "#".
func (s *Service) SearchArticles(ctx context.Context, searchType entity.SearchType, keyword string, req repository.PageRequest) (repository.Page[dto.ArticleDTO], error) {
	blank := strings.TrimSpace(keyword) == ""
	if !blank && !searchType.IsValid() {
		return repository.Page[dto.ArticleDTO]{}, &entity.ValidationError{Field: "searchType", Message: "unknown search type"}
	}

	var page repository.Page[entity.Article]
	err := s.Tx.Do(ctx, true, func(repos repository.Repositories) error {
		var err error
		if blank {
			page, err = repos.Articles.FindAll(ctx, req)
			return err
		}
		switch searchType {
		case entity.SearchTypeTitle:
			page, err = repos.Articles.FindByTitleContaining(ctx, keyword, req)
		case entity.SearchTypeContent:
			page, err = repos.Articles.FindByContentContaining(ctx, keyword, req)
		case entity.SearchTypeID:
			page, err = repos.Articles.FindByUserIDContaining(ctx, keyword, req)
		case entity.SearchTypeNickname:
			page, err = repos.Articles.FindByNicknameContaining(ctx, keyword, req)
		case entity.SearchTypeHashtag:
			page, err = repos.Articles.FindByHashtag(ctx, "#"+keyword, req)
		}
		return err
	})
	if err != nil {
		return repository.Page[dto.ArticleDTO]{}, fmt.Errorf("search articles: %w", err)
	}
	return repository.MapPage(page, dto.ArticleFromEntity), nil
}

// SearchArticlesViaHashtag returns articles whose hashtag equals hashtag
// exactly. A blank hashtag yields an empty page without touching the store.
func (s *Service) SearchArticlesViaHashtag(ctx context.Context, hashtag string, req repository.PageRequest) (repository.Page[dto.ArticleDTO], error) {
	if strings.TrimSpace(hashtag) == "" {
		return repository.EmptyPage[dto.ArticleDTO](req), nil
	}

	var page repository.Page[entity.Article]
	err := s.Tx.Do(ctx, true, func(repos repository.Repositories) error {
		var err error
		page, err = repos.Articles.FindByHashtag(ctx, hashtag, req)
		return err
	})
	if err != nil {
		return repository.Page[dto.ArticleDTO]{}, fmt.Errorf("search articles via hashtag: %w", err)
	}
	return repository.MapPage(page, dto.ArticleFromEntity), nil
}

// SaveArticle creates an article owned by d.UserAccount.UserID and returns its id.
// ErrInvalidOwner is returned when that account does not exist.
func (s *Service) SaveArticle(ctx context.Context, actor string, d dto.ArticleDTO) (int64, error) {
	var id int64
	err := s.Tx.Do(ctx, false, func(repos repository.Repositories) error {
		owner, err := repos.UserAccounts.FindByUserID(ctx, d.UserAccount.UserID)
		if err != nil {
			return err
		}
		if owner == nil {
			return invalidOwner(d.UserAccount.UserID)
		}

		article := d.ToEntity(*owner)
		if err := article.Validate(); err != nil {
			return err
		}
		article.Stamp(actor, s.now())
		if err := repos.Articles.Save(ctx, &article); err != nil {
			return err
		}
		id = article.ID
		return nil
	})
	if err != nil {
		metrics.RecordArticleMutation(metrics.OpCreate, metrics.OutcomeFailed)
		return 0, fmt.Errorf("save article: %w", err)
	}
	metrics.RecordArticleMutation(metrics.OpCreate, metrics.OutcomeApplied)
	return id, nil
}

// UpdateArticle applies u to the article when u.UserID owns it.
//
// The owner account is resolved first: a missing account returns
// ErrInvalidOwner even when the article is missing too. A missing article is
// logged at WARN and ignored, and an owner mismatch is ignored silently; both
// return nil.
// Title and Content change only when non-nil; Hashtag is always replaced.
func (s *Service) UpdateArticle(ctx context.Context, actor string, articleID int64, u dto.ArticleUpdateDTO) error {
	outcome := metrics.OutcomeApplied
	err := s.Tx.Do(ctx, false, func(repos repository.Repositories) error {
		owner, err := repos.UserAccounts.FindByUserID(ctx, u.UserID)
		if err != nil {
			return err
		}
		if owner == nil {
			return invalidOwner(u.UserID)
		}

		article, err := repos.Articles.FindByID(ctx, articleID)
		if err != nil {
			return err
		}
		if article == nil {
			outcome = metrics.OutcomeNotFound
			return nil
		}
		if !article.IsOwnedBy(owner.UserID) {
			outcome = metrics.OutcomeOwnerMismatch
			return nil
		}

		u.ApplyTo(article)
		if err := article.Validate(); err != nil {
			return err
		}
		article.Stamp(actor, s.now())
		return repos.Articles.Save(ctx, article)
	})
	if err != nil {
		metrics.RecordArticleMutation(metrics.OpUpdate, metrics.OutcomeFailed)
		return fmt.Errorf("update article: %w", err)
	}

	metrics.RecordArticleMutation(metrics.OpUpdate, outcome)
	switch outcome {
	case metrics.OutcomeNotFound:
		s.logger(ctx).Warn("article update failed, article not found",
			slog.String("error", articleNotFound(articleID).Error()),
			slog.Int64("articleId", articleID))
	case metrics.OutcomeOwnerMismatch:
		s.logger(ctx).Debug("article update skipped",
			slog.Int64("articleId", articleID),
			slog.String("outcome", outcome))
	}
	return nil
}

// DeleteArticle deletes the article when userID owns it. Deleting nothing is not an error.
func (s *Service) DeleteArticle(ctx context.Context, articleID int64, userID string) error {
	var n int64
	err := s.Tx.Do(ctx, false, func(repos repository.Repositories) error {
		var err error
		n, err = repos.Articles.DeleteByIDAndUserID(ctx, articleID, userID)
		return err
	})
	if err != nil {
		metrics.RecordArticleMutation(metrics.OpDelete, metrics.OutcomeFailed)
		return fmt.Errorf("delete article: %w", err)
	}
	if n == 0 {
		metrics.RecordArticleMutation(metrics.OpDelete, metrics.OutcomeNoMatch)
		s.logger(ctx).Debug("article delete matched no row",
			slog.Int64("articleId", articleID),
			slog.String("userId", userID))
		return nil
	}
	metrics.RecordArticleMutation(metrics.OpDelete, metrics.OutcomeApplied)
	return nil
}

// GetArticleCount returns the number of stored articles.
func (s *Service) GetArticleCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.Tx.Do(ctx, true, func(repos repository.Repositories) error {
		var err error
		count, err = repos.Articles.Count(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// CountComments returns comment counts keyed by article id. Articles without
// comments are absent from the map. No ids means no store call.
func (s *Service) CountComments(ctx context.Context, articleIDs []int64) (map[int64]int64, error) {
	if len(articleIDs) == 0 {
		return map[int64]int64{}, nil
	}
	var counts map[int64]int64
	err := s.Tx.Do(ctx, true, func(repos repository.Repositories) error {
		var err error
		counts, err = repos.ArticleComments.CountByArticleIDs(ctx, articleIDs)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	return counts, nil
}

// GetHashtags returns the distinct hashtags in use, sorted.
func (s *Service) GetHashtags(ctx context.Context) ([]string, error) {
	var hashtags []string
	err := s.Tx.Do(ctx, true, func(repos repository.Repositories) error {
		var err error
		hashtags, err = repos.Articles.FindAllDistinctHashtags(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get hashtags: %w", err)
	}
	return hashtags, nil
}

// IsNotFound reports whether err means the article or its owner does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrArticleNotFound) || errors.Is(err, entity.ErrNotFound)
}
