package postgres

import (
	"database/sql"

	"project-board/internal/domain/entity"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// accountColumns is selected after the owning row's own columns in joined queries.
const accountColumns = `u.id, u.user_id, u.email, u.nickname, u.memo,
       u.created_at, u.created_by, u.modified_at, u.modified_by`

const articleColumns = `a.id, a.title, a.content, a.hashtag,
       a.created_at, a.created_by, a.modified_at, a.modified_by,
       ` + accountColumns

const commentColumns = `c.id, c.article_id, c.content,
       c.created_at, c.created_by, c.modified_at, c.modified_by,
       ` + accountColumns

type accountDest struct {
	email, nickname, memo sql.NullString
}

func (d *accountDest) targets(u *entity.UserAccount) []any {
	return []any{
		&u.ID, &u.UserID, &d.email, &d.nickname, &d.memo,
		&u.CreatedAt, &u.CreatedBy, &u.ModifiedAt, &u.ModifiedBy,
	}
}

func (d *accountDest) apply(u *entity.UserAccount) {
	u.Email = d.email.String
	u.Nickname = d.nickname.String
	u.Memo = nullableString(d.memo)
}

func scanArticle(s rowScanner) (entity.Article, error) {
	var (
		a       entity.Article
		hashtag sql.NullString
		acc     accountDest
	)
	dest := []any{
		&a.ID, &a.Title, &a.Content, &hashtag,
		&a.CreatedAt, &a.CreatedBy, &a.ModifiedAt, &a.ModifiedBy,
	}
	dest = append(dest, acc.targets(&a.UserAccount)...)
	if err := s.Scan(dest...); err != nil {
		return entity.Article{}, err
	}
	a.Hashtag = nullableString(hashtag)
	acc.apply(&a.UserAccount)
	return a, nil
}

func scanComment(s rowScanner) (entity.ArticleComment, error) {
	var (
		c   entity.ArticleComment
		acc accountDest
	)
	dest := []any{
		&c.ID, &c.ArticleID, &c.Content,
		&c.CreatedAt, &c.CreatedBy, &c.ModifiedAt, &c.ModifiedBy,
	}
	dest = append(dest, acc.targets(&c.UserAccount)...)
	if err := s.Scan(dest...); err != nil {
		return entity.ArticleComment{}, err
	}
	acc.apply(&c.UserAccount)
	return c, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func emptyToNull(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
