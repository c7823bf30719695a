package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"project-board/internal/dto"
	"project-board/internal/repository"
	accountUC "project-board/internal/usecase/account"
	artUC "project-board/internal/usecase/article"
	commentUC "project-board/internal/usecase/comment"
)

// seedPassword is shared by every demo account.
const seedPassword = "asdf1234"

type seedUser struct {
	userID, email, nickname string
}

type seedArticle struct {
	owner, title, content, hashtag string
	comments                       []seedComment
}

type seedComment struct {
	author, content string
}

var seedUsers = []seedUser{
	{"uno", "uno@mail.com", "Uno"},
	{"dos", "dos@mail.com", "Dos"},
	{"tres", "tres@mail.com", "Tres"},
}

var seedArticles = []seedArticle{
	{
		owner: "uno", title: "Welcome to the board", hashtag: "#notice",
		content: "Read the **rules** before posting.\n\n- be kind\n- stay on topic",
		comments: []seedComment{
			{"dos", "Thanks for setting this up."},
			{"tres", "Looking forward to it."},
		},
	},
	{
		owner: "dos", title: "Context cancellation in Go", hashtag: "#go",
		content:  "Pass `ctx` as the first argument and check `ctx.Err()` in loops.",
		comments: []seedComment{{"uno", "Also wrap it with a timeout at the edge."}},
	},
	{
		owner: "dos", title: "Table-driven tests", hashtag: "#go",
		content: "A slice of cases and one `t.Run` per case keeps tests short.",
	},
	{
		owner: "tres", title: "Records in Java 17", hashtag: "#java",
		content:  "Records give you equals, hashCode and toString for free.",
		comments: []seedComment{{"dos", "Go structs get comparison for free too."}},
	},
	{
		owner: "uno", title: "Untagged musings",
		content: "Not every post needs a hashtag.",
	},
}

type seedResult struct {
	Users, Articles, Comments int
}

// seedBoard registers the demo accounts that are missing and, when the board
// has no articles yet, posts the demo articles and comments. Running it twice
// adds nothing the second time.
func seedBoard(ctx context.Context, tx repository.TxManager, bcryptCost int, logger *slog.Logger) (seedResult, error) {
	var res seedResult
	accounts := &accountUC.Service{Tx: tx, BcryptCost: bcryptCost}
	articles := &artUC.Service{Tx: tx, Logger: logger}
	comments := &commentUC.Service{Tx: tx, Logger: logger}

	for _, u := range seedUsers {
		_, err := accounts.Register(ctx, "", dto.UserAccountDTO{
			UserID:   u.userID,
			Email:    u.email,
			Nickname: u.nickname,
		}, seedPassword)
		if errors.Is(err, accountUC.ErrUserIDTaken) {
			logger.Debug("seed user exists", "user_id", u.userID)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("seed user %q: %w", u.userID, err)
		}
		res.Users++
	}

	var existing int64
	err := tx.Do(ctx, true, func(repos repository.Repositories) error {
		var err error
		existing, err = repos.Articles.Count(ctx)
		return err
	})
	if err != nil {
		return res, fmt.Errorf("count articles: %w", err)
	}
	if existing > 0 {
		logger.Info("board already has articles, skipping", "articles", existing)
		return res, nil
	}

	for _, a := range seedArticles {
		d := dto.ArticleDTO{
			UserAccount: dto.UserAccountDTO{UserID: a.owner},
			Title:       a.title,
			Content:     a.content,
		}
		if a.hashtag != "" {
			tag := a.hashtag
			d.Hashtag = &tag
		}
		id, err := articles.SaveArticle(ctx, a.owner, d)
		if err != nil {
			return res, fmt.Errorf("seed article %q: %w", a.title, err)
		}
		res.Articles++

		for _, c := range a.comments {
			_, err := comments.SaveArticleComment(ctx, c.author, dto.ArticleCommentDTO{
				ArticleID:   id,
				UserAccount: dto.UserAccountDTO{UserID: c.author},
				Content:     c.content,
			})
			if err != nil {
				return res, fmt.Errorf("seed comment on %q: %w", a.title, err)
			}
			res.Comments++
		}
	}
	return res, nil
}
