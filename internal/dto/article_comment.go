package dto

import "project-board/internal/domain/entity"

// ArticleCommentDTO is the read and create shape of a comment.
type ArticleCommentDTO struct {
	ID          int64          `json:"id" example:"1"`
	ArticleID   int64          `json:"articleId" example:"1"`
	UserAccount UserAccountDTO `json:"userAccount"`
	Content     string         `json:"content" example:"nice post"`
	AuditDTO
}

// ArticleCommentFromEntity projects a persisted comment.
func ArticleCommentFromEntity(c entity.ArticleComment) ArticleCommentDTO {
	return ArticleCommentDTO{
		ID:          c.ID,
		ArticleID:   c.ArticleID,
		UserAccount: UserAccountFromEntity(c.UserAccount),
		Content:     c.Content,
		AuditDTO:    auditFromEntity(c.Audit),
	}
}

// ArticleCommentsFromEntities maps a slice of comments, preserving order.
func ArticleCommentsFromEntities(comments []entity.ArticleComment) []ArticleCommentDTO {
	out := make([]ArticleCommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, ArticleCommentFromEntity(c))
	}
	return out
}

// ToEntity builds a transient comment on the DTO's article, written by author.
func (d ArticleCommentDTO) ToEntity(author entity.UserAccount) entity.ArticleComment {
	return entity.ArticleComment{
		ArticleID:   d.ArticleID,
		UserAccount: author,
		Content:     d.Content,
	}
}

// ArticleWithCommentsDTO is an article together with its full comment set.
type ArticleWithCommentsDTO struct {
	ArticleDTO
	ArticleComments []ArticleCommentDTO `json:"articleComments"`
}

// ArticleWithCommentsFromEntity projects an article and its comments.
func ArticleWithCommentsFromEntity(a entity.Article, comments []entity.ArticleComment) ArticleWithCommentsDTO {
	return ArticleWithCommentsDTO{
		ArticleDTO:      ArticleFromEntity(a),
		ArticleComments: ArticleCommentsFromEntities(comments),
	}
}

// ToEntity builds a transient article. Comments are saved separately and are not carried over.
func (d ArticleWithCommentsDTO) ToEntity(owner entity.UserAccount) entity.Article {
	return d.ArticleDTO.ToEntity(owner)
}
