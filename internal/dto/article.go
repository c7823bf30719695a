package dto

import "project-board/internal/domain/entity"

// ArticleDTO is the read and create shape of an article.
type ArticleDTO struct {
	ID          int64          `json:"id" example:"1"`
	UserAccount UserAccountDTO `json:"userAccount"`
	Title       string         `json:"title" example:"Spring Boot with Go"`
	Content     string         `json:"content" example:"Notes on porting a board"`
	Hashtag     *string        `json:"hashtag,omitempty" example:"#go"`
	AuditDTO
}

// ArticleFromEntity projects a persisted article, owner included.
func ArticleFromEntity(a entity.Article) ArticleDTO {
	return ArticleDTO{
		ID:          a.ID,
		UserAccount: UserAccountFromEntity(a.UserAccount),
		Title:       a.Title,
		Content:     a.Content,
		Hashtag:     cloneString(a.Hashtag),
		AuditDTO:    auditFromEntity(a.Audit),
	}
}

// ToEntity builds a transient article owned by owner. ID and audit fields stay zero.
func (d ArticleDTO) ToEntity(owner entity.UserAccount) entity.Article {
	return entity.Article{
		UserAccount: owner,
		Title:       d.Title,
		Content:     d.Content,
		Hashtag:     cloneString(d.Hashtag),
	}
}

// HashtagValue returns the hashtag or "".
func (d ArticleDTO) HashtagValue() string {
	if d.Hashtag == nil {
		return ""
	}
	return *d.Hashtag
}

// ArticleUpdateDTO carries a partial article update. A nil Title or Content
// keeps the stored value; Hashtag always replaces the stored value.
type ArticleUpdateDTO struct {
	UserID  string
	Title   *string
	Content *string
	Hashtag *string
}

// ApplyTo writes the update onto a loaded article.
func (u ArticleUpdateDTO) ApplyTo(a *entity.Article) {
	if u.Title != nil {
		a.Title = *u.Title
	}
	if u.Content != nil {
		a.Content = *u.Content
	}
	a.Hashtag = cloneString(u.Hashtag)
}
