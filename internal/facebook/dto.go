package facebook

import (
	"encoding/json"
	"time"

	"github.com/angelmondragon/shopadmin-backend/internal/catalog"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
)

type AccountDTO struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	FBUserID string `json:"fb_user_id"`
	FBName   string `json:"fb_name"`
}

// PageDTO never carries the page access token.
type PageDTO struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	FacebookAccountID int64     `json:"facebook_account_id"`
	PageID            string    `json:"page_id"`
	PageName          string    `json:"page_name"`
	Category          string    `json:"category"`
	CreatedAt         time.Time `json:"created_at"`
}

type PostDTO struct {
	ID             int64               `json:"id"`
	FacebookPageID int64               `json:"facebook_page_id"`
	ProductID      int64               `json:"product_id"`
	FBPostID       string              `json:"fb_post_id"`
	Status         enums.PostStatus    `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	FacebookPage   *PageDTO            `json:"facebook_page,omitempty"`
	Product        *catalog.ProductDTO `json:"product,omitempty"`
}

func NewAccountDTO(a *models.FacebookAccount) AccountDTO {
	return AccountDTO{ID: a.ID, UserID: a.UserID, FBUserID: a.FBUserID, FBName: a.FBName}
}

func NewPageDTO(p *models.FacebookPage) PageDTO {
	return PageDTO{
		ID:                p.ID,
		UserID:            p.UserID,
		FacebookAccountID: p.FacebookAccountID,
		PageID:            p.PageID,
		PageName:          p.PageName,
		Category:          p.Category,
		CreatedAt:         p.CreatedAt,
	}
}

func NewPostDTO(p *models.FacebookPost) PostDTO {
	dto := PostDTO{
		ID:             p.ID,
		FacebookPageID: p.FacebookPageID,
		ProductID:      p.ProductID,
		FBPostID:       p.FBPostID,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		Product:        catalog.NewProductDTO(p.Product),
	}
	if p.FacebookPage != nil {
		page := NewPageDTO(p.FacebookPage)
		dto.FacebookPage = &page
	}
	return dto
}

// PublishPayload echoes what was sent to the Graph API on a failed publish.
type PublishPayload struct {
	GraphURL string  `json:"graph_url"`
	Caption  string  `json:"caption"`
	ImageURL *string `json:"image_url"`
}

// PublishFailure is the error detail of a rejected or unreachable publish.
type PublishFailure struct {
	FacebookResponse json.RawMessage `json:"facebook_response"`
	Post             PostDTO         `json:"post"`
	Payload          PublishPayload  `json:"payload"`
}
