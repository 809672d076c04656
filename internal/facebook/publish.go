package facebook

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/graph"
)

// Publish posts a product to a page as a photo when an image resolves, else as a
// feed message. A post row is written for every attempt that reaches the Graph API.
func (s *service) Publish(ctx context.Context, actor Actor, input PublishInput) (*PostDTO, error) {
	page, err := s.repo.FindPage(ctx, input.FacebookPageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgPageNotFound)
		}
		return nil, db.Wrap(err, "load facebook page")
	}
	if userID := filterUser(actor); userID != 0 && page.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, msgPageNotOwned)
	}

	product, err := s.repo.FindProduct(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgProductNotFound)
		}
		return nil, db.Wrap(err, "load product")
	}

	token, err := s.cipher.Decrypt(page.PageAccessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrypt page access token")
	}

	caption := resolveCaption(input.Caption, product)
	imageURL := s.resolveImage(input.ImageURL, product)

	kind, edge := publishKindFeed, graph.EdgeFeed
	if imageURL != "" {
		kind, edge = publishKindPhoto, graph.EdgePhotos
	}
	payload := PublishPayload{GraphURL: s.publisher.EdgeURL(page.PageID, edge), Caption: caption}
	if imageURL != "" {
		payload.ImageURL = &imageURL
	}

	var resp *graph.Response
	if imageURL != "" {
		resp, err = s.publisher.PublishPhoto(ctx, page.PageID, token, imageURL, caption)
	} else {
		resp, err = s.publisher.PublishFeed(ctx, page.PageID, token, caption)
	}
	if err != nil {
		s.logg.Error(s.logg.WithFields(ctx, map[string]any{
			"facebook_page_id": page.ID,
			"product_id":       product.ID,
			"graph_edge":       edge,
		}), "facebook.publish_transport_failed", err)
	}

	post := &models.FacebookPost{
		FacebookPageID: page.ID,
		ProductID:      product.ID,
		FBPostID:       resp.PostID(),
		Status:         enums.PostStatusPublished,
	}
	if err != nil || !resp.Successful() {
		post.Status = enums.PostStatusFailed
	}
	if createErr := s.repo.CreatePost(ctx, post); createErr != nil {
		return nil, db.Wrap(createErr, "create facebook post")
	}
	post.FacebookPage = page
	post.Product = product
	dto := NewPostDTO(post)

	if post.Status == enums.PostStatusFailed {
		s.metrics.Inc(kind, publishStatusFailed)
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, msgPublishFailed).WithDetails(PublishFailure{
			FacebookResponse: resp.JSON(),
			Post:             dto,
			Payload:          payload,
		})
	}
	s.metrics.Inc(kind, publishStatusOK)
	return &dto, nil
}

func resolveCaption(caption *string, product *models.Product) string {
	if caption != nil {
		if trimmed := strings.TrimSpace(*caption); trimmed != "" {
			return trimmed
		}
	}
	if name := strings.TrimSpace(product.Name); name != "" {
		return name
	}
	return defaultCaption
}

// resolveImage picks the explicit image, then the thumbnail, then the first photo.
// Relative photo paths are served from public storage. Anything that is not an
// absolute http(s) URL is dropped so the post falls back to the feed edge.
func (s *service) resolveImage(explicit *string, product *models.Product) string {
	candidate := ""
	switch {
	case explicit != nil && strings.TrimSpace(*explicit) != "":
		candidate = strings.TrimSpace(*explicit)
	case product.ThumbnailURL != nil && strings.TrimSpace(*product.ThumbnailURL) != "":
		candidate = strings.TrimSpace(*product.ThumbnailURL)
	case len(product.Photos) > 0:
		first := strings.TrimSpace(product.Photos[0])
		if strings.HasPrefix(first, "http") {
			candidate = first
		} else if first != "" {
			candidate = s.storage.AssetURL(first)
		}
	}
	if !validURL(candidate) {
		return ""
	}
	return candidate
}

func validURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
