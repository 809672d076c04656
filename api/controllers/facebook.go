package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopadmin-backend/api/middleware"
	"github.com/angelmondragon/shopadmin-backend/api/responses"
	"github.com/angelmondragon/shopadmin-backend/api/validators"
	"github.com/angelmondragon/shopadmin-backend/internal/facebook"
	"github.com/angelmondragon/shopadmin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
)

type createFacebookAccountRequest struct {
	UserID   *int64 `json:"user_id" validate:"omitempty,min=1"`
	FBUserID string `json:"fb_user_id" validate:"required,max=255"`
	FBName   string `json:"fb_name" validate:"required,max=255"`
}

type createFacebookPageRequest struct {
	UserID            *int64 `json:"user_id" validate:"omitempty,min=1"`
	FacebookAccountID int64  `json:"facebook_account_id" validate:"required,min=1"`
	PageID            string `json:"page_id" validate:"required,max=255"`
	PageName          string `json:"page_name" validate:"required,max=255"`
	PageAccessToken   string `json:"page_access_token" validate:"required"`
	Category          string `json:"category" validate:"required,max=255"`
}

// fb_post_id and status are accepted for client compatibility; the Graph
// outcome decides both.
type publishContentRequest struct {
	UserID         *int64  `json:"user_id" validate:"omitempty,min=1"`
	FacebookPageID int64   `json:"facebook_page_id" validate:"required,min=1"`
	ProductID      int64   `json:"product_id" validate:"required,min=1"`
	FBPostID       *string `json:"fb_post_id" validate:"omitempty,max=255"`
	Status         *string `json:"status" validate:"omitempty,max=100"`
	Caption        *string `json:"caption" validate:"omitempty,max=2000"`
	ImageURL       *string `json:"image_url" validate:"omitempty,url"`
}

type republishContentRequest struct {
	UserID   *int64  `json:"user_id" validate:"omitempty,min=1"`
	FBPostID *string `json:"fb_post_id" validate:"omitempty,max=255"`
	Status   *string `json:"status" validate:"omitempty,max=100"`
}

func facebookUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "facebook service unavailable")
}

func actorFor(r *http.Request, explicit *int64) facebook.Actor {
	return facebook.Actor{IdentityUserID: middleware.UserIDFromContext(r.Context()), UserID: explicit}
}

// queryActor reads an explicit user_id filter from the query string.
func queryActor(r *http.Request) (facebook.Actor, error) {
	userID, err := validators.ParseQueryInt64(r, "user_id")
	if err != nil {
		return facebook.Actor{}, err
	}
	return actorFor(r, userID), nil
}

// CreateFacebookAccount handles POST /facebook/accounts.
func CreateFacebookAccount(svc facebook.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, facebookUnavailable())
			return
		}

		var payload createFacebookAccountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.CreateAccount(r.Context(), actorFor(r, payload.UserID), facebook.CreateAccountInput{
			FBUserID: payload.FBUserID,
			FBName:   payload.FBName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Facebook account added", account)
	}
}

func ListFacebookAccounts(svc facebook.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, facebookUnavailable())
			return
		}

		actor, err := queryActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListAccounts(r.Context(), actor, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Facebook accounts fetched", page)
	}
}

// CreateFacebookPage handles POST /facebook/pages. The access token is sealed before storage.
func CreateFacebookPage(svc facebook.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, facebookUnavailable())
			return
		}

		var payload createFacebookPageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.CreatePage(r.Context(), actorFor(r, payload.UserID), facebook.CreatePageInput{
			FacebookAccountID: payload.FacebookAccountID,
			PageID:            payload.PageID,
			PageName:          payload.PageName,
			PageAccessToken:   payload.PageAccessToken,
			Category:          payload.Category,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Facebook page added", page)
	}
}

func ListFacebookPages(svc facebook.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, facebookUnavailable())
			return
		}

		actor, err := queryActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		accountID, err := validators.ParseQueryInt64(r, "facebook_account_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListPages(r.Context(), actor, accountID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Facebook pages fetched", page)
	}
}

// PublishFacebookContent handles POST /facebook/posts/publish.
func PublishFacebookContent(svc facebook.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, facebookUnavailable())
			return
		}

		var payload publishContentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		post, err := svc.Publish(r.Context(), actorFor(r, payload.UserID), facebook.PublishInput{
			FacebookPageID: payload.FacebookPageID,
			ProductID:      payload.ProductID,
			Caption:        payload.Caption,
			ImageURL:       payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Content published", post)
	}
}

// ListFacebookContents handles GET /facebook/posts?facebook_page_id=&product_id=&status=.
func ListFacebookContents(svc facebook.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, facebookUnavailable())
			return
		}

		actor, err := queryActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var filter facebook.PostFilter
		if filter.FacebookPageID, err = validators.ParseQueryInt64(r, "facebook_page_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.ProductID, err = validators.ParseQueryInt64(r, "product_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if raw := validators.ParseQueryString(r, "status"); raw != nil {
			status := enums.PostStatus(*raw)
			filter.Status = &status
		}
		params, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListPosts(r.Context(), actor, filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Contents fetched", page)
	}
}

func RepublishFacebookContent(svc facebook.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, facebookUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload republishContentRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		post, err := svc.Republish(r.Context(), actorFor(r, payload.UserID), id, facebook.RepublishInput{
			FBPostID: payload.FBPostID,
			Status:   payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Content republished", post)
	}
}

func DeleteFacebookContent(svc facebook.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, facebookUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := queryActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePost(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Content deleted", nil)
	}
}
