package controllers

import (
	"net/http"
	"time"

	"github.com/angelmondragon/shopadmin-backend/api/responses"
	"github.com/angelmondragon/shopadmin-backend/api/validators"
	"github.com/angelmondragon/shopadmin-backend/internal/apitokens"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
)

type issueTokenRequest struct {
	Name      string     `json:"name" validate:"required,max=255"`
	Scopes    []string   `json:"scopes" validate:"omitempty,dive,max=100"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func tokenUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "api token service unavailable")
}

// IssueAPIToken handles POST /users/{id}/tokens. The plaintext secret is only in this response.
func IssueAPIToken(svc apitokens.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, tokenUnavailable())
			return
		}

		userID, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload issueTokenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := svc.Issue(r.Context(), userID, apitokens.IssueInput{
			Name:      validators.SanitizeString(payload.Name, 255),
			Scopes:    payload.Scopes,
			ExpiresAt: payload.ExpiresAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "API token issued successfully", token)
	}
}

func ListAPITokens(svc apitokens.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, tokenUnavailable())
			return
		}

		userID, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "API tokens retrieved successfully", page)
	}
}

func RevokeAPIToken(svc apitokens.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, tokenUnavailable())
			return
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Revoke(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "API token revoked successfully", nil)
	}
}
