package controllers

import (
	"net/http"

	"github.com/nkhandel/dietplanner-backend/api/responses"
	"github.com/nkhandel/dietplanner-backend/api/validators"
	checkoutsvc "github.com/nkhandel/dietplanner-backend/internal/checkout"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
	"github.com/nkhandel/dietplanner-backend/pkg/logger"
)

// Checkout converts the caller's cart into an order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkoutsvc.CheckoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
