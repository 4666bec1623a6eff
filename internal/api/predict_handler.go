package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"flightontime/backend/internal/auth"
	"flightontime/backend/internal/common"
	"flightontime/backend/internal/constants"
	"flightontime/backend/internal/models/dtos"
	"flightontime/backend/internal/services"

	"github.com/go-playground/validator/v10"
)

// Predictor produces a delay prediction for one flight
type Predictor interface {
	Predict(ctx context.Context, in services.PredictionInput) (*dtos.PredictionResult, error)
}

// PredictHandler handles POST /api/v1/predict
func PredictHandler(predictor Predictor, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, constants.ErrCodeUnauthorized, "", http.StatusUnauthorized)
			return
		}

		var req dtos.PredictReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, constants.ErrCodeInvalidRequest, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			common.RespondError(w, initTime, constants.ErrCodeInvalidRequest, validationMessage(err), http.StatusBadRequest)
			return
		}

		result, err := predictor.Predict(r.Context(), services.PredictionInput{
			FlightDateUTC: req.FlightDateUTC,
			Carrier:       req.AirlineCode,
			Origin:        req.OriginIATA,
			Dest:          req.DestIATA,
			CallerID:      claims.UserID(),
		})
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		message := "Prediction created"
		if result.Cached {
			message = "Prediction served from history"
		}
		common.RespondSuccess(w, initTime, message, result)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return constants.GetErrorMessage(constants.ErrCodeInvalidRequest)
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return "Validation failed: " + strings.Join(parts, ", ")
}
