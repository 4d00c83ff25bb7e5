package rest

import (
	"context"
	"errors"
	"net/http"

	"aforo/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type RoutingService interface {
	RouteOD(ctx context.Context, originZone, destZone string, tripsPerson int) (*service.ODRouteResult, error)
}

type RouteHandler struct {
	svc RoutingService
}

func RouterOD(r *chi.Mux, svc RoutingService) {
	handler := &RouteHandler{svc}

	r.Group(func(r chi.Router) {
		r.Route("/api/od", func(r chi.Router) {
			r.Post("/route", handler.RouteOD)
		})
	})
}

type RouteODRequest struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	TotalTrips  int    `json:"total_trips" validate:"gte=0"`
}

func (req *RouteODRequest) Bind(r *http.Request) error {
	if req.Origin == "" || req.Destination == "" {
		return errors.New("invalid request")
	}
	return nil
}

func (h *RouteHandler) RouteOD(w http.ResponseWriter, r *http.Request) {
	data := &RouteODRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	enTranslations.RegisterDefaultTranslations(validate, trans)

	if err := validate.Struct(data); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			render.Render(w, r, ErrValidation(validateErrs, trans))
			return
		}
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	trips := data.TotalTrips
	if trips < 10 {
		// censored and small counts coerce to one person-trip, same as ingest
		trips = 1
	}

	result, err := h.svc.RouteOD(r.Context(), data.Origin, data.Destination, trips)
	if err != nil {
		render.Render(w, r, ErrInternalServer(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}

type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	ErrorText  string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(errs validator.ValidationErrors, trans ut.Translator) render.Renderer {
	msg := ""
	for _, e := range errs {
		if msg != "" {
			msg += "; "
		}
		msg += e.Translate(trans)
	}
	return &ErrResponse{
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      msg,
	}
}

func ErrInternalServer(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}
