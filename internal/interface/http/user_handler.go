package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/userboard/userboard/internal/application"
	"github.com/userboard/userboard/internal/domain/entity"
	"github.com/userboard/userboard/pkg/response"
	"github.com/userboard/userboard/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type geoPayload struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

type addressPayload struct {
	Street string      `json:"street" binding:"required"`
	City   string      `json:"city" binding:"required"`
	Zip    string      `json:"zip" binding:"required"`
	Geo    *geoPayload `json:"geo" binding:"required"`
}

type createUserRequest struct {
	Username    string          `json:"username" binding:"required"`
	PhoneNumber string          `json:"phoneNumber" binding:"required,phone10"`
	Email       string          `json:"email" binding:"required,email"`
	Company     string          `json:"company"`
	Address     *addressPayload `json:"address" binding:"required"`
}

func (r *createUserRequest) toEntity() *entity.User {
	return &entity.User{
		Username:    r.Username,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Company:     r.Company,
		Address: entity.Address{
			Street: r.Address.Street,
			City:   r.Address.City,
			Zip:    r.Address.Zip,
			Geo: entity.GeoPoint{
				Lat: *r.Address.Geo.Lat,
				Lng: *r.Address.Geo.Lng,
			},
		},
	}
}

// Every field is optional on update; nil pointers keep the stored value.
type updateGeoRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type updateAddressRequest struct {
	Street *string           `json:"street"`
	City   *string           `json:"city"`
	Zip    *string           `json:"zip"`
	Geo    *updateGeoRequest `json:"geo"`
}

type updateUserRequest struct {
	Username    *string               `json:"username"`
	PhoneNumber *string               `json:"phoneNumber"`
	Email       *string               `json:"email"`
	Company     *string               `json:"company"`
	Address     *updateAddressRequest `json:"address"`
}

func (r *updateUserRequest) toPatch() userapp.UpdatePatch {
	p := userapp.UpdatePatch{
		Username:    r.Username,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Company:     r.Company,
	}
	if r.Address != nil {
		ap := &userapp.AddressPatch{
			Street: r.Address.Street,
			City:   r.Address.City,
			Zip:    r.Address.Zip,
		}
		if r.Address.Geo != nil {
			ap.Geo = &userapp.GeoPatch{Lat: r.Address.Geo.Lat, Lng: r.Address.Geo.Lng}
		}
		p.Address = ap
	}
	return p
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Create(c.Request.Context(), req.toEntity())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "User created successfully", u)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "", users)
}

func (h *UserHandler) FindByID(c *gin.Context) {
	u, err := h.Svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "", u)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.toPatch())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "User updated successfully", u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "User deleted successfully", nil)
}

// fail maps service errors onto the envelope. Conflicts surface as
// validation-class failures, matching the store schema's behaviour.
func (h *UserHandler) fail(c *gin.Context, err error) {
	var verr *userapp.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Fail(c, http.StatusBadRequest, "Validation failed", verr.Details)
	case errors.Is(err, userapp.ErrMalformedID):
		response.Fail(c, http.StatusBadRequest, "Invalid user ID format", nil)
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, userapp.ErrEmailTaken):
		response.Fail(c, http.StatusBadRequest, "Validation failed", map[string]string{"email": "already in use"})
	default:
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("unhandled service error")
		response.Fail(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
