package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/userboard/userboard/internal/domain/entity"
	repo "github.com/userboard/userboard/internal/domain/repository"
	"github.com/userboard/userboard/pkg/validation"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrMalformedID  = errors.New("invalid user id format")
	ErrEmailTaken   = errors.New("email already in use")
)

// ValidationError carries per-field reasons for a rejected write.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

type Service struct {
	Repo     repo.UserRepository
	Logger   *logrus.Logger
	validate *validator.Validate
}

func NewService(r repo.UserRepository, logger *logrus.Logger) *Service {
	return &Service{
		Repo:     r,
		Logger:   logger,
		validate: validation.New(),
	}
}

// normalize trims string fields and lowercases the email, mirroring what the
// store schema promises regardless of how the caller spelled the input.
func normalize(u *entity.User) {
	u.Username = strings.TrimSpace(u.Username)
	u.PhoneNumber = strings.TrimSpace(u.PhoneNumber)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Company = strings.TrimSpace(u.Company)
	u.Address.Street = strings.TrimSpace(u.Address.Street)
	u.Address.City = strings.TrimSpace(u.Address.City)
	u.Address.Zip = strings.TrimSpace(u.Address.Zip)
}

func (s *Service) check(u *entity.User) error {
	if err := s.validate.Struct(u); err != nil {
		return &ValidationError{Details: validation.ToDetails(err)}
	}
	return nil
}

// Create validates and persists a new user. Validation runs before any
// persistence attempt; a failed create leaves the collection untouched.
func (s *Service) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	normalize(u)
	if err := s.check(u); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetByEmail(ctx, u.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if err := s.Repo.Create(ctx, u); err != nil {
		// The unique index can still race the pre-check.
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID.Hex(), "email": u.Email}).Info("user created")
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx)
}

func (s *Service) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdatePatch holds the fields an update request supplied. Nil means the
// field was absent and the stored value is preserved.
type UpdatePatch struct {
	Username    *string
	PhoneNumber *string
	Email       *string
	Company     *string
	Address     *AddressPatch
}

type AddressPatch struct {
	Street *string
	City   *string
	Zip    *string
	Geo    *GeoPatch
}

type GeoPatch struct {
	Lat *float64
	Lng *float64
}

func (p *UpdatePatch) apply(u *entity.User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Company != nil {
		u.Company = *p.Company
	}
	if p.Address != nil {
		p.Address.apply(&u.Address)
	}
}

func (p *AddressPatch) apply(a *entity.Address) {
	if p.Street != nil {
		a.Street = *p.Street
	}
	if p.City != nil {
		a.City = *p.City
	}
	if p.Zip != nil {
		a.Zip = *p.Zip
	}
	if p.Geo != nil {
		p.Geo.apply(&a.Geo)
	}
}

func (p *GeoPatch) apply(g *entity.GeoPoint) {
	if p.Lat != nil {
		g.Lat = *p.Lat
	}
	if p.Lng != nil {
		g.Lng = *p.Lng
	}
}

// Update merges the supplied fields onto the stored user and re-validates the
// merged document as a whole. A partial address update preserves the prior
// nested values, geo included. Nothing is persisted on a validation failure.
func (s *Service) Update(ctx context.Context, id string, patch UpdatePatch) (*entity.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	current, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	merged := *current
	patch.apply(&merged)
	normalize(&merged)
	if err := s.check(&merged); err != nil {
		return nil, err
	}

	if merged.Email != current.Email {
		if other, err := s.Repo.GetByEmail(ctx, merged.Email); err == nil && other.ID != oid {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
	}

	merged.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, &merged); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.Logger.WithField("user_id", merged.ID.Hex()).Info("user updated")
	return &merged, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.Logger.WithField("user_id", id).Info("user deleted")
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrMalformedID
	}
	return oid, nil
}
