package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/repositories"
	"github.com/erzer12/y-ultimate/stats"
	"github.com/erzer12/y-ultimate/storage"
)

type ProfileService interface {
	Create(ctx context.Context, input CreateProfileInput) (*models.ChildProfile, error)
	GetByID(ctx context.Context, id int) (*models.ChildProfile, error)
	List(ctx context.Context, filter repositories.ProfileListFilter) ([]models.ChildProfile, error)
	Update(ctx context.Context, id int, input UpdateProfileInput) (*models.ChildProfile, error)
	Delete(ctx context.Context, id int) error

	// GetStats computes the child's attendance rate and latest assessment
	// snapshot on demand.
	GetStats(ctx context.Context, id int) (*stats.ProfileStats, error)

	// Transfer moves a child to a new school or community and appends the
	// move to the child's transfer log.
	Transfer(ctx context.Context, id int, input TransferInput) (*models.ChildProfile, error)
	ListTransfers(ctx context.Context, id int) ([]models.ProfileTransfer, error)

	UploadPhoto(ctx context.Context, id int, contentType string, file io.Reader) (*models.ChildProfile, error)
}

type CreateProfileInput struct {
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Gender        *string    `json:"gender"`
	School        *string    `json:"school"`
	Community     *string    `json:"community"`
	GuardianName  *string    `json:"guardian_name"`
	GuardianPhone *string    `json:"guardian_phone"`
}

type UpdateProfileInput struct {
	FirstName     *string    `json:"first_name"`
	LastName      *string    `json:"last_name"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Gender        *string    `json:"gender"`
	GuardianName  *string    `json:"guardian_name"`
	GuardianPhone *string    `json:"guardian_phone"`
	IsActive      *bool      `json:"is_active"`
}

type TransferInput struct {
	ToSchool    *string `json:"to_school"`
	ToCommunity *string `json:"to_community"`
	Reason      *string `json:"reason"`
	RecordedBy  *int    `json:"-"`
}

type profileService struct {
	profileRepo    repositories.ProfileRepository
	transferRepo   repositories.TransferRepository
	attendanceRepo repositories.AttendanceRepository
	assessmentRepo repositories.AssessmentRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	transferRepo repositories.TransferRepository,
	attendanceRepo repositories.AttendanceRepository,
	assessmentRepo repositories.AssessmentRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		transferRepo:   transferRepo,
		attendanceRepo: attendanceRepo,
		assessmentRepo: assessmentRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *profileService) Create(ctx context.Context, input CreateProfileInput) (*models.ChildProfile, error) {
	if input.FirstName == "" || input.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name", ErrNameRequired)
	}

	profile := &models.ChildProfile{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		DateOfBirth:   input.DateOfBirth,
		Gender:        input.Gender,
		School:        input.School,
		Community:     input.Community,
		GuardianName:  input.GuardianName,
		GuardianPhone: input.GuardianPhone,
		IsActive:      true,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create child profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) GetByID(ctx context.Context, id int) (*models.ChildProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get child profile %d: %w", id, err)
	}
	s.populatePhotoURL(profile)
	return profile, nil
}

func (s *profileService) List(ctx context.Context, filter repositories.ProfileListFilter) ([]models.ChildProfile, error) {
	profiles, err := s.profileRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list child profiles: %w", err)
	}
	for i := range profiles {
		s.populatePhotoURL(&profiles[i])
	}
	return profiles, nil
}

func (s *profileService) Update(ctx context.Context, id int, input UpdateProfileInput) (*models.ChildProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get child profile %d: %w", id, err)
	}

	if input.FirstName != nil {
		profile.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		profile.LastName = *input.LastName
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != nil {
		profile.Gender = input.Gender
	}
	if input.GuardianName != nil {
		profile.GuardianName = input.GuardianName
	}
	if input.GuardianPhone != nil {
		profile.GuardianPhone = input.GuardianPhone
	}
	if input.IsActive != nil {
		profile.IsActive = *input.IsActive
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update child profile %d: %w", id, err)
	}
	s.populatePhotoURL(profile)
	return profile, nil
}

func (s *profileService) Delete(ctx context.Context, id int) error {
	if err := s.profileRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to delete child profile %d: %w", id, err)
	}
	return nil
}

func (s *profileService) GetStats(ctx context.Context, id int) (*stats.ProfileStats, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	var (
		attendance  []models.Attendance
		assessments []models.Assessment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		attendance, err = s.attendanceRepo.ListByChild(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		assessments, err = s.assessmentRepo.ListByChildChronological(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load child %d records: %w", id, err)
	}

	rollup := stats.AggregateProfile(id, attendance, assessments)
	return &rollup, nil
}

func (s *profileService) Transfer(ctx context.Context, id int, input TransferInput) (*models.ChildProfile, error) {
	if input.ToSchool == nil && input.ToCommunity == nil {
		return nil, fmt.Errorf("%w: transfer needs a destination school or community", ErrValidationFailed)
	}

	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get child profile %d: %w", id, err)
	}

	transfer := &models.ProfileTransfer{
		ChildID:       id,
		FromSchool:    profile.School,
		FromCommunity: profile.Community,
		Reason:        input.Reason,
		TransferredAt: time.Now().UTC(),
		RecordedBy:    input.RecordedBy,
	}
	if input.ToSchool != nil {
		profile.School = input.ToSchool
		transfer.ToSchool = input.ToSchool
	}
	if input.ToCommunity != nil {
		profile.Community = input.ToCommunity
		transfer.ToCommunity = input.ToCommunity
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update child profile %d: %w", id, err)
	}
	if err := s.transferRepo.Append(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to record transfer for child %d: %w", id, err)
	}

	s.logger.Info("child transferred",
		slog.Int("child_id", id),
		slog.Any("to_school", transfer.ToSchool),
		slog.Any("to_community", transfer.ToCommunity))

	s.populatePhotoURL(profile)
	return profile, nil
}

func (s *profileService) ListTransfers(ctx context.Context, id int) ([]models.ProfileTransfer, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	transfers, err := s.transferRepo.ListByChild(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers for child %d: %w", id, err)
	}
	return transfers, nil
}

func (s *profileService) UploadPhoto(ctx context.Context, id int, contentType string, file io.Reader) (*models.ChildProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get child profile %d: %w", id, err)
	}

	key := fmt.Sprintf("children/%d/photo", id)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload child photo: %w", err)
	}

	if err := s.profileRepo.UpdatePhotoKey(ctx, id, &result.Key); err != nil {
		if delErr := s.uploader.Delete(ctx, result.Key); delErr != nil {
			s.logger.Warn("failed to delete orphaned photo object",
				slog.String("key", result.Key), slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("failed to store photo key: %w", err)
	}

	profile.PhotoKey = &result.Key
	s.populatePhotoURL(profile)
	return profile, nil
}

func (s *profileService) populatePhotoURL(p *models.ChildProfile) {
	if p.PhotoKey == nil || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*p.PhotoKey)
	p.PhotoURL = &url
}
