package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"paydocs-backend/internal/models"
	"paydocs-backend/internal/repositories"
	"paydocs-backend/internal/storage"
)

// Logo uploads are capped at 2MB
const MaxLogoSize = 2 << 20

type CompanyService struct {
	Repo    *repositories.CompanyRepository
	Storage *storage.Client // nil when object storage is not configured
}

func NewCompanyService(repo *repositories.CompanyRepository, store *storage.Client) *CompanyService {
	return &CompanyService{Repo: repo, Storage: store}
}

// GetProfile returns the stored profile, or an empty one if never saved
func (s *CompanyService) GetProfile(ctx context.Context, ownerID int) (*models.CompanyProfile, error) {
	profile, err := s.Repo.Get(ctx, ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.CompanyProfile{OwnerID: ownerID}, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *CompanyService) UpdateProfile(ctx context.Context, ownerID int, req *models.UpdateCompanyRequest) (*models.CompanyProfile, error) {
	profile := &models.CompanyProfile{
		OwnerID: ownerID,
		Name:    req.Name,
		Address: req.Address,
		Email:   req.Email,
		ABN:     req.ABN,
	}
	if err := s.Repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UploadLogo stores the logo in object storage and records its key
func (s *CompanyService) UploadLogo(ctx context.Context, ownerID int, data []byte, contentType string) error {
	if s.Storage == nil {
		return errors.New("object storage not configured")
	}
	if len(data) == 0 {
		return errors.New("empty logo upload")
	}
	if len(data) > MaxLogoSize {
		return errors.New("logo exceeds 2MB limit")
	}
	if contentType != "image/png" && contentType != "image/jpeg" {
		return errors.New("logo must be a PNG or JPEG image")
	}

	key := fmt.Sprintf("logos/%d", ownerID)
	if err := s.Storage.Upload(ctx, key, data, contentType); err != nil {
		return err
	}
	return s.Repo.SetLogoKey(ctx, ownerID, key)
}

// DeleteLogo removes the stored logo object and clears the key
func (s *CompanyService) DeleteLogo(ctx context.Context, ownerID int) error {
	profile, err := s.GetProfile(ctx, ownerID)
	if err != nil {
		return err
	}
	if profile.LogoKey == "" {
		return nil
	}
	if s.Storage != nil {
		if err := s.Storage.Delete(ctx, profile.LogoKey); err != nil {
			log.Printf("[Company] failed to delete logo object %s: %v", profile.LogoKey, err)
		}
	}
	return s.Repo.SetLogoKey(ctx, ownerID, "")
}

// CompanyInfo builds the issuer snapshot for the renderer. A stored logo
// is fetched from object storage and inlined as a base64 data URI; fetch
// failures are logged and the document renders without a logo.
func (s *CompanyService) CompanyInfo(ctx context.Context, ownerID int) (*models.CompanyInfo, error) {
	profile, err := s.GetProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	info := &models.CompanyInfo{
		Name:    profile.Name,
		Address: profile.Address,
		Email:   profile.Email,
		ABN:     profile.ABN,
	}

	if profile.LogoKey != "" && s.Storage != nil {
		data, contentType, err := s.Storage.Download(ctx, profile.LogoKey)
		if err != nil {
			log.Printf("[Company] failed to fetch logo %s: %v", profile.LogoKey, err)
		} else {
			info.Logo = fmt.Sprintf("data:%s;base64,%s",
				contentType, base64.StdEncoding.EncodeToString(data))
		}
	}

	return info, nil
}
