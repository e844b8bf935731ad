package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/medistock/internal/interaction"
	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/Skotchmaster/medistock/internal/repo"
	"github.com/Skotchmaster/medistock/internal/transport"
	"github.com/google/uuid"
)

type VaultService struct {
	Repo *repo.GormRepo
	Now  func() time.Time
}

func (s *VaultService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func cleanTimings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func checkDates(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}
	return nil
}

func (s *VaultService) Add(ctx context.Context, userID uuid.UUID, req transport.VaultItemRequest) (*models.VaultItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	start := s.now()
	if req.StartDate != nil {
		start = req.StartDate.UTC()
	}
	if err := checkDates(start, req.EndDate); err != nil {
		return nil, err
	}

	item := &models.VaultItem{
		UserID:    userID,
		Name:      name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Timings:   cleanTimings(req.Timings),
		StartDate: start,
		EndDate:   req.EndDate,
		Notes:     req.Notes,
	}
	if err := s.Repo.CreateVaultItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *VaultService) List(ctx context.Context, userID uuid.UUID) ([]models.VaultItem, error) {
	return s.Repo.ListVaultItems(ctx, userID)
}

func (s *VaultService) Update(ctx context.Context, userID, id uuid.UUID, req transport.PatchVaultItemRequest) (*models.VaultItem, error) {
	item, err := s.Repo.GetUserVaultItem(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, "vault item")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		item.Name = name
	}
	if req.Dosage != nil {
		item.Dosage = *req.Dosage
	}
	if req.Frequency != nil {
		item.Frequency = *req.Frequency
	}
	if req.Timings != nil {
		item.Timings = cleanTimings(req.Timings)
	}
	if req.StartDate != nil {
		item.StartDate = req.StartDate.UTC()
	}
	switch {
	case req.ClearEndDate && req.EndDate != nil:
		return nil, fmt.Errorf("%w: end_date and clear_end_date are mutually exclusive", ErrValidation)
	case req.ClearEndDate:
		item.EndDate = nil
	case req.EndDate != nil:
		item.EndDate = req.EndDate
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	if err := checkDates(item.StartDate, item.EndDate); err != nil {
		return nil, err
	}

	if err := s.Repo.SaveVaultItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *VaultService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.Repo.DeleteUserVaultItem(ctx, userID, id); err != nil {
		return notFound(err, "vault item")
	}
	return nil
}

// Interactions checks the user's currently active vault entries against the interaction rules.
func (s *VaultService) Interactions(ctx context.Context, userID uuid.UUID) (interaction.Report, error) {
	items, err := s.Repo.ListVaultItems(ctx, userID)
	if err != nil {
		return interaction.Report{}, err
	}

	now := s.now()
	names := make([]string, 0, len(items))
	for i := range items {
		if items[i].ActiveAt(now) {
			names = append(names, items[i].Name)
		}
	}
	return interaction.Check(names), nil
}
