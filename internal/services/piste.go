package services

import (
	"context"
	"fmt"

	"github.com/skistation/resort/internal/logger"
	"github.com/skistation/resort/internal/models"
	"github.com/skistation/resort/internal/store"
)

// PisteInput is the caller-facing shape of a new piste; Color is free text.
type PisteInput struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Length int    `json:"length"`
	Slope  int    `json:"slope"`
}

type PisteService struct {
	pistes store.Store[models.Piste]
	log    *logger.Logger
}

func NewPisteService(b store.Backend, log *logger.Logger) *PisteService {
	return &PisteService{pistes: b.Repos().Pistes, log: log.With("service", "PisteService")}
}

func (s *PisteService) RetrieveAllPistes(ctx context.Context) ([]models.Piste, error) {
	return s.pistes.FindAll(ctx)
}

// AddPiste normalises the color ("red" → RED) and saves the piste. An
// unknown color fails with models.ErrInvalidEnum before anything is written.
func (s *PisteService) AddPiste(ctx context.Context, in PisteInput) (*models.Piste, error) {
	color, err := models.ParseColor(in.Color)
	if err != nil {
		return nil, err
	}
	p := &models.Piste{
		Name:   in.Name,
		Color:  color,
		Length: in.Length,
		Slope:  in.Slope,
	}
	saved, err := s.pistes.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("save piste: %w", err)
	}
	s.log.Info("piste added", "piste_id", saved.ID, "color", saved.Color)
	return saved, nil
}

// RemovePiste is a no-op for unknown ids.
func (s *PisteService) RemovePiste(ctx context.Context, id uint) error {
	return s.pistes.DeleteByID(ctx, id)
}

// RetrievePiste fails with ErrNotFound when id does not resolve.
func (s *PisteService) RetrievePiste(ctx context.Context, id uint) (*models.Piste, error) {
	p, err := s.pistes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("piste", id)
	}
	return p, nil
}
