package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sharklandy/deapsea-project/internal/config"
	"github.com/sharklandy/deapsea-project/internal/events"
	"github.com/sharklandy/deapsea-project/internal/keywords"
	"github.com/sharklandy/deapsea-project/internal/models"
	"github.com/sharklandy/deapsea-project/internal/repositories"
	"go.uber.org/zap"
)

const (
	statsCacheKey   = "taxonomy:stats"
	commonKeywordsN = 3
)

type GlobalStats struct {
	TotalSpecies              int     `json:"totalSpecies"`
	TotalObservations         int     `json:"totalObservations"`
	AvgObservationsPerSpecies float64 `json:"avgObservationsPerSpecies"`
}

type SpeciesStats struct {
	SpeciesID             uuid.UUID `json:"speciesId"`
	Name                  string    `json:"name"`
	RarityScore           float64   `json:"rarityScore"`
	TotalObservations     int       `json:"totalObservations"`
	ValidatedObservations int       `json:"validatedObservations"`
	PendingObservations   int       `json:"pendingObservations"`
	RejectedObservations  int       `json:"rejectedObservations"`
	CommonKeywords        []string  `json:"commonKeywords"`
}

type StatsReport struct {
	Global      GlobalStats    `json:"global"`
	Species     []SpeciesStats `json:"species"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

type FamilyView struct {
	models.Family
	SubSpeciesCount int `json:"subSpeciesCount"`
}

type SubSpeciesView struct {
	models.SubSpecies
	FamilyName *string `json:"familyName,omitempty"`
}

type BranchView struct {
	models.EvolutionaryBranch
	SpeciesCount int `json:"speciesCount"`
}

type ClassificationReport struct {
	Families   []FamilyView     `json:"families"`
	SubSpecies []SubSpeciesView `json:"subSpecies"`
	Branches   []BranchView     `json:"branches"`
}

// TaxonomyService builds aggregate reports over the observation catalog and
// the local classification store. The stats report is expensive (one catalog
// round trip per species), so it is cached in Redis and invalidated when an
// observation event arrives.
type TaxonomyService struct {
	taxRepo   *repositories.TaxonomyRepo
	obsClient *ObservationClient
	redis     *redis.Client
	cfg       *config.Config
	log       *zap.Logger
}

func NewTaxonomyService(taxRepo *repositories.TaxonomyRepo, obsClient *ObservationClient, rdb *redis.Client, cfg *config.Config, log *zap.Logger) *TaxonomyService {
	return &TaxonomyService{taxRepo: taxRepo, obsClient: obsClient, redis: rdb, cfg: cfg, log: log}
}

func (s *TaxonomyService) Stats(ctx context.Context) (*StatsReport, error) {
	cached, err := s.redis.Get(ctx, statsCacheKey).Result()
	if err == nil {
		var report StatsReport
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			return &report, nil
		}
		s.log.Warn("discarding unreadable cached stats report", zap.Error(err))
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn("stats cache read failed", zap.Error(err))
	}

	report, err := s.buildStats(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(report); err == nil {
		if err := s.redis.Set(ctx, statsCacheKey, data, s.cfg.StatsCacheTTL).Err(); err != nil {
			s.log.Warn("stats cache write failed", zap.Error(err))
		}
	}

	return report, nil
}

func (s *TaxonomyService) buildStats(ctx context.Context) (*StatsReport, error) {
	speciesList, err := s.obsClient.ListSpecies(ctx)
	if err != nil {
		return nil, NewUnavailableError("observation catalog is unreachable")
	}

	report := &StatsReport{
		Species:     make([]SpeciesStats, 0, len(speciesList)),
		GeneratedAt: time.Now().UTC(),
	}
	report.Global.TotalSpecies = len(speciesList)

	for _, sp := range speciesList {
		stat := SpeciesStats{
			SpeciesID:      sp.ID,
			Name:           sp.Name,
			RarityScore:    sp.RarityScore,
			CommonKeywords: []string{},
		}

		// One species failing to resolve must not sink the whole
		// report; it shows up with zeroed counts instead.
		observations, err := s.obsClient.ListSpeciesObservations(ctx, sp.ID)
		if err != nil {
			s.log.Warn("failed to fetch observations for species",
				zap.String("species_id", sp.ID.String()),
				zap.Error(err),
			)
			report.Species = append(report.Species, stat)
			continue
		}

		descriptions := make([]string, 0, len(observations))
		for _, o := range observations {
			stat.TotalObservations++
			descriptions = append(descriptions, o.Description)
			switch o.Status {
			case models.ObservationStatusValidated:
				stat.ValidatedObservations++
			case models.ObservationStatusPending:
				stat.PendingObservations++
			case models.ObservationStatusRejected:
				stat.RejectedObservations++
			}
		}
		stat.CommonKeywords = keywords.Top(descriptions, commonKeywordsN)

		report.Global.TotalObservations += stat.TotalObservations
		report.Species = append(report.Species, stat)
	}

	sort.SliceStable(report.Species, func(i, j int) bool {
		return report.Species[i].TotalObservations > report.Species[j].TotalObservations
	})

	if report.Global.TotalSpecies > 0 {
		avg := float64(report.Global.TotalObservations) / float64(report.Global.TotalSpecies)
		report.Global.AvgObservationsPerSpecies = math.Round(avg*100) / 100
	}

	return report, nil
}

func (s *TaxonomyService) Classification(ctx context.Context) (*ClassificationReport, error) {
	families, err := s.taxRepo.ListFamilies(ctx)
	if err != nil {
		return nil, err
	}
	subSpecies, err := s.taxRepo.ListSubSpecies(ctx)
	if err != nil {
		return nil, err
	}
	branches, err := s.taxRepo.ListBranches(ctx)
	if err != nil {
		return nil, err
	}

	familyNames := make(map[uuid.UUID]string, len(families))
	subCounts := make(map[uuid.UUID]int)
	for _, f := range families {
		familyNames[f.ID] = f.Name
	}
	for _, ss := range subSpecies {
		if ss.FamilyID != nil {
			subCounts[*ss.FamilyID]++
		}
	}

	report := &ClassificationReport{
		Families:   make([]FamilyView, 0, len(families)),
		SubSpecies: make([]SubSpeciesView, 0, len(subSpecies)),
		Branches:   make([]BranchView, 0, len(branches)),
	}
	for _, f := range families {
		report.Families = append(report.Families, FamilyView{Family: f, SubSpeciesCount: subCounts[f.ID]})
	}
	for _, ss := range subSpecies {
		view := SubSpeciesView{SubSpecies: ss}
		if ss.FamilyID != nil {
			if name, ok := familyNames[*ss.FamilyID]; ok {
				view.FamilyName = &name
			}
		}
		report.SubSpecies = append(report.SubSpecies, view)
	}
	for _, b := range branches {
		report.Branches = append(report.Branches, BranchView{EvolutionaryBranch: b, SpeciesCount: len(b.SpeciesIDs)})
	}

	return report, nil
}

// InvalidateCache drops the cached stats report. Called from the event
// subscriber whenever an observation changes.
func (s *TaxonomyService) InvalidateCache(ctx context.Context) {
	if err := s.redis.Del(ctx, statsCacheKey).Err(); err != nil {
		s.log.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

// SubscribeInvalidation drops the cached report whenever an observation
// lifecycle event arrives on the stream.
func (s *TaxonomyService) SubscribeInvalidation(ctx context.Context, sub events.Subscriber) error {
	return sub.Subscribe(ctx, events.StreamObservations, func(event events.Event) {
		s.log.Debug("observation event received", zap.String("type", event.Type))
		s.InvalidateCache(ctx)
	})
}
