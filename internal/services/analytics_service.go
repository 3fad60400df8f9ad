package services

import (
	"math"
	"sort"

	"gorm.io/gorm"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/logger"
	"gatherly/internal/models"
)

// uncategorizedLabel buckets costed events that no longer hang off a node.
const uncategorizedLabel = "Uncategorized"

// analyticsService aggregates a prebuilt event set into report rows. It
// trusts its input completely: authorization and filtering happened in the
// event set builder.
type analyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB) AnalyticsServicer {
	return &analyticsService{db: db}
}

// ReportTitle returns the stable display title for an analysis type. The
// title never varies with the data; "no data" presentation is the caller's
// concern.
func ReportTitle(t models.AnalysisType) string {
	switch t {
	case models.AnalysisSpendingByCategory:
		return "Spending by Category"
	case models.AnalysisLocationHeatmap:
		return "Event Location Heatmap"
	case models.AnalysisRSVPDistribution:
		return "RSVP Distribution"
	case models.AnalysisBusyPeriods:
		return "Busy Periods"
	}
	return string(t)
}

// ComputeReport computes the report for the given analysis type over the
// given event set. An empty event set produces an empty report, not an
// error.
func (s *analyticsService) ComputeReport(analysisType models.AnalysisType, eventIDs []uint) (*Report, error) {
	report := &Report{
		AnalysisType: analysisType,
		Title:        ReportTitle(analysisType),
	}

	var err error
	switch analysisType {
	case models.AnalysisSpendingByCategory:
		report.Data, err = s.spendingByCategory(eventIDs)
	case models.AnalysisLocationHeatmap:
		report.Data, err = s.locationHeatmap(eventIDs)
	case models.AnalysisRSVPDistribution:
		report.Data, err = s.rsvpDistribution(eventIDs)
	case models.AnalysisBusyPeriods:
		report.Data, err = s.busyPeriods(eventIDs)
	default:
		return nil, apperrors.ErrInvalidAnalysisType
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// spendingByCategory sums event costs per node label, descending by total.
// Events without a positive numeric cost contribute nothing.
func (s *analyticsService) spendingByCategory(eventIDs []uint) ([]CategoryTotal, error) {
	totals := []CategoryTotal{}
	if len(eventIDs) == 0 {
		return totals, nil
	}

	var events []models.Event
	err := s.db.Preload("Node").Where("id IN ?", eventIDs).Find(&events).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byCategory := make(map[string]float64)
	for _, e := range events {
		if e.CostValue == nil || *e.CostValue <= 0 {
			continue
		}
		label := uncategorizedLabel
		if e.Node != nil {
			label = e.Node.Label
		}
		byCategory[label] += *e.CostValue
	}

	for label, amount := range byCategory {
		totals = append(totals, CategoryTotal{
			Category: label,
			Amount:   math.Round(amount*100) / 100,
		})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount != totals[j].Amount {
			return totals[i].Amount > totals[j].Amount
		}
		return totals[i].Category < totals[j].Category
	})
	return totals, nil
}

// locationHeatmap collects event coordinates. Bad or missing coordinate
// strings are skipped, never fatal.
func (s *analyticsService) locationHeatmap(eventIDs []uint) ([]Coordinate, error) {
	coords := []Coordinate{}
	if len(eventIDs) == 0 {
		return coords, nil
	}

	var events []models.Event
	err := s.db.Where("id IN ?", eventIDs).Find(&events).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, e := range events {
		if e.LocationCoordinates == "" {
			logger.Get().Debugw("event has no coordinates, skipping", "event_id", e.ID)
			continue
		}
		lat, lng, err := models.ParseCoordinates(e.LocationCoordinates)
		if err != nil {
			logger.Get().Warnw("unparsable event coordinates, skipping",
				"event_id", e.ID, "error", err.Error())
			continue
		}
		coords = append(coords, Coordinate{Lat: lat, Lng: lng})
	}
	return coords, nil
}

// rsvpDistribution counts responses by status across the event set.
func (s *analyticsService) rsvpDistribution(eventIDs []uint) ([]StatusCount, error) {
	counts := []StatusCount{}
	if len(eventIDs) == 0 {
		return counts, nil
	}

	for _, status := range []models.RSVPStatus{
		models.RSVPStatusAttending, models.RSVPStatusMaybe, models.RSVPStatusDeclined,
	} {
		var n int64
		err := s.db.Model(&models.EventRSVP{}).
			Where("event_id IN ? AND status = ?", eventIDs, status).
			Count(&n).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		counts = append(counts, StatusCount{Status: status, Count: n})
	}
	return counts, nil
}

// busyPeriods counts events per calendar month, chronologically.
func (s *analyticsService) busyPeriods(eventIDs []uint) ([]MonthCount, error) {
	months := []MonthCount{}
	if len(eventIDs) == 0 {
		return months, nil
	}

	var events []models.Event
	err := s.db.Where("id IN ?", eventIDs).Find(&events).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byMonth := make(map[string]int64)
	for _, e := range events {
		byMonth[e.Date.Format("2006-01")]++
	}
	for month, n := range byMonth {
		months = append(months, MonthCount{Month: month, Count: n})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months, nil
}
