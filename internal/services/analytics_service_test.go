package services

import (
	"testing"
	"time"

	"gatherly/internal/models"
	"gatherly/internal/testutil"
)

func floatPtr(v float64) *float64 { return &v }

func TestSpendingByCategory(t *testing.T) {
	t.Run("sums_per_node_label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		user := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, user.ID)
		dining := testutil.CreateTestNode(t, db, group.ID, "Dining")
		movies := testutil.CreateTestNode(t, db, group.ID, "Movies")
		e1 := testutil.CreateTestEvent(t, db, &dining.ID, testutil.EventOpts{CostValue: floatPtr(12.5)})
		e2 := testutil.CreateTestEvent(t, db, &dining.ID, testutil.EventOpts{CostValue: floatPtr(7.5)})
		e3 := testutil.CreateTestEvent(t, db, &movies.ID, testutil.EventOpts{CostValue: floatPtr(10.0)})

		report, err := svc.ComputeReport(models.AnalysisSpendingByCategory, []uint{e1.ID, e2.ID, e3.ID})
		testutil.AssertNoError(t, err)

		totals, ok := report.Data.([]CategoryTotal)
		if !ok {
			t.Fatalf("unexpected data type %T", report.Data)
		}
		if len(totals) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(totals))
		}
		// Descending by amount.
		if totals[0].Category != "Dining" || totals[0].Amount != 20.0 {
			t.Errorf("expected Dining 20.0 first, got %+v", totals[0])
		}
		if totals[1].Category != "Movies" || totals[1].Amount != 10.0 {
			t.Errorf("expected Movies 10.0 second, got %+v", totals[1])
		}
	})

	t.Run("skips_zero_and_missing_costs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		user := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, user.ID)
		node := testutil.CreateTestNode(t, db, group.ID, "Dining")
		free := testutil.CreateTestEvent(t, db, &node.ID, testutil.EventOpts{CostValue: floatPtr(0)})
		unpriced := testutil.CreateTestEvent(t, db, &node.ID, testutil.EventOpts{})

		report, err := svc.ComputeReport(models.AnalysisSpendingByCategory, []uint{free.ID, unpriced.ID})
		testutil.AssertNoError(t, err)
		totals := report.Data.([]CategoryTotal)
		if len(totals) != 0 {
			t.Errorf("costless events should produce no rows, got %+v", totals)
		}
	})

	t.Run("orphan_costed_event_is_uncategorized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		event := testutil.CreateTestEvent(t, db, nil, testutil.EventOpts{CostValue: floatPtr(15.0)})

		report, err := svc.ComputeReport(models.AnalysisSpendingByCategory, []uint{event.ID})
		testutil.AssertNoError(t, err)
		totals := report.Data.([]CategoryTotal)
		if len(totals) != 1 || totals[0].Category != "Uncategorized" {
			t.Errorf("expected an Uncategorized bucket, got %+v", totals)
		}
	})

	t.Run("rounds_to_cents", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		user := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, user.ID)
		node := testutil.CreateTestNode(t, db, group.ID, "Dining")
		e1 := testutil.CreateTestEvent(t, db, &node.ID, testutil.EventOpts{CostValue: floatPtr(0.1)})
		e2 := testutil.CreateTestEvent(t, db, &node.ID, testutil.EventOpts{CostValue: floatPtr(0.2)})

		report, err := svc.ComputeReport(models.AnalysisSpendingByCategory, []uint{e1.ID, e2.ID})
		testutil.AssertNoError(t, err)
		totals := report.Data.([]CategoryTotal)
		if len(totals) != 1 || totals[0].Amount != 0.3 {
			t.Errorf("expected 0.30 after rounding, got %+v", totals)
		}
	})

	t.Run("empty_set", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)

		report, err := svc.ComputeReport(models.AnalysisSpendingByCategory, []uint{})
		testutil.AssertNoError(t, err)
		if report.Title != "Spending by Category" {
			t.Errorf("title must be stable on empty data, got %q", report.Title)
		}
		if len(report.Data.([]CategoryTotal)) != 0 {
			t.Errorf("expected no rows, got %+v", report.Data)
		}
	})
}

func TestLocationHeatmap(t *testing.T) {
	t.Run("collects_parsable_coordinates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		good := testutil.CreateTestEvent(t, db, nil, testutil.EventOpts{Coordinates: "51.5074,-0.1278"})
		bad := testutil.CreateTestEvent(t, db, nil, testutil.EventOpts{Coordinates: "somewhere nice"})
		empty := testutil.CreateTestEvent(t, db, nil, testutil.EventOpts{})

		report, err := svc.ComputeReport(models.AnalysisLocationHeatmap, []uint{good.ID, bad.ID, empty.ID})
		testutil.AssertNoError(t, err)
		coords := report.Data.([]Coordinate)
		if len(coords) != 1 {
			t.Fatalf("expected 1 coordinate, got %d", len(coords))
		}
		if coords[0].Lat != 51.5074 || coords[0].Lng != -0.1278 {
			t.Errorf("unexpected coordinate %+v", coords[0])
		}
	})
}

func TestRSVPDistribution(t *testing.T) {
	t.Run("counts_by_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		event := testutil.CreateTestEvent(t, db, nil, testutil.EventOpts{})
		u1 := testutil.CreateTestUser(t, db)
		u2 := testutil.CreateTestUser(t, db)
		u3 := testutil.CreateTestUser(t, db)
		testutil.CreateTestRSVP(t, db, u1.ID, event.ID, models.RSVPStatusAttending)
		testutil.CreateTestRSVP(t, db, u2.ID, event.ID, models.RSVPStatusAttending)
		testutil.CreateTestRSVP(t, db, u3.ID, event.ID, models.RSVPStatusDeclined)

		report, err := svc.ComputeReport(models.AnalysisRSVPDistribution, []uint{event.ID})
		testutil.AssertNoError(t, err)
		counts := report.Data.([]StatusCount)
		if len(counts) != 3 {
			t.Fatalf("expected all three statuses, got %d", len(counts))
		}
		want := map[models.RSVPStatus]int64{
			models.RSVPStatusAttending: 2,
			models.RSVPStatusMaybe:     0,
			models.RSVPStatusDeclined:  1,
		}
		for _, c := range counts {
			if want[c.Status] != c.Count {
				t.Errorf("status %s: expected %d, got %d", c.Status, want[c.Status], c.Count)
			}
		}
	})
}

func TestBusyPeriods(t *testing.T) {
	t.Run("buckets_by_month_chronologically", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		jan1 := testutil.CreateTestEvent(t, db, nil, testutil.EventOpts{Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)})
		jan2 := testutil.CreateTestEvent(t, db, nil, testutil.EventOpts{Date: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)})
		mar := testutil.CreateTestEvent(t, db, nil, testutil.EventOpts{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)})

		report, err := svc.ComputeReport(models.AnalysisBusyPeriods, []uint{jan1.ID, jan2.ID, mar.ID})
		testutil.AssertNoError(t, err)
		months := report.Data.([]MonthCount)
		if len(months) != 2 {
			t.Fatalf("expected 2 months, got %d", len(months))
		}
		if months[0].Month != "2026-01" || months[0].Count != 2 {
			t.Errorf("expected 2026-01 x2 first, got %+v", months[0])
		}
		if months[1].Month != "2026-03" || months[1].Count != 1 {
			t.Errorf("expected 2026-03 x1 second, got %+v", months[1])
		}
	})
}

func TestComputeReportUnknownType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAnalyticsService(db)

	_, err := svc.ComputeReport("word-cloud", []uint{})
	testutil.AssertAppError(t, err, "INVALID_ANALYSIS_TYPE")
}
