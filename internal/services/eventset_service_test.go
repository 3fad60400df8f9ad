package services

import (
	"testing"
	"time"

	"gatherly/internal/models"
	"gatherly/internal/testutil"
)

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestBuildEventSet(t *testing.T) {
	t.Run("attending_and_member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		rsvps := NewRSVPService(db)
		svc := NewEventSetService(db, rsvps)
		user := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, user.ID)
		node := testutil.CreateTestNode(t, db, group.ID, "")
		event := testutil.CreateTestEvent(t, db, &node.ID, testutil.EventOpts{})
		testutil.CreateTestRSVP(t, db, user.ID, event.ID, models.RSVPStatusAttending)

		ids, err := svc.BuildEventSet(user.ID, &EffectiveConfig{TimePeriod: models.TimePeriodAllTime})
		testutil.AssertNoError(t, err)
		if !containsID(ids, event.ID) {
			t.Errorf("expected event %d in set, got %v", event.ID, ids)
		}
	})

	t.Run("no_attending_rows_short_circuits", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		rsvps := NewRSVPService(db)
		svc := NewEventSetService(db, rsvps)
		user := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, user.ID)
		node := testutil.CreateTestNode(t, db, group.ID, "")
		event := testutil.CreateTestEvent(t, db, &node.ID, testutil.EventOpts{})
		testutil.CreateTestRSVP(t, db, user.ID, event.ID, models.RSVPStatusMaybe)

		ids, err := svc.BuildEventSet(user.ID, &EffectiveConfig{TimePeriod: models.TimePeriodAllTime})
		testutil.AssertNoError(t, err)
		if len(ids) != 0 {
			t.Errorf("maybe responses should not enter the set, got %v", ids)
		}
	})

	t.Run("invited_without_rsvp_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		rsvps := NewRSVPService(db)
		svc := NewEventSetService(db, rsvps)
		owner := testutil.CreateTestUser(t, db)
		guest := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner.ID)
		node := testutil.CreateTestNode(t, db, group.ID, "")
		event := testutil.CreateTestEvent(t, db, &node.ID, testutil.EventOpts{})
		testutil.InviteTestGuest(t, db, event.ID, guest.Email)

		ids, err := svc.BuildEventSet(guest.ID, &EffectiveConfig{TimePeriod: models.TimePeriodAllTime})
		testutil.AssertNoError(t, err)
		if len(ids) != 0 {
			t.Errorf("invitation without attending RSVP should yield nothing, got %v", ids)
		}
	})

	t.Run("invited_attending_included", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		rsvps := NewRSVPService(db)
		svc := NewEventSetService(db, rsvps)
		guest := testutil.CreateTestUser(t, db)
		event := testutil.CreateTestEvent(t, db, nil, testutil.EventOpts{})
		testutil.InviteTestGuest(t, db, event.ID, guest.Email)
		testutil.CreateTestRSVP(t, db, guest.ID, event.ID, models.RSVPStatusAttending)

		ids, err := svc.BuildEventSet(guest.ID, &EffectiveConfig{TimePeriod: models.TimePeriodAllTime})
		testutil.AssertNoError(t, err)
		if !containsID(ids, event.ID) {
			t.Errorf("expected invited orphan event in set, got %v", ids)
		}
	})

	t.Run("attending_without_access_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		rsvps := NewRSVPService(db)
		svc := NewEventSetService(db, rsvps)
		owner := testutil.CreateTestUser(t, db)
		outsider := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner.ID)
		node := testutil.CreateTestNode(t, db, group.ID, "")
		event := testutil.CreateTestEvent(t, db, &node.ID, testutil.EventOpts{})
		// A stale ledger row with no membership or invitation behind it.
		testutil.CreateTestRSVP(t, db, outsider.ID, event.ID, models.RSVPStatusAttending)

		ids, err := svc.BuildEventSet(outsider.ID, &EffectiveConfig{TimePeriod: models.TimePeriodAllTime})
		testutil.AssertNoError(t, err)
		if len(ids) != 0 {
			t.Errorf("attendance without visibility should not count, got %v", ids)
		}
	})

	t.Run("group_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		rsvps := NewRSVPService(db)
		svc := NewEventSetService(db, rsvps)
		user := testutil.CreateTestUser(t, db)
		groupA := testutil.CreateTestGroup(t, db, user.ID)
		groupB := testutil.CreateTestGroup(t, db, user.ID)
		nodeA := testutil.CreateTestNode(t, db, groupA.ID, "")
		nodeB := testutil.CreateTestNode(t, db, groupB.ID, "")
		eventA := testutil.CreateTestEvent(t, db, &nodeA.ID, testutil.EventOpts{})
		eventB := testutil.CreateTestEvent(t, db, &nodeB.ID, testutil.EventOpts{})
		testutil.CreateTestRSVP(t, db, user.ID, eventA.ID, models.RSVPStatusAttending)
		testutil.CreateTestRSVP(t, db, user.ID, eventB.ID, models.RSVPStatusAttending)

		ids, err := svc.BuildEventSet(user.ID, &EffectiveConfig{
			TimePeriod: models.TimePeriodAllTime,
			GroupID:    &groupA.ID,
		})
		testutil.AssertNoError(t, err)
		if !containsID(ids, eventA.ID) || containsID(ids, eventB.ID) {
			t.Errorf("expected only group A events, got %v", ids)
		}
	})

	t.Run("group_filter_ignored_for_non_member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		rsvps := NewRSVPService(db)
		svc := NewEventSetService(db, rsvps)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		myGroup := testutil.CreateTestGroup(t, db, user.ID)
		theirGroup := testutil.CreateTestGroup(t, db, other.ID)
		node := testutil.CreateTestNode(t, db, myGroup.ID, "")
		event := testutil.CreateTestEvent(t, db, &node.ID, testutil.EventOpts{})
		testutil.CreateTestRSVP(t, db, user.ID, event.ID, models.RSVPStatusAttending)

		// Filtering by a group the user does not belong to widens back to all.
		ids, err := svc.BuildEventSet(user.ID, &EffectiveConfig{
			TimePeriod: models.TimePeriodAllTime,
			GroupID:    &theirGroup.ID,
		})
		testutil.AssertNoError(t, err)
		if !containsID(ids, event.ID) {
			t.Errorf("expected the filter to be dropped, got %v", ids)
		}
	})

	t.Run("date_range_monotonicity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		rsvps := NewRSVPService(db)
		svc := NewEventSetService(db, rsvps)
		user := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, user.ID)
		node := testutil.CreateTestNode(t, db, group.ID, "")
		older := testutil.CreateTestEvent(t, db, &node.ID, testutil.EventOpts{
			Date: time.Date(2025, 2, 10, 18, 0, 0, 0, time.UTC),
		})
		newer := testutil.CreateTestEvent(t, db, &node.ID, testutil.EventOpts{
			Date: time.Date(2026, 4, 5, 18, 0, 0, 0, time.UTC),
		})
		testutil.CreateTestRSVP(t, db, user.ID, older.ID, models.RSVPStatusAttending)
		testutil.CreateTestRSVP(t, db, user.ID, newer.ID, models.RSVPStatusAttending)

		all, err := svc.BuildEventSet(user.ID, &EffectiveConfig{TimePeriod: models.TimePeriodAllTime})
		testutil.AssertNoError(t, err)

		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		narrowed, err := svc.BuildEventSet(user.ID, &EffectiveConfig{
			TimePeriod: models.TimePeriodCustom,
			StartDate:  &start,
		})
		testutil.AssertNoError(t, err)

		if len(narrowed) >= len(all) {
			t.Errorf("narrowing the window should shrink the set: all=%v narrowed=%v", all, narrowed)
		}
		for _, id := range narrowed {
			if !containsID(all, id) {
				t.Errorf("narrowed set must be a subset, %d not in %v", id, all)
			}
		}
		if containsID(narrowed, older.ID) {
			t.Error("event before the window should be excluded")
		}
	})
}
