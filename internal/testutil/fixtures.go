package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gatherly/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique
// username and email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: fmt.Sprintf("testuser%d", nextID()),
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestGroup creates a group owned by the given user, with the
// owner's membership row.
func CreateTestGroup(t *testing.T, db *gorm.DB, ownerID uint) *models.Group {
	t.Helper()

	group := &models.Group{
		Name:    fmt.Sprintf("Test Group %d", nextID()),
		OwnerID: ownerID,
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	AddTestMember(t, db, group.ID, ownerID)
	return group
}

// AddTestMember adds a user to a group.
func AddTestMember(t *testing.T, db *gorm.DB, groupID, userID uint) *models.GroupMember {
	t.Helper()

	member := &models.GroupMember{
		UserID:  userID,
		GroupID: groupID,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test group member: %v", err)
	}
	return member
}

// CreateTestNode creates a node (category) in the given group.
func CreateTestNode(t *testing.T, db *gorm.DB, groupID uint, label string) *models.Node {
	t.Helper()

	if label == "" {
		label = fmt.Sprintf("Test Node %d", nextID())
	}
	node := &models.Node{
		Label:   label,
		GroupID: groupID,
	}
	if err := db.Create(node).Error; err != nil {
		t.Fatalf("failed to create test node: %v", err)
	}
	return node
}

// EventOpts carries optional fields when creating a test event.
type EventOpts struct {
	Date        time.Time
	CostValue   *float64
	Coordinates string
	CreatorID   *uint
}

// CreateTestEvent creates an event attached to the given node (nil for an
// invitation-only orphan event).
func CreateTestEvent(t *testing.T, db *gorm.DB, nodeID *uint, opts EventOpts) *models.Event {
	t.Helper()

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}
	event := &models.Event{
		Title:               fmt.Sprintf("Test Event %d", nextID()),
		Date:                date,
		LocationCoordinates: opts.Coordinates,
		CostValue:           opts.CostValue,
		NodeID:              nodeID,
		CreatorID:           opts.CreatorID,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateTestRSVP records an attendance response for the given user and event.
func CreateTestRSVP(t *testing.T, db *gorm.DB, userID, eventID uint, status models.RSVPStatus) *models.EventRSVP {
	t.Helper()

	rsvp := &models.EventRSVP{
		UserID:      userID,
		EventID:     eventID,
		Status:      status,
		RespondedAt: time.Now(),
	}
	if err := db.Create(rsvp).Error; err != nil {
		t.Fatalf("failed to create test RSVP: %v", err)
	}
	return rsvp
}

// InviteTestGuest invites an email address to an event.
func InviteTestGuest(t *testing.T, db *gorm.DB, eventID uint, email string) *models.InvitedGuest {
	t.Helper()

	guest := &models.InvitedGuest{
		EventID: eventID,
		Email:   email,
	}
	if err := db.Create(guest).Error; err != nil {
		t.Fatalf("failed to create test invited guest: %v", err)
	}
	return guest
}

// CreateTestPanel creates an insight panel with the given configuration.
func CreateTestPanel(t *testing.T, db *gorm.DB, userID uint, analysisType models.AnalysisType, config models.PanelConfig) *models.InsightPanel {
	t.Helper()

	panel := &models.InsightPanel{
		UserID:        userID,
		AnalysisType:  analysisType,
		Title:         fmt.Sprintf("Test Panel %d", nextID()),
		Configuration: config,
	}
	if err := db.Create(panel).Error; err != nil {
		t.Fatalf("failed to create test panel: %v", err)
	}
	return panel
}
