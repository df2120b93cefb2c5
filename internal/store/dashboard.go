package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
)

// dashboardStore persists each user's whole dashboard collection as a single
// document at dashboards/{uid}. Saves replace the full document so the stored
// state is always one atomic snapshot.
type dashboardStore struct {
	client *firestore.Client
}

func NewDashboardStore(client *firestore.Client) *dashboardStore {
	return &dashboardStore{client: client}
}

func (s *dashboardStore) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection("dashboards").Doc(uid)
}

// Load returns the user's collection. found is false when the user has never
// saved one; that is not an error.
func (s *dashboardStore) Load(ctx context.Context, uid string) (*models.DashboardCollection, bool, error) {
	doc, err := s.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, errs.NewDatabaseError("read", "failed to load dashboard collection", err)
	}
	var c models.DashboardCollection
	if err := doc.DataTo(&c); err != nil {
		return nil, false, errs.NewDatabaseError("read", "failed to parse dashboard collection", err)
	}
	return &c, true, nil
}

// Save replaces the stored collection with the given snapshot.
func (s *dashboardStore) Save(ctx context.Context, uid string, c *models.DashboardCollection) error {
	if _, err := s.doc(uid).Set(ctx, c); err != nil {
		return errs.NewDatabaseError("save", "failed to save dashboard collection", err)
	}
	return nil
}
