package store

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/covid-tracker/internal/errs"
	"github.com/GregMSThompson/covid-tracker/internal/models"
	"github.com/GregMSThompson/covid-tracker/pkg/logger"
)

const (
	usersCollection = "users"
	viewsCollection = "chart_views"
	viewCountAlias  = "views"
)

// viewStore persists saved chart views under users/{uid}/chart_views,
// one document per view keyed by its id.
type viewStore struct {
	client *firestore.Client
	now    func() time.Time
}

func NewViewStore(client *firestore.Client) *viewStore {
	return &viewStore{client: client, now: time.Now}
}

func (s *viewStore) views(uid string) *firestore.CollectionRef {
	return s.client.Collection(usersCollection).Doc(uid).Collection(viewsCollection)
}

func (s *viewStore) Create(ctx context.Context, uid string, v *models.ChartView) error {
	stamp := s.now().UTC()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = stamp
	}
	v.UpdatedAt = stamp

	if _, err := s.views(uid).Doc(v.ViewID).Create(ctx, v); err != nil {
		return viewError("create", v.ViewID, err)
	}
	return nil
}

func (s *viewStore) Get(ctx context.Context, uid, viewID string) (*models.ChartView, error) {
	snap, err := s.views(uid).Doc(viewID).Get(ctx)
	if err != nil {
		return nil, viewError("read", viewID, err)
	}
	return decodeView(snap)
}

// List returns the user's views by ascending position. A non-empty regionID
// restricts the result to views of that region.
func (s *viewStore) List(ctx context.Context, uid, regionID string) ([]*models.ChartView, error) {
	q := s.views(uid).Query
	if regionID != "" {
		q = q.Where("regionId", "==", regionID)
	}
	snaps, err := q.OrderBy("position", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list chart views", err)
	}

	out := make([]*models.ChartView, 0, len(snaps))
	for _, snap := range snaps {
		v, err := decodeView(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Update rewrites the editable selection fields of an existing view. Position
// and creation time are only changed through their own operations.
func (s *viewStore) Update(ctx context.Context, uid string, v *models.ChartView) error {
	v.UpdatedAt = s.now().UTC()
	_, err := s.views(uid).Doc(v.ViewID).Update(ctx, []firestore.Update{
		{Path: "name", Value: v.Name},
		{Path: "regionId", Value: v.RegionID},
		{Path: "metric", Value: v.Metric},
		{Path: "window", Value: v.Window},
		{Path: "updatedAt", Value: v.UpdatedAt},
	})
	if err != nil {
		return viewError("update", v.ViewID, err)
	}
	return nil
}

func (s *viewStore) Delete(ctx context.Context, uid, viewID string) error {
	if _, err := s.views(uid).Doc(viewID).Delete(ctx, firestore.Exists); err != nil {
		return viewError("delete", viewID, err)
	}
	return nil
}

// Count runs a server-side count aggregation over the user's views.
func (s *viewStore) Count(ctx context.Context, uid string) (int, error) {
	res, err := s.views(uid).NewAggregationQuery().WithCount(viewCountAlias).Get(ctx)
	if err != nil {
		return 0, errs.NewDatabaseError("read", "failed to count chart views", err)
	}
	val, ok := res[viewCountAlias].(*firestorepb.Value)
	if !ok {
		return 0, errs.NewDatabaseError("read", "unexpected count result", nil)
	}
	return int(val.GetIntegerValue()), nil
}

// BulkUpdatePositions applies a reorder atomically. Every id must name an
// existing view of the user, otherwise nothing is written.
func (s *viewStore) BulkUpdatePositions(ctx context.Context, uid string, positions map[string]int) error {
	if len(positions) == 0 {
		return nil
	}
	coll := s.views(uid)
	refs := make([]*firestore.DocumentRef, 0, len(positions))
	for viewID := range positions {
		refs = append(refs, coll.Doc(viewID))
	}

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snaps, err := tx.GetAll(refs)
		if err != nil {
			return err
		}
		for _, snap := range snaps {
			if !snap.Exists() {
				return errs.NewNotFoundError("chart view not found: " + snap.Ref.ID)
			}
		}
		stamp := s.now().UTC()
		for _, ref := range refs {
			if err := tx.Update(ref, []firestore.Update{
				{Path: "position", Value: positions[ref.ID]},
				{Path: "updatedAt", Value: stamp},
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		return nil
	}

	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		return nf
	}
	logger.FromContext(ctx).Error("chart view reorder failed", "uid", uid, "views", len(positions), "error", err)
	return errs.NewDatabaseError("update", "failed to reorder chart views", err)
}

func decodeView(snap *firestore.DocumentSnapshot) (*models.ChartView, error) {
	var v models.ChartView
	if err := snap.DataTo(&v); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to decode chart view "+snap.Ref.ID, err)
	}
	if v.ViewID == "" {
		v.ViewID = snap.Ref.ID
	}
	return &v, nil
}

// viewError maps Firestore status codes on a single view document to the
// domain error types.
func viewError(op, viewID string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return errs.NewNotFoundError("chart view not found: " + viewID)
	case codes.AlreadyExists:
		return errs.NewAlreadyExistsError("chart view already exists: " + viewID)
	default:
		return errs.NewDatabaseError(op, "chart view "+op+" failed", err)
	}
}
