package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnshRaj112/esangrahan-backend/internal/apperrors"
	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"github.com/AnshRaj112/esangrahan-backend/internal/query"
	"github.com/AnshRaj112/esangrahan-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultAuditLimit is how many audit entries the admin audit view returns.
const DefaultAuditLimit = 100

// AdminListing is the admin list of collection points with collection-wide
// status counts.
type AdminListing struct {
	Points []models.PopulatedCollectionPoint
	Stats  models.StatusStats
}

// AdminService serves the review and reporting endpoints. It never checks
// ownership.
type AdminService struct {
	points CollectionPointStore
	users  UserStore
	audit  AuditLog
	log    *zap.Logger
}

func NewAdminService(points CollectionPointStore, users UserStore, audit AuditLog, log *zap.Logger) *AdminService {
	if audit == nil {
		audit = NopAuditLog{}
	}
	return &AdminService{points: points, users: users, audit: audit, log: log}
}

// ListAll returns the points matching status and search, newest first, each
// with its owner, plus status counts over the whole collection.
func (s *AdminService) ListAll(ctx context.Context, status, search string) (*AdminListing, error) {
	filter := query.New().
		StatusEquals(status).
		SearchAny(search, query.AdminSearchFields...).
		Build()

	var (
		points []models.CollectionPoint
		stats  models.StatusStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		points, err = s.points.Find(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.statusStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	populated, err := s.populateOwners(ctx, points)
	if err != nil {
		return nil, err
	}
	return &AdminListing{Points: populated, Stats: stats}, nil
}

// Get returns any point with its owner.
func (s *AdminService) Get(ctx context.Context, id string) (*models.PopulatedCollectionPoint, error) {
	cp, err := findPoint(ctx, s.points, id)
	if err != nil {
		return nil, err
	}
	populated, err := s.populateOwners(ctx, []models.CollectionPoint{*cp})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// UpdateStatus moves a point to status and records the change.
func (s *AdminService) UpdateStatus(ctx context.Context, admin *models.Admin, id, status string) (*models.CollectionPoint, error) {
	next := models.Status(status)
	if !next.Valid() {
		return nil, apperrors.New(apperrors.Validation, "Invalid status. Must be pending, approved, or rejected")
	}

	before, err := findPoint(ctx, s.points, id)
	if err != nil {
		return nil, err
	}
	cp, err := s.points.SetStatus(ctx, id, next)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.NotFound, msgPointNotFound, err)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("collection point status changed",
		zap.String("collection_point_id", cp.ID.Hex()),
		zap.String("from", string(before.Status)),
		zap.String("to", string(next)),
		zap.String("admin_id", admin.ID.Hex()),
	)
	s.record(ctx, admin, models.AuditStatusChanged, cp.ID, fmt.Sprintf("%s -> %s", before.Status, next))
	return cp, nil
}

// Delete removes any point.
func (s *AdminService) Delete(ctx context.Context, admin *models.Admin, id string) error {
	cp, err := findPoint(ctx, s.points, id)
	if err != nil {
		return err
	}
	if err := s.points.Delete(ctx, cp.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.Wrap(apperrors.NotFound, msgPointNotFound, err)
		}
		return err
	}

	s.log.Info("collection point deleted by admin",
		zap.String("collection_point_id", cp.ID.Hex()),
		zap.String("admin_id", admin.ID.Hex()),
	)
	s.record(ctx, admin, models.AuditPointDeleted, cp.ID, cp.Name)
	return nil
}

// DashboardStats runs the independent counts concurrently. The figures are
// not taken from a single snapshot.
func (s *AdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.users.Count(gctx)
		out.TotalUsers = n
		return err
	})
	g.Go(func() error {
		n, err := s.points.Count(gctx, query.New().Build())
		out.TotalCollectionPoints = n
		return err
	})
	countStatus := func(status models.Status, dst *int64) func() error {
		return func() error {
			n, err := s.points.Count(gctx, query.New().StatusEquals(string(status)).Build())
			*dst = n
			return err
		}
	}
	g.Go(countStatus(models.StatusPending, &out.PendingPoints))
	g.Go(countStatus(models.StatusApproved, &out.ApprovedPoints))
	g.Go(countStatus(models.StatusRejected, &out.RejectedPoints))
	g.Go(func() error {
		groups, err := s.points.GroupCount(gctx, query.FieldWasteType)
		out.CollectionPointsByType = groups
		return err
	})
	g.Go(func() error {
		groups, err := s.points.GroupCount(gctx, query.FieldCondition)
		out.CollectionPointsByCondition = groups
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns every user without password digests.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// ListAudit returns the most recent admin actions.
func (s *AdminService) ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 || limit > DefaultAuditLimit {
		limit = DefaultAuditLimit
	}
	return s.audit.Recent(ctx, limit)
}

func (s *AdminService) statusStats(ctx context.Context) (models.StatusStats, error) {
	var stats models.StatusStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.points.Count(gctx, query.New().Build())
		stats.Total = n
		return err
	})
	for status, dst := range map[models.Status]*int64{
		models.StatusPending:  &stats.Pending,
		models.StatusApproved: &stats.Approved,
		models.StatusRejected: &stats.Rejected,
	} {
		status, dst := status, dst
		g.Go(func() error {
			n, err := s.points.Count(gctx, query.New().StatusEquals(string(status)).Build())
			*dst = n
			return err
		})
	}
	return stats, g.Wait()
}

// populateOwners attaches each point's owner using one batched lookup.
// Points whose owner no longer exists get a nil owner.
func (s *AdminService) populateOwners(ctx context.Context, points []models.CollectionPoint) ([]models.PopulatedCollectionPoint, error) {
	seen := make(map[primitive.ObjectID]bool, len(points))
	ids := make([]primitive.ObjectID, 0, len(points))
	for _, cp := range points {
		if !seen[cp.UserID] {
			seen[cp.UserID] = true
			ids = append(ids, cp.UserID)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	owners := make(map[primitive.ObjectID]*models.OwnerSummary, len(users))
	for _, u := range users {
		owners[u.ID] = &models.OwnerSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}

	out := make([]models.PopulatedCollectionPoint, len(points))
	for i, cp := range points {
		out[i] = models.PopulatedCollectionPoint{CollectionPoint: cp, Owner: owners[cp.UserID]}
	}
	return out, nil
}

// record writes an audit entry. A failed write is logged and does not fail
// the admin action.
func (s *AdminService) record(ctx context.Context, admin *models.Admin, action models.AuditAction, target primitive.ObjectID, detail string) {
	e := &models.AuditEntry{
		AdminID:    admin.ID.Hex(),
		AdminEmail: admin.Email,
		Action:     action,
		TargetID:   target.Hex(),
		Detail:     detail,
	}
	if err := s.audit.Record(ctx, e); err != nil {
		s.log.Warn("audit log write failed", zap.String("action", string(action)), zap.Error(err))
	}
}
