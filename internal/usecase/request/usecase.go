package request

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lab-inventory/internal/domain/apperr"
	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/inventory"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/request"
	"lab-inventory/internal/domain/uow"
	"lab-inventory/internal/domain/user"
	"lab-inventory/internal/metrics"
	"lab-inventory/pkg/id"
	"lab-inventory/pkg/retry"
)

type Usecase struct {
	uow    uow.UnitOfWork
	notify inventory.Notifier
	retry  retry.Policy
	now    func() time.Time
	log    zerolog.Logger
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }
func WithRetry(p retry.Policy) Option { return func(u *Usecase) { u.retry = p } }
func WithNotifier(n inventory.Notifier) Option { return func(u *Usecase) { u.notify = n } }
func WithLogger(l zerolog.Logger) Option { return func(u *Usecase) { u.log = l } }

func NewUsecase(tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		uow:   tx,
		retry: retry.Default,
		now:   func() time.Time { return time.Now().UTC() },
		log:   zerolog.Nop(),
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Submit files a pending request for an item in the requester's department.
func (u *Usecase) Submit(ctx context.Context, actor user.Actor, in SubmitInput) (*request.Request, error) {
	if strings.TrimSpace(in.ItemID) == "" || !in.Priority.Valid() {
		return nil, request.ErrInvalidPayload
	}
	if in.RequestedQty <= 0 {
		return nil, request.ErrInvalidQuantity
	}

	var out *request.Request
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		requester, err := r.Users.GetByID(ctx, actor.ID)
		if err != nil {
			return err
		}
		if !requester.IsActive {
			return user.ErrInactive
		}
		if requester.Role != user.RoleStaff {
			return request.ErrStaffOnly
		}

		allowed, err := permission.Granted(ctx, r.Permissions, requester.Department, permission.CapRequest)
		if err != nil {
			return err
		}
		if !allowed {
			return request.ErrPermissionDenied
		}

		item, err := r.Items.GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item.Department != requester.Department {
			return request.ErrCrossDepartment
		}

		now := u.now()
		req := &request.Request{
			ID:            id.New(id.PrefixRequest),
			RequesterID:   requester.ID,
			RequesterName: requester.Name,
			Department:    requester.Department,
			ItemID:        item.ID,
			ItemName:      item.Name,
			RequestedQty:  in.RequestedQty,
			Unit:          item.Unit,
			Status:        request.StatusPending,
			Priority:      in.Priority,
			RequestDate:   now,
			ReviewNote:    optional(in.Note),
		}
		if err := r.Requests.Create(ctx, req); err != nil {
			return err
		}
		if err := r.Audit.Append(ctx, audit.New(requester.ID, requester.Name, audit.ActionRequestSubmitted, req.ID,
			fmt.Sprintf("%s: %d %s", item.Name, in.RequestedQty, item.Unit), now)); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordSubmitted()
	return out, nil
}

// Review moves a pending request to a terminal state and releases stock in
// the same transaction. Lock contention is retried with backoff; every other
// failure is returned as is.
func (u *Usecase) Review(ctx context.Context, reviewer user.Actor, in ReviewInput) (*request.Request, error) {
	if !reviewer.IsAdmin() {
		return nil, user.ErrAdminOnly
	}
	if !in.Decision.Valid() {
		return nil, request.ErrInvalidDecision
	}
	if in.ApprovedQty != nil && *in.ApprovedQty < 0 {
		return nil, request.ErrInvalidQuantity
	}

	var (
		out   *request.Request
		alert *inventory.LowStockAlert
	)
	err := retry.OnContention(ctx, u.retry, func() error {
		alert = nil
		err := u.uow.WithinRequestTx(ctx, in.RequestID, func(r uow.Repos, req *request.Request) error {
			res, a, err := u.review(ctx, r, reviewer, req, in)
			if err != nil {
				return err
			}
			out, alert = res, a
			return nil
		})
		if errors.Is(err, apperr.ErrContention) {
			metrics.RecordContention("review")
			u.log.Warn().Str("request_id", in.RequestID).Msg("review lock contention")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordReview(string(out.Status), released(out))
	if alert != nil {
		u.publish(ctx, *alert)
	}
	return out, nil
}

func (u *Usecase) review(ctx context.Context, r uow.Repos, reviewer user.Actor, req *request.Request, in ReviewInput) (*request.Request, *inventory.LowStockAlert, error) {
	if req.Status.Terminal() {
		return nil, nil, request.ErrAlreadyReviewed
	}
	if req.RequesterID == reviewer.ID {
		return nil, nil, request.ErrSelfReview
	}

	item, err := r.Items.GetByIDForUpdate(ctx, req.ItemID)
	if errors.Is(err, inventory.ErrNotFound) {
		return nil, nil, inventory.ErrItemMissing
	}
	if err != nil {
		return nil, nil, err
	}

	outcome := request.Resolve(req.RequestedQty, item.CurrentStock, in.Decision, in.ApprovedQty)
	now := u.now()

	req.Status = outcome.Status
	req.ApprovedQty = outcome.ApprovedQty
	req.ReviewedBy = &reviewer.Name
	req.ReviewedDate = &now
	if note := optional(in.Note); note != nil {
		req.ReviewNote = note
	}
	if err := r.Requests.Save(ctx, req); err != nil {
		return nil, nil, err
	}

	var alert *inventory.LowStockAlert
	if qty := outcome.Released(); qty > 0 {
		crossed := item.Release(qty, now)
		if err := r.Items.Save(ctx, item); err != nil {
			return nil, nil, err
		}
		if crossed {
			if err := r.Audit.Append(ctx, audit.LowStock(user.System.ID, user.System.Name, item.ID, item.Name, now)); err != nil {
				return nil, nil, err
			}
			a := item.Alert()
			alert = &a
		}
	}

	entry := audit.New(reviewer.ID, reviewer.Name, reviewAction(outcome.Status), req.ID, reviewDetails(req, in.Note), now)
	if err := r.Audit.Append(ctx, entry); err != nil {
		return nil, nil, err
	}
	return req, alert, nil
}

func (u *Usecase) publish(ctx context.Context, a inventory.LowStockAlert) {
	metrics.RecordLowStock(a.Department)
	if u.notify == nil {
		return
	}
	if err := u.notify.NotifyLowStock(ctx, a); err != nil {
		u.log.Warn().Err(err).Str("item_id", a.ItemID).Msg("low stock notify failed")
	}
}

func reviewAction(s request.Status) audit.Action {
	switch s {
	case request.StatusApproved:
		return audit.ActionRequestApproved
	case request.StatusPartiallyApproved:
		return audit.ActionRequestPartiallyApproved
	}
	return audit.ActionRequestRejected
}

func reviewDetails(req *request.Request, note string) string {
	if req.Status == request.StatusRejected {
		reason := strings.TrimSpace(note)
		if reason == "" {
			reason = "No reason provided"
		}
		return fmt.Sprintf("Rejected %s. %s", req.ItemName, reason)
	}
	return fmt.Sprintf("Approved %d/%d %s for %s", *req.ApprovedQty, req.RequestedQty, req.Unit, req.ItemName)
}

func released(req *request.Request) int {
	if req.ApprovedQty == nil {
		return 0
	}
	return *req.ApprovedQty
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
