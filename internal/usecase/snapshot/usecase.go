package snapshot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/request"
	domain "lab-inventory/internal/domain/snapshot"
	"lab-inventory/internal/domain/uow"
	"lab-inventory/internal/domain/user"
	"lab-inventory/internal/usecase/account"
)

const AppName = "lab-inventory"

type Usecase struct {
	uow       uow.UnitOfWork
	repo      domain.Repository
	passwords account.DefaultPasswords
	cost      int
	now       func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, repo domain.Repository, passwords account.DefaultPasswords) *Usecase {
	return &Usecase{
		uow:       tx,
		repo:      repo,
		passwords: passwords,
		cost:      bcrypt.DefaultCost,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Project reads committed state and filters it for viewer. Nothing is cached.
func (u *Usecase) Project(ctx context.Context, viewer user.Actor) (domain.Snapshot, error) {
	s, err := u.repo.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Project(*s, viewer), nil
}

func (u *Usecase) ExportBackup(ctx context.Context, actor user.Actor) (*domain.Backup, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminOnly
	}
	s, err := u.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Backup{ExportedAt: u.now(), App: AppName, Snapshot: *s}, nil
}

// Restore replaces the whole store with s in one transaction and records a
// single data_restore entry on top of the restored history. Password hashes
// are not part of a backup, so every restored account gets its role default.
func (u *Usecase) Restore(ctx context.Context, actor user.Actor, s domain.Snapshot) error {
	if !actor.IsAdmin() {
		return user.ErrAdminOnly
	}
	now := u.now()
	s, err := u.prepare(s, now)
	if err != nil {
		return err
	}

	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Snapshots.Replace(ctx, &s); err != nil {
			return err
		}
		return r.Audit.Append(ctx, audit.New(actor.ID, actor.Name, audit.ActionDataRestore, "system",
			"System data restored from backup", now))
	})
}

// Reset wipes every collection back to a baseline of the calling admin and
// that admin's department, then records one data_reset entry. The caller's
// account survives unchanged so the session stays usable.
func (u *Usecase) Reset(ctx context.Context, actor user.Actor) error {
	if !actor.IsAdmin() {
		return user.ErrAdminOnly
	}
	now := u.now()
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		me, err := r.Users.GetByIDForUpdate(ctx, actor.ID)
		if err != nil {
			return err
		}
		if !me.IsActiveAdmin() {
			return user.ErrInactive
		}
		baseline := domain.Snapshot{
			Users:       []user.User{*me},
			Permissions: []permission.DepartmentPermission{*permission.New(me.Department)},
		}
		if err := r.Snapshots.Replace(ctx, &baseline); err != nil {
			return err
		}
		return r.Audit.Append(ctx, audit.New(actor.ID, actor.Name, audit.ActionDataReset, "system",
			"System data reset to baseline", now))
	})
}

func invalid(format string, args ...any) error {
	return domain.ErrInvalidBackup.WithMessage(fmt.Sprintf(format, args...))
}

// prepare validates s and returns a normalised copy ready for insertion.
func (u *Usecase) prepare(s domain.Snapshot, now time.Time) (domain.Snapshot, error) {
	out := domain.Snapshot{
		Users:       append(s.Users[:0:0], s.Users...),
		Inventory:   append(s.Inventory[:0:0], s.Inventory...),
		Requests:    append(s.Requests[:0:0], s.Requests...),
		AuditLogs:   append(s.AuditLogs[:0:0], s.AuditLogs...),
		Permissions: append(s.Permissions[:0:0], s.Permissions...),
	}

	depts := make(map[string]struct{}, len(out.Permissions))
	for i, p := range out.Permissions {
		k := strings.ToLower(strings.TrimSpace(p.Department))
		if !permission.ValidDepartmentName(p.Department) {
			return domain.Snapshot{}, invalid("Invalid department at index %d.", i)
		}
		if _, dup := depts[k]; dup {
			return domain.Snapshot{}, invalid("Duplicate department %q.", p.Department)
		}
		depts[k] = struct{}{}
	}
	knownDept := func(d string) bool {
		_, ok := depts[strings.ToLower(strings.TrimSpace(d))]
		return ok
	}

	hashes := map[user.Role]string{}
	userIDs := make(map[string]struct{}, len(out.Users))
	emails := make(map[string]struct{}, len(out.Users))
	activeAdmin := false
	for i := range out.Users {
		us := &out.Users[i]
		if us.ID == "" || !us.Role.Valid() {
			return domain.Snapshot{}, invalid("Invalid user at index %d.", i)
		}
		us.Email = strings.ToLower(strings.TrimSpace(us.Email))
		if _, dup := userIDs[us.ID]; dup {
			return domain.Snapshot{}, invalid("Duplicate user id %q.", us.ID)
		}
		if _, dup := emails[us.Email]; dup {
			return domain.Snapshot{}, invalid("Duplicate user email %q.", us.Email)
		}
		if !knownDept(us.Department) {
			return domain.Snapshot{}, invalid("User %q references an unknown department.", us.ID)
		}
		userIDs[us.ID] = struct{}{}
		emails[us.Email] = struct{}{}
		activeAdmin = activeAdmin || us.IsActiveAdmin()
		h, ok := hashes[us.Role]
		if !ok {
			b, err := bcrypt.GenerateFromPassword([]byte(u.passwords.For(us.Role)), u.cost)
			if err != nil {
				return domain.Snapshot{}, fmt.Errorf("hash default password: %w", err)
			}
			h = string(b)
			hashes[us.Role] = h
		}
		us.PasswordHash = h
	}
	if !activeAdmin {
		return domain.Snapshot{}, domain.ErrNoActiveAdmin
	}

	items := make(map[string]struct{}, len(out.Inventory))
	for i := range out.Inventory {
		it := &out.Inventory[i]
		if it.ID == "" || it.CurrentStock < 0 || it.MinStock < 0 {
			return domain.Snapshot{}, invalid("Invalid inventory item at index %d.", i)
		}
		if _, dup := items[it.ID]; dup {
			return domain.Snapshot{}, invalid("Duplicate inventory id %q.", it.ID)
		}
		if !knownDept(it.Department) {
			return domain.Snapshot{}, invalid("Item %q references an unknown department.", it.ID)
		}
		if it.LastUpdated.IsZero() {
			it.LastUpdated = now
		}
		items[it.ID] = struct{}{}
	}

	requests := make(map[string]struct{}, len(out.Requests))
	for i := range out.Requests {
		rq := &out.Requests[i]
		if _, ok := items[rq.ItemID]; !ok || rq.ID == "" {
			return domain.Snapshot{}, invalid("Request at index %d references an unknown item.", i)
		}
		if _, dup := requests[rq.ID]; dup {
			return domain.Snapshot{}, invalid("Duplicate request id %q.", rq.ID)
		}
		if !consistentRequest(rq) {
			return domain.Snapshot{}, invalid("Request %q has an inconsistent status and quantity.", rq.ID)
		}
		requests[rq.ID] = struct{}{}
		if rq.RequestDate.IsZero() {
			rq.RequestDate = now
		}
	}
	for i := range out.AuditLogs {
		if out.AuditLogs[i].CreatedAt.IsZero() {
			out.AuditLogs[i].CreatedAt = now
		}
	}
	return out, nil
}

// consistentRequest holds when approvedQty is set exactly for the approving
// statuses and stays within 1..requestedQty.
func consistentRequest(rq *request.Request) bool {
	if rq.RequestedQty <= 0 {
		return false
	}
	switch rq.Status {
	case request.StatusPending, request.StatusRejected:
		return rq.ApprovedQty == nil
	case request.StatusApproved, request.StatusPartiallyApproved:
		return rq.ApprovedQty != nil && *rq.ApprovedQty >= 1 && *rq.ApprovedQty <= rq.RequestedQty
	default:
		return false
	}
}
