package account

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/uow"
	"lab-inventory/internal/domain/user"
	"lab-inventory/pkg/id"
	"lab-inventory/pkg/retry"
)

type Usecase struct {
	uow       uow.UnitOfWork
	passwords DefaultPasswords
	cost      int
	retry     retry.Policy
	now       func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, passwords DefaultPasswords) *Usecase {
	return &Usecase{
		uow:       tx,
		passwords: passwords,
		cost:      bcrypt.DefaultCost,
		retry:     retry.Default,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) CreateUser(ctx context.Context, actor user.Actor, in CreateUserInput) (*user.User, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminOnly
	}
	name := strings.TrimSpace(in.Name)
	addr, err := mail.ParseAddress(strings.TrimSpace(in.Email))
	if name == "" || len(name) > 120 || err != nil || !in.Role.Valid() {
		return nil, user.ErrInvalidUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.passwords.For(in.Role)), u.cost)
	if err != nil {
		return nil, fmt.Errorf("hash default password: %w", err)
	}

	var out *user.User
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		dept, err := department(ctx, r, in.Department)
		if err != nil {
			return err
		}
		_, err = r.Users.GetByEmail(ctx, addr.Address)
		switch {
		case err == nil:
			return user.ErrEmailExists
		case !errors.Is(err, user.ErrNotFound):
			return err
		}

		nu := &user.User{
			ID:           id.New(id.PrefixUser),
			Name:         name,
			Email:        strings.ToLower(addr.Address),
			Role:         in.Role,
			Department:   dept,
			IsActive:     true,
			PasswordHash: string(hash),
		}
		if err := r.Users.Create(ctx, nu); err != nil {
			return err
		}
		out = nu
		return r.Audit.Append(ctx, audit.New(actor.ID, actor.Name, audit.ActionUserCreated, nu.ID,
			fmt.Sprintf("%s (%s) created", nu.Name, nu.Role), u.now()))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUser edits name, department or role. Demoting the only active admin
// fails with ErrLastAdminProtected.
func (u *Usecase) UpdateUser(ctx context.Context, actor user.Actor, targetID string, in UpdateUserInput) (*user.User, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminOnly
	}
	if in.Empty() {
		return nil, user.ErrEmptyPatch
	}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" || len(n) > 120 {
			return nil, user.ErrInvalidUser
		}
		in.Name = &n
	}
	if in.Role != nil && !in.Role.Valid() {
		return nil, user.ErrInvalidUser
	}

	var out *user.User
	err := retry.OnContention(ctx, u.retry, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			admins, err := r.Users.LockActiveAdminIDs(ctx)
			if err != nil {
				return err
			}
			target, err := r.Users.GetByIDForUpdate(ctx, targetID)
			if err != nil {
				return err
			}
			if in.Department != nil {
				dept, err := department(ctx, r, *in.Department)
				if err != nil {
					return err
				}
				target.Department = dept
			}
			if in.Role != nil && *in.Role != user.RoleAdmin && target.IsActiveAdmin() && len(admins) <= 1 {
				return user.ErrLastAdminProtected
			}
			if in.Name != nil {
				target.Name = *in.Name
			}
			if in.Role != nil {
				target.Role = *in.Role
			}
			if err := r.Users.Save(ctx, target); err != nil {
				return err
			}
			out = target
			return r.Audit.Append(ctx, audit.New(actor.ID, actor.Name, audit.ActionUserUpdated, target.ID,
				"User profile updated", u.now()))
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) ChangeRole(ctx context.Context, actor user.Actor, targetID string, role user.Role) (*user.User, error) {
	return u.UpdateUser(ctx, actor, targetID, UpdateUserInput{Role: &role})
}

// ToggleActive flips the target's active flag. The active admin rows are
// locked before the target so concurrent toggles serialize on the same set.
func (u *Usecase) ToggleActive(ctx context.Context, actor user.Actor, targetID string) (*user.User, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminOnly
	}

	var out *user.User
	err := retry.OnContention(ctx, u.retry, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			admins, err := r.Users.LockActiveAdminIDs(ctx)
			if err != nil {
				return err
			}
			target, err := r.Users.GetByIDForUpdate(ctx, targetID)
			if err != nil {
				return err
			}
			if target.ID == actor.ID && target.IsActive {
				return user.ErrSelfDeactivation
			}
			if target.IsActiveAdmin() && len(admins) <= 1 {
				return user.ErrLastAdminProtected
			}

			target.IsActive = !target.IsActive
			if err := r.Users.Save(ctx, target); err != nil {
				return err
			}
			action, verb := audit.ActionUserActivated, "activated"
			if !target.IsActive {
				action, verb = audit.ActionUserDeactivated, "deactivated"
			}
			out = target
			return r.Audit.Append(ctx, audit.New(actor.ID, actor.Name, action, target.ID,
				fmt.Sprintf("%s account %s", target.Name, verb), u.now()))
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// department resolves name to the registered spelling.
func department(ctx context.Context, r uow.Repos, name string) (string, error) {
	p, err := r.Permissions.Get(ctx, strings.TrimSpace(name))
	if errors.Is(err, permission.ErrNotFound) {
		return "", permission.ErrMissing
	}
	if err != nil {
		return "", err
	}
	return p.Department, nil
}
