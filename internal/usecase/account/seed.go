package account

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/uow"
	"lab-inventory/internal/domain/user"
	"lab-inventory/pkg/id"
)

type SeedInput struct {
	Department string
	AdminName  string
	AdminEmail string
}

// Seed makes an empty install usable. It registers the department if missing
// and, only while no active admin exists, creates one holding the default
// admin password. Running it again is a no-op.
func (u *Usecase) Seed(ctx context.Context, in SeedInput) (created *user.User, err error) {
	dept := strings.TrimSpace(in.Department)
	if !permission.ValidDepartmentName(dept) {
		return nil, permission.ErrInvalidName
	}
	name := strings.TrimSpace(in.AdminName)
	addr, perr := mail.ParseAddress(strings.TrimSpace(in.AdminEmail))
	if name == "" || perr != nil {
		return nil, user.ErrInvalidUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.passwords.Admin), u.cost)
	if err != nil {
		return nil, fmt.Errorf("hash default password: %w", err)
	}
	sys := user.System

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ok, err := r.Permissions.Exists(ctx, dept)
		if err != nil {
			return err
		}
		if !ok {
			if err := r.Permissions.Create(ctx, permission.New(dept)); err != nil {
				return err
			}
			if err := r.Audit.Append(ctx, audit.New(sys.ID, sys.Name, audit.ActionDepartmentCreated, dept,
				fmt.Sprintf("Department %s created", dept), u.now())); err != nil {
				return err
			}
		}

		admins, err := r.Users.LockActiveAdminIDs(ctx)
		if err != nil {
			return err
		}
		if len(admins) > 0 {
			return nil
		}
		_, err = r.Users.GetByEmail(ctx, addr.Address)
		switch {
		case err == nil:
			return user.ErrEmailExists
		case !errors.Is(err, user.ErrNotFound):
			return err
		}

		dp, err := department(ctx, r, dept)
		if err != nil {
			return err
		}
		nu := &user.User{
			ID:           id.New(id.PrefixUser),
			Name:         name,
			Email:        strings.ToLower(addr.Address),
			Role:         user.RoleAdmin,
			Department:   dp,
			IsActive:     true,
			PasswordHash: string(hash),
		}
		if err := r.Users.Create(ctx, nu); err != nil {
			return err
		}
		created = nu
		return r.Audit.Append(ctx, audit.New(sys.ID, sys.Name, audit.ActionUserCreated, nu.ID,
			fmt.Sprintf("%s (%s) created", nu.Name, nu.Role), u.now()))
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
