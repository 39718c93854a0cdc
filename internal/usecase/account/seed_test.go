package account

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/user"
	"lab-inventory/internal/testutil/permissionmock"
)

// seedUsecase reuses the store's user mock and backs permissions with a map.
func seedUsecase(s *store, depts map[string]permission.DepartmentPermission) *Usecase {
	repos := s.repos()
	repos.Permissions = &permissionmock.Repo{
		ExistsFn: func(_ context.Context, d string) (bool, error) {
			for k := range depts {
				if strings.EqualFold(k, d) {
					return true, nil
				}
			}
			return false, nil
		},
		GetFn: func(_ context.Context, d string) (*permission.DepartmentPermission, error) {
			for k, p := range depts {
				if strings.EqualFold(k, d) {
					return &p, nil
				}
			}
			return nil, permission.ErrNotFound
		},
		CreateFn: func(_ context.Context, p *permission.DepartmentPermission) error {
			depts[p.Department] = *p
			return nil
		},
	}
	return s.usecaseOn(repos)
}

func TestSeed_FreshInstall(t *testing.T) {
	s := newStore()
	depts := map[string]permission.DepartmentPermission{}
	uc := seedUsecase(s, depts)

	got, err := uc.Seed(context.Background(), SeedInput{Department: "General", AdminName: "Lab Admin", AdminEmail: "Admin@Lab.io"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.RoleAdmin, got.Role)
	assert.Equal(t, "admin@lab.io", got.Email)
	assert.Equal(t, "General", got.Department)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte(passwords.Admin)))

	assert.Contains(t, depts, "General")
	assert.True(t, depts["General"].CanRequest)
	assert.Equal(t, []audit.Action{audit.ActionDepartmentCreated, audit.ActionUserCreated}, s.audit.Actions())
	assert.Equal(t, user.System.ID, s.audit.Entries[1].ActorID)
}

func TestSeed_Idempotent(t *testing.T) {
	a1 := mkUser("USR-A1", user.RoleAdmin, true)
	s := newStore(a1)
	depts := map[string]permission.DepartmentPermission{"Chemistry": *permission.New("Chemistry")}
	uc := seedUsecase(s, depts)

	got, err := uc.Seed(context.Background(), SeedInput{Department: "chemistry", AdminName: "Other", AdminEmail: "other@lab.io"})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Len(t, s.users, 1)
	assert.Len(t, depts, 1)
	assert.Empty(t, s.audit.Entries)
}

func TestSeed_EmailTakenByStaff(t *testing.T) {
	st := mkUser("USR-S1", user.RoleStaff, true)
	st.Email = "admin@lab.io"
	s := newStore(st)
	uc := seedUsecase(s, map[string]permission.DepartmentPermission{"Chemistry": *permission.New("Chemistry")})

	_, err := uc.Seed(context.Background(), SeedInput{Department: "Chemistry", AdminName: "Lab Admin", AdminEmail: "admin@lab.io"})
	require.ErrorIs(t, err, user.ErrEmailExists)
}

func TestSeed_InvalidInput(t *testing.T) {
	uc := seedUsecase(newStore(), map[string]permission.DepartmentPermission{})

	_, err := uc.Seed(context.Background(), SeedInput{Department: "1", AdminName: "A", AdminEmail: "a@lab.io"})
	require.ErrorIs(t, err, permission.ErrInvalidName)
	_, err = uc.Seed(context.Background(), SeedInput{Department: "General", AdminName: "A", AdminEmail: "nope"})
	require.ErrorIs(t, err, user.ErrInvalidUser)
}
