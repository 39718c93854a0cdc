package stock

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/inventory"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/uow"
	"lab-inventory/internal/domain/user"
	"lab-inventory/internal/testutil/auditmock"
	"lab-inventory/internal/testutil/inventorymock"
	"lab-inventory/internal/testutil/permissionmock"
	"lab-inventory/internal/testutil/uowmock"
)

var (
	t0    = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	admin = user.Actor{ID: "USR-A", Name: "Grace", Role: user.RoleAdmin}
	staff = user.Actor{ID: "USR-S", Name: "Ada", Role: user.RoleStaff, Department: "Chemistry"}
)

type notifier struct{ alerts []inventory.LowStockAlert }

func (n *notifier) NotifyLowStock(_ context.Context, a inventory.LowStockAlert) error {
	n.alerts = append(n.alerts, a)
	return nil
}

type fixture struct {
	item   *inventory.Item
	saved  []inventory.Item
	audit  *auditmock.Repo
	notify *notifier
	uc     *Usecase
}

func newFixture(stock, minStock int) *fixture {
	f := &fixture{
		item: &inventory.Item{
			ID: "INV-1", Name: "Ethanol", Category: "Reagents", Department: "Chemistry",
			CurrentStock: stock, MinStock: minStock, Unit: "bottle", LastUpdated: t0.Add(-time.Hour),
		},
		audit:  &auditmock.Repo{},
		notify: &notifier{},
	}
	items := &inventorymock.Repo{
		GetByIDForUpdateFn: func(_ context.Context, id string) (*inventory.Item, error) {
			if f.item == nil || id != f.item.ID {
				return nil, inventory.ErrNotFound
			}
			cp := *f.item
			return &cp, nil
		},
		SaveFn: func(_ context.Context, it *inventory.Item) error {
			f.saved = append(f.saved, *it)
			*f.item = *it
			return nil
		},
		ExistsByNameFn: func(_ context.Context, dept, name string) (bool, error) {
			return dept == "Chemistry" && name == "Methanol", nil
		},
	}
	perms := &permissionmock.Repo{
		GetFn: func(_ context.Context, dept string) (*permission.DepartmentPermission, error) {
			if dept == "chemistry" || dept == "Chemistry" {
				return permission.New("Chemistry"), nil
			}
			return nil, permission.ErrNotFound
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Items: items, Permissions: perms, Audit: f.audit})
	f.uc = NewUsecase(tx, f.notify, zerolog.Nop())
	f.uc.now = func() time.Time { return t0 }
	return f
}

func TestCreateItem(t *testing.T) {
	f := newFixture(0, 0)
	it, err := f.uc.CreateItem(context.Background(), admin, CreateItemInput{
		Name: " Acetone ", Category: "Solvents", Department: "chemistry", CurrentStock: 12, MinStock: 4, Unit: "bottle",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acetone", it.Name)
	assert.Equal(t, "Chemistry", it.Department, "department is canonicalised")
	assert.Equal(t, t0, it.LastUpdated)
	require.Len(t, f.audit.Entries, 1)
	assert.Equal(t, audit.ActionInventoryCreated, f.audit.Entries[0].Action)
	assert.Equal(t, "Acetone added (12 bottle)", f.audit.Entries[0].Details)
}

func TestCreateItem_Failures(t *testing.T) {
	base := CreateItemInput{Name: "Acetone", Category: "Solvents", Department: "Chemistry", CurrentStock: 1, MinStock: 1, Unit: "bottle"}
	tests := []struct {
		name    string
		actor   user.Actor
		mutate  func(in *CreateItemInput)
		wantErr error
	}{
		{"staff", staff, nil, user.ErrAdminOnly},
		{"blank name", admin, func(in *CreateItemInput) { in.Name = "  " }, inventory.ErrInvalidItem},
		{"negative stock", admin, func(in *CreateItemInput) { in.CurrentStock = -1 }, inventory.ErrInvalidStock},
		{"negative min", admin, func(in *CreateItemInput) { in.MinStock = -3 }, inventory.ErrInvalidStock},
		{"unknown department", admin, func(in *CreateItemInput) { in.Department = "Physics" }, permission.ErrMissing},
		{"duplicate in department", admin, func(in *CreateItemInput) { in.Name = "Methanol" }, inventory.ErrDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(0, 0)
			in := base
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			_, err := f.uc.CreateItem(context.Background(), tt.actor, in)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.audit.Entries)
		})
	}
}

func TestSetStock_CrossingAlerts(t *testing.T) {
	f := newFixture(15, 10)
	ctx := context.Background()

	it, err := f.uc.SetStock(ctx, admin, "INV-1", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, it.CurrentStock)
	assert.Equal(t, t0, it.LastUpdated)
	assert.Equal(t, []audit.Action{audit.ActionInventoryUpdated, audit.ActionLowStockAlert}, f.audit.Actions())
	assert.Equal(t, "Ethanol stock updated to 10", f.audit.Entries[0].Details)
	assert.Equal(t, user.System.Name, f.audit.Entries[1].ActorName)
	require.Len(t, f.notify.alerts, 1)

	// already low: no second alert
	_, err = f.uc.SetStock(ctx, admin, "INV-1", 4)
	require.NoError(t, err)
	assert.Len(t, f.audit.Entries, 3)
	assert.Len(t, f.notify.alerts, 1)

	// back above, then down again: a fresh crossing
	_, err = f.uc.SetStock(ctx, admin, "INV-1", 30)
	require.NoError(t, err)
	_, err = f.uc.SetStock(ctx, admin, "INV-1", 2)
	require.NoError(t, err)
	assert.Len(t, f.notify.alerts, 2)
}

func TestUpdateItem_RaisingMinimumCrosses(t *testing.T) {
	f := newFixture(15, 5)
	minStock := 20
	it, err := f.uc.UpdateItem(context.Background(), admin, "INV-1", inventory.Patch{MinStock: &minStock})
	require.NoError(t, err)
	assert.Equal(t, 20, it.MinStock)
	assert.Contains(t, f.audit.Actions(), audit.ActionLowStockAlert)
}

func TestUpdateItem_Failures(t *testing.T) {
	neg, blank, dup := -1, " ", "Methanol"
	tests := []struct {
		name    string
		actor   user.Actor
		id      string
		patch   inventory.Patch
		wantErr error
	}{
		{"staff", staff, "INV-1", inventory.Patch{CurrentStock: &neg}, user.ErrAdminOnly},
		{"empty patch", admin, "INV-1", inventory.Patch{}, inventory.ErrEmptyPatch},
		{"negative stock", admin, "INV-1", inventory.Patch{CurrentStock: &neg}, inventory.ErrInvalidStock},
		{"blank unit", admin, "INV-1", inventory.Patch{Unit: &blank}, inventory.ErrInvalidItem},
		{"missing item", admin, "INV-404", inventory.Patch{Name: &dup}, inventory.ErrNotFound},
		{"rename onto existing", admin, "INV-1", inventory.Patch{Name: &dup}, inventory.ErrDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(15, 10)
			_, err := f.uc.UpdateItem(context.Background(), tt.actor, tt.id, tt.patch)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.saved)
			assert.Empty(t, f.audit.Entries)
		})
	}
}
