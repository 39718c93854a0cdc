package request

import (
	"context"
	"sync"
	"time"

	"lab-inventory/internal/domain/inventory"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/request"
	"lab-inventory/internal/domain/uow"
	"lab-inventory/internal/domain/user"
	"lab-inventory/internal/testutil/auditmock"
	"lab-inventory/internal/testutil/inventorymock"
	"lab-inventory/internal/testutil/permissionmock"
	"lab-inventory/internal/testutil/requestmock"
	"lab-inventory/internal/testutil/usermock"
	"lab-inventory/internal/testutil/uowmock"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

var (
	admin = user.Actor{ID: "USR-A", Name: "Grace", Role: user.RoleAdmin, Department: "Administration"}
	staff = user.Actor{ID: "USR-S", Name: "Ada", Role: user.RoleStaff, Department: "Chemistry"}
)

// world backs the function mocks with maps. Reads hand out copies so only an
// explicit Save changes stored state, as with a real store.
type world struct {
	mu    sync.Mutex
	users map[string]user.User
	items map[string]inventory.Item
	reqs  map[string]request.Request
	perms map[string]permission.DepartmentPermission
	audit *auditmock.Repo
}

func newWorld() *world {
	w := &world{
		users: map[string]user.User{},
		items: map[string]inventory.Item{},
		reqs:  map[string]request.Request{},
		perms: map[string]permission.DepartmentPermission{},
		audit: &auditmock.Repo{},
	}
	w.users[admin.ID] = user.User{ID: admin.ID, Name: admin.Name, Role: user.RoleAdmin, Department: admin.Department, IsActive: true}
	w.users[staff.ID] = user.User{ID: staff.ID, Name: staff.Name, Role: user.RoleStaff, Department: staff.Department, IsActive: true}
	w.perms["Chemistry"] = *permission.New("Chemistry")
	return w
}

func (w *world) addItem(id string, stock, minStock int) {
	w.items[id] = inventory.Item{
		ID: id, Name: "Ethanol", Category: "Reagents", Department: "Chemistry",
		CurrentStock: stock, MinStock: minStock, Unit: "bottle", LastUpdated: t0,
	}
}

func (w *world) addRequest(id, itemID string, qty int) {
	w.reqs[id] = request.Request{
		ID: id, RequesterID: staff.ID, RequesterName: staff.Name, Department: "Chemistry",
		ItemID: itemID, ItemName: "Ethanol", RequestedQty: qty, Unit: "bottle",
		Status: request.StatusPending, Priority: request.PriorityMedium, RequestDate: t0,
	}
}

func (w *world) repos() uow.Repos {
	return uow.Repos{
		Users: &usermock.Repo{
			GetByIDFn: func(_ context.Context, id string) (*user.User, error) {
				w.mu.Lock()
				defer w.mu.Unlock()
				u, ok := w.users[id]
				if !ok {
					return nil, user.ErrNotFound
				}
				return &u, nil
			},
		},
		Items: &inventorymock.Repo{
			GetByIDFn:          w.getItem,
			GetByIDForUpdateFn: w.getItem,
			SaveFn: func(_ context.Context, it *inventory.Item) error {
				w.mu.Lock()
				defer w.mu.Unlock()
				w.items[it.ID] = *it
				return nil
			},
		},
		Requests: &requestmock.Repo{
			GetByIDForUpdateFn: func(_ context.Context, id string) (*request.Request, error) {
				w.mu.Lock()
				defer w.mu.Unlock()
				r, ok := w.reqs[id]
				if !ok {
					return nil, request.ErrNotFound
				}
				return &r, nil
			},
			CreateFn: w.putRequest,
			SaveFn:   w.putRequest,
		},
		Permissions: &permissionmock.Repo{
			GetFn: func(_ context.Context, dept string) (*permission.DepartmentPermission, error) {
				w.mu.Lock()
				defer w.mu.Unlock()
				p, ok := w.perms[dept]
				if !ok {
					return nil, permission.ErrNotFound
				}
				return &p, nil
			},
		},
		Audit: w.audit,
	}
}

func (w *world) getItem(_ context.Context, id string) (*inventory.Item, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	it, ok := w.items[id]
	if !ok {
		return nil, inventory.ErrNotFound
	}
	return &it, nil
}

func (w *world) putRequest(_ context.Context, r *request.Request) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reqs[r.ID] = *r
	return nil
}

func (w *world) usecase(opts ...Option) *Usecase {
	opts = append([]Option{WithClock(func() time.Time { return t0 })}, opts...)
	return NewUsecase(uowmock.Passthrough(w.repos()), opts...)
}

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []inventory.LowStockAlert
	err    error
}

func (n *recordingNotifier) NotifyLowStock(_ context.Context, a inventory.LowStockAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, a)
	return n.err
}

func intPtr(v int) *int { return &v }
