package stock

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
	"lab-inventory/internal/domain/uow"
	"lab-inventory/internal/domain/user"
	"lab-inventory/internal/metrics"
	"lab-inventory/pkg/id"
	"lab-inventory/pkg/retry"
)

// Usecase owns direct admin edits of the catalogue. Stock released by
// approvals goes through the request workflow instead.
type Usecase struct {
	uow    uow.UnitOfWork
	notify inventory.Notifier
	retry  retry.Policy
	now    func() time.Time
	log    zerolog.Logger
}

func NewUsecase(tx uow.UnitOfWork, notify inventory.Notifier, log zerolog.Logger) *Usecase {
	return &Usecase{
		uow:    tx,
		notify: notify,
		retry:  retry.Default,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log,
	}
}

func (u *Usecase) CreateItem(ctx context.Context, actor user.Actor, in CreateItemInput) (*inventory.Item, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminOnly
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" || in.Category == "" || in.Unit == "" {
		return nil, inventory.ErrInvalidItem
	}
	if in.CurrentStock < 0 || in.MinStock < 0 {
		return nil, inventory.ErrInvalidStock
	}

	var out *inventory.Item
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		dept, err := r.Permissions.Get(ctx, in.Department)
		if errors.Is(err, permission.ErrNotFound) {
			return permission.ErrMissing
		}
		if err != nil {
			return err
		}
		dup, err := r.Items.ExistsByName(ctx, dept.Department, in.Name)
		if err != nil {
			return err
		}
		if dup {
			return inventory.ErrDuplicate
		}

		now := u.now()
		it := &inventory.Item{
			ID:           id.New(id.PrefixItem),
			Name:         in.Name,
			Category:     in.Category,
			Department:   dept.Department,
			CurrentStock: in.CurrentStock,
			MinStock:     in.MinStock,
			Unit:         in.Unit,
			LastUpdated:  now,
		}
		if err := r.Items.Create(ctx, it); err != nil {
			return err
		}
		out = it
		return r.Audit.Append(ctx, audit.New(actor.ID, actor.Name, audit.ActionInventoryCreated, it.ID,
			fmt.Sprintf("%s added (%d %s)", it.Name, it.CurrentStock, it.Unit), now))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateItem applies a partial edit under the item's row lock. Moving the
// item from above its minimum to at-or-below raises a low-stock alert.
func (u *Usecase) UpdateItem(ctx context.Context, actor user.Actor, itemID string, p inventory.Patch) (*inventory.Item, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminOnly
	}
	if p.Empty() {
		return nil, inventory.ErrEmptyPatch
	}
	if (p.CurrentStock != nil && *p.CurrentStock < 0) || (p.MinStock != nil && *p.MinStock < 0) {
		return nil, inventory.ErrInvalidStock
	}
	var ok bool
	if p.Name, ok = trimmed(p.Name); !ok {
		return nil, inventory.ErrInvalidItem
	}
	if p.Category, ok = trimmed(p.Category); !ok {
		return nil, inventory.ErrInvalidItem
	}
	if p.Unit, ok = trimmed(p.Unit); !ok {
		return nil, inventory.ErrInvalidItem
	}

	var (
		out   *inventory.Item
		alert *inventory.LowStockAlert
	)
	err := retry.OnContention(ctx, u.retry, func() error {
		alert = nil
		err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
			it, err := r.Items.GetByIDForUpdate(ctx, itemID)
			if err != nil {
				return err
			}
			if p.Name != nil && !strings.EqualFold(*p.Name, it.Name) {
				dup, err := r.Items.ExistsByName(ctx, it.Department, *p.Name)
				if err != nil {
					return err
				}
				if dup {
					return inventory.ErrDuplicate
				}
			}

			now := u.now()
			crossed := it.Apply(p, now)
			if err := r.Items.Save(ctx, it); err != nil {
				return err
			}
			if err := r.Audit.Append(ctx, audit.New(actor.ID, actor.Name, audit.ActionInventoryUpdated, it.ID,
				fmt.Sprintf("%s stock updated to %d", it.Name, it.CurrentStock), now)); err != nil {
				return err
			}
			if crossed {
				if err := r.Audit.Append(ctx, audit.LowStock(user.System.ID, user.System.Name, it.ID, it.Name, now)); err != nil {
					return err
				}
				a := it.Alert()
				alert = &a
			}
			out = it
			return nil
		})
		if errors.Is(err, apperr.ErrContention) {
			metrics.RecordContention("stock")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if alert != nil {
		metrics.RecordLowStock(alert.Department)
		if u.notify != nil {
			if err := u.notify.NotifyLowStock(ctx, *alert); err != nil {
				u.log.Warn().Err(err).Str("item_id", alert.ItemID).Msg("low stock notify failed")
			}
		}
	}
	return out, nil
}

// SetStock is the manual correction path: a patch touching only CurrentStock.
func (u *Usecase) SetStock(ctx context.Context, actor user.Actor, itemID string, n int) (*inventory.Item, error) {
	return u.UpdateItem(ctx, actor, itemID, inventory.Patch{CurrentStock: &n})
}

// trimmed returns a trimmed copy of s; ok is false when a set field is blank.
func trimmed(s *string) (*string, bool) {
	if s == nil {
		return nil, true
	}
	v := strings.TrimSpace(*s)
	return &v, v != ""
}
