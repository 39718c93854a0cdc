package permission_test

import (
	"context"
	"errors"
	"testing"

	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/testutil/permissionmock"
)

func TestGranted(t *testing.T) {
	boom := errors.New("db down")
	closed := permission.New("Physics")
	closed.CanRequest = false

	tests := []struct {
		name    string
		get     func(context.Context, string) (*permission.DepartmentPermission, error)
		want    bool
		wantErr error
	}{
		{"registered with capability", func(context.Context, string) (*permission.DepartmentPermission, error) {
			return permission.New("Chemistry"), nil
		}, true, nil},
		{"capability switched off", func(context.Context, string) (*permission.DepartmentPermission, error) {
			return closed, nil
		}, false, nil},
		{"unregistered", func(context.Context, string) (*permission.DepartmentPermission, error) {
			return nil, permission.ErrNotFound
		}, false, nil},
		{"store failure", func(context.Context, string) (*permission.DepartmentPermission, error) {
			return nil, boom
		}, false, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := permission.Granted(context.Background(), &permissionmock.Repo{GetFn: tt.get}, "Chemistry", permission.CapRequest)
			if !errors.Is(err, tt.wantErr) || got != tt.want {
				t.Fatalf("Granted = %v, %v; want %v, %v", got, err, tt.want, tt.wantErr)
			}
		})
	}
}
