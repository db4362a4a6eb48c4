package equipment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository/memory"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

var admin = model.NewSession(1, "admin", model.RoleAdmin)

func newService() *Service {
	repos := memory.NewStore().Repositories()
	return NewService(repos.Equipment, validator.New(validator.Rules{}), nil, nil)
}

func TestCreateListDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	empty, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	item, err := svc.Create(ctx, admin, model.CreateEquipmentRequest{Name: " Stethoscope ", Description: "Acoustic", Stock: 10000})
	require.NoError(t, err)
	assert.Equal(t, "Stethoscope", item.Name)

	items, err := svc.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, svc.Delete(ctx, admin, item.ID))
	assert.True(t, apperrors.IsNotFound(svc.Delete(ctx, admin, item.ID)))
}

func TestCreate_Validation(t *testing.T) {
	svc := newService()

	tests := []struct {
		name  string
		req   model.CreateEquipmentRequest
		field string
	}{
		{"blank name", model.CreateEquipmentRequest{Name: " ", Description: "x", Stock: 1}, "Equipment Name"},
		{"blank description", model.CreateEquipmentRequest{Name: "Mask", Description: "", Stock: 1}, "Equipment Description"},
		{"negative stock", model.CreateEquipmentRequest{Name: "Mask", Description: "N95", Stock: -1}, "Stock"},
		{"stock over limit", model.CreateEquipmentRequest{Name: "Mask", Description: "N95", Stock: 10001}, "Stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), admin, tt.req)
			var appErr *apperrors.AppError
			require.True(t, apperrors.As(err, &appErr))
			assert.Equal(t, apperrors.ErrValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestDoctorCannotManageEquipment(t *testing.T) {
	svc := newService()
	doctor := model.NewSession(2, "house", model.RoleDoctor)

	_, err := svc.List(context.Background(), doctor)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}
