package policy_test

import (
	"net/http"
	"testing"

	"coderr/internal/policy"
	"coderr/models"

	"github.com/stretchr/testify/require"
)

func principal(id int64, role models.Role) *models.Principal {
	return &models.Principal{
		UserID:   id * 10,
		Username: string(role),
		Profile:  &models.UserProfile{ID: id, UserID: id * 10, Role: role},
	}
}

func TestRoleGate(t *testing.T) {
	business := principal(1, models.RoleBusiness)
	customer := principal(2, models.RoleCustomer)
	noProfile := &models.Principal{UserID: 99, Username: "ghost"}

	tests := []struct {
		name    string
		p       *models.Principal
		method  string
		res     policy.Resource
		wantErr error
	}{
		{"anonymous read", nil, http.MethodGet, policy.Offer, nil},
		{"anonymous create", nil, http.MethodPost, policy.Offer, &models.AuthenticationError{}},
		{"business creates offer", business, http.MethodPost, policy.Offer, nil},
		{"customer creates offer", customer, http.MethodPost, policy.Offer, &models.PermissionError{}},
		{"customer creates order", customer, http.MethodPost, policy.Order, nil},
		{"business creates order", business, http.MethodPost, policy.Order, &models.PermissionError{}},
		{"customer creates review", customer, http.MethodPost, policy.Review, nil},
		{"business creates review", business, http.MethodPost, policy.Review, &models.PermissionError{}},
		{"no profile creates", noProfile, http.MethodPost, policy.Review, &models.PermissionError{}},
		{"patch goes to ownership", noProfile, http.MethodPatch, policy.Offer, nil},
		{"unknown method", business, http.MethodConnect, policy.Offer, &models.PermissionError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.RoleGate(tt.p, tt.method, tt.res)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.IsType(t, tt.wantErr, err)
		})
	}
}

func TestOwnershipGate(t *testing.T) {
	owner := principal(1, models.RoleBusiness)
	rival := principal(3, models.RoleBusiness)
	reviewer := principal(2, models.RoleCustomer)
	admin := &models.Principal{UserID: 1000, Username: "admin", IsSuperuser: true}
	guestBusiness := principal(7, models.RoleBusiness)
	guestBusiness.Username = models.GuestBusinessUsername
	guestCustomer := principal(8, models.RoleCustomer)
	guestCustomer.Username = models.GuestCustomerUsername

	t.Run("owner", func(t *testing.T) {
		require.NoError(t, policy.OwnershipGate(owner, http.MethodPatch, policy.Offer, 1))
		require.NoError(t, policy.OwnershipGate(owner, http.MethodDelete, policy.Offer, 1))
		require.NoError(t, policy.OwnershipGate(owner, http.MethodPatch, policy.Order, 1))
		require.NoError(t, policy.OwnershipGate(reviewer, http.MethodPatch, policy.Review, 2))
	})

	t.Run("not owner", func(t *testing.T) {
		var perr *models.PermissionError
		require.ErrorAs(t, policy.OwnershipGate(rival, http.MethodPatch, policy.Offer, 1), &perr)
		require.ErrorAs(t, policy.OwnershipGate(rival, http.MethodDelete, policy.Offer, 1), &perr)
		require.Equal(t, "you do not have permission to delete this offer", perr.Error())
	})

	t.Run("role mismatch even with same profile id", func(t *testing.T) {
		require.Error(t, policy.OwnershipGate(reviewer, http.MethodPatch, policy.Order, 2))
		require.Error(t, policy.OwnershipGate(owner, http.MethodPatch, policy.Review, 1))
	})

	t.Run("superuser", func(t *testing.T) {
		require.NoError(t, policy.OwnershipGate(admin, http.MethodDelete, policy.Offer, 1))
		require.NoError(t, policy.OwnershipGate(admin, http.MethodPatch, policy.Review, 2))
	})

	t.Run("guest accounts", func(t *testing.T) {
		require.NoError(t, policy.OwnershipGate(guestBusiness, http.MethodPatch, policy.Offer, 1))
		require.NoError(t, policy.OwnershipGate(guestBusiness, http.MethodPatch, policy.Order, 1))
		require.Error(t, policy.OwnershipGate(guestBusiness, http.MethodPatch, policy.Review, 2))
		require.NoError(t, policy.OwnershipGate(guestCustomer, http.MethodDelete, policy.Review, 2))
		require.Error(t, policy.OwnershipGate(guestCustomer, http.MethodDelete, policy.Offer, 1))
	})

	t.Run("anonymous", func(t *testing.T) {
		var aerr *models.AuthenticationError
		require.ErrorAs(t, policy.OwnershipGate(nil, http.MethodPut, policy.Offer, 1), &aerr)
	})

	t.Run("reads and creates pass", func(t *testing.T) {
		require.NoError(t, policy.OwnershipGate(rival, http.MethodGet, policy.Offer, 1))
		require.NoError(t, policy.OwnershipGate(rival, http.MethodPost, policy.Offer, 1))
	})
}

func TestParticipantGate(t *testing.T) {
	customer := principal(2, models.RoleCustomer)
	business := principal(1, models.RoleBusiness)
	stranger := principal(5, models.RoleCustomer)

	require.NoError(t, policy.ParticipantGate(customer, policy.Order, 2, 1))
	require.NoError(t, policy.ParticipantGate(business, policy.Order, 2, 1))
	require.NoError(t, policy.ParticipantGate(&models.Principal{IsSuperuser: true}, policy.Order, 2, 1))

	var perr *models.PermissionError
	require.ErrorAs(t, policy.ParticipantGate(stranger, policy.Order, 2, 1), &perr)
	require.Equal(t, "you do not have permission to view this order", perr.Error())

	var aerr *models.AuthenticationError
	require.ErrorAs(t, policy.ParticipantGate(nil, policy.Order, 2, 1), &aerr)
}

func TestAdminGate(t *testing.T) {
	require.NoError(t, policy.AdminGate(&models.Principal{IsSuperuser: true}, "delete this order"))

	var perr *models.PermissionError
	require.ErrorAs(t, policy.AdminGate(principal(1, models.RoleBusiness), "delete this order"), &perr)
	require.Equal(t, "you do not have permission to delete this order", perr.Error())
}
