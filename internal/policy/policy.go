// Package policy решает, может ли вызывающий выполнить действие.
//
// Две независимые оси: ролевой шлюз (кто вообще может действовать) и шлюз
// владения (кто может менять существующий объект). Любое несопоставленное
// сочетание метода, роли и ресурса - отказ.
package policy

import (
	"net/http"

	"coderr/models"
)

type Resource int

const (
	Offer Resource = iota
	Order
	Review
)

func (r Resource) String() string {
	switch r {
	case Offer:
		return "offer"
	case Order:
		return "order"
	case Review:
		return "review"
	}
	return "unknown"
}

func isSafe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// RequireAuthenticated - только для аутентифицированных
func RequireAuthenticated(p *models.Principal) error {
	if p == nil {
		return &models.AuthenticationError{}
	}
	return nil
}

// RoleGate: чтение открыто всем; создание предложения - business, заказа и отзыва - customer
func RoleGate(p *models.Principal, method string, res Resource) error {
	if isSafe(method) {
		return nil
	}
	if p == nil {
		return &models.AuthenticationError{}
	}

	switch {
	case method == http.MethodPost:
		if p.Profile == nil {
			return deny(method, res)
		}
		return creatorRoleGate(p.Profile.Role, res)
	case isMutation(method):
		// решает шлюз владения
		return nil
	}
	return deny(method, res)
}

func creatorRoleGate(role models.Role, res Resource) error {
	switch role {
	case models.RoleBusiness:
		if res == Offer {
			return nil
		}
	case models.RoleCustomer:
		if res == Order || res == Review {
			return nil
		}
	}
	return deny(http.MethodPost, res)
}

// OwnershipGate: PUT/PATCH/DELETE - владелец (по id профиля), суперпользователь
// или демо-аккаунт соответствующей роли
func OwnershipGate(p *models.Principal, method string, res Resource, ownerProfileID int64) error {
	if isSafe(method) || method == http.MethodPost {
		return nil
	}
	if !isMutation(method) {
		return deny(method, res)
	}
	if p == nil {
		return &models.AuthenticationError{}
	}
	if p.IsSuperuser {
		return nil
	}
	if isGuestOwner(p, res) {
		return nil
	}
	if p.Profile == nil {
		return deny(method, res)
	}

	switch p.Profile.Role {
	case models.RoleBusiness:
		if (res == Offer || res == Order) && p.Profile.ID == ownerProfileID {
			return nil
		}
	case models.RoleCustomer:
		if res == Review && p.Profile.ID == ownerProfileID {
			return nil
		}
	}
	return deny(method, res)
}

func isGuestOwner(p *models.Principal, res Resource) bool {
	switch res {
	case Offer, Order:
		return p.Username == models.GuestBusinessUsername
	case Review:
		return p.Username == models.GuestCustomerUsername
	}
	return false
}

// ParticipantGate: заказ видят только его стороны и суперпользователь
func ParticipantGate(p *models.Principal, res Resource, participants ...int64) error {
	if p == nil {
		return &models.AuthenticationError{}
	}
	if p.IsSuperuser {
		return nil
	}
	if p.Profile != nil {
		for _, id := range participants {
			if id == p.Profile.ID {
				return nil
			}
		}
	}
	return &models.PermissionError{Action: "view this " + res.String()}
}

// AdminGate - только суперпользователь
func AdminGate(p *models.Principal, action string) error {
	if p == nil {
		return &models.AuthenticationError{}
	}
	if !p.IsSuperuser {
		return &models.PermissionError{Action: action}
	}
	return nil
}

func deny(method string, res Resource) error {
	verb := "modify"
	switch method {
	case http.MethodPost:
		verb = "create"
	case http.MethodDelete:
		verb = "delete"
	}
	return &models.PermissionError{Action: verb + " this " + res.String()}
}
