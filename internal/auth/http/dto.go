package http

import (
	"github.com/akashm011/Auth/internal/auth/domain"
	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/pkg/authsdk"
)

func toTenantDTO(t domain.Tenant) authsdk.Tenant {
	return authsdk.Tenant{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Domain:      t.Domain,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTenantDTOs(tenants []domain.Tenant) []authsdk.Tenant {
	out := make([]authsdk.Tenant, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, toTenantDTO(t))
	}
	return out
}

// toUserDTO never carries the password hash.
func toUserDTO(u domain.User) authsdk.User {
	dto := authsdk.User{
		ID:                   u.ID,
		Email:                u.Email,
		Username:             u.Username,
		Name:                 u.Name,
		Image:                u.Image,
		Role:                 string(u.Role),
		IsActive:             u.IsActive,
		IsInvitationAccepted: u.IsInvitationAccepted,
		LastLogin:            u.LastLogin,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
	if len(u.OAuthLinks) > 0 {
		dto.OAuth = make(map[string]string, len(u.OAuthLinks))
		for provider, id := range u.OAuthLinks {
			dto.OAuth[string(provider)] = id
		}
	}
	return dto
}

func toInvitationDTO(inv domain.Invitation) authsdk.Invitation {
	return authsdk.Invitation{
		ID:            inv.ID,
		Email:         inv.Email,
		UserID:        inv.UserID,
		Tenants:       nonNil(inv.Tenants),
		ExpiresAt:     inv.ExpiresAt,
		AcceptedAt:    inv.AcceptedAt,
		IsUsed:        inv.IsUsed,
		RevokedAt:     inv.RevokedAt,
		RevokedReason: inv.RevokedReason,
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func toAccessLogDTO(e domain.AccessLogEntry) authsdk.AccessLog {
	return authsdk.AccessLog{
		ID:           e.ID,
		UserID:       e.UserID,
		TenantID:     e.TenantID,
		Action:       string(e.Action),
		Status:       string(e.Status),
		IPAddress:    e.IPAddress,
		UserAgent:    e.UserAgent,
		ErrorMessage: e.ErrorMessage,
		Timestamp:    e.Timestamp,
	}
}

func toPaginationDTO(p service.Pagination) authsdk.Pagination {
	return authsdk.Pagination{
		Total:   p.Total,
		Skip:    p.Skip,
		Limit:   p.Limit,
		HasMore: p.HasMore,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
