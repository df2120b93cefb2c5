package services

import (
	"strings"

	"github.com/GregMSThompson/dashboard-builder/internal/models"
)

const fallbackTenantName = "My Organization"

// DeriveTenant synthesizes the per-user tenant from the authenticated
// identity. Tenants are recreated each session and never stored; the name is
// the email's local part when the token carries one.
func DeriveTenant(uid, email string) models.Tenant {
	name := fallbackTenantName
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return models.Tenant{
		TenantID:    "tenant_" + uid,
		Name:        name,
		OwnerUserID: uid,
	}
}
