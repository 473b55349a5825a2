package auth

import "github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"

type Capability string

const (
	CapManageEvents     Capability = "events:manage"
	CapManageTickets    Capability = "tickets:manage"
	CapManagePromoCodes Capability = "promo_codes:manage"
	CapReviewDocuments  Capability = "registrations:review"
	CapCheckIn          Capability = "registrations:checkin"
	CapViewOrders       Capability = "orders:read"
	CapViewLogs         Capability = "logs:read"
)

var roleCapabilities = map[models.Role][]Capability{
	models.RoleAdmin: {
		CapManageEvents,
		CapManageTickets,
		CapManagePromoCodes,
		CapReviewDocuments,
		CapCheckIn,
		CapViewOrders,
		CapViewLogs,
	},
}

// Can reports whether role grants capability.
func Can(role models.Role, capability Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == capability {
			return true
		}
	}
	return false
}
