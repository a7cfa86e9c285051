// Package plan is the FREE/PRO quota gate.
package plan

// Plan is a tenant's subscription tier.
type Plan string

const (
	Free Plan = "FREE"
	Pro  Plan = "PRO"
)

// FreeLeadLimit is the number of leads a FREE tenant may hold.
const FreeLeadLimit = 5

// Valid reports whether p is a known plan.
func Valid(p Plan) bool {
	return p == Free || p == Pro
}

// CanAdmit reports whether a tenant on the given plan may add another lead.
// PRO is unlimited; FREE is capped at FreeLeadLimit. Pure and advisory: the
// lead service enforces the same rule on create so no caller can bypass it.
func CanAdmit(p Plan, currentCount int64) bool {
	return p == Pro || currentCount < FreeLeadLimit
}
