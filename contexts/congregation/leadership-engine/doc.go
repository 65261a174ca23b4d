// Package leadershipengine implements the leadership role eligibility and
// assignment engine inside the congregation context.
//
// The module owns the role catalog (definitions with age, gender, and
// capacity constraints), pure eligibility evaluation, and the assignment
// ledger binding members to roles. Business rules live in domain/application
// layers; storage and transport stay behind ports and adapters.
package leadershipengine
