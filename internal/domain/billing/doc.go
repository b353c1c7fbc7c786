// Package billing provides the core invoicing domain model.
//
// This package implements the invoice/payment bounded context, which is
// responsible for:
//   - Building invoices from line items and deriving their monetary totals
//   - Enforcing the Draft -> Sent -> Paid invoice lifecycle
//   - Validating payments against the authoritative outstanding balance
//     and applying them to invoices
//
// Key Aggregates:
//   - Invoice: Aggregate root owning line items, total, balance and status
//   - Payment: Immutable record of an amount applied against one invoice
//
// Value Objects:
//   - LineItem: A single billable entry (description, quantity, unit price)
//
// The billing domain has no dependency on persistence, transport or
// rendering; application services orchestrate repositories and
// collaborators around it.
package billing
