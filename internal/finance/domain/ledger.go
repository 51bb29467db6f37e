package domain

import "github.com/shopspring/decimal"

// BalanceDelta is the adjustment a single transaction mutation applies to
// the owner's personal and family balance accumulators.
type BalanceDelta struct {
	Personal decimal.Decimal
	Family   decimal.Decimal
}

func ZeroDelta() BalanceDelta {
	return BalanceDelta{Personal: decimal.Zero, Family: decimal.Zero}
}

func (d BalanceDelta) Add(other BalanceDelta) BalanceDelta {
	return BalanceDelta{
		Personal: d.Personal.Add(other.Personal),
		Family:   d.Family.Add(other.Family),
	}
}

func (d BalanceDelta) Negate() BalanceDelta {
	return BalanceDelta{Personal: d.Personal.Neg(), Family: d.Family.Neg()}
}

func (d BalanceDelta) IsZero() bool {
	return d.Personal.IsZero() && d.Family.IsZero()
}

// CreateDelta computes the balance effect of bringing a transaction into
// existence. Income raises the personal balance, an expense lowers it, and
// a shared expense additionally raises the family balance by the same
// amount. Transfers never touch the user balances.
func CreateDelta(t Transaction) BalanceDelta {
	switch t.TypeID {
	case TypeIncome:
		return BalanceDelta{Personal: t.Amount, Family: decimal.Zero}
	case TypeExpense:
		if t.IsShared {
			return BalanceDelta{Personal: t.Amount.Neg(), Family: t.Amount}
		}
		return BalanceDelta{Personal: t.Amount.Neg(), Family: decimal.Zero}
	default:
		return ZeroDelta()
	}
}

// DeleteDelta reverses the effect of the transaction's current state, so a
// create followed by a delete always nets to zero on both balances.
func DeleteDelta(t Transaction) BalanceDelta {
	return CreateDelta(t).Negate()
}

// UpdateDelta computes the balance effect of editing a transaction in
// place. For same-type edits only the amount difference moves. Flipping a
// shared expense back to personal removes the old amount from the family
// balance, and flipping personal to shared adds the new amount there; the
// personal side carries only the amount difference in both cases, the
// original personal debit from creation stays untouched.
//
// A type change has no row of its own in the edit rules, so it is treated
// as delete-then-recreate.
func UpdateDelta(old, updated Transaction) BalanceDelta {
	if old.TypeID != updated.TypeID {
		return DeleteDelta(old).Add(CreateDelta(updated))
	}
	diff := updated.Amount.Sub(old.Amount)
	switch updated.TypeID {
	case TypeIncome:
		return BalanceDelta{Personal: diff, Family: decimal.Zero}
	case TypeExpense:
		switch {
		case old.IsShared && updated.IsShared:
			return BalanceDelta{Personal: diff.Neg(), Family: diff}
		case !old.IsShared && !updated.IsShared:
			return BalanceDelta{Personal: diff.Neg(), Family: decimal.Zero}
		case updated.IsShared:
			return BalanceDelta{Personal: diff.Neg(), Family: updated.Amount}
		default:
			return BalanceDelta{Personal: diff.Neg(), Family: old.Amount.Neg()}
		}
	default:
		return ZeroDelta()
	}
}
