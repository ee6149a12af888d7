package starboard

// CreditGate authorizes the false→true activation transition of a node.
// Deactivation never routes through the gate: it is unconditional and free.
type CreditGate struct {
	store Store
}

// NewCreditGate creates a gate over the given store.
func NewCreditGate(store Store) CreditGate {
	return CreditGate{store: store}
}

// Payer resolves the faction that would be charged for activating a node on
// the planet: the planet's owner when the ledger knows it, else the session's
// current faction when the ledger knows that. Returns FactionNone when no
// faction can be charged.
func (g CreditGate) Payer(planetID string) Faction {
	owner := g.store.Owner(planetID)
	if _, known := g.store.Credits(owner); known {
		return owner
	}
	current := g.store.CurrentFaction()
	if _, known := g.store.Credits(current); known {
		return current
	}
	return FactionNone
}

// Authorize resolves the paying faction and debits ActivationCost from its
// balance. On success it returns the payer and OutcomeActivated; the caller
// then flips the flag. On denial no ledger entry changes and a notice is
// raised for the insufficient-credits case as well as the no-faction case.
func (g CreditGate) Authorize(planetID string) (Faction, Outcome) {
	payer := g.Payer(planetID)
	if payer == FactionNone {
		g.store.Notify("no faction to charge for activation")
		return FactionNone, OutcomeNoPayingFaction
	}
	balance, _ := g.store.Credits(payer)
	if balance < ActivationCost {
		g.store.Notify(string(payer) + " has no credits left")
		return FactionNone, OutcomeInsufficientCredits
	}
	g.store.AddCredits(payer, -ActivationCost)
	return payer, OutcomeActivated
}
