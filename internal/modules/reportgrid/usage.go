package reportgrid

// UsageKind is how a subject handles a data type.
type UsageKind string

const (
	UsageConsumer    UsageKind = "CONSUMER"
	UsageOriginator  UsageKind = "ORIGINATOR"
	UsageDistributor UsageKind = "DISTRIBUTOR"
	UsageModifier    UsageKind = "MODIFIER"
)

func (u UsageKind) DisplayName() string {
	switch u {
	case UsageConsumer:
		return "Consumer"
	case UsageOriginator:
		return "Originator"
	case UsageDistributor:
		return "Distributor"
	case UsageModifier:
		return "Modifier"
	default:
		return string(u)
	}
}

// DeriveUsage collapses the recorded usage kinds of one (subject, data type)
// into a single summary kind. Modifier dominates, then distributor; an
// originator that also consumes is a distributor.
func DeriveUsage(kinds []UsageKind) (UsageKind, bool) {
	has := map[UsageKind]bool{}
	for _, k := range kinds {
		has[k] = true
	}
	switch {
	case len(has) == 0:
		return "", false
	case has[UsageModifier]:
		return UsageModifier, true
	case has[UsageDistributor]:
		return UsageDistributor, true
	case has[UsageConsumer] && has[UsageOriginator]:
		return UsageDistributor, true
	case has[UsageOriginator]:
		return UsageOriginator, true
	case has[UsageConsumer]:
		return UsageConsumer, true
	default:
		// unknown kinds pass through unchanged
		return kinds[0], true
	}
}
