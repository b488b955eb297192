package domain

import (
	"sort"
	"strings"
)

// deliveryAreas maps each serviced Nigerian state to the local government
// areas the storefront delivers to. The checkout draft's area must belong
// to its selected state.
var deliveryAreas = map[string][]string{
	"Abuja FCT": {"Abaji", "Bwari", "Gwagwalada", "Kuje", "Kwali", "Municipal Area Council"},
	"Enugu":     {"Enugu East", "Enugu North", "Enugu South", "Nkanu West", "Nsukka", "Udi"},
	"Kano":      {"Dala", "Fagge", "Gwale", "Kano Municipal", "Nassarawa", "Tarauni"},
	"Lagos":     {"Agege", "Alimosho", "Eti-Osa", "Ikeja", "Ikorodu", "Lagos Island", "Lagos Mainland", "Lekki", "Surulere"},
	"Ogun":      {"Abeokuta North", "Abeokuta South", "Ado-Odo/Ota", "Ijebu Ode", "Sagamu"},
	"Oyo":       {"Akinyele", "Egbeda", "Ibadan North", "Ibadan South-West", "Oluyole"},
	"Rivers":    {"Eleme", "Ikwerre", "Obio-Akpor", "Oyigbo", "Port Harcourt"},
}

// States lists the serviced states in sorted order.
func States() []string {
	states := make([]string, 0, len(deliveryAreas))
	for s := range deliveryAreas {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// AreasForState returns the delivery areas for a state, matched
// case-insensitively. ok is false for an unserviced state.
func AreasForState(state string) ([]string, bool) {
	state = strings.TrimSpace(state)
	for s, areas := range deliveryAreas {
		if strings.EqualFold(s, state) {
			out := make([]string, len(areas))
			copy(out, areas)
			return out, true
		}
	}
	return nil, false
}

// ValidArea reports whether area is a delivery area of state.
func ValidArea(state, area string) bool {
	areas, ok := AreasForState(state)
	if !ok {
		return false
	}
	area = strings.TrimSpace(area)
	for _, a := range areas {
		if strings.EqualFold(a, area) {
			return true
		}
	}
	return false
}
