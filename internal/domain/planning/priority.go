package planning

import (
	"fmt"
	"strconv"
	"strings"
)

// PriorityClass orders commodities for processing. Lower values are more essential.
type PriorityClass int

const (
	PriorityBasicNeeds                   PriorityClass = 1
	PriorityEssentialUtilities           PriorityClass = 2
	PriorityEducationAndHealth           PriorityClass = 3
	PriorityConsumerGoodsAndServices     PriorityClass = 4
	PriorityStrategicInvestments         PriorityClass = 5
	PriorityLuxuryGoodsAndServices       PriorityClass = 6
	PriorityInfrastructureAndDevelopment PriorityClass = 7
	PriorityResearchAndInnovation        PriorityClass = 8
	PriorityEnvironmentalConservation    PriorityClass = 9
	PriorityEmergencyServices            PriorityClass = 10
)

var priorityNames = map[PriorityClass]string{
	PriorityBasicNeeds:                   "BASIC_NEEDS",
	PriorityEssentialUtilities:           "ESSENTIAL_UTILITIES",
	PriorityEducationAndHealth:           "EDUCATION_AND_HEALTH",
	PriorityConsumerGoodsAndServices:     "CONSUMER_GOODS_AND_SERVICES",
	PriorityStrategicInvestments:         "STRATEGIC_INVESTMENTS_AND_INITIATIVES",
	PriorityLuxuryGoodsAndServices:       "LUXURY_GOODS_AND_SERVICES",
	PriorityInfrastructureAndDevelopment: "INFRASTRUCTURE_AND_DEVELOPMENT",
	PriorityResearchAndInnovation:        "RESEARCH_AND_INNOVATION",
	PriorityEnvironmentalConservation:    "ENVIRONMENTAL_CONSERVATION",
	PriorityEmergencyServices:            "EMERGENCY_SERVICES_AND_DISASTER_MANAGEMENT",
}

// String returns the class name, or the bare number for classes outside the named set.
func (p PriorityClass) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return strconv.Itoa(int(p))
}

// ParsePriorityClass accepts either an integer ("4") or a class name
// ("CONSUMER_GOODS_AND_SERVICES", case-insensitive, spaces or dashes allowed).
func ParsePriorityClass(s string) (PriorityClass, error) {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return PriorityClass(n), nil
	}

	normalized := strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_").Replace(trimmed))
	for class, name := range priorityNames {
		if name == normalized {
			return class, nil
		}
	}
	return 0, fmt.Errorf("unknown priority class: %q", s)
}
