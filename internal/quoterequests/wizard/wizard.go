// Package wizard holds the static configuration of the multi-step quote
// form: which steps a prospect walks through for each service type.
package wizard

// ServiceType identifies a quote wizard flow.
type ServiceType string

const (
	ServiceVitrine   ServiceType = "vitrine"
	ServiceEcommerce ServiceType = "ecommerce"
	ServiceBooking   ServiceType = "booking"
	ServiceCustom    ServiceType = "custom"
)

// AllServiceTypes enumerates the closed set of flows.
var AllServiceTypes = []ServiceType{ServiceVitrine, ServiceEcommerce, ServiceBooking, ServiceCustom}

// Step is one step of the wizard flow.
type Step struct {
	ID        string
	Label     string
	Component string
}

var (
	stepContact   = Step{ID: "contact", Label: "Vos coordonnées", Component: "ContactStep"}
	stepBusiness  = Step{ID: "business", Label: "Votre activité", Component: "BusinessStep"}
	stepPages     = Step{ID: "pages", Label: "Pages souhaitées", Component: "PagesStep"}
	stepCatalog   = Step{ID: "catalog", Label: "Votre catalogue", Component: "CatalogStep"}
	stepPayments  = Step{ID: "payments", Label: "Paiement en ligne", Component: "PaymentsStep"}
	stepAgenda    = Step{ID: "agenda", Label: "Prise de rendez-vous", Component: "AgendaStep"}
	stepFeatures  = Step{ID: "features", Label: "Fonctionnalités", Component: "FeaturesStep"}
	stepBudget    = Step{ID: "budget", Label: "Budget et délais", Component: "BudgetStep"}
	stepSummary   = Step{ID: "summary", Label: "Récapitulatif", Component: "SummaryStep"}
)

// flows maps each service type to its ordered step list. Every flow ends
// with the summary step.
var flows = map[ServiceType][]Step{
	ServiceVitrine:   {stepContact, stepBusiness, stepPages, stepBudget, stepSummary},
	ServiceEcommerce: {stepContact, stepBusiness, stepCatalog, stepPayments, stepBudget, stepSummary},
	ServiceBooking:   {stepContact, stepBusiness, stepAgenda, stepBudget, stepSummary},
	ServiceCustom:    {stepContact, stepBusiness, stepFeatures, stepBudget, stepSummary},
}

// Resolve returns the ordered step list for the given service type tag.
// Unrecognized tags fall back to the vitrine flow rather than failing:
// the public form must always render something.
func Resolve(serviceType string) (ServiceType, []Step) {
	st := ServiceType(serviceType)
	steps, ok := flows[st]
	if !ok {
		st = ServiceVitrine
		steps = flows[ServiceVitrine]
	}

	out := make([]Step, len(steps))
	copy(out, steps)
	return st, out
}

// StepCount returns the number of steps in the flow for the given tag.
func StepCount(serviceType string) int {
	_, steps := Resolve(serviceType)
	return len(steps)
}
