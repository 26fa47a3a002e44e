// Package catalog holds the static marketing data served on the public site:
// service categories and their pricing plans. The data lives in Go tables so
// the service-type switch is checked at compile time.
package catalog

// ServiceCategory identifies one of the agency's offerings.
type ServiceCategory string

const (
	CategoryVitrine   ServiceCategory = "vitrine"
	CategoryEcommerce ServiceCategory = "ecommerce"
	CategoryBooking   ServiceCategory = "booking"
)

// Category describes a service category on the marketing site.
type Category struct {
	ID          ServiceCategory `json:"id"`
	Name        string          `json:"name"`
	Tagline     string          `json:"tagline"`
	Description string          `json:"description"`
}

// Plan is one pricing tier within a category. Prices are display
// strings, not amounts the system computes with.
type Plan struct {
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Period    string   `json:"period,omitempty"`
	Features  []string `json:"features"`
	Highlight bool     `json:"highlight"`
}

var categories = []Category{
	{
		ID:          CategoryVitrine,
		Name:        "Site vitrine",
		Tagline:     "Votre image en ligne, clé en main",
		Description: "Un site élégant et rapide pour présenter votre activité, vos services et vos coordonnées.",
	},
	{
		ID:          CategoryEcommerce,
		Name:        "Boutique en ligne",
		Tagline:     "Vendez partout, tout le temps",
		Description: "Une boutique complète avec catalogue, paiement sécurisé et gestion des commandes.",
	},
	{
		ID:          CategoryBooking,
		Name:        "Réservation en ligne",
		Tagline:     "Vos rendez-vous en automatique",
		Description: "Un système de réservation intégré avec rappels automatiques et agenda synchronisé.",
	},
}

var plansByCategory = map[ServiceCategory][]Plan{
	CategoryVitrine: {
		{
			Name:     "Essentiel",
			Price:    "890 €",
			Features: []string{"Jusqu'à 5 pages", "Design responsive", "Formulaire de contact", "Référencement de base"},
		},
		{
			Name:      "Pro",
			Price:     "1 490 €",
			Features:  []string{"Jusqu'à 10 pages", "Design sur mesure", "Blog intégré", "Référencement avancé", "Statistiques de visite"},
			Highlight: true,
		},
		{
			Name:     "Premium",
			Price:    "2 490 €",
			Features: []string{"Pages illimitées", "Design sur mesure", "Multilingue", "Animations avancées", "Maintenance 12 mois incluse"},
		},
	},
	CategoryEcommerce: {
		{
			Name:     "Boutique",
			Price:    "2 490 €",
			Features: []string{"Jusqu'à 50 produits", "Paiement CB et PayPal", "Gestion des stocks", "Emails de commande"},
		},
		{
			Name:      "Boutique Pro",
			Price:     "3 990 €",
			Features:  []string{"Produits illimités", "Codes promo", "Livraison multi-transporteurs", "Factures automatiques", "Avis clients"},
			Highlight: true,
		},
		{
			Name:     "Sur mesure",
			Price:    "Sur devis",
			Features: []string{"Fonctionnalités spécifiques", "Intégrations ERP / CRM", "Accompagnement dédié"},
		},
	},
	CategoryBooking: {
		{
			Name:     "Agenda",
			Price:    "1 290 €",
			Features: []string{"Prise de rendez-vous en ligne", "Rappels par email", "Agenda synchronisé"},
		},
		{
			Name:      "Agenda Pro",
			Price:     "1 990 €",
			Features:  []string{"Plusieurs collaborateurs", "Paiement d'acompte en ligne", "Rappels SMS", "Statistiques d'occupation"},
			Highlight: true,
		},
	},
}

// Categories returns every service category, in display order.
func Categories() []Category {
	return categories
}

// PlansFor returns the pricing plans of a category.
func PlansFor(category ServiceCategory) ([]Plan, bool) {
	plans, ok := plansByCategory[category]
	return plans, ok
}
