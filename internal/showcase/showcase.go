// Package showcase serves the content of the demo sites shown to prospects.
// Each site is described by an embedded YAML document parsed once at startup.
package showcase

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed sites/*.yaml
var sitesFS embed.FS

// Site names match the YAML file names under sites/.
const (
	SiteSalon      = "salon"
	SiteRestaurant = "restaurant"
	SiteDealership = "dealership"
	SiteRealEstate = "realestate"
)

var siteNames = []string{SiteSalon, SiteRestaurant, SiteDealership, SiteRealEstate}

// Content is the full typed content of one showcase site.
type Content struct {
	Name    string  `yaml:"name" json:"name"`
	Theme   string  `yaml:"theme" json:"theme"`
	Hero    Hero    `yaml:"hero" json:"hero"`
	Section []Part  `yaml:"sections" json:"sections"`
	Gallery []Image `yaml:"gallery" json:"gallery"`
	Contact Contact `yaml:"contact" json:"contact"`
}

// Hero is the landing banner of a showcase site.
type Hero struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	CTALabel string `yaml:"cta_label" json:"ctaLabel"`
	Image    string `yaml:"image" json:"image"`
}

// Part is one content section (services, menu, listings...).
type Part struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
	Items []Item `yaml:"items" json:"items,omitempty"`
}

// Item is a card within a section.
type Item struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Price       string `yaml:"price" json:"price,omitempty"`
	Image       string `yaml:"image" json:"image,omitempty"`
}

// Image is one gallery entry.
type Image struct {
	URL     string `yaml:"url" json:"url"`
	Caption string `yaml:"caption" json:"caption,omitempty"`
}

// Contact holds the demo business contact block.
type Contact struct {
	Address string `yaml:"address" json:"address"`
	Phone   string `yaml:"phone" json:"phone"`
	Email   string `yaml:"email" json:"email"`
	Hours   string `yaml:"hours" json:"hours"`
}

var sites map[string]Content

func init() {
	sites = make(map[string]Content, len(siteNames))
	for _, name := range siteNames {
		data, err := sitesFS.ReadFile("sites/" + name + ".yaml")
		if err != nil {
			panic(fmt.Sprintf("showcase: missing site definition %s: %v", name, err))
		}
		var content Content
		if err := yaml.Unmarshal(data, &content); err != nil {
			panic(fmt.Sprintf("showcase: invalid site definition %s: %v", name, err))
		}
		sites[name] = content
	}
}

// Sites returns the names of all showcase sites.
func Sites() []string {
	return siteNames
}

// Get returns the content of a showcase site.
func Get(name string) (Content, bool) {
	content, ok := sites[name]
	return content, ok
}
