//nolint:revive // types is a standard Go package name pattern
package types

// SectionType is a logical portfolio region
type SectionType string

// Section types
const (
	SectionHero     SectionType = "hero"
	SectionAbout    SectionType = "about"
	SectionSkills   SectionType = "skills"
	SectionProjects SectionType = "projects"
	SectionContact  SectionType = "contact"
	SectionNavbar   SectionType = "navbar"
	SectionFooter   SectionType = "footer"
	SectionCustom   SectionType = "custom"
)

// AllSectionTypes lists section types in canonical render order.
var AllSectionTypes = []SectionType{
	SectionNavbar,
	SectionHero,
	SectionAbout,
	SectionSkills,
	SectionProjects,
	SectionContact,
	SectionFooter,
	SectionCustom,
}

// Valid reports whether s is a known section type.
func (s SectionType) Valid() bool {
	for _, known := range AllSectionTypes {
		if s == known {
			return true
		}
	}
	return false
}

// ComponentCategory groups variants by their role on the page.
// Marketplace components may carry categories outside the built-in four.
type ComponentCategory string

// Built-in component categories
const (
	CategoryLayout  ComponentCategory = "layout"
	CategoryContent ComponentCategory = "content"
	CategoryMedia   ComponentCategory = "media"
	CategoryForm    ComponentCategory = "form"
)

// SocialLinkShape declares how a hero variant expects social links.
type SocialLinkShape string

// Social link shapes
const (
	// SocialLinksArray expects socialLinks: [{platform, url, username}]
	SocialLinksArray SocialLinkShape = "socialLinksArray"
	// DiscreteURLs expects githubUrl, linkedinUrl and emailUrl scalars
	DiscreteURLs SocialLinkShape = "discreteUrls"
)

// Styles is the style configuration of a rendered section
type Styles struct {
	BackgroundColor string `json:"backgroundColor,omitempty" yaml:"backgroundColor"`
	TextColor       string `json:"textColor,omitempty" yaml:"textColor"`
	PrimaryColor    string `json:"primaryColor,omitempty" yaml:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor,omitempty" yaml:"secondaryColor"`
	AccentColor     string `json:"accentColor,omitempty" yaml:"accentColor"`
	BorderColor     string `json:"borderColor,omitempty" yaml:"borderColor"`
	ShadowColor     string `json:"shadowColor,omitempty" yaml:"shadowColor"`
	FontFamily      string `json:"fontFamily,omitempty" yaml:"fontFamily"`
	Padding         string `json:"padding,omitempty" yaml:"padding"`
	BorderRadius    string `json:"borderRadius,omitempty" yaml:"borderRadius"`
}

// SchemeStyles holds the palette of a color scheme.
// Empty accent, border and shadow colors mean the scheme does not define them.
type SchemeStyles struct {
	BackgroundColor string `json:"backgroundColor" yaml:"backgroundColor"`
	TextColor       string `json:"textColor" yaml:"textColor"`
	PrimaryColor    string `json:"primaryColor" yaml:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor" yaml:"secondaryColor"`
	AccentColor     string `json:"accentColor,omitempty" yaml:"accentColor"`
	BorderColor     string `json:"borderColor,omitempty" yaml:"borderColor"`
	ShadowColor     string `json:"shadowColor,omitempty" yaml:"shadowColor"`
}

// ColorScheme is a named palette that can be overlaid on any variant's styles
type ColorScheme struct {
	ID     string       `json:"id" yaml:"id"`
	Name   string       `json:"name" yaml:"name"`
	Styles SchemeStyles `json:"styles" yaml:"styles"`
}

// ComponentVariant is an immutable catalog entry describing one presentational
// implementation of a section type.
type ComponentVariant struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Section         SectionType       `json:"section"`
	Category        ComponentCategory `json:"category"`
	Tags            []string          `json:"tags"`
	DefaultProps    SectionProps      `json:"defaultProps"`
	DefaultStyles   Styles            `json:"defaultStyles"`
	IsPopular       bool              `json:"isPopular"`
	IsPremium       bool              `json:"isPremium"`
	SocialLinkShape SocialLinkShape   `json:"socialLinkShape,omitempty"`
}

// MarketplaceComponentVariant is a community-submitted variant. IsMarketplace
// is always true and is the discriminant used by hybrid lookups.
type MarketplaceComponentVariant struct {
	ComponentVariant
	Author        string  `json:"author"`
	Rating        float64 `json:"rating"`
	Downloads     int     `json:"downloads"`
	ComponentCode string  `json:"componentCode"`
	IsMarketplace bool    `json:"isMarketplace"`
}

// SectionDescriptor carries the placement rules of a section type
type SectionDescriptor struct {
	Type          SectionType `json:"type" yaml:"type"`
	Name          string      `json:"name" yaml:"name"`
	Description   string      `json:"description" yaml:"description"`
	IsRequired    bool        `json:"isRequired" yaml:"isRequired"`
	AllowMultiple bool        `json:"allowMultiple" yaml:"allowMultiple"`
}

// Descriptor returns the catalog descriptor of a static or marketplace variant.
func (v ComponentVariant) Descriptor() ComponentVariant { return v }
