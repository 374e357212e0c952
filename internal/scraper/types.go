package scraper

// Sentinel is written in place of a field that could not be resolved.
const Sentinel = "N/A"

// Element is a single matched node of a loaded page.
type Element interface {
	Querier
	Text() (string, error)
}

// Querier finds elements by selector. Pages and elements both implement it,
// so the same strategies run against a whole page or inside one container.
type Querier interface {
	QueryAll(selector string) ([]Element, error)
}

// Page is the capability the extraction core needs from a loaded page.
type Page interface {
	Querier
	Content() (string, error)
}

// Value is one extracted field: either text or "not found".
type Value struct {
	Text  string
	Found bool
}

// Text wraps a resolved string.
func Text(s string) Value {
	return Value{Text: s, Found: true}
}

// Missing is the value of a field that could not be resolved.
func Missing() Value {
	return Value{}
}

// String returns the text, or Sentinel when the value was not found.
func (v Value) String() string {
	if !v.Found {
		return Sentinel
	}
	return v.Text
}

// Field is an extracted column in document order.
type Field []Value

// Strings renders the field with sentinels substituted.
func (f Field) Strings() []string {
	out := make([]string, len(f))
	for i, v := range f {
		out[i] = v.String()
	}
	return out
}

// FieldOf builds a Field of found values.
func FieldOf(texts ...string) Field {
	f := make(Field, len(texts))
	for i, s := range texts {
		f[i] = Text(s)
	}
	return f
}

// Listing is one paired search result.
type Listing struct {
	Title Value
	Price Value
}

// Selectors holds the ordered selector lists for one site.
type Selectors struct {
	ReadyMarker     string   `yaml:"ready_marker"`
	TitleSelectors  []string `yaml:"title_selectors"`
	PriceSelectors  []string `yaml:"price_selectors"`
	Containers      []string `yaml:"container_selectors"`
	ContainerTitles []string `yaml:"container_title_selectors"`
	ContainerPrices []string `yaml:"container_price_selectors"`
}

// DefaultSelectors returns the selector lists tuned to OLX search results.
func DefaultSelectors() *Selectors {
	return &Selectors{
		ReadyMarker: "[data-aut-id='itemBox']",
		TitleSelectors: []string{
			"[data-aut-id='itemTitle']",
			"._2tW1I",
			".EKdUR",
			"[data-testid='listing-title']",
			"h2 a",
			".title",
			"a[data-aut-id='itemTitle']",
		},
		PriceSelectors: []string{
			"[data-aut-id='itemPrice']",
			"._89yzn",
			".notranslate",
			"[data-testid='listing-price']",
			".price",
			"span[data-aut-id='itemPrice']",
		},
		Containers: []string{
			"[data-aut-id='itemBox']",
			".EKdUR",
			"._1kVFD",
		},
		ContainerTitles: []string{"a", "h2", "h3", ".title"},
		ContainerPrices: []string{"[data-aut-id='itemPrice']", ".price", ".notranslate"},
	}
}
