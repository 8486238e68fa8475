package site

// NavElement is an optional entry in navigation.json's nav_elements.
type NavElement struct {
	LinkText string `json:"link_text"`
	URL      string `json:"url"`
	URLFor   string `json:"urlfor"`
	Rel      string `json:"rel"`
}

type navigationFile struct {
	Order    []string              `json:"nav_order"`
	Elements map[string]NavElement `json:"nav_elements"`
}

// NavItem is one link of the top navigation.
type NavItem struct {
	Key      string
	LinkText string
	URL      string
	Rel      string
	Active   bool
}

// Navigation is the ordered top navigation as seen from Page.
type Navigation struct {
	Page  string
	Items []NavItem
}

// URLResolver maps a named route to its URL.
type URLResolver func(name string) (string, bool)

// Navigation builds the top navigation from navigation.json. Only keys
// listed in nav_order appear, in that order. A key without an element uses
// itself as link text and links to /key. An explicit url wins over urlfor.
func (s *Site) Navigation(current string, urlFor URLResolver) Navigation {
	var file navigationFile
	if !s.readJSON(NavigationFile, &file) {
		file = navigationFile{}
	}

	nav := Navigation{
		Page:  current,
		Items: make([]NavItem, 0, len(file.Order)),
	}
	for _, key := range file.Order {
		el := file.Elements[key]
		item := NavItem{
			Key:      key,
			LinkText: key,
			URL:      "/" + key,
			Rel:      el.Rel,
			Active:   key == current,
		}
		if el.LinkText != "" {
			item.LinkText = el.LinkText
		}
		switch {
		case el.URL != "":
			item.URL = el.URL
		case el.URLFor != "" && urlFor != nil:
			if u, ok := urlFor(el.URLFor); ok {
				item.URL = u
			}
		}
		nav.Items = append(nav.Items, item)
	}
	return nav
}
