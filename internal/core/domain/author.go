package domain

// Author is one entry of the static authors table supplied by site
// configuration. The table is read-only shared state during a build.
type Author struct {
	// ID is the identifier referenced by blog front matter.
	ID string

	// Name is the display name.
	Name string

	// Avatar is the site-relative path to the author's picture.
	Avatar string

	// URL is the author's profile link.
	URL string

	// Email is the public contact address.
	Email string

	// Bio maps a locale code to a localised biography.
	Bio map[string]string

	// Social maps a network name to a handle or URL.
	Social map[string]string
}

// ResolvedAuthor is the author record attached to a compiled blog document.
// When the referenced ID is unknown, only ID is populated.
type ResolvedAuthor struct {
	ID     string            `json:"id"`
	Name   string            `json:"name,omitempty"`
	Avatar string            `json:"avatar,omitempty"`
	URL    string            `json:"url,omitempty"`
	Email  string            `json:"email,omitempty"`
	Bio    string            `json:"bio,omitempty"`
	Social map[string]string `json:"social,omitempty"`
}

// Resolve returns the author's record merged with the biography for the
// requested locale, falling back to defaultLocale when the requested
// locale has none.
func (a Author) Resolve(locale, defaultLocale string) ResolvedAuthor {
	bio, ok := a.Bio[locale]
	if !ok {
		bio = a.Bio[defaultLocale]
	}
	return ResolvedAuthor{
		ID:     a.ID,
		Name:   a.Name,
		Avatar: a.Avatar,
		URL:    a.URL,
		Email:  a.Email,
		Bio:    bio,
		Social: a.Social,
	}
}
