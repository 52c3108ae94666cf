package content

// SiteSettings documents the "site-settings" global shared by every page.
var SiteSettings = Schema{
	Slug: "site-settings",
	Sections: []Section{
		{
			Key: "header",
			Fields: []Field{
				media("logo"),
				str("ctaLabel", "Contact Us"),
				str("ctaLink", "/contact"),
				list("navItems"),
			},
		},
		{
			Key: "footer",
			Fields: []Field{
				str("tagline", "Interiors & Flowers"),
				str("copyright", "© District. All rights reserved."),
				list("links"),
				list("socialLinks"),
			},
		},
		{
			Key: "seo",
			Fields: []Field{
				str("title", "District Interiors & Flowers"),
				str("description", "Interior fit-out and floral design studio in Riyadh."),
				media("ogImage"),
			},
		},
	},
}
